package bes

// A Ranking is the priority structure of a system, derived from the order of its equations.
//
// Equations are grouped in blocks: maximal runs of consecutive equations sharing a symbol.
// The rank starts at 0 for a leading nu block and grows by one at each block boundary, so that
// even ranks are nu blocks and odd ranks are mu blocks.
type Ranking struct {
	Ranks   []int    // Rank of each equation, in order
	Beta    []uint64 // For each rank, the size of the block if the rank is odd, 0 otherwise
	MaxRank int      // Highest rank
}

// D is the length of progress measure vectors for the ranking, i.e MaxRank+1.
func (r Ranking) D() int {
	return r.MaxRank + 1
}

// A Block is a maximal run of consecutive equations sharing the same symbol.
type Block struct {
	Symbol Symbol
	Rank   int
	First  int // Index of the first equation of the block
	Size   int
}

// Blocks returns the blocks of the ranking, given the equations it was computed from.
func (r Ranking) Blocks(eqs []Equation) []Block {
	var blocks []Block
	for i, eq := range eqs {
		if n := len(blocks); n > 0 && blocks[n-1].Rank == r.Ranks[i] {
			blocks[n-1].Size++
			continue
		}
		blocks = append(blocks, Block{Symbol: eq.Symbol, Rank: r.Ranks[i], First: i, Size: 1})
	}
	return blocks
}

// Classify computes the ranking of the given equations.
func Classify(eqs []Equation) Ranking {
	var (
		last      = Nu
		rank      = 0
		blockSize = uint64(0)
		ranks     = make([]int, len(eqs))
		beta      []uint64
	)
	push := func() {
		if len(beta)%2 == 0 {
			beta = append(beta, 0)
		} else {
			beta = append(beta, blockSize)
		}
	}
	for i, eq := range eqs {
		if eq.Symbol != last {
			push()
			blockSize = 0
			rank++
			last = eq.Symbol
		}
		blockSize++
		ranks[i] = rank
	}
	push()
	return Ranking{Ranks: ranks, Beta: beta, MaxRank: rank}
}
