package bes

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/scanner"
)

type parser struct {
	s     scanner.Scanner
	eof   bool   // Have we reached eof yet?
	token string // Last token read
	err   error  // First error reported by the scanner
}

// Parse parses a system from the given input Reader.
// A system is written as an optional "pbes" (or "bes") keyword, a list of equations, each one
// terminated by a semicolon, and the declaration of the initial variable:
//
//	pbes
//	  nu X1 = X2 && X1;
//	  mu X2 = X1 || X2;
//	init X1;
//
// Formulas are written using the following operators (from lowest to highest priority):
//
// - for an implication, the "=>" operator,
// - for a disjunction ("or"), the "||" operator,
// - for a conjunction ("and"), the "&&" operator,
// - for a negation, the "!" unary operator.
//
// Parentheses can be used to group subformulas, and "true" and "false" denote the constants.
// A "%" starts a comment that runs until the end of the line.
//
// The parsed system is not validated: call Validate before solving it.
func Parse(r io.Reader) (*System, error) {
	src, err := stripComments(r)
	if err != nil {
		return nil, fmt.Errorf("could not read system: %v", err)
	}
	p := newParser(strings.NewReader(src))
	sys, err := p.parseSystem()
	if p.err != nil {
		return nil, p.err
	}
	return sys, err
}

// ParseExpr parses a single formula, using the syntax described in Parse.
func ParseExpr(r io.Reader) (Expr, error) {
	p := newParser(r)
	e, err := p.parseImp()
	if p.err != nil {
		return nil, p.err
	}
	if err != nil {
		return nil, err
	}
	if !p.eof {
		return nil, fmt.Errorf("unexpected token %q at %s", p.token, p.s.Position)
	}
	return e, nil
}

func newParser(r io.Reader) *parser {
	p := &parser{}
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = fmt.Errorf("%s at %s", msg, s.Pos())
		}
	}
	p.scan()
	return p
}

func stripComments(r io.Reader) (string, error) {
	var sb strings.Builder
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '%'); i >= 0 {
			line = line[:i]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), sc.Err()
}

func isKeyword(token string) bool {
	switch token {
	case "mu", "nu", "init", "true", "false", "pbes", "bes":
		return true
	default:
		return false
	}
}

func isOperator(token string) bool {
	return token == "=" || token == "|" || token == "&" || token == ";"
}

func (p *parser) scan() {
	if p.eof {
		return
	}
	p.eof = (p.s.Scan() == scanner.EOF)
	p.token = p.s.TokenText()
}

// expect consumes the given sequence of single-character tokens.
func (p *parser) expect(op string) error {
	for _, c := range op {
		if p.eof {
			return fmt.Errorf("expected %q, found EOF", op)
		}
		if p.token != string(c) {
			return fmt.Errorf("expected %q, found %q at %s", op, p.token, p.s.Position)
		}
		p.scan()
	}
	return nil
}

func (p *parser) parseIdent() (Variable, error) {
	if p.eof {
		return "", fmt.Errorf("expected variable, found EOF")
	}
	if isKeyword(p.token) || !isIdent(p.token) {
		return "", fmt.Errorf("expected variable, found %q at %s", p.token, p.s.Position)
	}
	v := Variable(p.token)
	p.scan()
	return v, nil
}

func isIdent(token string) bool {
	for i, c := range token {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return token != ""
}

func (p *parser) parseSystem() (*System, error) {
	if p.token == "pbes" || p.token == "bes" {
		p.scan()
	}
	var sys System
	for !p.eof && (p.token == "mu" || p.token == "nu") {
		eq, err := p.parseEquation()
		if err != nil {
			return nil, err
		}
		sys.Equations = append(sys.Equations, eq)
	}
	if p.eof {
		return nil, fmt.Errorf("expected initial variable declaration, found EOF")
	}
	if p.token != "init" {
		return nil, fmt.Errorf("expected equation or %q, found %q at %s", "init", p.token, p.s.Position)
	}
	p.scan()
	initVar, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	sys.Init = initVar
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	if !p.eof {
		return nil, fmt.Errorf("unexpected token %q after initial variable at %s", p.token, p.s.Position)
	}
	return &sys, nil
}

func (p *parser) parseEquation() (eq Equation, err error) {
	if p.token == "mu" {
		eq.Symbol = Mu
	} else {
		eq.Symbol = Nu
	}
	p.scan()
	if eq.Var, err = p.parseIdent(); err != nil {
		return eq, err
	}
	if err := p.expect("="); err != nil {
		return eq, err
	}
	if eq.Formula, err = p.parseImp(); err != nil {
		return eq, err
	}
	if err := p.expect(";"); err != nil {
		return eq, err
	}
	return eq, nil
}

func (p *parser) parseImp() (f Expr, err error) {
	f, err = p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.eof {
		return f, nil
	}
	if p.token == "=" {
		if err := p.expect("=>"); err != nil {
			return nil, err
		}
		f2, err := p.parseImp()
		if err != nil {
			return nil, err
		}
		return Imp(f, f2), nil
	}
	return f, nil
}

func (p *parser) parseOr() (f Expr, err error) {
	f, err = p.parseAnd()
	if err != nil {
		return nil, err
	}
	if p.eof {
		return f, nil
	}
	if p.token == "|" {
		if err := p.expect("||"); err != nil {
			return nil, err
		}
		f2, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return Or(f, f2), nil
	}
	return f, nil
}

func (p *parser) parseAnd() (f Expr, err error) {
	f, err = p.parseNot()
	if err != nil {
		return nil, err
	}
	if p.eof {
		return f, nil
	}
	if p.token == "&" {
		if err := p.expect("&&"); err != nil {
			return nil, err
		}
		f2, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		return And(f, f2), nil
	}
	return f, nil
}

func (p *parser) parseNot() (f Expr, err error) {
	if p.eof {
		return nil, fmt.Errorf("expected expression, found EOF")
	}
	if p.token == "!" {
		p.scan()
		f, err = p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not(f), nil
	}
	return p.parseBasic()
}

func (p *parser) parseBasic() (f Expr, err error) {
	if isOperator(p.token) || p.token == ")" {
		return nil, fmt.Errorf("unexpected token %q at %s", p.token, p.s.Position)
	}
	switch p.token {
	case "(":
		p.scan()
		f, err = p.parseImp()
		if err != nil {
			return nil, err
		}
		if p.eof {
			return nil, fmt.Errorf("expected closing parenthesis, found EOF")
		}
		if p.token != ")" {
			return nil, fmt.Errorf("expected closing parenthesis, found %q at %s", p.token, p.s.Position)
		}
		p.scan()
		return f, nil
	case "true":
		p.scan()
		return True, nil
	case "false":
		p.scan()
		return False, nil
	}
	v, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return Var(v), nil
}
