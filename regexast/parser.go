package regexast

import "github.com/kaslex/lexgen/charset"

// Grammar (LL(1), FIRST/FOLLOW sets noted at each production):
//
//	Tree    -> Option ('|' Option)*
//	Option  -> Element+
//	Element -> '(' Tree ')' | Char | '^'? '[' Charset ']' | Element ('*' '?'? | '+' | '?')
//
// Parse runs the parser over pattern and returns its AST, or the first
// error encountered.
func Parse(pattern string) (Node, error) {
	p, err := newParser(pattern)
	if err != nil {
		return nil, err
	}
	return p.parseTree(false)
}

type parser struct {
	src   []byte
	first byte // 0 (NUL) signals end of input, matching the grammar's '\0' sentinel
	pos   int
}

func newParser(pattern string) (*parser, error) {
	src := []byte(pattern)
	if len(src) == 0 {
		return nil, &Error{Kind: EmptyString}
	}
	return &parser{src: src, first: src[0], pos: 0}, nil
}

func (p *parser) next() byte {
	p.pos++
	if p.pos < len(p.src) {
		p.first = p.src[p.pos]
	} else {
		p.first = 0
	}
	return p.first
}

func (p *parser) nextMatches(byte) {
	p.next()
}

// parseTree implements `Tree -> Option ('|' Option)*`. inside marks
// whether this call is parsing the body of a parenthesized group, which
// changes whether a stray ')' is a legal stopping point or an error.
func (p *parser) parseTree(inside bool) (Node, error) {
	var alts []Node
	for {
		opt, err := p.parseOption()
		if err != nil {
			return nil, err
		}
		alts = append(alts, opt)

		if p.first == ')' || p.first == 0 {
			if p.first == ')' && !inside {
				return nil, &Error{Kind: UnmatchedChar, Pos: p.pos, Char: ')'}
			}
			break
		}
		p.nextMatches('|')
	}

	if len(alts) == 0 {
		return nil, &Error{Kind: MissingExpression, Pos: p.pos}
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return Options{Children: alts}, nil
}

// parseOption implements `Option -> Element+`.
func (p *parser) parseOption() (Node, error) {
	var elems []Node
	for p.first != '|' && p.first != 0 && p.first != ')' {
		elem, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}

	if len(elems) == 0 {
		return nil, &Error{Kind: MissingExpression, Pos: p.pos}
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return Concat{Children: elems}, nil
}

// parseElement implements `Element -> '(' Tree ')' | Char | '^'? '[' Charset ']'`
// plus the postfix `*`, `*?`, `+`, `?` quantifiers. A `^` before anything
// other than `[` is ExceptNotUsable.
func (p *parser) parseElement() (Node, error) {
	isExcept := false
	if p.first == '^' {
		isExcept = true
		p.nextMatches('^')
	}

	var ret Node
	switch p.first {
	case '(':
		if isExcept {
			return nil, &Error{Kind: ExceptNotUsable, Pos: p.pos}
		}
		p.nextMatches('(')
		sub, err := p.parseTree(true)
		if err != nil {
			return nil, err
		}
		if p.first != ')' {
			return nil, &Error{Kind: UnexpectedEnd, Pos: p.pos}
		}
		p.nextMatches(')')
		ret = sub

	case '[':
		sub, err := p.parseCharset(isExcept)
		if err != nil {
			return nil, err
		}
		ret = sub

	case '.':
		if isExcept {
			return nil, &Error{Kind: ExceptNotUsable, Pos: p.pos}
		}
		p.nextMatches('.')
		ret = Char{Lo: charset.Min, Hi: charset.Max}

	case 0:
		return nil, &Error{Kind: UnexpectedEnd, Pos: p.pos}

	case ')', ']', '|', '*', '+', '?':
		return nil, &Error{Kind: UnexpectedChar, Pos: p.pos, Char: rune(p.first)}

	case '\\':
		if isExcept {
			return nil, &Error{Kind: ExceptNotUsable, Pos: p.pos}
		}
		c := p.next()
		p.next()
		switch c {
		case 'n':
			c = '\n'
		case 't':
			c = '\t'
		case 'r':
			c = '\r'
		}
		ret = Char{Lo: c, Hi: c + 1}

	default:
		if isExcept {
			return nil, &Error{Kind: ExceptNotUsable, Pos: p.pos}
		}
		c := p.first
		p.next()
		ret = Char{Lo: c, Hi: c + 1}
	}

	if p.first == '*' {
		p.nextMatches('*')
		if p.first == '?' {
			p.nextMatches('?')
			ret = MultipleNonGreedy{Child: ret}
		} else {
			ret = Multiple{Child: ret}
		}
	}
	if p.first == '+' {
		p.nextMatches('+')
		ret = Concat{Children: []Node{ret, Multiple{Child: ret}}}
	}
	if p.first == '?' {
		p.nextMatches('?')
		ret = EmptyOr{Child: ret}
	}
	return ret, nil
}

// parseCharset implements the `[char*]` / `^[char*]` bracket-expression
// grammar: a run of single characters and `a-b` ranges, with at most one
// range supported under negation (matching the original implementation,
// which panics rather than union-complementing more than one).
func (p *parser) parseCharset(isExcept bool) (Node, error) {
	p.nextMatches('[')

	var ranges []charset.Range
parseLoop:
	for {
		switch p.first {
		case 0:
			return nil, &Error{Kind: UnexpectedEnd, Pos: p.pos}
		case ']':
			p.nextMatches(']')
			break parseLoop
		case '-':
			if len(ranges) == 0 {
				return nil, &Error{Kind: MissingFirstExpr, Pos: p.pos}
			}
			last := ranges[len(ranges)-1]
			if last.Hi-last.Lo != 1 {
				return nil, &Error{Kind: MissingFirstExpr, Pos: p.pos}
			}
			p.next() // consume '-', land on range end char
			ranges[len(ranges)-1] = charset.Range{Lo: last.Lo, Hi: p.first + 1}
		default:
			c := p.first
			if c == '\\' {
				switch c = p.next(); c {
				case 'n':
					c = '\n'
				case 't':
					c = '\t'
				case 'r':
					c = '\r'
				}
			}
			ranges = append(ranges, charset.Range{Lo: c, Hi: c + 1})
		}
		p.next()
	}

	if len(ranges) == 0 {
		return nil, &Error{Kind: MissingExpression, Pos: p.pos}
	}

	if isExcept {
		if len(ranges) != 1 {
			return nil, &Error{Kind: NegatedClassNotImplemented, Pos: p.pos}
		}
		s := ranges[0]
		var alts []Node
		if lo, ok := charset.New(charset.Min, s.Lo); ok {
			alts = append(alts, Char{Lo: lo.Lo, Hi: lo.Hi})
		}
		if hi, ok := charset.New(s.Hi, charset.Max); ok {
			alts = append(alts, Char{Lo: hi.Lo, Hi: hi.Hi})
		}
		if len(alts) == 0 {
			return nil, &Error{Kind: MissingExpression, Pos: p.pos}
		}
		if len(alts) == 1 {
			return alts[0], nil
		}
		return Options{Children: alts}, nil
	}

	if len(ranges) == 1 {
		return Char{Lo: ranges[0].Lo, Hi: ranges[0].Hi}, nil
	}
	opts := make([]Node, len(ranges))
	for i, r := range ranges {
		opts[i] = Char{Lo: r.Lo, Hi: r.Hi}
	}
	return Options{Children: opts}, nil
}
