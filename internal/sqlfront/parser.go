package sqlfront

import "strings"

// Parse lifts a single SQL statement string into a Statement. Input is
// trimmed of surrounding whitespace first; the statement must consume the
// entire trimmed input or Parse returns a syntax error (P6).
func Parse(input string) (Statement, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, parseErrorf("empty statement")
	}

	p := &parser{lex: newLexer(trimmed)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.kind != tokWord {
		return nil, parseErrorf("expected a statement keyword")
	}
	keyword := p.tok.text

	var (
		stmt Statement
		err  error
	)
	switch {
	case foldEqual(keyword, "SELECT"):
		stmt, err = p.parseSelect()
	case foldEqual(keyword, "INSERT"):
		stmt, err = p.parseInsert()
	case foldEqual(keyword, "UPDATE"):
		stmt, err = p.parseUpdate()
	case foldEqual(keyword, "DELETE"):
		stmt, err = p.parseDelete()
	default:
		return nil, parseErrorf("unrecognized statement keyword %q", keyword)
	}
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokEOF {
		return nil, parseErrorf("unexpected trailing input at %q", p.tok.text)
	}
	return stmt, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// expectKeyword consumes the current token if it is a word matching kw
// case-insensitively, otherwise returns a syntax error.
func (p *parser) expectKeyword(kw string) error {
	if p.tok.kind != tokWord || !foldEqual(p.tok.text, kw) {
		return parseErrorf("expected keyword %q, got %q", kw, p.tok.text)
	}
	return p.advance()
}

// expectIdent consumes the current token as an identifier.
func (p *parser) expectIdent() (string, error) {
	if p.tok.kind != tokWord {
		return "", parseErrorf("expected an identifier, got %q", p.tok.text)
	}
	text := p.tok.text
	if err := p.advance(); err != nil {
		return "", err
	}
	return text, nil
}

// parseValue consumes a quoted string or a bare identifier as a value.
func (p *parser) parseValue() (string, error) {
	switch p.tok.kind {
	case tokString:
		text := p.tok.text
		return text, p.advance()
	case tokWord:
		text := p.tok.text
		return text, p.advance()
	default:
		return "", parseErrorf("expected a value, got %q", p.tok.text)
	}
}

// parseOperator consumes a comparison operator token.
func (p *parser) parseOperator() (string, error) {
	if p.tok.kind <= tokOperatorBeg || p.tok.kind >= tokOperatorEnd {
		return "", parseErrorf("expected a comparison operator, got %q", p.tok.text)
	}
	text := p.tok.text
	return text, p.advance()
}

// parseCondition parses a single `ident op value` clause.
func (p *parser) parseCondition() (*Condition, error) {
	col, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	op, err := p.parseOperator()
	if err != nil {
		return nil, err
	}
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &Condition{Column: col, Operator: op, Value: val}, nil
}

// parseOptionalWhere parses a trailing [WHERE cond], returning nil if the
// current token is not the WHERE keyword.
func (p *parser) parseOptionalWhere() (*Condition, error) {
	if p.tok.kind != tokWord || !foldEqual(p.tok.text, "WHERE") {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseCondition()
}

func (p *parser) parseSelect() (Statement, error) {
	if err := p.advance(); err != nil { // consume SELECT
		return nil, err
	}

	var projection []string
	if p.tok.kind == tokStar {
		projection = []string{"*"}
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else {
		for {
			col, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			projection = append(projection, col)
			if p.tok.kind != tokComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}

	return &SelectStatement{Table: table, Projection: projection, Where: where}, nil
}

func (p *parser) parseInsert() (Statement, error) {
	if err := p.advance(); err != nil { // consume INSERT
		return nil, err
	}
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var columns []string
	if p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			col, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			columns = append(columns, col)
			if p.tok.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if p.tok.kind != tokRParen {
			return nil, parseErrorf("expected ')' after column list, got %q", p.tok.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	if p.tok.kind != tokLParen {
		return nil, parseErrorf("expected '(' after VALUES, got %q", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var values []string
	for {
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, val)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.tok.kind != tokRParen {
		return nil, parseErrorf("expected ')' after value list, got %q", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return &InsertStatement{Table: table, Columns: columns, Values: values}, nil
}

func (p *parser) parseUpdate() (Statement, error) {
	if err := p.advance(); err != nil { // consume UPDATE
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}

	var assignments []Assignment
	for {
		col, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokOpEQ {
			return nil, parseErrorf("expected '=' in SET clause, got %q", p.tok.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, Assignment{Column: col, Value: val})
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}

	return &UpdateStatement{Table: table, Assignments: assignments, Where: where}, nil
}

func (p *parser) parseDelete() (Statement, error) {
	if err := p.advance(); err != nil { // consume DELETE
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	where, err := p.parseOptionalWhere()
	if err != nil {
		return nil, err
	}
	return &DeleteStatement{Table: table, Where: where}, nil
}
