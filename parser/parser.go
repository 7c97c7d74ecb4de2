// Package parser builds a gorb ast.Block from a token stream using
// recursive descent for statements and Pratt (operator-precedence)
// parsing for expressions.
package parser

import (
	"fmt"
	"io"

	"github.com/teatov/gorb/ast"
	"github.com/teatov/gorb/lexer"
	"github.com/teatov/gorb/token"
)

const (
	_ int = iota
	LOWEST
	EQUALITY
	COMPARISON
	SUM
	PRODUCT
	UNARY
	CALL
	INDEX
)

var precedences = map[token.Kind]int{
	token.EQUALS:       EQUALITY,
	token.NOT_EQUALS:   EQUALITY,
	token.LESS_THAN:    COMPARISON,
	token.GREATER_THAN: COMPARISON,
	token.PLUS:         SUM,
	token.MINUS:        SUM,
	token.ASTERISK:     PRODUCT,
	token.SLASH:        PRODUCT,
	token.PAREN_OPEN:   CALL,
	token.BRACKET_OPEN: INDEX,
}

type (
	unaryParseFn  func() ast.Expression
	binaryParseFn func(ast.Expression) ast.Expression
)

// Parser consumes tokens from a lexer.Lexer and produces an ast.Block.
// Parse errors are accumulated rather than aborting on the first one.
type Parser struct {
	l      *lexer.Lexer
	errors []string

	curToken  token.Token
	peekToken token.Token

	unaryParseFns  map[token.Kind]unaryParseFn
	binaryParseFns map[token.Kind]binaryParseFn
}

// New builds a Parser and registers every unary/binary parse function.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, errors: []string{}}

	p.unaryParseFns = make(map[token.Kind]unaryParseFn)
	p.registerUnary(token.PAREN_OPEN, p.parseGroupedExpression)
	p.registerUnary(token.IF, p.parseIfExpression)
	p.registerUnary(token.BANG, p.parseUnaryExpression)
	p.registerUnary(token.MINUS, p.parseUnaryExpression)
	p.registerUnary(token.FUNCTION, p.parseFunctionLiteral)
	p.registerUnary(token.IDENTIFIER, p.parseIdentifier)
	p.registerUnary(token.TRUE, p.parseBoolean)
	p.registerUnary(token.FALSE, p.parseBoolean)
	p.registerUnary(token.INTEGER, p.parseIntegerLiteral)
	p.registerUnary(token.STRING, p.parseStringLiteral)
	p.registerUnary(token.BRACKET_OPEN, p.parseArrayLiteral)
	p.registerUnary(token.BRACE_OPEN, p.parseHashLiteral)

	p.binaryParseFns = make(map[token.Kind]binaryParseFn)
	p.registerBinary(token.BRACKET_OPEN, p.parseIndexExpression)
	p.registerBinary(token.PAREN_OPEN, p.parseCallExpression)
	p.registerBinary(token.PLUS, p.parseBinaryExpression)
	p.registerBinary(token.MINUS, p.parseBinaryExpression)
	p.registerBinary(token.SLASH, p.parseBinaryExpression)
	p.registerBinary(token.ASTERISK, p.parseBinaryExpression)
	p.registerBinary(token.EQUALS, p.parseBinaryExpression)
	p.registerBinary(token.NOT_EQUALS, p.parseBinaryExpression)
	p.registerBinary(token.LESS_THAN, p.parseBinaryExpression)
	p.registerBinary(token.GREATER_THAN, p.parseBinaryExpression)

	p.nextToken()
	p.nextToken()

	return p
}

// NewFromReader is a convenience wrapper: lex r under file, then parse.
func NewFromReader(r io.Reader, file string) *Parser {
	return New(lexer.New(r, file))
}

func (p *Parser) registerUnary(k token.Kind, fn unaryParseFn)   { p.unaryParseFns[k] = fn }
func (p *Parser) registerBinary(k token.Kind, fn binaryParseFn) { p.binaryParseFns[k] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Errors returns the accumulated parse error messages, in the order
// they occurred. It is empty when Parse succeeded.
func (p *Parser) Errors() []string { return p.errors }

// Parse consumes the whole token stream and returns the program's root
// Block. The returned block may be partial when Errors() is non-empty.
func (p *Parser) Parse() *ast.Block {
	block := &ast.Block{Statements: []ast.Node{}}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

// statements

func (p *Parser) parseStatement() ast.Node {
	switch p.curToken.Kind {
	case token.RETURN:
		return p.parseReturnStatement()
	case token.DECLARATION:
		return p.parseDeclarationStatement()
	default:
		expr := p.parseExpression(LOWEST)
		p.skipSemicolons()
		return expr
	}
}

func (p *Parser) parseReturnStatement() ast.Node {
	stmt := &ast.Return{}
	stmt.Token = p.curToken

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	p.skipSemicolons()
	return stmt
}

func (p *Parser) parseDeclarationStatement() ast.Node {
	stmt := &ast.Declaration{}
	stmt.Token = p.curToken

	if !p.expectPeek(token.IDENTIFIER) {
		return nil
	}
	stmt.Name = &ast.Identifier{Name: p.curToken.Literal}
	stmt.Name.Token = p.curToken

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()

	stmt.Value = p.parseExpression(LOWEST)

	p.skipSemicolons()
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.Block {
	block := &ast.Block{Statements: []ast.Node{}}
	block.Token = p.curToken

	p.nextToken()

	for !p.curTokenIs(token.BRACE_CLOSE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

// A trailing semicolon after a declaration or return is accepted but
// never required; more than one is tolerated too.
func (p *Parser) skipSemicolons() {
	for p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// expressions

func (p *Parser) parseExpression(precedence int) ast.Expression {
	parseUnary := p.unaryParseFns[p.curToken.Kind]
	if parseUnary == nil {
		p.noUnaryParseFnError(p.curToken.Kind)
		return nil
	}
	left := parseUnary()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		parseBinary := p.binaryParseFns[p.peekToken.Kind]
		if parseBinary == nil {
			return left
		}
		p.nextToken()
		left = parseBinary(left)
	}

	return left
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.PAREN_CLOSE) {
		return nil
	}
	return exp
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.Index{Left: left}
	exp.Token = p.curToken

	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)

	if !p.expectPeek(token.BRACKET_CLOSE) {
		return nil
	}
	return exp
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	exp := &ast.Call{Callee: callee}
	exp.Token = p.curToken
	exp.Arguments = p.parseExpressionList(token.PAREN_CLOSE)
	return exp
}

func (p *Parser) parseIfExpression() ast.Expression {
	exp := &ast.If{}
	exp.Token = p.curToken

	if !p.expectPeek(token.PAREN_OPEN) {
		return nil
	}
	p.nextToken()
	exp.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.PAREN_CLOSE) {
		return nil
	}
	if !p.expectPeek(token.BRACE_OPEN) {
		return nil
	}
	exp.Consequence = p.parseBlockStatement()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.BRACE_OPEN) {
			return nil
		}
		exp.Alternative = p.parseBlockStatement()
	}

	return exp
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	exp := &ast.Unary{Operator: p.curToken.Kind}
	exp.Token = p.curToken

	p.nextToken()
	exp.Right = p.parseExpression(UNARY)
	return exp
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	exp := &ast.Binary{Operator: p.curToken.Kind, Left: left}
	exp.Token = p.curToken

	precedence := p.curPrecedence()
	p.nextToken()
	exp.Right = p.parseExpression(precedence)
	return exp
}

// literals

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := &ast.FunctionLiteral{}
	lit.Token = p.curToken

	if !p.expectPeek(token.PAREN_OPEN) {
		return nil
	}
	lit.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(token.BRACE_OPEN) {
		return nil
	}
	lit.Body = p.parseBlockStatement()

	return lit
}

func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	identifiers := []*ast.Identifier{}

	if p.peekTokenIs(token.PAREN_CLOSE) {
		p.nextToken()
		return identifiers
	}

	p.nextToken()
	ident := &ast.Identifier{Name: p.curToken.Literal}
	ident.Token = p.curToken
	identifiers = append(identifiers, ident)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		ident := &ast.Identifier{Name: p.curToken.Literal}
		ident.Token = p.curToken
		identifiers = append(identifiers, ident)
	}

	if !p.expectPeek(token.PAREN_CLOSE) {
		return nil
	}

	return identifiers
}

func (p *Parser) parseIdentifier() ast.Expression {
	ident := &ast.Identifier{Name: p.curToken.Literal}
	ident.Token = p.curToken
	return ident
}

func (p *Parser) parseBoolean() ast.Expression {
	lit := &ast.BooleanLiteral{Value: p.curTokenIs(token.TRUE)}
	lit.Token = p.curToken
	return lit
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{}
	lit.Token = p.curToken

	var val int64
	for _, ch := range p.curToken.Literal {
		val = val*10 + int64(ch-'0')
	}
	lit.Value = int32(val)

	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	lit := &ast.StringLiteral{Value: p.curToken.Literal}
	lit.Token = p.curToken
	return lit
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{}
	arr.Token = p.curToken
	arr.Elements = p.parseExpressionList(token.BRACKET_CLOSE)
	return arr
}

func (p *Parser) parseExpressionList(end token.Kind) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}

	return list
}

func (p *Parser) parseHashLiteral() ast.Expression {
	hash := &ast.HashLiteral{}
	hash.Token = p.curToken

	for !p.peekTokenIs(token.BRACE_CLOSE) {
		p.nextToken()
		key := p.parseExpression(LOWEST)

		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)

		hash.Pairs = append(hash.Pairs, ast.HashPair{Key: key, Value: value})

		if !p.peekTokenIs(token.BRACE_CLOSE) && !p.expectPeek(token.COMMA) {
			return nil
		}
	}

	if !p.expectPeek(token.BRACE_CLOSE) {
		return nil
	}

	return hash
}

// helpers

func (p *Parser) curTokenIs(k token.Kind) bool  { return p.curToken.Kind == k }
func (p *Parser) peekTokenIs(k token.Kind) bool { return p.peekToken.Kind == k }

func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peekTokenIs(k) {
		p.nextToken()
		return true
	}
	p.peekError(k)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Kind]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Kind]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) peekError(k token.Kind) {
	msg := fmt.Sprintf("expected %s, got %s", k, p.peekToken.Kind)
	p.errors = append(p.errors, msg)
}

func (p *Parser) noUnaryParseFnError(k token.Kind) {
	msg := fmt.Sprintf("no unary parse function for %s found", k)
	p.errors = append(p.errors, msg)
}
