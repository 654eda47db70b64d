// Package parser implements TreeP's recursive-descent, precedence-climbing
// parser: tokens from internal/lexer in, a *cst.Program out. Parse errors
// accumulate instead of aborting, so one pass reports every syntax error.
package parser

import (
	"strings"

	"github.com/treep-lang/treep/internal/cst"
	"github.com/treep-lang/treep/internal/diagnostics"
	"github.com/treep-lang/treep/internal/lexer"
	"github.com/treep-lang/treep/internal/token"
)

// Precedence levels, low to high.
const (
	LOWEST     int = iota
	ASSIGNMENT     // =
	OR             // ||
	AND            // &&
	EQUALS         // == !=
	COMPARE        // < > <= >=
	SUM            // + -
	PRODUCT        // * / %
	UNARY          // ! - (prefix)
	CALL           // f(...)
)

var precedences = map[token.Type]int{
	token.ASSIGN:  ASSIGNMENT,
	token.OR:      OR,
	token.AND:     AND,
	token.EQ:      EQUALS,
	token.NEQ:     EQUALS,
	token.LT:      COMPARE,
	token.GT:      COMPARE,
	token.LE:      COMPARE,
	token.GE:      COMPARE,
	token.PLUS:    SUM,
	token.MINUS:   SUM,
	token.STAR:    PRODUCT,
	token.SLASH:   PRODUCT,
	token.PERCENT: PRODUCT,
	token.LPAREN:  CALL,
}

// MaxRecursionDepth guards parseExpression against stack exhaustion; a
// host embedding the parser should not be crashable by adversarially
// deep nesting.
const MaxRecursionDepth = 1000

// Parser consumes tokens one at a time from a Lexer.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*diagnostics.Error
	depth  int

	file   string
	source string
}

// New constructs a Parser over source, primed with the first two tokens.
func New(file, source string) *Parser {
	p := &Parser{l: lexer.New(source), file: file, source: source}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse error collected so far.
func (p *Parser) Errors() []*diagnostics.Error { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.addErrorf(p.peekToken, "expected next token to be %s, got %s instead", t, p.peekToken.Type)
}

func (p *Parser) addErrorf(tok token.Token, format string, args ...any) {
	err := diagnostics.New(diagnostics.KindParse, tok.Pos, format, args...).WithSource(p.file, p.source)
	p.errors = append(p.errors, err)
}

// checkBindingName rejects reserved identifiers at binding sites: the
// "__" prefix belongs to the macro expander's generated names and is not
// permitted in user code.
func (p *Parser) checkBindingName(tok token.Token) {
	if strings.HasPrefix(tok.Literal, "__") {
		p.addErrorf(tok, "identifier %q is reserved: the __ prefix is not permitted in user code", tok.Literal)
	}
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the entire token stream into a *cst.Program. Parse
// errors are collected, not fatal: the parser resynchronizes at the next
// statement boundary and keeps going, so a caller sees every syntax error
// in one pass.
func (p *Parser) ParseProgram() *cst.Program {
	prog := &cst.Program{}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	return prog
}

func (p *Parser) parseType() *string {
	if !p.curTokenIs(token.IDENT) {
		p.addErrorf(p.curToken, "expected type name, got %s", p.curToken.Type)
		return nil
	}
	t := p.curToken.Literal
	return &t
}

func (p *Parser) parseParamList() []*cst.Param {
	var params []*cst.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseOneParam())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseOneParam())
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseOneParam() *cst.Param {
	p.checkBindingName(p.curToken)
	param := &cst.Param{Token: p.curToken, Name: p.curToken.Literal}
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		param.Type = p.parseType()
	}
	return param
}

func (p *Parser) parseBlock() *cst.Block {
	block := &cst.Block{Token: p.curToken}
	if !p.curTokenIs(token.LBRACE) {
		p.addErrorf(p.curToken, "expected '{', got %s", p.curToken.Type)
		return block
	}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}
