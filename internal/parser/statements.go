package parser

import (
	"github.com/treep-lang/treep/internal/cst"
	"github.com/treep-lang/treep/internal/token"
)

func (p *Parser) parseStatement() cst.Statement {
	switch p.curToken.Type {
	case token.DEF:
		return p.parseFunctionDef()
	case token.LET:
		return p.parseLetStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.MACRO:
		return p.parseMacroDeclaration()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseFunctionDef() *cst.FunctionDef {
	fd := &cst.FunctionDef{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return fd
	}
	p.checkBindingName(p.curToken)
	fd.Name = p.curToken.Literal
	if !p.expectPeek(token.LPAREN) {
		return fd
	}
	fd.Params = p.parseParamList()
	if p.peekTokenIs(token.RETURNS) {
		p.nextToken()
		if !p.expectPeek(token.COLON) {
			return fd
		}
		p.nextToken()
		fd.ReturnType = p.parseType()
	}
	if !p.expectPeek(token.LBRACE) {
		return fd
	}
	fd.Body = p.parseBlock()
	return fd
}

func (p *Parser) parseLetStatement() *cst.LetStatement {
	ls := &cst.LetStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return ls
	}
	p.checkBindingName(p.curToken)
	ls.Name = p.curToken.Literal
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		ls.Type = p.parseType()
	}
	if !p.expectPeek(token.ASSIGN) {
		return ls
	}
	p.nextToken()
	ls.Value = p.parseExpression(LOWEST)
	return ls
}

func (p *Parser) parseReturnStatement() *cst.ReturnStatement {
	rs := &cst.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return rs
	}
	p.nextToken()
	rs.Value = p.parseExpression(LOWEST)
	return rs
}

func (p *Parser) parseIfStatement() *cst.IfStatement {
	is := &cst.IfStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return is
	}
	p.nextToken()
	is.Cond = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return is
	}
	if !p.expectPeek(token.LBRACE) {
		return is
	}
	is.Then = p.parseBlock()
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return is
		}
		is.Else = p.parseBlock()
	}
	return is
}

func (p *Parser) parseWhileStatement() *cst.WhileStatement {
	ws := &cst.WhileStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return ws
	}
	p.nextToken()
	ws.Cond = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return ws
	}
	if !p.expectPeek(token.LBRACE) {
		return ws
	}
	ws.Body = p.parseBlock()
	return ws
}

func (p *Parser) parseForStatement() *cst.ForStatement {
	fs := &cst.ForStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return fs
	}
	if !p.expectPeek(token.IDENT) {
		return fs
	}
	fs.Var = p.curToken.Literal
	if !p.expectPeek(token.ASSIGN) {
		return fs
	}
	p.nextToken()
	fs.From = p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return fs
	}
	p.nextToken()
	fs.To = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return fs
	}
	if !p.expectPeek(token.LBRACE) {
		return fs
	}
	fs.Body = p.parseBlock()
	return fs
}

// parseMacroDeclaration parses the registration-hook `macro name` form.
// No expansion logic consumes the result; it exists only so the grammar
// accepts the syntax TreeP reserves for user-defined macros.
func (p *Parser) parseMacroDeclaration() *cst.MacroDeclaration {
	md := &cst.MacroDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return md
	}
	md.Name = p.curToken.Literal
	return md
}

func (p *Parser) parseExpressionStatement() *cst.ExpressionStatement {
	es := &cst.ExpressionStatement{Token: p.curToken}
	es.Expr = p.parseExpression(LOWEST)
	return es
}
