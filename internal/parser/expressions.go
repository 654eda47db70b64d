package parser

import (
	"strconv"

	"github.com/treep-lang/treep/internal/cst"
	"github.com/treep-lang/treep/internal/token"
)

// binaryOps maps an infix token to the operator symbol the normalizer
// expects to find verbatim as a call's name.
var binaryOps = map[token.Type]string{
	token.OR: "||", token.AND: "&&",
	token.EQ: "==", token.NEQ: "!=",
	token.LT: "<", token.GT: ">", token.LE: "<=", token.GE: ">=",
	token.PLUS: "+", token.MINUS: "-",
	token.STAR: "*", token.SLASH: "/", token.PERCENT: "%",
}

func (p *Parser) parseExpression(precedence int) cst.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.addErrorf(p.curToken, "expression too complex: recursion depth limit exceeded")
		return nil
	}

	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			left = p.finishCall(left)
			continue
		}
		if _, ok := binaryOps[p.peekToken.Type]; !ok && !p.peekTokenIs(token.ASSIGN) {
			break
		}
		p.nextToken()
		left = p.parseInfix(left)
	}

	return left
}

func (p *Parser) parsePrefix() cst.Expression {
	switch p.curToken.Type {
	case token.IDENT:
		return p.parseIdentifierOrCall()
	case token.INT:
		return p.parseIntegerLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.TRUE, token.FALSE:
		return p.parseBooleanLiteral()
	case token.NOT:
		return p.parseUnary("!")
	case token.MINUS:
		return p.parseUnary("-")
	case token.LPAREN:
		return p.parseParenOrLambda()
	default:
		p.addErrorf(p.curToken, "unexpected token %s", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseUnary(op string) cst.Expression {
	ue := &cst.UnaryExpression{Token: p.curToken, Op: op}
	p.nextToken()
	ue.Operand = p.parseExpression(UNARY)
	return ue
}

func (p *Parser) parseInfix(left cst.Expression) cst.Expression {
	if p.curTokenIs(token.ASSIGN) {
		ae := &cst.AssignExpression{Token: p.curToken, Target: left}
		p.nextToken()
		ae.Value = p.parseExpression(LOWEST)
		return ae
	}
	be := &cst.BinaryExpression{Token: p.curToken, Op: binaryOps[p.curToken.Type], Left: left}
	prec := p.curPrecedence()
	p.nextToken()
	be.Right = p.parseExpression(prec)
	return be
}

func (p *Parser) parseIdentifierOrCall() cst.Expression {
	ident := &cst.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		return p.finishCall(ident)
	}
	if p.peekTokenIs(token.LBRACE) {
		// A bare `name { BLOCK }` is sugar for a zero-arg call with a
		// trailing block argument.
		p.nextToken()
		ce := &cst.CallExpression{Token: ident.Token, Function: ident.Value}
		ce.BlockArg = p.parseBlock()
		return ce
	}
	return ident
}

// finishCall parses `(args...)` starting with curToken == LPAREN, then an
// optional trailing `{ BLOCK }` block argument.
func (p *Parser) finishCall(callee cst.Expression) cst.Expression {
	ident, ok := callee.(*cst.Identifier)
	if !ok {
		p.addErrorf(p.curToken, "call target must be a plain identifier")
		return nil
	}
	ce := &cst.CallExpression{Token: ident.Token, Function: ident.Value}
	ce.Args = p.parseCallArgs()
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		ce.BlockArg = p.parseBlock()
	}
	return ce
}

func (p *Parser) parseCallArgs() []cst.Expression {
	var args []cst.Expression
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RPAREN) {
		return args
	}
	return args
}

func (p *Parser) parseIntegerLiteral() cst.Expression {
	lit := &cst.IntegerLiteral{Token: p.curToken}
	v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addErrorf(p.curToken, "invalid integer literal %q", p.curToken.Literal)
		return nil
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseStringLiteral() cst.Expression {
	return &cst.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() cst.Expression {
	return &cst.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

// parseParenOrLambda disambiguates `(expr)` from `(params) -> { body }` by
// scanning ahead for ARROW after the matching close-paren. The scan
// (looksLikeLambda) runs on a cloned lexer, however far the close-paren
// is, so no tokens are consumed; it is unambiguous since parenthesized
// expressions have no arrow-producing continuation.
func (p *Parser) parseParenOrLambda() cst.Expression {
	if p.looksLikeLambda() {
		return p.parseLambda()
	}
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	return expr
}

// looksLikeLambda checks, without consuming tokens, whether curToken==LPAREN
// begins a `(params) -> ...` lambda by re-lexing a lookahead copy of the
// parser positioned at the same point.
func (p *Parser) looksLikeLambda() bool {
	scan := &Parser{l: p.l.Clone(), curToken: p.curToken, peekToken: p.peekToken}
	depth := 0
	for {
		if scan.curTokenIs(token.EOF) {
			return false
		}
		if scan.curTokenIs(token.LPAREN) {
			depth++
		}
		if scan.curTokenIs(token.RPAREN) {
			depth--
			if depth == 0 {
				return scan.peekTokenIs(token.ARROW)
			}
		}
		scan.nextToken()
	}
}

func (p *Parser) parseLambda() cst.Expression {
	le := &cst.LambdaExpression{Token: p.curToken}
	le.Params = p.parseParamList()
	if !p.expectPeek(token.ARROW) {
		return le
	}
	if !p.expectPeek(token.LBRACE) {
		return le
	}
	le.Body = p.parseBlock()
	return le
}
