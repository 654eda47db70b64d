// Package cst defines the concrete syntax tree the parser collaborator
// produces: one Go struct per source construct, mirroring source
// structure before the normalizer lowers it into the uniform Element
// tree (package element).
package cst

import "github.com/treep-lang/treep/internal/token"

// Node is the base interface every CST node satisfies.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node appearing at block or program level.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node producing a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the parser's top-level output.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token { return token.Token{} }

// Param is a single function or lambda parameter, with its optional type
// annotation.
type Param struct {
	Token token.Token
	Name  string
	Type  *string
}

func (pr *Param) TokenLiteral() string { return pr.Token.Literal }
func (pr *Param) GetToken() token.Token {
	if pr == nil {
		return token.Token{}
	}
	return pr.Token
}

// Block is a brace-delimited statement sequence.
type Block struct {
	Token      token.Token // the '{'
	Statements []Statement
}

func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// FunctionDef is `def name(params) returns: R? { body }`.
type FunctionDef struct {
	Token      token.Token // 'def'
	Name       string
	Params     []*Param
	ReturnType *string
	Body       *Block
}

func (fd *FunctionDef) statementNode()       {}
func (fd *FunctionDef) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDef) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// LetStatement is `let x: T? = e`.
type LetStatement struct {
	Token token.Token // 'let'
	Name  string
	Type  *string
	Value Expression
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LetStatement) GetToken() token.Token {
	if ls == nil {
		return token.Token{}
	}
	return ls.Token
}

// ReturnStatement is `return e?`.
type ReturnStatement struct {
	Token token.Token // 'return'
	Value Expression  // nil if bare `return`
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// IfStatement is `if (c) { t } else? { e }`.
type IfStatement struct {
	Token     token.Token // 'if'
	Cond      Expression
	Then      *Block
	Else      *Block // nil if no else clause
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// WhileStatement is `while (c) { body }`.
type WhileStatement struct {
	Token token.Token // 'while'
	Cond  Expression
	Body  *Block
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// ForStatement is `for (i = a, b) { body }`.
type ForStatement struct {
	Token token.Token // 'for'
	Var   string
	From  Expression
	To    Expression
	Body  *Block
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

// MacroDeclaration is the parser's `macro` registration hook. No built-in
// expander behavior consumes it; it exists purely so the grammar accepts
// the form reserved for user-defined macros.
type MacroDeclaration struct {
	Token token.Token // 'macro'
	Name  string
}

func (md *MacroDeclaration) statementNode()       {}
func (md *MacroDeclaration) TokenLiteral() string { return md.Token.Literal }
func (md *MacroDeclaration) GetToken() token.Token {
	if md == nil {
		return token.Token{}
	}
	return md.Token
}

// ExpressionStatement wraps a bare expression used as a statement (the
// common case: a call at block level).
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}
