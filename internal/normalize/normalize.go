// Package normalize lowers a parsed cst.Program into the uniform element
// tree every later stage operates on. Normalization is structure-
// preserving except for one rewrite: a call's trailing block argument
// `f(args){BLOCK}` desugars to an explicit zero-parameter lambda appended
// to the call's argument list, `f(args, lambda[block(BLOCK)])`, the
// normalizer's single non-trivial transformation.
package normalize

import (
	"strconv"

	"github.com/treep-lang/treep/internal/cst"
	"github.com/treep-lang/treep/internal/element"
)

// Normalize lowers an entire parsed program into a single block Element
// whose children are the program's top-level statements, each normalized
// in place.
func Normalize(prog *cst.Program) *element.Element {
	root := element.New(element.KindBlock, "")
	for _, stmt := range prog.Statements {
		root.Children = append(root.Children, normalizeStatement(stmt))
	}
	return root
}

func posSpan(line, col int) element.Span {
	return element.Span{StartLine: line, StartCol: col, EndLine: line, EndCol: col}
}

func tokSpan(t cst.Node) element.Span {
	tok := t.GetToken()
	return posSpan(tok.Pos.Line, tok.Pos.Column)
}

func normalizeStatement(s cst.Statement) *element.Element {
	switch n := s.(type) {
	case *cst.FunctionDef:
		return normalizeFunctionDef(n)
	case *cst.LetStatement:
		return normalizeLet(n)
	case *cst.ReturnStatement:
		return normalizeReturn(n)
	case *cst.IfStatement:
		return normalizeIf(n)
	case *cst.WhileStatement:
		return normalizeWhile(n)
	case *cst.ForStatement:
		return normalizeFor(n)
	case *cst.MacroDeclaration:
		return element.New(element.KindMacro, n.Name).WithSpan(tokSpan(n))
	case *cst.ExpressionStatement:
		return normalizeExpression(n.Expr)
	default:
		panic("normalize: unhandled statement type")
	}
}

func normalizeFunctionDef(fd *cst.FunctionDef) *element.Element {
	def := element.New(element.KindDef, fd.Name).WithSpan(tokSpan(fd))
	for _, p := range fd.Params {
		param := normalizeParam(p)
		def.Children = append(def.Children, param)
		if p.Type != nil {
			def.Attrs = append(def.Attrs, element.Attr{Key: p.Name, Value: *p.Type})
		}
	}
	if fd.ReturnType != nil {
		def.Attrs = append(def.Attrs, element.Attr{Key: "returns", Value: *fd.ReturnType})
	}
	def.Children = append(def.Children, normalizeBlock(fd.Body))
	return def
}

func normalizeParam(p *cst.Param) *element.Element {
	param := element.New(element.KindParam, p.Name).WithSpan(tokSpan(p))
	if p.Type != nil {
		param.Attrs = append(param.Attrs, element.Attr{Key: "type", Value: *p.Type})
	}
	return param
}

func normalizeBlock(b *cst.Block) *element.Element {
	block := element.New(element.KindBlock, "").WithSpan(tokSpan(b))
	for _, stmt := range b.Statements {
		block.Children = append(block.Children, normalizeStatement(stmt))
	}
	return block
}

func normalizeLet(ls *cst.LetStatement) *element.Element {
	let := element.New(element.KindLet, ls.Name).WithSpan(tokSpan(ls))
	if ls.Type != nil {
		let.Attrs = append(let.Attrs, element.Attr{Key: "type", Value: *ls.Type})
	}
	let.Children = append(let.Children, normalizeExpression(ls.Value))
	return let
}

func normalizeReturn(rs *cst.ReturnStatement) *element.Element {
	ret := element.New(element.KindReturn, "").WithSpan(tokSpan(rs))
	if rs.Value != nil {
		ret.Children = append(ret.Children, normalizeExpression(rs.Value))
	}
	return ret
}

func normalizeIf(is *cst.IfStatement) *element.Element {
	ifNode := element.New(element.KindIf, "").WithSpan(tokSpan(is))
	cond := element.New(element.KindCondition, "")
	cond.Children = append(cond.Children, normalizeExpression(is.Cond))
	ifNode.Children = append(ifNode.Children, cond, normalizeBlock(is.Then))
	if is.Else != nil {
		ifNode.Children = append(ifNode.Children, normalizeBlock(is.Else))
	}
	return ifNode
}

func normalizeWhile(ws *cst.WhileStatement) *element.Element {
	w := element.New(element.KindWhile, "").WithSpan(tokSpan(ws))
	cond := element.New(element.KindCondition, "")
	cond.Children = append(cond.Children, normalizeExpression(ws.Cond))
	w.Children = append(w.Children, cond, normalizeBlock(ws.Body))
	return w
}

func normalizeFor(fs *cst.ForStatement) *element.Element {
	f := element.New(element.KindFor, "").WithSpan(tokSpan(fs))
	f.Attrs = append(f.Attrs, element.Attr{Key: "var", Value: fs.Var})
	from := element.New(element.KindFrom, "")
	from.Children = append(from.Children, normalizeExpression(fs.From))
	to := element.New(element.KindTo, "")
	to.Children = append(to.Children, normalizeExpression(fs.To))
	f.Children = append(f.Children, from, to, normalizeBlock(fs.Body))
	return f
}

func normalizeExpression(e cst.Expression) *element.Element {
	switch n := e.(type) {
	case *cst.Identifier:
		return element.New(element.KindVar, n.Value).WithSpan(tokSpan(n))
	case *cst.IntegerLiteral:
		return element.NewLiteral(element.TypeInt, strconv.FormatInt(n.Value, 10)).WithSpan(tokSpan(n))
	case *cst.StringLiteral:
		return element.NewLiteral(element.TypeString, n.Value).WithSpan(tokSpan(n))
	case *cst.BooleanLiteral:
		return element.NewLiteral(element.TypeBool, strconv.FormatBool(n.Value)).WithSpan(tokSpan(n))
	case *cst.BinaryExpression:
		call := element.New(element.KindCall, n.Op).WithSpan(tokSpan(n))
		call.Children = append(call.Children, normalizeExpression(n.Left), normalizeExpression(n.Right))
		return call
	case *cst.UnaryExpression:
		call := element.New(element.KindCall, "unary_"+n.Op).WithSpan(tokSpan(n))
		call.Children = append(call.Children, normalizeExpression(n.Operand))
		return call
	case *cst.AssignExpression:
		target, ok := n.Target.(*cst.Identifier)
		if !ok {
			panic("normalize: assignment target is not an identifier")
		}
		call := element.New(element.KindCall, "=").WithSpan(tokSpan(n))
		call.Children = append(call.Children,
			element.New(element.KindVar, target.Value).WithSpan(tokSpan(n)),
			normalizeExpression(n.Value))
		return call
	case *cst.LambdaExpression:
		return normalizeLambda(n)
	case *cst.CallExpression:
		return normalizeCall(n)
	default:
		panic("normalize: unhandled expression type")
	}
}

func normalizeLambda(le *cst.LambdaExpression) *element.Element {
	lambda := element.New(element.KindLambda, "").WithSpan(tokSpan(le))
	for _, p := range le.Params {
		lambda.Children = append(lambda.Children, normalizeParam(p))
	}
	lambda.Children = append(lambda.Children, normalizeBlock(le.Body))
	return lambda
}

// normalizeCall implements the block-argument desugaring: a call with a
// trailing BlockArg gets one extra argument appended, a
// zero-parameter lambda wrapping the block. The desugaring runs regardless
// of how many explicit arguments the call already has.
func normalizeCall(ce *cst.CallExpression) *element.Element {
	call := element.New(element.KindCall, ce.Function).WithSpan(tokSpan(ce))
	for _, arg := range ce.Args {
		call.Children = append(call.Children, normalizeExpression(arg))
	}
	if ce.BlockArg != nil {
		lambda := element.New(element.KindLambda, "").WithSpan(tokSpan(ce.BlockArg))
		lambda.Children = append(lambda.Children, normalizeBlock(ce.BlockArg))
		call.Children = append(call.Children, lambda)
	}
	return call
}
