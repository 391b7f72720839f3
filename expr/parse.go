package expr

import (
	"context"
	"fmt"

	"go.starlark.net/syntax"

	modeltree "github.com/modeltree/modeltree"
)

// signTokens maps parser operator tokens to the sign spellings the Sign
// wrapper accepts.
var signTokens = map[syntax.Token]string{
	syntax.PLUS:  "+",
	syntax.MINUS: "-",
	syntax.STAR:  "*",
	syntax.SLASH: "/",
	syntax.LT:    "<",
	syntax.GT:    ">",
	syntax.GE:    ">=",
	syntax.LE:    "<=",
	syntax.EQL:   "==",
	syntax.NEQ:   "!=",
	syntax.AND:   "and",
	syntax.OR:    "or",
}

// ParseFormula converts formula source text into an expression tree. The
// native parser produces the syntax nodes; each node maps to an untyped
// document that constructs through the Expr union, so wrapper checks and
// discriminator dispatch validate the result like any other input.
func ParseFormula(ctx context.Context, src string) (*modeltree.Union, error) {
	parsed, err := syntax.ParseExpr("formula", src, 0)
	if err != nil {
		e := modeltree.NewConstruction(modeltree.CodeParseError, modeltree.Path{}, err.Error())
		e.Cause = err
		return nil, e
	}
	doc, err := nodeToDoc(parsed, modeltree.Path{})
	if err != nil {
		return nil, err
	}
	return Expr.Construct(ctx, doc)
}

// nodeToDoc lowers one syntax node into the union's untyped document shape.
func nodeToDoc(node syntax.Expr, path modeltree.Path) (map[string]any, error) {
	switch n := node.(type) {
	case *syntax.ParenExpr:
		return nodeToDoc(n.X, path)
	case *syntax.BinaryExpr:
		sign, ok := signTokens[n.Op]
		if !ok {
			return nil, parseErr(path, "no expr handler for operator %s", n.Op)
		}
		left, err := nodeToDoc(n.X, path.Field("left"))
		if err != nil {
			return nil, err
		}
		right, err := nodeToDoc(n.Y, path.Field("right"))
		if err != nil {
			return nil, err
		}
		return map[string]any{
			Discriminator: OpBinary,
			"sign":        sign,
			"left":        left,
			"right":       right,
		}, nil
	case *syntax.Ident:
		// True/False/None parse as identifiers but are constants of the
		// formula language, matching what the writer prints for them.
		switch n.Name {
		case "True":
			return map[string]any{Discriminator: OpLiteral, "value": true}, nil
		case "False":
			return map[string]any{Discriminator: OpLiteral, "value": false}, nil
		case "None":
			return map[string]any{Discriminator: OpLiteral, "value": nil}, nil
		}
		return map[string]any{Discriminator: OpField, "name": n.Name}, nil
	case *syntax.Literal:
		v, err := literalValue(n, path)
		if err != nil {
			return nil, err
		}
		return map[string]any{Discriminator: OpLiteral, "value": v}, nil
	case *syntax.UnaryExpr:
		return unaryToDoc(n, path)
	case *syntax.CallExpr:
		name, ok := n.Fn.(*syntax.Ident)
		if !ok {
			return nil, parseErr(path, "bad callee %T from name", n.Fn)
		}
		args := make([]any, len(n.Args))
		for i, a := range n.Args {
			doc, err := nodeToDoc(a, path.Field("arguments").Index(i))
			if err != nil {
				return nil, err
			}
			args[i] = doc
		}
		return map[string]any{
			Discriminator: OpFunction,
			"name":        name.Name,
			"arguments":   args,
		}, nil
	}
	return nil, parseErr(path, "no expr handler for %T", node)
}

// unaryToDoc folds a leading minus into a literal; other unary operators are
// outside the expression model.
func unaryToDoc(n *syntax.UnaryExpr, path modeltree.Path) (map[string]any, error) {
	if n.Op != syntax.MINUS {
		return nil, parseErr(path, "no expr handler for operator %s", n.Op)
	}
	lit, ok := n.X.(*syntax.Literal)
	if !ok {
		return nil, parseErr(path, "bad value %T after unary minus", n.X)
	}
	v, err := literalValue(lit, path)
	if err != nil {
		return nil, err
	}
	switch num := v.(type) {
	case int64:
		return map[string]any{Discriminator: OpLiteral, "value": -num}, nil
	case float64:
		return map[string]any{Discriminator: OpLiteral, "value": -num}, nil
	}
	return nil, parseErr(path, "bad value %T after unary minus", v)
}

func literalValue(n *syntax.Literal, path modeltree.Path) (any, error) {
	switch n.Token {
	case syntax.INT:
		if v, ok := n.Value.(int64); ok {
			return v, nil
		}
		return nil, parseErr(path, "integer constant %s overflows", n.Raw)
	case syntax.FLOAT:
		if v, ok := n.Value.(float64); ok {
			return v, nil
		}
	case syntax.STRING:
		if v, ok := n.Value.(string); ok {
			return v, nil
		}
	}
	return nil, parseErr(path, "no expr handler for constant %s", n.Raw)
}

func parseErr(path modeltree.Path, format string, args ...any) *modeltree.Error {
	return modeltree.NewConstruction(modeltree.CodeParseError, path, fmt.Sprintf(format, args...))
}
