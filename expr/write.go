package expr

import (
	"fmt"
	"strconv"
	"strings"

	modeltree "github.com/modeltree/modeltree"
)

// WriteFormula renders an expression tree back to source text. Binary
// operations are fully parenthesized, so writing, re-parsing and writing
// again yields identical text.
func WriteFormula(v modeltree.Value) (string, error) {
	r, err := variantRecord(v)
	if err != nil {
		return "", err
	}
	switch r.GetString(Discriminator) {
	case OpBinary:
		left, err := WriteFormula(r.Node("left"))
		if err != nil {
			return "", err
		}
		right, err := WriteFormula(r.Node("right"))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s %s %s)", left, r.GetWrapper("sign"), right), nil
	case OpField:
		return r.GetString("name"), nil
	case OpLiteral:
		return formatScalar(r.Get("value")), nil
	case OpFunction:
		args := r.GetList("arguments")
		parts := make([]string, args.Len())
		for i := 0; i < args.Len(); i++ {
			s, err := WriteFormula(args.At(i))
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return fmt.Sprintf("%s(%s)", r.GetString("name"), strings.Join(parts, ", ")), nil
	}
	return "", modeltree.NewValidation(modeltree.CodeParseError, modeltree.Path{},
		fmt.Sprintf("no writer for operator %q", r.GetString(Discriminator)))
}

func variantRecord(v modeltree.Value) (*modeltree.Record, error) {
	switch n := v.(type) {
	case *modeltree.Union:
		return n.Variant(), nil
	case *modeltree.Record:
		return n, nil
	}
	return nil, modeltree.NewValidation(modeltree.CodeParseError, modeltree.Path{},
		fmt.Sprintf("expected an expression node, got %T", v))
}

// formatScalar prints a literal the way the formula parser reads it back.
func formatScalar(v any) string {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case string:
		return strconv.Quote(n)
	case bool:
		if n {
			return "True"
		}
		return "False"
	case nil:
		return "None"
	}
	return fmt.Sprint(v)
}
