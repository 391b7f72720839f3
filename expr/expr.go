// Package expr is an expression-tree consumer of the modeltree engine. A
// formula string parses into a discriminated union of operation nodes, the
// tree validates like any other model tree, and writing it back yields a
// canonical parenthesized formula that re-parses to the same tree.
package expr

import (
	modeltree "github.com/modeltree/modeltree"
	"github.com/modeltree/modeltree/dsl"
)

// Discriminator values of the expression union.
const (
	OpBinary   = "BIN"
	OpField    = "FIELD"
	OpLiteral  = "LITERAL"
	OpFunction = "FUNCTION"
)

// Discriminator is the field selecting the expression variant.
const Discriminator = "operator"

// Sign wraps the closed set of binary operator spellings.
var Sign = dsl.Wrapper("BinarySign", modeltree.PrimString).
	Enum(
		"<", "<=", "==", "!=", ">=", ">",
		"+", "-", "*", "/", "and", "or",
	).
	MustBuild()

var exprUnion = dsl.Union("Expr", Discriminator)

// Binary is a two-operand operation: comparison, arithmetic or boolean.
var Binary = dsl.Model("BinaryExpr").
	Field(Discriminator, dsl.Literal(OpBinary)).Required().
	Field("sign", dsl.WrapperOf(Sign)).Required().
	Field("left", exprUnion.Spec()).Required().
	Field("right", exprUnion.Spec()).Required().
	MustBuild()

// Field references a named column.
var Field = dsl.Model("ExprField").
	Field(Discriminator, dsl.Literal(OpField)).Required().
	Field("name", dsl.String()).Required().
	MustBuild()

// Literal holds a constant scalar value.
var Literal = dsl.Model("ExprLiteral").
	Field(Discriminator, dsl.Literal(OpLiteral)).Required().
	Field("value", dsl.Any()).Required().
	MustBuild()

// Function is a named call over expression arguments.
var Function = dsl.Model("ExprFunction").
	Field(Discriminator, dsl.Literal(OpFunction)).Required().
	Field("name", dsl.String()).Required().
	Field("arguments", dsl.ListOf(exprUnion.Spec())).Required().
	MustBuild()

// Expr is the expression union, discriminated on the operator field.
var Expr = exprUnion.
	Variant(Binary).
	Variant(Field).
	Variant(Literal).
	Variant(Function).
	MustBuild()
