// Package formula implements the expression language a spreadsheet
// formula cell holds: lexing, parsing, evaluation against a SheetView,
// and static extraction of the cells a formula references. It has no
// knowledge of the sheet's dependency graph or caching — those belong
// to the cell state machine that owns a Formula.
package formula

import (
	"strings"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/primitive"
)

// Formula is a parsed, immutable formula expression. Implementations
// are produced only by Parse.
type Formula interface {
	// Evaluate computes the formula's value against sheet. A runtime
	// failure (bad reference, type mismatch, division by zero) is
	// returned as a FormulaError value, never as a Go error.
	Evaluate(sheet SheetView) primitive.Value

	// ExpressionText renders the formula back to its canonical text,
	// without the leading '='.
	ExpressionText() string

	// ReferencedCells returns every cell position this formula reads,
	// ascending row-major order, deduplicated.
	ReferencedCells() []primitive.Position
}

type formula struct {
	root astNode
	refs []primitive.Position
}

// Parse lexes and parses a formula expression (the text following a
// leading '=', which the caller strips before calling Parse). A
// syntax or lexical error is returned as a plain Go error — this is a
// cell-edit-time failure, not a value the cell can hold.
func Parse(expression string) (Formula, error) {
	lexer := NewLexer(expression)
	tokens, lexErrs := lexer.Tokenize()
	if len(lexErrs) > 0 {
		return nil, &SyntaxError{Text: expression, Message: strings.Join(lexErrs, "; ")}
	}

	parser := newParser(tokens)
	root, err := parser.parse()
	if err != nil {
		return nil, &SyntaxError{Text: expression, Message: err.Error()}
	}

	refs := extractReferences(root)

	return &formula{root: root, refs: refs}, nil
}

func (f *formula) Evaluate(sheet SheetView) primitive.Value {
	return f.root.Eval(sheet)
}

func (f *formula) ExpressionText() string {
	return f.root.String()
}

func (f *formula) ReferencedCells() []primitive.Position {
	out := make([]primitive.Position, len(f.refs))
	copy(out, f.refs)
	return out
}

// extractReferences walks the AST collecting every cell position named
// by a cellRefNode or rangeNode, then sorts and dedupes the result the
// same way the C++ original's FormulaAST::GetCells does (sort, then
// unique+erase).
func extractReferences(node astNode) []primitive.Position {
	var refs []primitive.Position
	walkReferences(node, &refs)
	primitive.SortPositions(refs)
	return primitive.DedupeSortedPositions(refs)
}

func walkReferences(node astNode, refs *[]primitive.Position) {
	switch n := node.(type) {
	case *cellRefNode:
		*refs = append(*refs, n.pos)
	case *rangeNode:
		*refs = append(*refs, n.cells()...)
	case *binaryOpNode:
		walkReferences(n.left, refs)
		walkReferences(n.right, refs)
	case *unaryOpNode:
		walkReferences(n.operand, refs)
	case *functionCallNode:
		for _, a := range n.args {
			walkReferences(a, refs)
		}
	}
}

// SyntaxError reports a failure to lex or parse a formula's text.
type SyntaxError struct {
	Text    string
	Message string
}

func (e *SyntaxError) Error() string {
	return "formula: cannot parse " + e.Text + ": " + e.Message
}
