package spreadsheet

import "github.com/vogtb/go-spreadsheet/packages/spreadsheet/primitive"

// These aliases re-export the leaf-level Position/Value vocabulary so
// callers of this package never need to import the primitive package
// directly — `spreadsheet.Position`, `spreadsheet.Number`, and so on
// are the same types `formula` consumes internally.
type (
	Position             = primitive.Position
	Value                = primitive.Value
	Number               = primitive.Number
	Text                 = primitive.Text
	FormulaError         = primitive.FormulaError
	ErrorCode            = primitive.ErrorCode
	InvalidPositionError = primitive.InvalidPositionError
)

const (
	MaxRows = primitive.MaxRows
	MaxCols = primitive.MaxCols

	ErrDiv0  = primitive.ErrDiv0
	ErrValue = primitive.ErrValue
	ErrRef   = primitive.ErrRef
	ErrName  = primitive.ErrName
	ErrNum   = primitive.ErrNum
	ErrNA    = primitive.ErrNA
)

// ParsePosition parses an A1-style reference into a Position.
func ParsePosition(s string) (Position, error) {
	return primitive.ParsePosition(s)
}

// NewFormulaError builds a FormulaError value.
func NewFormulaError(code ErrorCode, message string) FormulaError {
	return primitive.NewFormulaError(code, message)
}
