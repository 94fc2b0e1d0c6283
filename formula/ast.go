package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/primitive"
)

// SheetView is everything a formula needs from the cell grid it is
// evaluated against: reading another cell's current Value. The formula
// module never mutates a sheet and never sees anything beyond this
// interface, mirroring the C++ original's FormulaInterface::Evaluate
// taking a SheetInterface reference rather than a concrete Sheet.
type SheetView interface {
	GetValue(pos primitive.Position) primitive.Value
}

// astNode is satisfied by every node of a parsed expression tree. Eval
// returns a Value directly rather than (Value, error): a formula-level
// failure (bad reference, type mismatch, divide by zero) is itself a
// Value — FormulaError — not a Go error.
type astNode interface {
	Eval(sheet SheetView) primitive.Value
	String() string
}

type numberNode struct {
	value float64
}

func (n *numberNode) Eval(SheetView) primitive.Value { return primitive.Number(n.value) }
func (n *numberNode) String() string                 { return strconv.FormatFloat(n.value, 'g', -1, 64) }

type stringNode struct {
	value string
}

func (n *stringNode) Eval(SheetView) primitive.Value { return primitive.Text(n.value) }
func (n *stringNode) String() string                 { return `"` + strings.ReplaceAll(n.value, `"`, `""`) + `"` }

type cellRefNode struct {
	pos primitive.Position
}

func (n *cellRefNode) Eval(sheet SheetView) primitive.Value {
	return sheet.GetValue(n.pos)
}

func (n *cellRefNode) String() string { return n.pos.String() }

// rangeNode names a rectangular block of cells. Its own Eval yields a
// #VALUE! error — a range is only meaningful as an argument to an
// aggregate built-in, which expands it via cells().
type rangeNode struct {
	from, to primitive.Position
}

func (n *rangeNode) Eval(sheet SheetView) primitive.Value {
	return primitive.NewFormulaError(primitive.ErrValue, "a range cannot be used outside of a function")
}

func (n *rangeNode) String() string { return n.from.String() + ":" + n.to.String() }

// cells enumerates every position in the rectangle in row-major order.
func (n *rangeNode) cells() []primitive.Position {
	minRow, maxRow := n.from.Row, n.to.Row
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	minCol, maxCol := n.from.Col, n.to.Col
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}
	var out []primitive.Position
	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			out = append(out, primitive.Position{Row: r, Col: c})
		}
	}
	return out
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
	opPow
	opConcat
	opEq
	opNotEq
	opLess
	opLessEq
	opGreater
	opGreaterEq
)

var binaryOpText = map[binaryOp]string{
	opAdd: "+", opSub: "-", opMul: "*", opDiv: "/", opPow: "^", opConcat: "&",
	opEq: "=", opNotEq: "<>", opLess: "<", opLessEq: "<=", opGreater: ">", opGreaterEq: ">=",
}

type binaryOpNode struct {
	op          binaryOp
	left, right astNode
}

func (n *binaryOpNode) String() string {
	return n.left.String() + binaryOpText[n.op] + n.right.String()
}

func (n *binaryOpNode) Eval(sheet SheetView) primitive.Value {
	lv := n.left.Eval(sheet)
	if fe, ok := lv.(primitive.FormulaError); ok {
		return fe
	}
	rv := n.right.Eval(sheet)
	if fe, ok := rv.(primitive.FormulaError); ok {
		return fe
	}

	if n.op == opConcat {
		return primitive.Text(valueText(lv) + valueText(rv))
	}

	if isComparison(n.op) {
		return evalComparison(n.op, lv, rv)
	}

	ln, lok := asNumber(lv)
	rn, rok := asNumber(rv)
	if !lok || !rok {
		return primitive.NewFormulaError(primitive.ErrValue, "")
	}

	switch n.op {
	case opAdd:
		return primitive.Number(ln + rn)
	case opSub:
		return primitive.Number(ln - rn)
	case opMul:
		return primitive.Number(ln * rn)
	case opDiv:
		if rn == 0 {
			return primitive.NewFormulaError(primitive.ErrDiv0, "")
		}
		return primitive.Number(ln / rn)
	case opPow:
		return primitive.Number(math.Pow(ln, rn))
	default:
		return primitive.NewFormulaError(primitive.ErrValue, "")
	}
}

func isComparison(op binaryOp) bool {
	switch op {
	case opEq, opNotEq, opLess, opLessEq, opGreater, opGreaterEq:
		return true
	}
	return false
}

func evalComparison(op binaryOp, lv, rv primitive.Value) primitive.Value {
	ln, lok := asNumber(lv)
	rn, rok := asNumber(rv)

	var cmp int
	if lok && rok {
		switch {
		case ln < rn:
			cmp = -1
		case ln > rn:
			cmp = 1
		}
	} else {
		ls, rs := valueText(lv), valueText(rv)
		switch {
		case ls < rs:
			cmp = -1
		case ls > rs:
			cmp = 1
		}
	}

	var result bool
	switch op {
	case opEq:
		result = cmp == 0
	case opNotEq:
		result = cmp != 0
	case opLess:
		result = cmp < 0
	case opLessEq:
		result = cmp <= 0
	case opGreater:
		result = cmp > 0
	case opGreaterEq:
		result = cmp >= 0
	}
	if result {
		return primitive.Number(1)
	}
	return primitive.Number(0)
}

type unaryOp int

const (
	unaryNeg unaryOp = iota
	unaryPos
)

type unaryOpNode struct {
	op      unaryOp
	operand astNode
}

func (n *unaryOpNode) String() string {
	if n.op == unaryNeg {
		return "-" + n.operand.String()
	}
	return "+" + n.operand.String()
}

func (n *unaryOpNode) Eval(sheet SheetView) primitive.Value {
	v := n.operand.Eval(sheet)
	if fe, ok := v.(primitive.FormulaError); ok {
		return fe
	}
	num, ok := asNumber(v)
	if !ok {
		return primitive.NewFormulaError(primitive.ErrValue, "")
	}
	if n.op == unaryNeg {
		return primitive.Number(-num)
	}
	return primitive.Number(num)
}

type functionCallNode struct {
	name string
	args []astNode
}

func (n *functionCallNode) String() string {
	parts := make([]string, len(n.args))
	for i, a := range n.args {
		parts[i] = a.String()
	}
	return strings.ToUpper(n.name) + "(" + strings.Join(parts, ",") + ")"
}

func (n *functionCallNode) Eval(sheet SheetView) primitive.Value {
	fn, ok := builtins[strings.ToUpper(n.name)]
	if !ok {
		return primitive.NewFormulaError(primitive.ErrName, fmt.Sprintf("unknown function %s", n.name))
	}
	return fn(sheet, n.args)
}

// asNumber coerces a Value to a float64, following the same loose
// coercion the teacher's toNumber helper applies: numbers pass through,
// text must parse as a number, anything else fails.
func asNumber(v primitive.Value) (float64, bool) {
	switch t := v.(type) {
	case primitive.Number:
		return float64(t), true
	case primitive.Text:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func valueText(v primitive.Value) string {
	return v.String()
}
