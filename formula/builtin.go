package formula

import (
	"strings"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/primitive"
)

// builtinFunc evaluates a function call's already-parsed argument
// expressions against a sheet, returning the resulting Value (which may
// itself be a FormulaError).
type builtinFunc func(sheet SheetView, args []astNode) primitive.Value

// builtins is the supported function table, narrowed from the
// teacher's larger builtin.go down to the handful the aggregate and
// branching cases actually need.
var builtins = map[string]builtinFunc{
	"SUM":         builtinSum,
	"AVERAGE":     builtinAverage,
	"MIN":         builtinMin,
	"MAX":         builtinMax,
	"COUNT":       builtinCount,
	"IF":          builtinIf,
	"CONCATENATE": builtinConcatenate,
}

// collectNumbers flattens a function's arguments into individual
// numeric operands: a rangeNode contributes one operand per cell in
// its rectangle (skipping cells whose value isn't numeric), anything
// else contributes its own evaluated value. The first FormulaError
// encountered anywhere aborts the collection and is returned as ok=false
// with errVal set.
func collectNumbers(sheet SheetView, args []astNode) (nums []float64, errVal primitive.Value, ok bool) {
	for _, arg := range args {
		if rn, isRange := arg.(*rangeNode); isRange {
			for _, pos := range rn.cells() {
				v := sheet.GetValue(pos)
				if fe, isErr := v.(primitive.FormulaError); isErr {
					return nil, fe, false
				}
				if n, numOk := asNumber(v); numOk {
					nums = append(nums, n)
				}
			}
			continue
		}
		v := arg.Eval(sheet)
		if fe, isErr := v.(primitive.FormulaError); isErr {
			return nil, fe, false
		}
		n, numOk := asNumber(v)
		if !numOk {
			return nil, primitive.NewFormulaError(primitive.ErrValue, ""), false
		}
		nums = append(nums, n)
	}
	return nums, nil, true
}

func builtinSum(sheet SheetView, args []astNode) primitive.Value {
	nums, errVal, ok := collectNumbers(sheet, args)
	if !ok {
		return errVal
	}
	var total float64
	for _, n := range nums {
		total += n
	}
	return primitive.Number(total)
}

func builtinAverage(sheet SheetView, args []astNode) primitive.Value {
	nums, errVal, ok := collectNumbers(sheet, args)
	if !ok {
		return errVal
	}
	if len(nums) == 0 {
		return primitive.NewFormulaError(primitive.ErrDiv0, "")
	}
	var total float64
	for _, n := range nums {
		total += n
	}
	return primitive.Number(total / float64(len(nums)))
}

// With no numeric operands, MIN/MAX have nothing to compare, the same
// as AVERAGE having nothing to divide by; all three surface #DIV/0!
// rather than silently returning 0.
func builtinMin(sheet SheetView, args []astNode) primitive.Value {
	nums, errVal, ok := collectNumbers(sheet, args)
	if !ok {
		return errVal
	}
	if len(nums) == 0 {
		return primitive.NewFormulaError(primitive.ErrDiv0, "")
	}
	min := nums[0]
	for _, n := range nums[1:] {
		if n < min {
			min = n
		}
	}
	return primitive.Number(min)
}

func builtinMax(sheet SheetView, args []astNode) primitive.Value {
	nums, errVal, ok := collectNumbers(sheet, args)
	if !ok {
		return errVal
	}
	if len(nums) == 0 {
		return primitive.NewFormulaError(primitive.ErrDiv0, "")
	}
	max := nums[0]
	for _, n := range nums[1:] {
		if n > max {
			max = n
		}
	}
	return primitive.Number(max)
}

// builtinCount counts operands that hold a numeric value, the same
// loose semantics as the teacher's COUNT: non-numeric cells in a range
// are silently skipped rather than treated as an error.
func builtinCount(sheet SheetView, args []astNode) primitive.Value {
	count := 0
	for _, arg := range args {
		if rn, isRange := arg.(*rangeNode); isRange {
			for _, pos := range rn.cells() {
				if _, numOk := asNumber(sheet.GetValue(pos)); numOk {
					count++
				}
			}
			continue
		}
		v := arg.Eval(sheet)
		if fe, isErr := v.(primitive.FormulaError); isErr {
			return fe
		}
		if _, numOk := asNumber(v); numOk {
			count++
		}
	}
	return primitive.Number(count)
}

func builtinIf(sheet SheetView, args []astNode) primitive.Value {
	if len(args) < 2 || len(args) > 3 {
		return primitive.NewFormulaError(primitive.ErrNA, "IF takes 2 or 3 arguments")
	}
	cond := args[0].Eval(sheet)
	if fe, isErr := cond.(primitive.FormulaError); isErr {
		return fe
	}
	truthy, ok := asNumber(cond)
	if !ok {
		return primitive.NewFormulaError(primitive.ErrValue, "")
	}
	if truthy != 0 {
		return args[1].Eval(sheet)
	}
	if len(args) == 3 {
		return args[2].Eval(sheet)
	}
	return primitive.Number(0)
}

func builtinConcatenate(sheet SheetView, args []astNode) primitive.Value {
	var sb strings.Builder
	for _, arg := range args {
		if rn, isRange := arg.(*rangeNode); isRange {
			for _, pos := range rn.cells() {
				v := sheet.GetValue(pos)
				if fe, isErr := v.(primitive.FormulaError); isErr {
					return fe
				}
				sb.WriteString(valueText(v))
			}
			continue
		}
		v := arg.Eval(sheet)
		if fe, isErr := v.(primitive.FormulaError); isErr {
			return fe
		}
		sb.WriteString(valueText(v))
	}
	return primitive.Text(sb.String())
}
