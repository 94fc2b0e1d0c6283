package spreadsheet

import (
	"strings"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/formula"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/internal/metrics"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/primitive"
)

// escapeSign, when it is the first byte of a cell's entered text, marks
// the rest of the text as a literal value even if it would otherwise be
// read as a formula — e.g. "'=1+1" holds the four-character text
// "=1+1" rather than the number 2.
const escapeSign = '\''

// formulaSign introduces a formula: any text beginning with '=' and at
// least one further character is parsed as a formula.
const formulaSign = '='

// cellKind identifies which of the three representations a Cell
// currently holds.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLiteral
	cellFormula
)

// Cell is a single spreadsheet cell: a small state machine over three
// representations (empty, literal text, formula), each of which
// knows how to produce a Value and a Text rendering, plus the edit
// machinery (cycle-checked Set, memoized Value via Formula's cache, and
// reverse-reference bookkeeping) shared across all three.
type Cell struct {
	sheet *Sheet
	pos   primitive.Position

	kind        cellKind
	literalText string
	formula     formula.Formula

	cache      primitive.Value
	cacheValid bool

	// reverseRefs is the set of cells whose formula reads this cell,
	// keyed by position so removal doesn't need a linear scan.
	reverseRefs map[primitive.Position]*Cell
}

func newCell(sheet *Sheet, pos primitive.Position) *Cell {
	return &Cell{sheet: sheet, pos: pos, kind: cellEmpty}
}

// GetValue returns the cell's current value, computing and memoizing a
// formula's result on first access after any invalidation.
func (c *Cell) GetValue() primitive.Value {
	switch c.kind {
	case cellEmpty:
		return primitive.Number(0)
	case cellLiteral:
		return literalValue(c.literalText)
	case cellFormula:
		if c.cacheValid {
			return c.cache
		}
		metrics.RecordCellEvaluated()
		c.cache = c.formula.Evaluate(c.sheet)
		c.cacheValid = true
		return c.cache
	default:
		return primitive.Number(0)
	}
}

// GetText returns the cell's text exactly as it would need to be
// re-entered to reproduce this cell: empty for an empty cell, the raw
// literal (escape sign included) for literal text, or "=" followed by
// the canonical rendering of the formula.
func (c *Cell) GetText() string {
	switch c.kind {
	case cellEmpty:
		return ""
	case cellLiteral:
		return c.literalText
	case cellFormula:
		return string(formulaSign) + c.formula.ExpressionText()
	default:
		return ""
	}
}

// ReferencedCells returns the positions this cell's current
// representation reads — empty for Empty and Literal cells, the
// formula's reference list (already sorted and deduped) for Formula
// cells.
func (c *Cell) ReferencedCells() []primitive.Position {
	if c.kind != cellFormula {
		return nil
	}
	return c.formula.ReferencedCells()
}

// IsReferenced reports whether any other cell's formula currently
// reads this one. A referenced cell cannot be dropped from the sheet
// even after being cleared.
func (c *Cell) IsReferenced() bool {
	return len(c.reverseRefs) > 0
}

// Set assigns new text to the cell. An empty string clears it back to
// Empty. Text beginning with '=' (and at least one further character)
// is parsed as a formula; anything else, including text beginning with
// the escape sign, becomes literal text.
//
// The edit is transactional: the candidate representation is built and,
// for a formula, checked for circular dependencies, entirely before any
// visible state changes. A FormulaParseError or CircularDependencyError
// leaves the cell's previous representation and the reference graph
// exactly as they were.
func (c *Cell) Set(text string) error {
	if text == c.GetText() {
		return nil
	}

	oldRefs := c.ReferencedCells()

	switch {
	case text == "":
		c.kind = cellEmpty
		c.literalText = ""
		c.formula = nil
	case len(text) > 1 && text[0] == formulaSign:
		if err := c.setFormula(text[1:]); err != nil {
			return err
		}
	default:
		c.kind = cellLiteral
		c.literalText = text
		c.formula = nil
	}

	c.removeReverseRefs(oldRefs)
	c.addReverseRefs()
	c.invalidateCache()
	return nil
}

// Clear resets the cell to Empty, equivalent to Set("").
func (c *Cell) Clear() error {
	return c.Set("")
}

// setFormula parses text into a Formula and, if it parses, checks the
// resulting reference graph for cycles before committing. Both the
// representation swap and the rollback on failure happen before any
// reverse-reference bookkeeping runs.
func (c *Cell) setFormula(text string) error {
	oldKind, oldLiteral, oldFormula := c.kind, c.literalText, c.formula

	parsed, err := formula.Parse(text)
	if err != nil {
		return &FormulaParseError{Text: text, Message: err.Error()}
	}

	c.kind = cellFormula
	c.literalText = ""
	c.formula = parsed

	if err := c.findCircularDependency(); err != nil {
		c.kind, c.literalText, c.formula = oldKind, oldLiteral, oldFormula
		metrics.RecordCycleRejected()
		return err
	}
	return nil
}

// invalidateCache drops this cell's memoized value and every
// transitive dependent's, following reverse references. A visited set
// keyed by position keeps a diamond-shaped dependency graph from being
// walked more than once.
func (c *Cell) invalidateCache() {
	visited := make(map[primitive.Position]bool)
	c.invalidateCacheVisited(visited)
	metrics.RecordCacheInvalidations(len(visited))
}

func (c *Cell) invalidateCacheVisited(visited map[primitive.Position]bool) {
	c.cacheValid = false
	c.cache = nil
	visited[c.pos] = true

	for pos, dependent := range c.reverseRefs {
		if visited[pos] {
			continue
		}
		dependent.invalidateCacheVisited(visited)
	}
}

// addReverseRefs registers this cell as a reverse-dependent of every
// cell its current formula reads, materializing any referenced
// position that isn't yet present in the sheet as an Empty cell.
func (c *Cell) addReverseRefs() {
	for _, pos := range c.ReferencedCells() {
		target := c.sheet.materialize(pos)
		if target.reverseRefs == nil {
			target.reverseRefs = make(map[primitive.Position]*Cell)
		}
		target.reverseRefs[c.pos] = c
	}
}

// removeReverseRefs undoes addReverseRefs for a set of positions this
// cell used to reference but no longer does (or no longer exists at
// all, in the case of a full clear).
func (c *Cell) removeReverseRefs(oldRefs []primitive.Position) {
	for _, pos := range oldRefs {
		if target := c.sheet.cells[pos]; target != nil {
			delete(target.reverseRefs, c.pos)
		}
	}
}

// findCircularDependency runs a three-color depth-first search starting
// at this cell's own position, walking the reference graph through
// whatever cells already exist in the sheet. It is called after this
// cell's candidate formula has already been swapped in, so the search
// sees the candidate's references, not the old ones.
func (c *Cell) findCircularDependency() error {
	color := make(map[primitive.Position]int) // 0 = unvisited, 1 = gray, 2 = black
	var trace []primitive.Position

	if cycle := c.sheet.walkDependencies(c.pos, color, &trace); cycle {
		return &CircularDependencyError{Path: stackToString(trace)}
	}
	return nil
}

// stackToString renders a cycle trace as "P1->P2->...->P1", taking
// only the suffix starting at the first occurrence of the trace's final
// (repeated) position (the trace may contain a non-cyclic prefix
// leading up to it).
func stackToString(trace []primitive.Position) string {
	if len(trace) == 0 {
		return ""
	}
	last := trace[len(trace)-1]
	start := 0
	for i, p := range trace {
		if p == last {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(trace)-start)
	for _, p := range trace[start:] {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "->")
}

// literalValue interprets a literal cell's stored text: text beginning
// with the escape sign drops that sign, and either way the value is
// the (possibly unescaped) text unchanged. A literal cell never holds
// a Number — only a formula's arithmetic produces one; asNumber is
// where a formula coerces a numeric-looking Text into a number when it
// reads such a cell.
func literalValue(text string) primitive.Value {
	if text != "" && text[0] == escapeSign {
		return primitive.Text(text[1:])
	}
	return primitive.Text(text)
}
