package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/primitive"
)

// Size describes a sheet's printable extent: the smallest rectangle
// with its top-left corner at A1 that still covers every cell that is
// either non-empty or referenced by some formula.
type Size struct {
	Rows int
	Cols int
}

// Sheet is a sparse grid of cells addressed by Position. Only cells
// that have been set (and not since cleared while unreferenced), or
// that some formula references, take up an entry in the underlying
// map — everything else reads back as an implicit Empty cell without
// being materialized.
type Sheet struct {
	cells map[primitive.Position]*Cell

	// counterInRow[r] / counterInCol[c] count how many cells currently
	// occupy row r / column c. The slices are resized on demand and
	// trimmed back from the tail whenever a trailing run drops to zero,
	// which is what keeps PrintableSize amortized O(1) per edit instead
	// of a full rescan.
	counterInRow []int
	counterInCol []int
}

// NewSheet creates an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{cells: make(map[primitive.Position]*Cell)}
}

// SetCell validates pos and assigns text to the cell there, creating
// the cell first if this is the first time pos has been touched.
func (s *Sheet) SetCell(pos primitive.Position, text string) error {
	if !pos.IsValid() {
		return &primitive.InvalidPositionError{Position: pos}
	}
	cell := s.materialize(pos)
	return cell.Set(text)
}

// GetCell returns the cell at pos, or nil if no cell is present there
// (never set or referenced, or cleared and no longer referenced). It
// returns an error only for an out-of-range position.
func (s *Sheet) GetCell(pos primitive.Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, &primitive.InvalidPositionError{Position: pos}
	}
	return s.cells[pos], nil
}

// ClearCell resets the cell at pos back to Empty. If nothing else
// references it afterward, the entry is dropped from the sheet
// entirely and the row/column counters shrink accordingly.
func (s *Sheet) ClearCell(pos primitive.Position) error {
	if !pos.IsValid() {
		return &primitive.InvalidPositionError{Position: pos}
	}
	cell := s.cells[pos]
	if cell == nil {
		return nil
	}
	if err := cell.Clear(); err != nil {
		return err
	}
	if !cell.IsReferenced() {
		delete(s.cells, pos)
		s.updateSize(pos, -1)
	}
	return nil
}

// GetValue implements formula.SheetView: a position with no cell reads
// back as Number(0), the same as an Empty cell's own value.
func (s *Sheet) GetValue(pos primitive.Position) primitive.Value {
	if cell := s.cells[pos]; cell != nil {
		return cell.GetValue()
	}
	return primitive.Number(0)
}

// PrintableSize returns the smallest bounding rectangle, anchored at
// A1, that covers every occupied row and column.
func (s *Sheet) PrintableSize() Size {
	return Size{Rows: len(s.counterInRow), Cols: len(s.counterInCol)}
}

// PrintValues writes every cell's computed value, tab-separated within
// a row and newline-separated between rows, over the sheet's printable
// rectangle. Unoccupied cells within the rectangle print as empty
// fields.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.printRectangle(w, func(cell *Cell) string {
		if cell == nil {
			return ""
		}
		return cell.GetValue().String()
	})
}

// PrintTexts writes every cell's raw text the same way PrintValues
// writes computed values.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.printRectangle(w, func(cell *Cell) string {
		if cell == nil {
			return ""
		}
		return cell.GetText()
	})
}

func (s *Sheet) printRectangle(w io.Writer, render func(*Cell) string) error {
	size := s.PrintableSize()
	for r := 0; r < size.Rows; r++ {
		var row []string
		for c := 0; c < size.Cols; c++ {
			row = append(row, render(s.cells[primitive.Position{Row: r, Col: c}]))
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// materialize returns the cell at pos, creating and registering an
// Empty one (and bumping the row/column counters) if this is the first
// time pos has been occupied.
func (s *Sheet) materialize(pos primitive.Position) *Cell {
	if cell, ok := s.cells[pos]; ok {
		return cell
	}
	cell := newCell(s, pos)
	s.cells[pos] = cell
	s.updateSize(pos, 1)
	return cell
}

// walkDependencies performs a three-color depth-first search of the
// reference graph starting at pos, appending every position visited to
// trace. It returns true as soon as it revisits a position still
// colored gray (on the current path) — a circular dependency — leaving
// trace exactly as it stood at that moment so the caller can render the
// cycle. A position with no cell in the sheet has no references and
// terminates the search along that branch.
func (s *Sheet) walkDependencies(pos primitive.Position, color map[primitive.Position]int, trace *[]primitive.Position) bool {
	*trace = append(*trace, pos)

	if color[pos] == 1 {
		return true
	}
	color[pos] = 1

	if cell, ok := s.cells[pos]; ok {
		for _, ref := range cell.ReferencedCells() {
			if s.walkDependencies(ref, color, trace) {
				return true
			}
		}
	}

	color[pos] = 2
	*trace = (*trace)[:len(*trace)-1]
	return false
}

// updateSize applies delta (+1 on occupy, -1 on vacate) to the
// row/column occupancy counters for pos, growing the counter slices to
// cover pos if needed and then trimming any trailing run of zeros.
// Trimming only ever touches the tail, so PrintableSize stays correct
// without a full rescan after every edit.
func (s *Sheet) updateSize(pos primitive.Position, delta int) {
	if pos.Row >= len(s.counterInRow) {
		grown := make([]int, pos.Row+1)
		copy(grown, s.counterInRow)
		s.counterInRow = grown
	}
	if pos.Col >= len(s.counterInCol) {
		grown := make([]int, pos.Col+1)
		copy(grown, s.counterInCol)
		s.counterInCol = grown
	}

	s.counterInRow[pos.Row] += delta
	s.counterInCol[pos.Col] += delta

	s.counterInRow = trimTrailingZeros(s.counterInRow)
	s.counterInCol = trimTrailingZeros(s.counterInCol)
}

func trimTrailingZeros(counts []int) []int {
	i := len(counts)
	for i > 0 && counts[i-1] == 0 {
		i--
	}
	return counts[:i]
}
