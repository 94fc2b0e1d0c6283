package spreadsheet

import (
	"fmt"
	"testing"
)

func BenchmarkLargeCellPopulation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		sheet := NewSheet()
		for row := 0; row < 100; row++ {
			for col := 0; col < 26; col++ {
				pos := Position{Row: row, Col: col}
				_ = sheet.SetCell(pos, fmt.Sprintf("%d", row*col))
			}
		}
	}
}

func BenchmarkFormulaDependencyChain(b *testing.B) {
	sheet := NewSheet()
	_ = sheet.SetCell(Position{Row: 0, Col: 0}, "1")
	for i := 1; i < 100; i++ {
		addr := fmt.Sprintf("A%d", i+1)
		formula := fmt.Sprintf("=A%d+1", i)
		pos, _ := ParsePosition(addr)
		_ = sheet.SetCell(pos, formula)
	}

	last, _ := ParsePosition("A100")
	cell, _ := sheet.GetCell(last)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sheet.SetCell(Position{Row: 0, Col: 0}, fmt.Sprintf("%d", i))
		_ = cell.GetValue()
	}
}

func BenchmarkWideDependencyFanOut(b *testing.B) {
	sheet := NewSheet()
	_ = sheet.SetCell(Position{Row: 0, Col: 0}, "100")
	var dependents []*Cell
	for i := 1; i < 500; i++ {
		pos := Position{Row: i, Col: 1}
		_ = sheet.SetCell(pos, "=A1*2")
		cell, _ := sheet.GetCell(pos)
		dependents = append(dependents, cell)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sheet.SetCell(Position{Row: 0, Col: 0}, fmt.Sprintf("%d", i))
		for _, cell := range dependents {
			_ = cell.GetValue()
		}
	}
}

func BenchmarkLargeRangeSUM(b *testing.B) {
	sheet := NewSheet()
	for i := 0; i < 1000; i++ {
		_ = sheet.SetCell(Position{Row: i, Col: 0}, fmt.Sprintf("%d", i+1))
	}
	sumPos := Position{Row: 0, Col: 1}
	_ = sheet.SetCell(sumPos, "=SUM(A1:A1000)")
	cell, _ := sheet.GetCell(sumPos)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cell.invalidateCache()
		_ = cell.GetValue()
	}
}

func BenchmarkCascadingUpdates(b *testing.B) {
	sheet := NewSheet()
	for row := 0; row < 50; row++ {
		for col := 0; col < 10; col++ {
			pos := Position{Row: row, Col: col}
			if col == 0 {
				_ = sheet.SetCell(pos, fmt.Sprintf("%d", row))
			} else {
				prev := Position{Row: row, Col: col - 1}
				_ = sheet.SetCell(pos, fmt.Sprintf("=%s*2", prev.String()))
			}
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sheet.SetCell(Position{Row: 0, Col: 0}, fmt.Sprintf("%d", i%100))
	}
}

func BenchmarkSparseMatrix(b *testing.B) {
	for i := 0; i < b.N; i++ {
		sheet := NewSheet()
		for r := 0; r < 200; r += 10 {
			for c := 0; c < 200; c += 10 {
				_ = sheet.SetCell(Position{Row: r, Col: c}, fmt.Sprintf("%d", r+c))
			}
		}
		_ = sheet.PrintableSize()
	}
}

func BenchmarkCircularReferenceDetection(b *testing.B) {
	for i := 0; i < b.N; i++ {
		sheet := NewSheet()
		_ = sheet.SetCell(Position{Row: 0, Col: 0}, "=B1+C1")
		_ = sheet.SetCell(Position{Row: 0, Col: 1}, "=C1+D1")
		_ = sheet.SetCell(Position{Row: 0, Col: 2}, "=D1+E1")
		_ = sheet.SetCell(Position{Row: 0, Col: 3}, "=E1+F1")
		_ = sheet.SetCell(Position{Row: 0, Col: 4}, "=F1+G1")
		_ = sheet.SetCell(Position{Row: 0, Col: 5}, "=G1+H1")
		_ = sheet.SetCell(Position{Row: 0, Col: 6}, "=H1+A1")
		_ = sheet.SetCell(Position{Row: 0, Col: 7}, "=A1")
	}
}

func BenchmarkManySmallFormulas(b *testing.B) {
	sheet := NewSheet()
	for row := 0; row < 100; row++ {
		_ = sheet.SetCell(Position{Row: row, Col: 0}, fmt.Sprintf("%d", row))
		_ = sheet.SetCell(Position{Row: row, Col: 1}, fmt.Sprintf("=A%d*2", row+1))
		_ = sheet.SetCell(Position{Row: row, Col: 2}, fmt.Sprintf("=B%d+A%d", row+1, row+1))
		_ = sheet.SetCell(Position{Row: row, Col: 3}, fmt.Sprintf("=C%d/2", row+1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sheet.SetCell(Position{Row: 0, Col: 0}, fmt.Sprintf("%d", i))
	}
}

func BenchmarkStringConcatenation(b *testing.B) {
	sheet := NewSheet()
	for i := 0; i < 100; i++ {
		_ = sheet.SetCell(Position{Row: i, Col: 0}, fmt.Sprintf("text%d", i))
		_ = sheet.SetCell(Position{Row: i, Col: 1}, fmt.Sprintf(`=A%d&"-suffix"`, i+1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sheet.SetCell(Position{Row: 0, Col: 0}, fmt.Sprintf("text%d", i))
	}
}

func BenchmarkAggregationFunctions(b *testing.B) {
	sheet := NewSheet()
	for i := 0; i < 500; i++ {
		_ = sheet.SetCell(Position{Row: i, Col: 0}, fmt.Sprintf("%d", i+1))
	}
	_ = sheet.SetCell(Position{Row: 0, Col: 1}, "=SUM(A1:A500)")
	_ = sheet.SetCell(Position{Row: 1, Col: 1}, "=AVERAGE(A1:A500)")
	_ = sheet.SetCell(Position{Row: 2, Col: 1}, "=COUNT(A1:A500)")
	_ = sheet.SetCell(Position{Row: 3, Col: 1}, "=MAX(A1:A500)")
	_ = sheet.SetCell(Position{Row: 4, Col: 1}, "=MIN(A1:A500)")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sheet.SetCell(Position{Row: 0, Col: 0}, fmt.Sprintf("%d", i))
	}
}

func BenchmarkConditionalLogic(b *testing.B) {
	sheet := NewSheet()
	for i := 0; i < 200; i++ {
		_ = sheet.SetCell(Position{Row: i, Col: 0}, fmt.Sprintf("%d", i+1))
		_ = sheet.SetCell(Position{Row: i, Col: 1}, fmt.Sprintf(`=IF(A%d>100, A%d*2, A%d/2)`, i+1, i+1, i+1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sheet.SetCell(Position{Row: 0, Col: 0}, fmt.Sprintf("%d", i))
	}
}
