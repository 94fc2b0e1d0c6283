// Command sheetsh is a small interactive shell over the spreadsheet
// engine: set/get/clear individual cells and print the sheet's current
// printable rectangle. Each invocation starts from an empty sheet —
// nothing is persisted between runs.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/internal/config"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet/internal/metrics"
)

const usage = `sheetsh

Usage:
  sheetsh [--metrics-addr=ADDR]
  sheetsh -h

Options:
  --metrics-addr=ADDR  Serve Prometheus metrics on ADDR (e.g. :9090).
  -h, --help           Display this help.

Commands read one per line, from a terminal prompt or from stdin:
  set POS TEXT    set the cell at POS (e.g. A1) to TEXT
  get POS         print the cell's current value
  clear POS       clear the cell at POS
  print           print the sheet's values as a tab-separated grid
  texts           print the sheet's raw cell text as a tab-separated grid
  size            print the current printable size
  exit            quit
`

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if addr, _ := opts.String("--metrics-addr"); addr != "" {
		metrics.Enable(metrics.Config{Enabled: true, MetricsAddr: addr})
	}

	cfg := config.Load()
	sheet := spreadsheet.NewSheet()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		runInteractive(sheet, cfg)
		return
	}
	runScript(sheet, cfg, os.Stdin)
}

func runInteractive(sheet *spreadsheet.Sheet, cfg config.Config) {
	cli := liner.NewLiner()
	defer cli.Close()
	cli.SetCtrlCAborts(true)

	for {
		line, err := cli.Prompt(cfg.Prompt)
		if err != nil {
			return
		}
		cli.AppendHistory(line)
		if !execute(sheet, cfg, line, os.Stdout) {
			return
		}
	}
}

func runScript(sheet *spreadsheet.Sheet, cfg config.Config, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !execute(sheet, cfg, scanner.Text(), os.Stdout) {
			return
		}
	}
}

// checkBounds reports whether pos falls within the configured
// MaxRows/MaxCols, writing a friendly message to w if not. This runs
// ahead of the engine's own IsValid check so a shrunk MAX_ROWS/MAX_COLS
// override reads as a normal usage error at the CLI boundary rather
// than an InvalidPositionError bubbling up from the sheet.
func checkBounds(cfg config.Config, pos spreadsheet.Position, w io.Writer) bool {
	if pos.Row >= 0 && pos.Row < cfg.MaxRows && pos.Col >= 0 && pos.Col < cfg.MaxCols {
		return true
	}
	fmt.Fprintf(w, "%s is outside the configured sheet bounds (%d rows x %d cols)\n", pos, cfg.MaxRows, cfg.MaxCols)
	return false
}

// execute runs a single command line, writing its output to w. It
// returns false when the shell should stop reading further commands.
func execute(sheet *spreadsheet.Sheet, cfg config.Config, line string, w io.Writer) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return false
	case "set":
		if len(fields) < 3 {
			fmt.Fprintln(w, "usage: set POS TEXT")
			return true
		}
		pos, err := spreadsheet.ParsePosition(fields[1])
		if err != nil {
			fmt.Fprintln(w, err)
			return true
		}
		if !checkBounds(cfg, pos, w) {
			return true
		}
		text := strings.Join(fields[2:], " ")
		if err := sheet.SetCell(pos, text); err != nil {
			fmt.Fprintln(w, err)
		}
	case "get":
		if len(fields) != 2 {
			fmt.Fprintln(w, "usage: get POS")
			return true
		}
		pos, err := spreadsheet.ParsePosition(fields[1])
		if err != nil {
			fmt.Fprintln(w, err)
			return true
		}
		if !checkBounds(cfg, pos, w) {
			return true
		}
		cell, err := sheet.GetCell(pos)
		if err != nil {
			fmt.Fprintln(w, err)
			return true
		}
		if cell == nil {
			fmt.Fprintln(w, spreadsheet.Number(0))
			return true
		}
		fmt.Fprintln(w, cell.GetValue())
	case "clear":
		if len(fields) != 2 {
			fmt.Fprintln(w, "usage: clear POS")
			return true
		}
		pos, err := spreadsheet.ParsePosition(fields[1])
		if err != nil {
			fmt.Fprintln(w, err)
			return true
		}
		if !checkBounds(cfg, pos, w) {
			return true
		}
		if err := sheet.ClearCell(pos); err != nil {
			fmt.Fprintln(w, err)
		}
	case "print":
		_ = sheet.PrintValues(w)
	case "texts":
		_ = sheet.PrintTexts(w)
	case "size":
		size := sheet.PrintableSize()
		fmt.Fprintf(w, "%d\t%d\n", size.Rows, size.Cols)
	default:
		fmt.Fprintf(w, "unknown command %q\n", fields[0])
	}
	return true
}
