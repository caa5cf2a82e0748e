package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	title     = "========== Monthly Report =========="
	noData    = "-"
	ruleWidth = 84
)

// Columns lists the report headers shared by the text and workbook output
var Columns = []string{"Month", "Invoiced", "Received", "AvgW", "AvgE", "MaxW", "MaxE"}

var widths = []int{10, 15, 15, 12, 12, 10, 10}

// Cells renders a row as display strings in Columns order
func (r MonthRow) Cells() []string {
	cells := []string{
		r.Key,
		r.Invoiced.StringFixed(2),
		r.Received.StringFixed(2),
		noData, noData, noData, noData,
	}
	if r.Utility != nil {
		cells[3] = strconv.Itoa(int(math.Round(r.Utility.AvgWater)))
		cells[4] = strconv.Itoa(int(math.Round(r.Utility.AvgElectric)))
		cells[5] = strconv.Itoa(r.Utility.MaxWater)
		cells[6] = strconv.Itoa(r.Utility.MaxElectric)
	}
	return cells
}

func writeLine(w *bufio.Writer, cells []string) {
	for i, c := range cells {
		fmt.Fprintf(w, "%-*s", widths[i], c)
	}
	w.WriteString("\n")
}

// WriteText writes the fixed-width report table
func WriteText(w io.Writer, rows []MonthRow) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(bw, title)
	writeLine(bw, Columns)
	fmt.Fprintln(bw, rule)
	for _, r := range rows {
		writeLine(bw, r.Cells())
	}
	fmt.Fprintln(bw, rule)

	return bw.Flush()
}
