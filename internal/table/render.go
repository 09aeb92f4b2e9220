package table

import (
	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/rosed"
)

// String renders the table as a bordered grid: one row per NonTerminal, one
// column per Terminal plus EndMarker, each cell showing its Alternate(s)
// joined by "/" when more than one is present (a conflict).
func (t Table) String() string {
	data := [][]string{}

	topRow := []string{""}
	for _, term := range t.cols {
		topRow = append(topRow, term.String())
	}
	data = append(data, topRow)

	for _, nt := range t.nts {
		row := []string{nt.String()}
		for _, term := range t.cols {
			cell := t.Get(nt, term)
			row = append(row, cellString(cell))
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableBorders: true,
		}).
		String()
}

func cellString(cell []grammar.Alternate) string {
	if len(cell) == 0 {
		return ""
	}
	s := cell[0].String()
	for _, alt := range cell[1:] {
		s += " / " + alt.String()
	}
	return s
}
