package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

const (
	processedColumn = 2
	salaryColumn    = 3
)

// RenderTable renders a stats table for the terminal: a header row, one row
// per language, the processed column right-justified, all inside a box
// titled with the table title.
func RenderTable(table models.StatsTable) (string, error) {
	data := table.Data()
	for i, row := range table.Rows {
		data[i+1][salaryColumn] = ColorizeSalary(row.Average)
	}
	JustifyRight(data, processedColumn)

	body, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		Srender()
	if err != nil {
		return "", err
	}

	return pterm.DefaultBox.
		WithTitle(pterm.Bold.Sprint(table.Title)).
		Sprint(body), nil
}

// JustifyRight left-pads every cell of the given column to the column's
// widest visible value.
func JustifyRight(data [][]string, column int) {
	width := 0
	for _, row := range data {
		if column < len(row) {
			width = max(width, visibleWidth(row[column]))
		}
	}

	for _, row := range data {
		if column < len(row) {
			row[column] = strings.Repeat(" ", width-visibleWidth(row[column])) + row[column]
		}
	}
}

func visibleWidth(s string) int {
	return utf8.RuneCountInString(pterm.RemoveColorFromString(s))
}

// ColorizeSalary formats an average salary with separators and colours it
// by band
func ColorizeSalary(average int) string {
	formatted := utils.FormatSalary(average)

	switch {
	case average >= 300000:
		return pterm.Green(formatted)
	case average >= 200000:
		return pterm.LightGreen(formatted)
	case average >= 100000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
