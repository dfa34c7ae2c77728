package models

import "strconv"

// Salary holds the salary bounds of a single listing. A nil bound means the
// provider did not report it; a non-nil zero is a reported value.
type Salary struct {
	From     *int64 `json:"from"`
	To       *int64 `json:"to"`
	Currency string `json:"currency"`
}

// LanguageStats is the aggregated result for one language from one source
type LanguageStats struct {
	Language  string `json:"language"`
	Found     int    `json:"vacancies_found"`
	Processed int    `json:"vacancies_processed"`
	Average   int    `json:"average_salary"`
}

// Cells returns the row in table column order
func (s LanguageStats) Cells() []string {
	return []string{
		s.Language,
		strconv.Itoa(s.Found),
		strconv.Itoa(s.Processed),
		strconv.Itoa(s.Average),
	}
}

// StatsTable is the ordered set of rows collected from one source
type StatsTable struct {
	Title string          `json:"title"`
	Rows  []LanguageStats `json:"rows"`
}

// Header returns the column names of a stats table
func Header() []string {
	return []string{"language", "vacancies_found", "vacancies_processed", "average_salary"}
}

// Data returns the header followed by one row per language
func (t StatsTable) Data() [][]string {
	data := make([][]string, 0, len(t.Rows)+1)
	data = append(data, Header())
	for _, row := range t.Rows {
		data = append(data, row.Cells())
	}
	return data
}
