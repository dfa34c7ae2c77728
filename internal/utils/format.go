package utils

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Source names accepted by --source
const (
	SourceHeadHunter = "hh"
	SourceSuperJob   = "superjob"
	SourceAll        = "all"
)

// FormatSalary formats a salary with comma separators
func FormatSalary(salary int) string {
	return humanize.Comma(int64(salary))
}

// IsValidSource checks if the source is supported
func IsValidSource(source string) bool {
	validSources := map[string]bool{
		SourceHeadHunter: true,
		"headhunter":     true,
		SourceSuperJob:   true,
		"sj":             true,
		SourceAll:        true,
		"":               true,
	}
	return validSources[strings.ToLower(source)]
}

// SourcesFor expands a --source value into the ordered list of sources to query
func SourcesFor(source string) ([]string, error) {
	if !IsValidSource(source) {
		return nil, fmt.Errorf("invalid source %q: must be one of hh, superjob, all", source)
	}

	switch strings.ToLower(source) {
	case SourceHeadHunter, "headhunter":
		return []string{SourceHeadHunter}, nil
	case SourceSuperJob, "sj":
		return []string{SourceSuperJob}, nil
	default:
		return []string{SourceHeadHunter, SourceSuperJob}, nil
	}
}
