// Package report flattens per-category extraction results into ordered
// output rows and serializes them as CSV.
package report

import (
	"github.com/vectorwade/newsgrab/articles"
	"github.com/vectorwade/newsgrab/categories"
)

// CategoryResult pairs a resolved category with the records extracted from
// it.
type CategoryResult struct {
	Category categories.ResolvedCategory
	Records  []articles.Record
}

// Row is one line of output.
type Row struct {
	Title    string
	Summary  string
	Link     string
	Category string
}

// Aggregate flattens results into rows, preserving category order then
// article order exactly. It is pure data flattening with no failure mode.
func Aggregate(results []CategoryResult) []Row {
	var rows []Row
	for _, result := range results {
		label := result.Category.Label()
		for _, record := range result.Records {
			rows = append(rows, Row{
				Title:    record.Title,
				Summary:  record.Summary,
				Link:     record.Link,
				Category: label,
			})
		}
	}
	return rows
}
