package collect

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// AlertQuery is one search query loaded from the alerts CSV
// (columns: Section,Alert_ID,Title,Query).
type AlertQuery struct {
	Section      string
	AlertID      string
	Title        string
	Query        string
	SiteSpecific bool
	TargetSite   string
}

// LoadAlertsCSV parses the alerts CSV into queries for the search
// strategy. Rows with an empty query are skipped. site: operators are
// detected and the target domain recorded.
func LoadAlertsCSV(path string) ([]AlertQuery, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alerts csv %s: %w", path, err)
	}

	// Exported alert CSVs frequently carry a UTF-8 BOM.
	text := strings.TrimPrefix(string(raw), "\uFEFF")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse alerts csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := indexColumns(records[0])
	queries := make([]AlertQuery, 0, len(records)-1)

	for _, record := range records[1:] {
		query := field(record, columns, "query")
		if query == "" {
			continue
		}

		alert := AlertQuery{
			Section: field(record, columns, "section"),
			AlertID: field(record, columns, "alert_id"),
			Title:   field(record, columns, "title"),
			Query:   query,
		}
		if site, ok := extractSite(query); ok {
			alert.SiteSpecific = true
			alert.TargetSite = site
		}

		queries = append(queries, alert)
	}

	return queries, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

func field(record []string, columns map[string]int, name string) string {
	index, ok := columns[name]
	if !ok || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func extractSite(query string) (string, bool) {
	_, after, found := strings.Cut(query, "site:")
	if !found {
		return "", false
	}
	parts := strings.Fields(after)
	if len(parts) == 0 {
		return "", false
	}
	return strings.Trim(parts[0], `)"`), true
}
