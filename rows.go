package datomic

import (
	"regexp"
	"strings"

	"github.com/peregrinedb/datomic-go/edn"
)

// Query results arrive as a vector of row vectors. The helpers here turn
// them into maps keyed by column name without any struct reflection.

var findClauseRe = regexp.MustCompile(`(?is):find\s+(.*?)(?:\s*:(?:in|where|with|keys|strs|syms)\s|$)`)
var findVarRe = regexp.MustCompile(`\?(\w+)`)

// FindVars extracts the variable names from the :find clause of a Datalog
// query, in order and without the leading '?'. Variables inside pull
// expressions are included as written.
func FindVars(query string) []string {
	m := findClauseRe.FindStringSubmatch(query)
	if m == nil {
		return nil
	}
	var vars []string
	for _, v := range findVarRe.FindAllStringSubmatch(m[1], -1) {
		vars = append(vars, v[1])
	}
	return vars
}

// MapRow converts one result row into a map keyed by column name. Row and
// column counts must match.
func MapRow(row edn.Vector, columns []string) (map[string]edn.Value, error) {
	if len(row) != len(columns) {
		return nil, WithContext(ErrUnexpectedShape, map[string]interface{}{
			"operation": "map-row",
			"columns":   len(columns),
			"values":    len(row),
		})
	}
	m := make(map[string]edn.Value, len(row))
	for i, col := range columns {
		m[col] = row[i]
	}
	return m, nil
}

// MapRows converts a whole query result into maps keyed by column name.
// When columns is nil they are extracted from the query's :find clause.
func MapRows(rows edn.Vector, query string, columns []string) ([]map[string]edn.Value, error) {
	if columns == nil {
		columns = FindVars(query)
	}
	out := make([]map[string]edn.Value, 0, len(rows))
	for _, r := range rows {
		row, ok := r.(edn.Vector)
		if !ok {
			return nil, WithContext(ErrUnexpectedShape, map[string]interface{}{
				"operation": "map-rows",
				"expected":  "vector row",
			})
		}
		m, err := MapRow(row, columns)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// CleanEntity rewrites an entity map's attribute keywords into plain
// names: ":person/name" becomes "name", ":db/id" becomes "db_id". Keys
// that are not keyword strings are kept as their EDN text.
func CleanEntity(entity edn.Map) map[string]edn.Value {
	out := make(map[string]edn.Value, len(entity))
	for k, v := range entity {
		s, ok := k.(string)
		if !ok {
			text, err := edn.Marshal(k)
			if err != nil {
				continue
			}
			out[text] = v
			continue
		}
		out[cleanKey(s)] = v
	}
	return out
}

func cleanKey(key string) string {
	if key == ":db/id" {
		return "db_id"
	}
	key = strings.TrimPrefix(key, ":")
	if i := strings.LastIndex(key, "/"); i >= 0 {
		key = key[i+1:]
	}
	return key
}
