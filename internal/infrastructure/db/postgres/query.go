package postgres

import (
	"fmt"
	"strings"

	"github.com/estatehub/listing-api/internal/core/filter"
)

var columns = map[filter.Field]string{
	filter.FieldLocation:     "location",
	filter.FieldTitle:        "title",
	filter.FieldState:        "state",
	filter.FieldArea:         "area",
	filter.FieldPropertyType: "property_type",
	filter.FieldStatus:       "status",
	filter.FieldPrice:        "price",
	filter.FieldBedrooms:     "bedrooms",
	filter.FieldBathrooms:    "bathrooms",
	filter.FieldAmenities:    "amenities",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereBuilder accumulates conditions with positional parameters.
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// compileWhere renders predicates as a WHERE clause (empty when there are none)
// and its arguments. Parameters are numbered from $1.
func compileWhere(preds []filter.Predicate) (string, []any) {
	var b whereBuilder
	for _, p := range preds {
		b.add(p)
	}
	if len(b.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(b.conds, " AND "), b.args
}

func (b *whereBuilder) add(p filter.Predicate) {
	switch p.Op {
	case filter.OpContains:
		ph := b.arg("%" + likeEscaper.Replace(p.Value.(string)) + "%")
		var ors []string
		for _, f := range textFields(p.Field) {
			ors = append(ors, fmt.Sprintf("%s ILIKE %s", columns[f], ph))
		}
		b.conds = append(b.conds, "("+strings.Join(ors, " OR ")+")")
	case filter.OpEqualFold:
		b.conds = append(b.conds, fmt.Sprintf("lower(%s) = lower(%s)", columns[p.Field], b.arg(p.Value)))
	case filter.OpEqual:
		b.conds = append(b.conds, fmt.Sprintf("%s = %s", columns[p.Field], b.arg(p.Value)))
	case filter.OpGTE:
		b.conds = append(b.conds, fmt.Sprintf("%s >= %s", columns[p.Field], b.arg(p.Value)))
	case filter.OpLTE:
		b.conds = append(b.conds, fmt.Sprintf("%s <= %s", columns[p.Field], b.arg(p.Value)))
	case filter.OpHasAll:
		b.conds = append(b.conds, fmt.Sprintf("%s @> %s::text[]", columns[p.Field], b.arg(p.Value)))
	}
}

func textFields(f filter.Field) []filter.Field {
	if f == filter.FieldText {
		return filter.TextColumns
	}
	return []filter.Field{f}
}

// orderBy mirrors filter.Sort.Less, including the id tie-break.
func orderBy(s filter.Sort) string {
	switch s {
	case filter.SortOldest:
		return " ORDER BY created_at ASC, id ASC"
	case filter.SortPriceAsc:
		return " ORDER BY price ASC, id ASC"
	case filter.SortPriceDesc:
		return " ORDER BY price DESC, id ASC"
	}
	return " ORDER BY created_at DESC, id ASC"
}

// limitOffset appends paging parameters after the WHERE arguments.
func limitOffset(p filter.Page, args []any) (string, []any) {
	if p.Limit <= 0 {
		return "", args
	}
	args = append(args, p.Limit, p.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

// qualified prefixes every column in a comma separated list with alias.
func qualified(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, c := range parts {
		parts[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}
