package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/estatehub/listing-api/internal/core/filter"
)

var fieldNames = map[filter.Field]string{
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

// compileFilter renders predicates as a query document. Clauses are combined
// under $and so two bounds on the same field never collide.
func compileFilter(preds []filter.Predicate) bson.D {
	if len(preds) == 0 {
		return bson.D{}
	}
	clauses := make(bson.A, 0, len(preds))
	for _, p := range preds {
		clauses = append(clauses, clause(p))
	}
	return bson.D{{Key: "$and", Value: clauses}}
}

func clause(p filter.Predicate) bson.D {
	name := fieldNames[p.Field]
	switch p.Op {
	case filter.OpContains:
		pattern := regexp.QuoteMeta(p.Value.(string))
		ors := make(bson.A, 0, len(filter.TextColumns))
		for _, f := range filter.TextColumns {
			ors = append(ors, bson.D{{Key: fieldNames[f], Value: ciRegex(pattern)}})
		}
		return bson.D{{Key: "$or", Value: ors}}
	case filter.OpEqualFold:
		// \z rather than $, which also matches before a trailing newline.
		return bson.D{{Key: name, Value: ciRegex(`^` + regexp.QuoteMeta(p.Value.(string)) + `\z`)}}
	case filter.OpEqual:
		return bson.D{{Key: name, Value: p.Value}}
	case filter.OpGTE:
		return bson.D{{Key: name, Value: bson.D{{Key: "$gte", Value: p.Value}}}}
	case filter.OpLTE:
		return bson.D{{Key: name, Value: bson.D{{Key: "$lte", Value: p.Value}}}}
	case filter.OpHasAll:
		return bson.D{{Key: name, Value: bson.D{{Key: "$all", Value: p.Value}}}}
	}
	return bson.D{}
}

func ciRegex(pattern string) bson.D {
	return bson.D{{Key: "$regex", Value: pattern}, {Key: "$options", Value: "i"}}
}

// sortDoc mirrors filter.Sort.Less, including the id tie-break.
func sortDoc(s filter.Sort) bson.D {
	switch s {
	case filter.SortOldest:
		return bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	case filter.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case filter.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}
	}
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
}
