package filter

import (
	"math"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatehub/listing-api/internal/core/domain"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func listing(id string, price float64, beds int, state string, age time.Duration) domain.Property {
	return domain.Property{
		ID:           id,
		Title:        id + " listing",
		Price:        price,
		Bedrooms:     beds,
		Bathrooms:    beds,
		State:        state,
		Location:     "Central, " + state,
		Status:       domain.StatusForSale,
		PropertyType: domain.TypeHouse,
		FloorArea:    100,
		Amenities:    []domain.Amenity{},
		CreatedAt:    baseTime.Add(-age),
	}
}

func ids(props []domain.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func lagosAbuja() []domain.Property {
	return []domain.Property{
		listing("lagos", 100, 2, "Lagos", 2*time.Hour),
		listing("abuja", 200, 3, "Abuja", time.Hour),
	}
}

func TestApply_LagosAbujaScenario(t *testing.T) {
	props := lagosAbuja()

	got := Apply(props, Criteria{MinPrice: Value(150)}, SortNewest)
	assert.Equal(t, []string{"abuja"}, ids(got))

	got = Apply(props, Criteria{State: "Lagos", Bedrooms: Value(3)}, SortNewest)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	got = Apply(props, Criteria{}, SortNewest)
	assert.Equal(t, []string{"abuja", "lagos"}, ids(got), "newest first by default")
}

func TestApply_EmptyCriteriaReturnsEverything(t *testing.T) {
	props := []domain.Property{
		listing("a", 1, 1, "Lagos", 3*time.Hour),
		listing("b", 2, 1, "Lagos", time.Hour),
		listing("c", 3, 1, "Oyo", 2*time.Hour),
	}
	got := Apply(props, Criteria{}, "")
	assert.ElementsMatch(t, ids(props), ids(got))
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
	assert.True(t, Criteria{}.IsZero())
}

func TestApply_PriceBoundsAreInclusive(t *testing.T) {
	props := []domain.Property{
		listing("cheap", 100, 1, "Lagos", time.Hour),
		listing("mid", 250, 1, "Lagos", time.Hour),
		listing("dear", 900, 1, "Lagos", time.Hour),
	}
	for _, p := range props {
		got := Apply(props, Criteria{MinPrice: Value(p.Price)}, SortNewest)
		assert.Contains(t, ids(got), p.ID, "minPrice equal to price must include %s", p.ID)

		got = Apply(props, Criteria{MaxPrice: Value(p.Price - 1)}, SortNewest)
		assert.NotContains(t, ids(got), p.ID, "maxPrice below price must exclude %s", p.ID)

		got = Apply(props, Criteria{MaxPrice: Value(p.Price)}, SortNewest)
		assert.Contains(t, ids(got), p.ID)
	}
}

func TestApply_AmenitiesRequireAll(t *testing.T) {
	both := listing("both", 1, 1, "Lagos", time.Hour)
	both.Amenities = []domain.Amenity{domain.AmenityPool, domain.AmenityGym, domain.AmenityCCTV}
	onlyPool := listing("pool", 1, 1, "Lagos", 2*time.Hour)
	onlyPool.Amenities = []domain.Amenity{domain.AmenityPool}
	none := listing("none", 1, 1, "Lagos", 3*time.Hour)

	c := Criteria{Amenities: []domain.Amenity{domain.AmenityPool, domain.AmenityGym}}
	got := Apply([]domain.Property{both, onlyPool, none}, c, SortNewest)
	assert.Equal(t, []string{"both"}, ids(got))
}

func TestApply_Idempotent(t *testing.T) {
	props := []domain.Property{
		listing("a", 120, 2, "Lagos", time.Hour),
		listing("b", 80, 4, "Lagos", 2*time.Hour),
		listing("c", 300, 5, "Abuja", 3*time.Hour),
	}
	c := Criteria{State: "lagos", Bedrooms: Value(2), MaxPrice: Value(200)}

	once := Apply(props, c, SortPriceAsc)
	twice := Apply(once, c, SortPriceAsc)
	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"b", "a"}, ids(once))
}

func TestApply_DisjointConstraintsYieldEmpty(t *testing.T) {
	land := listing("land", 10, 0, "Kano", time.Hour)
	land.PropertyType = domain.TypeLand
	house := listing("house", 10, 3, "Lagos", time.Hour)

	got := Apply([]domain.Property{land, house}, Criteria{State: "Lagos", PropertyType: domain.TypeLand}, SortNewest)
	assert.Empty(t, got)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	props := []domain.Property{
		listing("old", 1, 1, "Lagos", 5*time.Hour),
		listing("new", 2, 1, "Lagos", time.Hour),
	}
	before := ids(props)
	_ = Apply(props, Criteria{}, SortNewest)
	assert.Equal(t, before, ids(props))
}

func TestApply_LocationSearchesAllTextColumns(t *testing.T) {
	byTitle := listing("title", 1, 1, "Oyo", time.Hour)
	byTitle.Title = "Waterfront Duplex in Ikoyi"
	byArea := listing("area", 1, 1, "Lagos", time.Hour)
	byArea.Area = "Lekki"
	byState := listing("state", 1, 1, "Rivers", time.Hour)
	other := listing("other", 1, 1, "Kano", time.Hour)
	props := []domain.Property{byTitle, byArea, byState, other}

	assert.Equal(t, []string{"title"}, ids(Apply(props, Criteria{Location: "IKOYI"}, SortNewest)))
	assert.Equal(t, []string{"area"}, ids(Apply(props, Criteria{Location: "lekk"}, SortNewest)))
	assert.Equal(t, []string{"state"}, ids(Apply(props, Criteria{Location: "river"}, SortNewest)))
}

func TestApply_ZeroBedroomsIsAConstraint(t *testing.T) {
	studio := listing("studio", 1, 0, "Lagos", time.Hour)
	flat := listing("flat", 1, 2, "Lagos", 2*time.Hour)
	props := []domain.Property{studio, flat}

	c := Criteria{Bedrooms: Value(0)}
	assert.False(t, c.IsZero())
	assert.Len(t, Apply(props, c, SortNewest), 2)

	assert.True(t, Criteria{Bedrooms: Any()}.IsZero())
	assert.Len(t, Apply(props, Criteria{Bedrooms: Value(1)}, SortNewest), 1)
}

func TestSort_TiesBreakOnID(t *testing.T) {
	a := listing("a", 100, 1, "Lagos", time.Hour)
	b := listing("b", 100, 1, "Lagos", time.Hour)
	c := listing("c", 50, 1, "Lagos", time.Hour)

	got := Apply([]domain.Property{b, c, a}, Criteria{}, SortPriceDesc)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))

	got = Apply([]domain.Property{b, a}, Criteria{}, SortNewest)
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestRun_Pages(t *testing.T) {
	var props []domain.Property
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		props = append(props, listing(id, float64(i), 1, "Lagos", time.Duration(i)*time.Hour))
	}

	res := Run(props, Query{Page: Page{Number: 2, Limit: 2}})
	assert.Equal(t, []string{"c", "d"}, ids(res.Items))
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 3, res.TotalPages)

	res = Run(props, Query{Page: Page{Number: 9, Limit: 2}})
	assert.Empty(t, res.Items)
	assert.Equal(t, 5, res.Total)

	res = Run(props, Query{})
	assert.Len(t, res.Items, 5)
	assert.Equal(t, 1, res.TotalPages)
}

func TestParseQuery_Canonical(t *testing.T) {
	v := url.Values{
		"location":     {" lekki "},
		"state":        {"Lagos"},
		"propertyType": {"Apartment"},
		"status":       {"For Rent"},
		"minPrice":     {"500000"},
		"maxPrice":     {"2000000"},
		"bedrooms":     {"5+"},
		"bathrooms":    {"any"},
		"amenities":    {"Swimming Pool,gym", "gym"},
		"page":         {"3"},
	}
	c, err := ParseQuery(v)
	require.NoError(t, err)

	assert.Equal(t, "lekki", c.Location)
	assert.Equal(t, domain.TypeApartment, c.PropertyType)
	assert.Equal(t, domain.StatusForRent, c.Status)
	minP, ok := c.MinPrice.Get()
	assert.True(t, ok)
	assert.Equal(t, 500000.0, minP)
	beds, ok := c.Bedrooms.Get()
	assert.True(t, ok)
	assert.Equal(t, 5.0, beds)
	assert.True(t, c.Bathrooms.IsAny())
	assert.Equal(t, []domain.Amenity{domain.AmenityPool, domain.AmenityGym}, c.Amenities)
}

func TestParseQuery_EmptyValuesAreUnset(t *testing.T) {
	c, err := ParseQuery(url.Values{"minPrice": {""}, "bedrooms": {" "}, "state": {""}})
	require.NoError(t, err)
	assert.True(t, c.IsZero())
	assert.True(t, c.MinPrice.IsUnset())

	c, err = ParseQuery(url.Values{"minPrice": {"0"}})
	require.NoError(t, err)
	assert.False(t, c.IsZero(), "zero is a value, not unset")
}

func TestParseQuery_RejectsMalformedInput(t *testing.T) {
	cases := map[string]url.Values{
		"minPrice":     {"minPrice": {"cheap"}},
		"maxPrice":     {"maxPrice": {"NaN"}},
		"bedrooms":     {"bedrooms": {"two"}},
		"bathrooms":    {"bathrooms": {"1.5"}},
		"status":       {"status": {"auction"}},
		"propertyType": {"propertyType": {"castle"}},
		"amenities":    {"amenities": {"pool,helipad"}},
	}
	for key, v := range cases {
		t.Run(key, func(t *testing.T) {
			_, err := ParseQuery(v)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, key)
		})
	}

	_, err := ParseQuery(url.Values{"minPrice": {"-5"}})
	assert.True(t, IsValidationError(err))

	_, err = ParseQuery(url.Values{"minPrice": {"10+"}})
	assert.True(t, IsValidationError(err))

	_, err = ParseQuery(url.Values{"minPrice": {"500"}, "maxPrice": {"100"}})
	assert.True(t, IsValidationError(err))
}

func TestParseQuery_ReportsEveryField(t *testing.T) {
	_, err := ParseQuery(url.Values{"minPrice": {"x"}, "bedrooms": {"y"}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Error(), "bedrooms")
	assert.Contains(t, verr.Error(), "minPrice")
}

func TestCriteria_ValuesRoundTrip(t *testing.T) {
	c := Criteria{
		Location:     "ikeja",
		Area:         "GRA",
		PropertyType: domain.TypeDuplex,
		Status:       domain.StatusForSale,
		MinPrice:     Value(0),
		MaxPrice:     Value(7.5e7),
		Bedrooms:     Any(),
		Bathrooms:    Value(2),
		Amenities:    []domain.Amenity{domain.AmenityBorehole, domain.AmenityGatedEstate},
	}
	back, err := ParseQuery(c.Values())
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestParseRequest_CollectsSortAndPageErrors(t *testing.T) {
	_, err := ParseRequest(url.Values{"sort": {"random"}, "limit": {"0"}, "minPrice": {"x"}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, KeySort)
	assert.Contains(t, verr.Fields, KeyLimit)
	assert.Contains(t, verr.Fields, KeyMinPrice)

	q, err := ParseRequest(url.Values{"limit": {"500"}, "sort": {"PRICE_ASC"}})
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, q.Page.Limit)
	assert.Equal(t, SortPriceAsc, q.Sort)
}

func TestPredicates_FollowRuleTableOrder(t *testing.T) {
	c := Criteria{
		Amenities: []domain.Amenity{domain.AmenityGym, domain.AmenityGym},
		Location:  "yaba",
		MaxPrice:  Value(10),
	}
	preds := c.Predicates()
	require.Len(t, preds, 3)
	assert.Equal(t, Predicate{Field: FieldText, Op: OpContains, Value: "yaba"}, preds[0])
	assert.Equal(t, Predicate{Field: FieldPrice, Op: OpLTE, Value: 10.0}, preds[1])
	assert.Equal(t, Predicate{Field: FieldAmenities, Op: OpHasAll, Value: []string{"gym"}}, preds[2])
}

func TestParseRequest_RejectsPageThatWouldOverflow(t *testing.T) {
	_, err := ParseRequest(url.Values{"page": {"922337203685477581"}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, KeyPage)

	q, err := ParseRequest(url.Values{"page": {strconv.Itoa(MaxPage)}, "limit": {"500"}})
	require.NoError(t, err)
	assert.Positive(t, q.Page.Offset())

	res := Run(lagosAbuja(), q)
	assert.Empty(t, res.Items)
	assert.Equal(t, 2, res.Total)
}

func TestPage_OffsetSaturates(t *testing.T) {
	p := Page{Number: math.MaxInt, Limit: math.MaxInt}
	assert.Equal(t, math.MaxInt, p.Offset())

	start, end := p.Window(5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestRules_EmitDeclaredFieldAndOp(t *testing.T) {
	c := Criteria{
		Location:     "lekki",
		State:        "Lagos",
		Area:         "Ikoyi",
		PropertyType: domain.TypeFlat,
		Status:       domain.StatusForRent,
		MinPrice:     Value(1),
		MaxPrice:     Value(2),
		Bedrooms:     Value(3),
		Bathrooms:    Value(4),
		Amenities:    []domain.Amenity{domain.AmenityPool},
	}
	preds := c.Predicates()
	require.Len(t, preds, len(rules), "every rule fires when every criterion is set")
	for i, r := range rules {
		assert.Equal(t, r.field, preds[i].Field, r.key)
		assert.Equal(t, r.op, preds[i].Op, r.key)
	}
}

func TestFields_ExpandsTextSearch(t *testing.T) {
	fields := Fields()
	for _, col := range TextColumns {
		assert.Contains(t, fields, col)
	}
	assert.NotContains(t, fields, FieldText)
	assert.Contains(t, fields, FieldAmenities)
	assert.Contains(t, fields, FieldPrice)
}
