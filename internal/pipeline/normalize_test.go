package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdir/internal"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(NormalizerOptions{DefaultRating: 4.5, DefaultReviews: 10})
}

func TestNormalizeRowAliases(t *testing.T) {
	row := internal.RawRow{
		"id":          "42",
		"shopname":    "Shwe Mi",
		"type":        "rice and oil",
		"location":    "Main Road, Taungoo",
		"tel":         "09 123 456",
		"about":       "Rice wholesale",
		"photo":       "https://drive.google.com/file/d/1AbCdEfGhIjKlMnOpQrStUvWxYz_-12/view",
		"map":         "https://maps.app.goo.gl/x",
		"stars":       "4.2",
		"reviewcount": "77",
		"cost":        "1,500 Ks",
		"details":     "Open daily",
	}

	b := testNormalizer().NormalizeRow(row)
	assert.Equal(t, "42", b.ID)
	assert.Equal(t, "Shwe Mi", b.Name)
	assert.Equal(t, internal.CategoryEssentials, b.Category)
	assert.Equal(t, "Main Road, Taungoo", b.Address)
	assert.Equal(t, "09 123 456", b.Phone)
	assert.Equal(t, "", b.Viber)
	assert.Equal(t, "Rice wholesale", b.Description)
	assert.Equal(t, "https://drive.google.com/thumbnail?id=1AbCdEfGhIjKlMnOpQrStUvWxYz_-12&sz=w1000", b.ImageURL)
	assert.Equal(t, "https://maps.app.goo.gl/x", b.MapLink)
	assert.Equal(t, 4.2, b.Rating)
	assert.Equal(t, 77, b.Reviews)
	assert.Equal(t, "1,500 Ks", b.Price)
	assert.Equal(t, "Open daily", b.Detail)
}

func TestNormalizeRowDefaults(t *testing.T) {
	b := testNormalizer().NormalizeRow(internal.RawRow{"unrelated": "x"})
	require.NotEmpty(t, b.ID)
	assert.Equal(t, DefaultName, b.Name)
	assert.Equal(t, internal.CategoryFashion, b.Category)
	assert.Equal(t, DefaultMapLink, b.MapLink)
	assert.Equal(t, 4.5, b.Rating)
	assert.Equal(t, 10, b.Reviews)
	assert.Empty(t, b.Address)
	assert.Empty(t, b.ImageURL)
	assert.Empty(t, b.Price)
	assert.Empty(t, b.Detail)
}

func TestNormalizeRowCoercion(t *testing.T) {
	n := testNormalizer()
	cases := []struct {
		rating      string
		reviews     string
		wantRating  float64
		wantReviews int
	}{
		{rating: "4.8 stars", reviews: "120 reviews", wantRating: 4.8, wantReviews: 120},
		{rating: "n/a", reviews: "lots", wantRating: 4.5, wantReviews: 10},
		{rating: "", reviews: "", wantRating: 4.5, wantReviews: 10},
		{rating: "0", reviews: "-3", wantRating: 0, wantReviews: 10},
	}
	for _, tc := range cases {
		b := n.NormalizeRow(internal.RawRow{"name": "x", "rating": tc.rating, "reviews": tc.reviews})
		if b.Rating != tc.wantRating || b.Reviews != tc.wantReviews {
			t.Errorf("rating=%q reviews=%q -> %v %d", tc.rating, tc.reviews, b.Rating, b.Reviews)
		}
	}
}

func TestNormalizeRowFirstPresentAliasWins(t *testing.T) {
	b := testNormalizer().NormalizeRow(internal.RawRow{"name": "", "businessname": "Ignored"})
	assert.Equal(t, DefaultName, b.Name)
}

func TestNormalizeRowsPreservesOrder(t *testing.T) {
	rows := []internal.RawRow{{"name": "first"}, {"name": "second"}, {"name": "third"}}
	out := testNormalizer().NormalizeRows(rows)
	require.Len(t, out, 3)
	for i, want := range []string{"first", "second", "third"} {
		assert.Equal(t, want, out[i].Name)
	}
	assert.NotEqual(t, out[0].ID, out[1].ID)
}

func TestStableIDs(t *testing.T) {
	n := NewNormalizer(NormalizerOptions{StableIDs: true})
	row := internal.RawRow{"name": "Baby World", "address": "Bogyoke Road", "phone": "09-11"}
	a := n.NormalizeRow(row)
	b := n.NormalizeRow(row)
	assert.Equal(t, a.ID, b.ID)

	other := n.NormalizeRow(internal.RawRow{"name": "Fashion Queen"})
	assert.NotEqual(t, a.ID, other.ID)
}

func TestNormalizerCustomRules(t *testing.T) {
	rules := CategoryRules{
		Default: internal.CategoryFurniture,
		Rules:   []CategoryRule{{Category: internal.CategoryRestaurant, Keywords: []string{"noodle"}}},
	}
	n := NewNormalizer(NormalizerOptions{Categories: &rules})
	assert.Equal(t, internal.CategoryRestaurant, n.NormalizeRow(internal.RawRow{"category": "Noodle House"}).Category)
	assert.Equal(t, internal.CategoryFurniture, n.NormalizeRow(internal.RawRow{"category": "misc"}).Category)
}
