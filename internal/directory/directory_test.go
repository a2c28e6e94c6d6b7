package directory

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdir/internal"
)

func fixture() []internal.Business {
	return []internal.Business{
		{ID: "1", Name: "Khit Thit Mobile", Category: internal.CategoryMobile, Rating: 4.8, Reviews: 120, Price: "200,000 Ks", ImageURL: "a.jpg"},
		{ID: "2", Name: "Lady Beauty", Category: internal.CategoryCosmetics, Rating: 4.9, Reviews: 85},
		{ID: "3", Name: "Phone Hub", Category: internal.CategoryMobile, Rating: 4.8, Reviews: 200},
		{ID: "4", Name: "Noodle", Category: internal.CategoryRestaurant, Rating: 4.0, Reviews: 5},
	}
}

func names(list []internal.Business) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	all := fixture()

	assert.Len(t, Filter(all, internal.CategoryAll, nil), 4)
	assert.Len(t, Filter(all, "", nil), 4)
	assert.Equal(t, []string{"Khit Thit Mobile", "Phone Hub"}, names(Filter(all, internal.CategoryMobile, nil)))
	assert.Equal(t, []string{"Phone Hub", "Noodle"}, names(Filter(all, internal.CategoryAll, []string{"4", "3"})))
	assert.Equal(t, []string{"Phone Hub"}, names(Filter(all, internal.CategoryMobile, []string{"3", "4"})))
	assert.Empty(t, Filter(all, internal.CategoryAll, []string{}))
}

func TestByID(t *testing.T) {
	m := ByID(fixture())
	require.Len(t, m, 4)
	assert.Equal(t, "Noodle", m["4"].Name)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("mobile phone")
	assert.True(t, ok)
	assert.Equal(t, internal.CategoryMobile, c)

	c, ok = ParseCategory("all")
	assert.True(t, ok)
	assert.Equal(t, internal.CategoryAll, c)

	_, ok = ParseCategory("spaceships")
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture())
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.WithPrice)
	assert.Equal(t, 1, s.WithImage)
	assert.InDelta(t, 4.625, s.AverageRating, 1e-9)
	require.Len(t, s.ByCategory, 3)
	assert.Equal(t, CategoryCount{Category: internal.CategoryRestaurant, Count: 1}, s.ByCategory[0])
	assert.Equal(t, []string{"Lady Beauty", "Phone Hub", "Khit Thit Mobile", "Noodle"}, names(s.TopRated))

	var buf bytes.Buffer
	PrintSummary(&buf, s)
	assert.True(t, strings.Contains(buf.String(), "1. Lady Beauty (4.9, 85 reviews)"), buf.String())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.AverageRating)
	assert.Empty(t, s.TopRated)
}

func TestDisplayImage(t *testing.T) {
	assert.Equal(t, "a.jpg", DisplayImage(internal.Business{ImageURL: "a.jpg"}))
	assert.Contains(t, DisplayImage(internal.Business{Category: internal.CategoryFurniture}), "photo-1555041469")
	assert.Equal(t, genericShopImage, DisplayImage(internal.Business{Category: internal.CategoryBeans}))
}

func TestChatLink(t *testing.T) {
	assert.Equal(t, "viber://chat?number=09111222333", internal.Business{Phone: "09-111 222 333"}.ChatLink())
	assert.Equal(t, "viber://chat?number=95967382800", internal.Business{Phone: "09-1", Viber: "+95 9673 82800"}.ChatLink())
	assert.Equal(t, "", internal.Business{}.ChatLink())
}
