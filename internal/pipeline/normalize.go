package pipeline

import (
	"strings"

	"github.com/google/uuid"

	"shopdir/internal"
	"shopdir/internal/util"
)

const (
	DefaultName    = "Unknown Shop"
	DefaultMapLink = "#"
)

// businessNamespace seeds content-derived ids so the same row maps to the same
// id on every load.
var businessNamespace = uuid.MustParse("6f1c1f8e-3b7a-4f55-9a43-2d0f5b8c7e10")

type NormalizerOptions struct {
	DefaultRating  float64
	DefaultReviews int
	StableIDs      bool
	Categories     *CategoryRules
}

type Normalizer struct {
	opts  NormalizerOptions
	rules CategoryRules
	newID func() string
}

// fieldSpec binds one canonical field to the raw columns it may arrive under.
type fieldSpec struct {
	name     string
	aliases  []string
	fallback string
	assign   func(n *Normalizer, b *internal.Business, value string)
}

var businessFields = []fieldSpec{
	{name: "id", aliases: []string{"id"}, assign: func(_ *Normalizer, b *internal.Business, v string) { b.ID = v }},
	{name: "name", aliases: []string{"name", "businessname", "shopname"}, fallback: DefaultName,
		assign: func(_ *Normalizer, b *internal.Business, v string) { b.Name = v }},
	{name: "category", aliases: []string{"category", "type", "cat"},
		assign: func(n *Normalizer, b *internal.Business, v string) { b.Category = n.rules.Infer(v) }},
	{name: "address", aliases: []string{"address", "location"}, assign: func(_ *Normalizer, b *internal.Business, v string) { b.Address = v }},
	{name: "phone", aliases: []string{"phone", "contact", "tel"}, assign: func(_ *Normalizer, b *internal.Business, v string) { b.Phone = v }},
	{name: "viber", aliases: []string{"viber", "chat"}, assign: func(_ *Normalizer, b *internal.Business, v string) { b.Viber = v }},
	{name: "description", aliases: []string{"description", "about"},
		assign: func(_ *Normalizer, b *internal.Business, v string) { b.Description = v }},
	{name: "image", aliases: []string{"imageurl", "image", "photo", "picture", "img"},
		assign: func(_ *Normalizer, b *internal.Business, v string) { b.ImageURL = DirectImageURL(v) }},
	{name: "map", aliases: []string{"googlemaplink", "map", "googlemap", "locationlink"}, fallback: DefaultMapLink,
		assign: func(_ *Normalizer, b *internal.Business, v string) { b.MapLink = v }},
	{name: "rating", aliases: []string{"rating", "stars"},
		assign: func(n *Normalizer, b *internal.Business, v string) { b.Rating = n.rating(v) }},
	{name: "reviews", aliases: []string{"reviews", "reviewcount"},
		assign: func(n *Normalizer, b *internal.Business, v string) { b.Reviews = n.reviews(v) }},
	{name: "price", aliases: []string{"price", "cost"}, assign: func(_ *Normalizer, b *internal.Business, v string) { b.Price = v }},
	{name: "detail", aliases: []string{"detail", "details", "info"},
		assign: func(_ *Normalizer, b *internal.Business, v string) { b.Detail = DirectImageURL(v) }},
}

func NewNormalizer(opts NormalizerOptions) *Normalizer {
	rules := DefaultCategoryRules()
	if opts.Categories != nil {
		rules = *opts.Categories
	}
	if opts.DefaultReviews < 0 {
		opts.DefaultReviews = 0
	}
	return &Normalizer{opts: opts, rules: rules, newID: uuid.NewString}
}

func (n *Normalizer) NormalizeRows(rows []internal.RawRow) []internal.Business {
	out := make([]internal.Business, 0, len(rows))
	for _, row := range rows {
		out = append(out, n.NormalizeRow(row))
	}
	return out
}

func (n *Normalizer) NormalizeRow(row internal.RawRow) internal.Business {
	var b internal.Business
	for _, field := range businessFields {
		value := lookup(row, field.aliases)
		if value == "" {
			value = field.fallback
		}
		field.assign(n, &b, value)
	}
	if b.ID == "" {
		b.ID = n.generateID(b)
	}
	return b
}

// lookup returns the value of the first alias present in the row, even when
// that value is empty.
func lookup(row internal.RawRow, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (n *Normalizer) rating(raw string) float64 {
	v, ok := util.LeadingFloat(raw)
	if !ok || v < 0 {
		return n.opts.DefaultRating
	}
	return v
}

func (n *Normalizer) reviews(raw string) int {
	v, ok := util.LeadingInt(raw)
	if !ok || v < 0 {
		return n.opts.DefaultReviews
	}
	return v
}

func (n *Normalizer) generateID(b internal.Business) string {
	if !n.opts.StableIDs {
		return n.newID()
	}
	key := strings.ToLower(strings.Join([]string{b.Name, b.Address, b.Phone}, "|"))
	return uuid.NewSHA1(businessNamespace, []byte(key)).String()
}
