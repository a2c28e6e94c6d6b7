package internal

import (
	"strings"
	"time"
)

// RawRow maps a normalized column header to the cell value of one feed line.
type RawRow map[string]string

type Category string

const (
	CategoryBeans       Category = "ပဲအမျိုးမျိုး"
	CategoryFruits      Category = "သစ်သီး"
	CategoryGroceries   Category = "ကုန်စိမ်း"
	CategoryRestaurant  Category = "Restaurant"
	CategoryMobile      Category = "Mobile Phone"
	CategoryElectronics Category = "Electronics"
	CategoryCosmetics   Category = "Cosmetics"
	CategoryFashion     Category = "Fashion"
	CategoryBaby        Category = "Baby Store"
	CategoryEssentials  Category = "Rice & Oil"
	CategoryFurniture   Category = "Furniture"

	// CategoryAll disables category filtering. It is never assigned to a record.
	CategoryAll Category = "All"
)

var categoryOrder = []Category{
	CategoryBeans,
	CategoryFruits,
	CategoryGroceries,
	CategoryRestaurant,
	CategoryMobile,
	CategoryElectronics,
	CategoryCosmetics,
	CategoryFashion,
	CategoryBaby,
	CategoryEssentials,
	CategoryFurniture,
}

// Categories returns the record categories in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

func (c Category) Valid() bool {
	for _, member := range categoryOrder {
		if c == member {
			return true
		}
	}
	return false
}

type Business struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	Viber       string   `json:"viber"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	MapLink     string   `json:"googleMapLink"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Price       string   `json:"price,omitempty"`
	Detail      string   `json:"detail,omitempty"`
}

// ChatLink builds the viber deep link for the business, falling back to the
// phone number when no handle is listed.
func (b Business) ChatLink() string {
	handle := b.Viber
	if strings.TrimSpace(handle) == "" {
		handle = b.Phone
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, handle)
	if digits == "" {
		return ""
	}
	return "viber://chat?number=" + digits
}

type CartItem struct {
	BusinessID string `json:"businessId"`
	Name       string `json:"name"`
	Price      string `json:"price,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Quantity   int    `json:"quantity"`
}

type OrderInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type ReceiptLine struct {
	BusinessID string `json:"businessId"`
	Name       string `json:"name"`
	PriceText  string `json:"priceText"`
	UnitPrice  int64  `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
	Amount     int64  `json:"amount"`
}

type Receipt struct {
	VoucherID  string        `json:"voucherId"`
	IssuedAt   time.Time     `json:"issuedAt"`
	Customer   OrderInfo     `json:"customer"`
	Lines      []ReceiptLine `json:"lines"`
	GrandTotal int64         `json:"grandTotal"`
}

type SearchResult struct {
	Text        string   `json:"text"`
	BusinessIDs []string `json:"businessIds"`
	Provider    string   `json:"provider"`
}

type FeedOutcome string

const (
	FeedLive   FeedOutcome = "live"
	FeedSample FeedOutcome = "sample"
)

type FeedLoad struct {
	ID         int
	TraceID    string
	Source     string
	Outcome    FeedOutcome
	Reason     string
	Records    int
	DurationMs int64
	CreatedAt  string
}
