package directory

import (
	"strings"

	"shopdir/internal"
)

const genericShopImage = "https://images.unsplash.com/photo-1472851294608-415522f96319?w=500&q=80"

var fallbackImages = map[internal.Category]string{
	internal.CategoryRestaurant:  "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=500&q=80",
	internal.CategoryMobile:      "https://images.unsplash.com/photo-1598327105666-5b89351aff70?w=500&q=80",
	internal.CategoryElectronics: "https://images.unsplash.com/photo-1550009158-9ebf69173e03?w=500&q=80",
	internal.CategoryCosmetics:   "https://images.unsplash.com/photo-1596462502278-27bfdd403cc2?w=500&q=80",
	internal.CategoryFashion:     "https://images.unsplash.com/photo-1445205170230-053b83016050?w=500&q=80",
	internal.CategoryBaby:        "https://images.unsplash.com/photo-1515488042361-25f4682ae2ed?w=500&q=80",
	internal.CategoryEssentials:  "https://images.unsplash.com/photo-1606787366850-de6330128bfc?w=500&q=80",
	internal.CategoryFurniture:   "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=500&q=80",
}

// DisplayImage is the listing image, or a stock photo for the category when
// the sheet has none.
func DisplayImage(b internal.Business) string {
	if strings.TrimSpace(b.ImageURL) != "" {
		return b.ImageURL
	}
	if img, ok := fallbackImages[b.Category]; ok {
		return img
	}
	return genericShopImage
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
