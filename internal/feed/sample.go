package feed

import "shopdir/internal"

var sampleBusinesses = []internal.Business{
	{
		ID:          "1",
		Name:        "Khit Thit Mobile",
		Category:    internal.CategoryMobile,
		Address:     "Bogyoke Road, Taungoo",
		Phone:       "09-111222333",
		Description: "Latest iPhones, Samsung, and accessories. Screen replacement service available.",
		ImageURL:    "https://images.unsplash.com/photo-1598327105666-5b89351aff70?w=500&q=80",
		MapLink:     "#",
		Rating:      4.8,
		Reviews:     120,
		Price:       "Starting at 200,000 Ks",
		Detail:      "https://images.unsplash.com/photo-1556656793-02715d8dd660?w=600&q=80",
	},
	{
		ID:          "2",
		Name:        "Lady Beauty Cosmetics",
		Category:    internal.CategoryCosmetics,
		Address:     "Market St, Taungoo",
		Phone:       "09-998877665",
		Description: "Authentic branded cosmetics, skincare, and perfumes.",
		ImageURL:    "https://images.unsplash.com/photo-1616530940355-351fabd9524b?w=500&q=80",
		MapLink:     "#",
		Rating:      4.9,
		Reviews:     85,
		Price:       "5,000 - 50,000 Ks",
		Detail:      "https://images.unsplash.com/photo-1522335789203-abd6538d8ad8?w=600&q=80",
	},
	{
		ID:          "3",
		Name:        "Shwe Mi Family Rice Shop",
		Category:    internal.CategoryEssentials,
		Address:     "Station Road, Taungoo",
		Phone:       "09-333444555",
		Description: "High quality Paw San Hmwe, Manaw Thukha and peanut oil wholesale.",
		ImageURL:    "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=500&q=80",
		MapLink:     "#",
		Rating:      4.7,
		Reviews:     45,
		Price:       "Whole Sale Price",
	},
	{
		ID:          "4",
		Name:        "Baby World",
		Category:    internal.CategoryBaby,
		Address:     "Tabin Shwe Htee Road, Taungoo",
		Phone:       "09-555666777",
		Description: "Everything for your baby - diapers, milk powder, toys, and clothes.",
		ImageURL:    "https://images.unsplash.com/photo-1515488042361-25f4682ae2ed?w=500&q=80",
		MapLink:     "#",
		Rating:      4.6,
		Reviews:     60,
		Price:       "Discount 10%",
	},
	{
		ID:          "5",
		Name:        "Modern Home Furniture",
		Category:    internal.CategoryFurniture,
		Address:     "Yangon-Mandalay Hwy, Taungoo",
		Phone:       "09-222333444",
		Description: "Teak wood beds, sofas, and office furniture.",
		ImageURL:    "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=500&q=80",
		MapLink:     "#",
		Rating:      4.5,
		Reviews:     30,
		Detail:      "https://images.unsplash.com/photo-1618220179428-22790b461013?w=600&q=80",
	},
	{
		ID:          "6",
		Name:        "Fashion Queen",
		Category:    internal.CategoryFashion,
		Address:     "Downtown, Taungoo",
		Phone:       "09-444555666",
		Description: "Trendy women clothes, dresses, and traditional wear.",
		ImageURL:    "https://images.unsplash.com/photo-1483985988355-763728e1935b?w=500&q=80",
		MapLink:     "#",
		Rating:      4.8,
		Reviews:     150,
		Price:       "New Arrival",
	},
	{
		ID:          "7",
		Name:        "Power Electronics",
		Category:    internal.CategoryElectronics,
		Address:     "Electronic Row, Taungoo",
		Phone:       "09-777888999",
		Description: "Air conditioners, Refrigerators, Washing machines and electrical parts.",
		ImageURL:    "https://images.unsplash.com/photo-1550009158-9ebf69173e03?w=500&q=80",
		MapLink:     "#",
		Rating:      4.3,
		Reviews:     40,
	},
	{
		ID:          "8",
		Name:        "Yummy Spicy Noodle",
		Category:    internal.CategoryRestaurant,
		Address:     "Night Market, Taungoo",
		Phone:       "09-123123123",
		Description: "Best Mala Xianguo and spicy noodles in town.",
		ImageURL:    "https://images.unsplash.com/photo-1563379926898-05f4575a45d8?w=500&q=80",
		MapLink:     "#",
		Rating:      4.7,
		Reviews:     200,
		Price:       "3000 Ks per bowl",
	},
}

// SampleBusinesses returns a fresh copy of the baked-in directory.
func SampleBusinesses() []internal.Business {
	out := make([]internal.Business, len(sampleBusinesses))
	copy(out, sampleBusinesses)
	return out
}
