package catalog

import "strings"

// Keyword denylist for products that cannot be sold in Saudi Arabia,
// collected from the ZATCA prohibited-imports guidance. Matching is a
// case-insensitive substring check over title + description, so a keyword
// embedded in a longer word still matches. Entries are stored lowercase.
var prohibitedKeywords = []string{
	// religious and cultural items
	"صليب", "cross", "تماثيل دينية", "religious statues", "أصنام", "idols",
	"مصاحف محرفة", "altered quran", "كتب مخالفة للإسلام", "anti-islamic books",

	// alcohol and narcotics
	"كحول", "alcohol", "خمر", "wine", "بيرة", "beer", "ويسكي", "whiskey", "فودكا", "vodka",
	"مخدرات", "drugs", "حشيش", "cannabis", "ماريجوانا", "marijuana",

	// electronic tobacco
	"سجائر إلكترونية", "e-cigarettes", "vape", "فيب", "شيشة إلكترونية", "electronic hookah",

	// weapons and explosives
	"سلاح", "weapon", "مسدس", "gun", "بندقية", "rifle", "ذخيرة", "ammunition",
	"متفجرات", "explosives", "ألعاب نارية", "fireworks",

	// adult content
	"إباحي", "pornographic", "جنسي صريح", "explicit sexual",

	// gambling
	"قمار", "gambling", "روليت", "roulette", "آلات القمار", "slot machines",

	// counterfeits
	"مقلد", "counterfeit", "مزيف", "fake", "تقليد ماركات", "brand imitation",

	// surveillance
	"تجسس", "spy", "تنصت", "eavesdropping", "كاميرا مخفية", "hidden camera",

	// regulated electronics
	"كاسر إشارة", "signal jammer", "مكبر إشارة غير مرخص", "unlicensed signal booster",

	// protected animal products
	"عاج", "ivory", "جلد تمساح", "crocodile skin", "فراء حيوانات نادرة", "rare animal fur",
}

// Category denylist. These ids are blocked regardless of title or
// description.
var prohibitedCategories = map[string]struct{}{
	"100001": {}, // alcoholic beverages
	"100002": {}, // weapons
	"100003": {}, // adult products
	"100004": {}, // gambling
}

// IsProhibited reports whether a product may not be listed: its category is
// denylisted, or its title/description contains a denylisted keyword.
// Missing text fields are treated as empty strings.
func IsProhibited(p Product) bool {
	if _, blocked := prohibitedCategories[p.CategoryID]; blocked {
		return true
	}
	text := strings.ToLower(p.Title + " " + p.Description)
	for _, keyword := range prohibitedKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// FilterProhibited returns the allowed subsequence of products, preserving
// their relative order.
func FilterProhibited(products []Product) []Product {
	allowed := make([]Product, 0, len(products))
	for _, p := range products {
		if !IsProhibited(p) {
			allowed = append(allowed, p)
		}
	}
	return allowed
}
