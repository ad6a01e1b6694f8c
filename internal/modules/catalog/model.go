package catalog

// SupplierProduct mirrors the affiliate API product payload. Prices arrive
// as decimal strings and are parsed during transformation; an unparsable
// price becomes 0 rather than failing the whole page.
type SupplierProduct struct {
	ProductID   string `json:"product_id"`
	Title       string `json:"product_title"`
	Description string `json:"product_description"`
	SalePrice   string `json:"target_app_sale_price"`
	Currency    string `json:"target_app_sale_price_currency"`
	MainImage   string `json:"product_main_image_url"`
	SmallImages struct {
		String []string `json:"string"`
	} `json:"product_small_image_urls"`
	Rating        float64       `json:"evaluation_rating"`
	SaleCount     int           `json:"target_app_sale_count"`
	CategoryID    string        `json:"category_id"`
	PromotionLink string        `json:"promotion_link"`
	Specs         []ProductSpec `json:"product_specs"`
	ShipToDays    string        `json:"ship_to_days"`
}

// SupplierProductsResponse is the envelope of the product query and
// product details supplier methods.
type SupplierProductsResponse struct {
	Products         []SupplierProduct `json:"products"`
	TotalRecordCount int               `json:"total_record_count"`
}

// SupplierCategory mirrors one entry of the supplier's flat category list.
// Level and leaf flags are string-encoded on the wire.
type SupplierCategory struct {
	ID       string `json:"category_id"`
	Name     string `json:"category_name"`
	Level    string `json:"category_level"`
	ParentID string `json:"parent_category_id"`
	IsLeaf   string `json:"is_leaf_category"`
}

// SupplierCategoriesResponse is the envelope of the category listing method.
type SupplierCategoriesResponse struct {
	Categories struct {
		List []SupplierCategory `json:"category_list"`
	} `json:"categories"`
}

// ProductSpec is a single name/value product attribute.
type ProductSpec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is the storefront product shape: supplier fields renamed, the
// markup applied, and a storefront-relative URL attached.
type Product struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	OriginalPrice    float64       `json:"originalPrice"`
	Price            float64       `json:"price"`
	Currency         string        `json:"currency"`
	ImageURL         string        `json:"imageUrl"`
	AdditionalImages []string      `json:"additionalImages"`
	Rating           float64       `json:"rating"`
	TotalOrders      int           `json:"totalOrders"`
	CategoryID       string        `json:"categoryId"`
	OriginalURL      string        `json:"originalUrl"`
	BazaarURL        string        `json:"bazaarUrl"`
	Specs            []ProductSpec `json:"specs"`
	ShippingInfo     string        `json:"shippingInfo"`
}

// Category is the storefront category shape. Subcategory listings are
// computed per request by filtering on ParentID; no tree is materialized.
type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Level    string  `json:"level"`
	ParentID *string `json:"parentId"`
	IsLeaf   bool    `json:"isLeaf"`
}
