package domain

// FavoritePairing records that a user chose a substitute for a product.
// Both products are referenced by code and must already exist in the product
// store. At most one pairing is stored per (user, product, substitute) triple.
type FavoritePairing struct {
	UserID         string `json:"userId"`
	ProductCode    string `json:"productCode"`
	SubstituteCode string `json:"substituteCode"`
}

// FavoriteEntry is one listed pairing with both product records resolved.
type FavoriteEntry struct {
	Product    Product `json:"product"`
	Substitute Product `json:"substitute"`
}
