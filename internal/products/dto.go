package products

import "strconv"

// Product mirrors the backend's ChemicalProduct rows. Stock is maintained by
// the backend's production and sale bookkeeping.
type Product struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	HazardRating string  `json:"hazard_rating"`
	Stock        float64 `json:"stock"`
}

// ProductInput is the create/update payload.
type ProductInput struct {
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	HazardRating string `json:"hazard_rating"`
}

func Columns() []string {
	return []string{"product_id", "name", "unit", "hazard_rating", "stock"}
}

func Cells(p Product) []string {
	return []string{
		strconv.FormatInt(p.ProductID, 10),
		p.Name,
		p.Unit,
		p.HazardRating,
		strconv.FormatFloat(p.Stock, 'f', -1, 64),
	}
}
