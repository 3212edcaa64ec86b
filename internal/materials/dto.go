package materials

import "strconv"

// Material mirrors the backend's ChemicalMaterial rows. Stock is maintained
// by the backend and never written by the console.
type Material struct {
	MaterialID        int64   `json:"material_id"`
	Name              string  `json:"name"`
	CASNumber         string  `json:"cas_number"`
	Stock             float64 `json:"stock"`
	Unit              string  `json:"unit"`
	Concentration     float64 `json:"concentration"`
	Category          string  `json:"category"`
	StorageCondition  string  `json:"storage_condition"`
	MinStockThreshold float64 `json:"min_stock_threshold"`
}

// MaterialInput is the create/update payload.
type MaterialInput struct {
	Name              string  `json:"name"`
	CASNumber         string  `json:"cas_number"`
	Unit              string  `json:"unit"`
	Concentration     float64 `json:"concentration"`
	Category          string  `json:"category"`
	StorageCondition  string  `json:"storage_condition"`
	MinStockThreshold float64 `json:"min_stock_threshold"`
}

// Columns are the list view's column keys, in render order.
func Columns() []string {
	return []string{
		"material_id", "name", "cas_number", "stock", "unit",
		"concentration", "category", "storage_condition", "min_stock_threshold",
	}
}

// Cells renders a material into one table row, aligned with Columns.
func Cells(m Material) []string {
	return []string{
		strconv.FormatInt(m.MaterialID, 10),
		m.Name,
		m.CASNumber,
		strconv.FormatFloat(m.Stock, 'f', -1, 64),
		m.Unit,
		strconv.FormatFloat(m.Concentration, 'f', -1, 64),
		m.Category,
		m.StorageCondition,
		strconv.FormatFloat(m.MinStockThreshold, 'f', -1, 64),
	}
}
