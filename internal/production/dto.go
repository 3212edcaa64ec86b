package production

import "strconv"

// ProductionRecord is one row of the production record list; the backend
// joins product and line names in.
type ProductionRecord struct {
	RecordID          int64   `json:"record_id"`
	Date              string  `json:"date"`
	ProductName       string  `json:"product_name"`
	LineName          string  `json:"line_name"`
	TheoreticalOutput float64 `json:"theoretical_output"`
	ActualOutput      float64 `json:"actual_output"`
}

type ProductionDetail struct {
	RecordID          int64   `json:"record_id"`
	Date              string  `json:"date"`
	ProductID         int64   `json:"product_id"`
	ProductName       string  `json:"product_name"`
	LineID            int64   `json:"line_id"`
	LineName          string  `json:"line_name"`
	TheoreticalOutput float64 `json:"theoretical_output"`
	ActualOutput      float64 `json:"actual_output"`
}

// ProductionLine is one material-usage line of a new production record. No
// unit price: consumption, not trade.
type ProductionLine struct {
	MaterialID int64   `json:"material_id"`
	Quantity   float64 `json:"quantity"`
}

// ProductionItem is one row of the record's nested material-usage list.
type ProductionItem struct {
	MaterialID   int64   `json:"material_id"`
	MaterialName string  `json:"material_name"`
	QuantityUsed float64 `json:"quantity_used"`
	Unit         string  `json:"unit"`
}

type ProductionInput struct {
	ProductID         int64            `json:"product_id"`
	LineID            int64            `json:"line_id"`
	Date              string           `json:"date"`
	TheoreticalOutput float64          `json:"theoretical_output"`
	ActualOutput      float64          `json:"actual_output"`
	Materials         []ProductionLine `json:"materials"`
}

func Columns() []string {
	return []string{"record_id", "date", "product_name", "line_name", "theoretical_output", "actual_output"}
}

func Cells(r ProductionRecord) []string {
	return []string{
		strconv.FormatInt(r.RecordID, 10),
		r.Date,
		r.ProductName,
		r.LineName,
		strconv.FormatFloat(r.TheoreticalOutput, 'f', -1, 64),
		strconv.FormatFloat(r.ActualOutput, 'f', -1, 64),
	}
}

func ItemColumns() []string {
	return []string{"material_id", "material_name", "quantity_used", "unit"}
}

func ItemCells(it ProductionItem) []string {
	return []string{
		strconv.FormatInt(it.MaterialID, 10),
		it.MaterialName,
		strconv.FormatFloat(it.QuantityUsed, 'f', -1, 64),
		it.Unit,
	}
}
