package purchases

import "strconv"

// PurchaseRecord is one row of the purchase record list.
type PurchaseRecord struct {
	RecordID   int64  `json:"record_id"`
	Date       string `json:"date"`
	SupplierID int64  `json:"supplier_id"`
	EmployeeID int64  `json:"employee_id"`
}

// PurchaseDetail is the joined detail row for a single record.
type PurchaseDetail struct {
	RecordID     int64  `json:"record_id"`
	Date         string `json:"date"`
	SupplierID   int64  `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}

// PurchaseLine is one material line of a new purchase record, sent verbatim
// in the order the form collected it.
type PurchaseLine struct {
	MaterialID int64   `json:"material_id"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

// PurchaseItem is one row of the record's nested material list.
type PurchaseItem struct {
	MaterialID int64   `json:"material_id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Unit       string  `json:"unit"`
}

// PurchaseInput is the create payload. Materials may legitimately be empty:
// the console performs no minimum-row validation and lets the backend decide.
type PurchaseInput struct {
	SupplierID int64          `json:"supplier_id"`
	Date       string         `json:"date"`
	EmployeeID int64          `json:"employee_id"`
	Materials  []PurchaseLine `json:"materials"`
}

func Columns() []string {
	return []string{"record_id", "date", "supplier_id", "employee_id"}
}

func Cells(r PurchaseRecord) []string {
	return []string{
		strconv.FormatInt(r.RecordID, 10),
		r.Date,
		strconv.FormatInt(r.SupplierID, 10),
		strconv.FormatInt(r.EmployeeID, 10),
	}
}

// ItemColumns are the nested material list's column keys.
func ItemColumns() []string {
	return []string{"material_id", "name", "quantity", "unit", "unit_price"}
}

func ItemCells(it PurchaseItem) []string {
	return []string{
		strconv.FormatInt(it.MaterialID, 10),
		it.Name,
		strconv.FormatFloat(it.Quantity, 'f', -1, 64),
		it.Unit,
		strconv.FormatFloat(it.UnitPrice, 'f', -1, 64),
	}
}
