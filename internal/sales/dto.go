package sales

import "strconv"

// SaleRecord is one row of the sale record list.
type SaleRecord struct {
	RecordID   int64  `json:"record_id"`
	Date       string `json:"date"`
	CustomerID int64  `json:"customer_id"`
	EmployeeID int64  `json:"employee_id"`
}

type SaleDetail struct {
	RecordID     int64  `json:"record_id"`
	Date         string `json:"date"`
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}

// SaleLine is one product line of a new sale record.
type SaleLine struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// SaleItem is one row of the record's nested product list.
type SaleItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Unit      string  `json:"unit"`
}

// SaleInput is the create payload; Products is sent verbatim, empty or not.
type SaleInput struct {
	CustomerID int64      `json:"customer_id"`
	Date       string     `json:"date"`
	EmployeeID int64      `json:"employee_id"`
	Products   []SaleLine `json:"products"`
}

func Columns() []string {
	return []string{"record_id", "date", "customer_id", "employee_id"}
}

func Cells(r SaleRecord) []string {
	return []string{
		strconv.FormatInt(r.RecordID, 10),
		r.Date,
		strconv.FormatInt(r.CustomerID, 10),
		strconv.FormatInt(r.EmployeeID, 10),
	}
}

func ItemColumns() []string {
	return []string{"product_id", "name", "quantity", "unit", "unit_price"}
}

func ItemCells(it SaleItem) []string {
	return []string{
		strconv.FormatInt(it.ProductID, 10),
		it.Name,
		strconv.FormatFloat(it.Quantity, 'f', -1, 64),
		it.Unit,
		strconv.FormatFloat(it.UnitPrice, 'f', -1, 64),
	}
}
