package mockapi

// gorm models for the development backend. Column names follow the wire
// field names the console expects, so list queries can select straight into
// response DTOs.

type User struct {
	ID           int64  `gorm:"column:user_id;primaryKey"`
	Username     string `gorm:"column:username;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash"`
	Role         string `gorm:"column:role"`
}

type Supplier struct {
	ID   int64  `gorm:"column:supplier_id;primaryKey"`
	Name string `gorm:"column:name"`
}

type Customer struct {
	ID   int64  `gorm:"column:customer_id;primaryKey"`
	Name string `gorm:"column:name"`
}

type Employee struct {
	ID   int64  `gorm:"column:employee_id;primaryKey"`
	Name string `gorm:"column:name"`
}

type ProductionFacility struct {
	ID   int64  `gorm:"column:line_id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (ProductionFacility) TableName() string { return "production_lines" }

type Material struct {
	ID                int64   `gorm:"column:material_id;primaryKey"`
	Name              string  `gorm:"column:name"`
	CASNumber         string  `gorm:"column:cas_number"`
	Stock             float64 `gorm:"column:stock"`
	Unit              string  `gorm:"column:unit"`
	Concentration     float64 `gorm:"column:concentration"`
	Category          string  `gorm:"column:category"`
	StorageCondition  string  `gorm:"column:storage_condition"`
	MinStockThreshold float64 `gorm:"column:min_stock_threshold"`
}

type Product struct {
	ID           int64   `gorm:"column:product_id;primaryKey"`
	Name         string  `gorm:"column:name"`
	Unit         string  `gorm:"column:unit"`
	HazardRating string  `gorm:"column:hazard_rating"`
	Stock        float64 `gorm:"column:stock"`
}

type PurchaseRecord struct {
	ID         int64  `gorm:"column:record_id;primaryKey"`
	Date       string `gorm:"column:date"`
	SupplierID int64  `gorm:"column:supplier_id"`
	EmployeeID int64  `gorm:"column:employee_id"`
}

type PurchaseRecordMaterial struct {
	ID         int64   `gorm:"column:id;primaryKey"`
	RecordID   int64   `gorm:"column:record_id;index"`
	MaterialID int64   `gorm:"column:material_id"`
	Quantity   float64 `gorm:"column:quantity"`
	UnitPrice  float64 `gorm:"column:unit_price"`
}

type SaleRecord struct {
	ID         int64  `gorm:"column:record_id;primaryKey"`
	Date       string `gorm:"column:date"`
	CustomerID int64  `gorm:"column:customer_id"`
	EmployeeID int64  `gorm:"column:employee_id"`
}

type SaleRecordProduct struct {
	ID        int64   `gorm:"column:id;primaryKey"`
	RecordID  int64   `gorm:"column:record_id;index"`
	ProductID int64   `gorm:"column:product_id"`
	Quantity  float64 `gorm:"column:quantity"`
	UnitPrice float64 `gorm:"column:unit_price"`
}

type ProductionRecord struct {
	ID                int64   `gorm:"column:record_id;primaryKey"`
	Date              string  `gorm:"column:date"`
	ProductID         int64   `gorm:"column:product_id"`
	LineID            int64   `gorm:"column:line_id"`
	TheoreticalOutput float64 `gorm:"column:theoretical_output"`
	ActualOutput      float64 `gorm:"column:actual_output"`
}

type ProductionRecordMaterial struct {
	ID         int64   `gorm:"column:id;primaryKey"`
	RecordID   int64   `gorm:"column:record_id;index"`
	MaterialID int64   `gorm:"column:material_id"`
	Quantity   float64 `gorm:"column:quantity_used"`
}
