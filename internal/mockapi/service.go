package mockapi

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chemstack/chemconsole/internal/materials"
	"github.com/chemstack/chemconsole/internal/production"
	"github.com/chemstack/chemconsole/internal/products"
	"github.com/chemstack/chemconsole/internal/purchases"
	"github.com/chemstack/chemconsole/internal/sales"
)

var ErrNotFound = errors.New("record not found")

// ErrStock reports insufficient stock for a consuming operation; the handler
// maps it to a 400 with the description in the body.
type ErrStock struct {
	What string
	ID   int64
}

func (e ErrStock) Error() string {
	return fmt.Sprintf("insufficient stock for %s %d", e.What, e.ID)
}

// Service implements the backend's business rules on top of gorm. Composite
// creates and deletes run in transactions so stock adjustments and record
// rows move together.
type Service struct {
	db     *gorm.DB
	tokens *JWTTokenGenerator
	logger *slog.Logger
}

func NewService(db *gorm.DB, tokens *JWTTokenGenerator, logger *slog.Logger) *Service {
	return &Service{db: db, tokens: tokens, logger: logger}
}

// Authenticate checks the password and issues a signed token carrying the
// user's role.
func (s *Service) Authenticate(username, password string) (token, role string, err error) {
	var user User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	token, err = s.tokens.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

func materialDTO(m Material) materials.Material {
	return materials.Material{
		MaterialID:        m.ID,
		Name:              m.Name,
		CASNumber:         m.CASNumber,
		Stock:             m.Stock,
		Unit:              m.Unit,
		Concentration:     m.Concentration,
		Category:          m.Category,
		StorageCondition:  m.StorageCondition,
		MinStockThreshold: m.MinStockThreshold,
	}
}

func (s *Service) ListMaterials() ([]materials.Material, error) {
	var rows []Material
	if err := s.db.Order("material_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]materials.Material, 0, len(rows))
	for _, m := range rows {
		out = append(out, materialDTO(m))
	}
	return out, nil
}

func (s *Service) GetMaterial(id int64) (materials.Material, error) {
	var m Material
	if err := s.db.First(&m, "material_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return materials.Material{}, ErrNotFound
		}
		return materials.Material{}, err
	}
	return materialDTO(m), nil
}

func (s *Service) CreateMaterial(in materials.MaterialInput) error {
	return s.db.Create(&Material{
		Name:              in.Name,
		CASNumber:         in.CASNumber,
		Unit:              in.Unit,
		Concentration:     in.Concentration,
		Category:          in.Category,
		StorageCondition:  in.StorageCondition,
		MinStockThreshold: in.MinStockThreshold,
	}).Error
}

func (s *Service) UpdateMaterial(id int64, in materials.MaterialInput) error {
	res := s.db.Model(&Material{}).Where("material_id = ?", id).Updates(map[string]any{
		"name":                in.Name,
		"cas_number":          in.CASNumber,
		"unit":                in.Unit,
		"concentration":       in.Concentration,
		"category":            in.Category,
		"storage_condition":   in.StorageCondition,
		"min_stock_threshold": in.MinStockThreshold,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) DeleteMaterial(id int64) error {
	res := s.db.Delete(&Material{}, "material_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func productDTO(p Product) products.Product {
	return products.Product{
		ProductID:    p.ID,
		Name:         p.Name,
		Unit:         p.Unit,
		HazardRating: p.HazardRating,
		Stock:        p.Stock,
	}
}

func (s *Service) ListProducts() ([]products.Product, error) {
	var rows []Product
	if err := s.db.Order("product_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]products.Product, 0, len(rows))
	for _, p := range rows {
		out = append(out, productDTO(p))
	}
	return out, nil
}

func (s *Service) GetProduct(id int64) (products.Product, error) {
	var p Product
	if err := s.db.First(&p, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return products.Product{}, ErrNotFound
		}
		return products.Product{}, err
	}
	return productDTO(p), nil
}

func (s *Service) CreateProduct(in products.ProductInput) error {
	return s.db.Create(&Product{
		Name:         in.Name,
		Unit:         in.Unit,
		HazardRating: in.HazardRating,
	}).Error
}

func (s *Service) UpdateProduct(id int64, in products.ProductInput) error {
	res := s.db.Model(&Product{}).Where("product_id = ?", id).Updates(map[string]any{
		"name":          in.Name,
		"unit":          in.Unit,
		"hazard_rating": in.HazardRating,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) DeleteProduct(id int64) error {
	res := s.db.Delete(&Product{}, "product_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListPurchases() ([]purchases.PurchaseRecord, error) {
	var rows []PurchaseRecord
	if err := s.db.Order("record_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]purchases.PurchaseRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, purchases.PurchaseRecord{
			RecordID:   r.ID,
			Date:       r.Date,
			SupplierID: r.SupplierID,
			EmployeeID: r.EmployeeID,
		})
	}
	return out, nil
}

func (s *Service) GetPurchase(id int64) (purchases.PurchaseDetail, error) {
	var detail purchases.PurchaseDetail
	err := s.db.Table("purchase_records").
		Select("purchase_records.record_id, purchase_records.date, purchase_records.supplier_id, suppliers.name AS supplier_name, purchase_records.employee_id, employees.name AS employee_name").
		Joins("LEFT JOIN suppliers ON suppliers.supplier_id = purchase_records.supplier_id").
		Joins("LEFT JOIN employees ON employees.employee_id = purchase_records.employee_id").
		Where("purchase_records.record_id = ?", id).
		Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return purchases.PurchaseDetail{}, ErrNotFound
		}
		return purchases.PurchaseDetail{}, err
	}
	return detail, nil
}

func (s *Service) PurchaseMaterials(id int64) ([]purchases.PurchaseItem, error) {
	var items []purchases.PurchaseItem
	err := s.db.Table("purchase_record_materials").
		Select("purchase_record_materials.material_id, materials.name, purchase_record_materials.quantity, purchase_record_materials.unit_price, materials.unit").
		Joins("LEFT JOIN materials ON materials.material_id = purchase_record_materials.material_id").
		Where("purchase_record_materials.record_id = ?", id).
		Order("purchase_record_materials.id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreatePurchase inserts the record with its lines and increments material
// stock, all in one transaction.
func (s *Service) CreatePurchase(in purchases.PurchaseInput) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		record := PurchaseRecord{Date: in.Date, SupplierID: in.SupplierID, EmployeeID: in.EmployeeID}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for _, line := range in.Materials {
			if err := tx.Create(&PurchaseRecordMaterial{
				RecordID:   record.ID,
				MaterialID: line.MaterialID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
			}).Error; err != nil {
				return err
			}
			res := tx.Model(&Material{}).Where("material_id = ?", line.MaterialID).
				Update("stock", gorm.Expr("stock + ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}

// DeletePurchase removes the record and compensates: stock added by the
// purchase is taken back out.
func (s *Service) DeletePurchase(id int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var record PurchaseRecord
		if err := tx.First(&record, "record_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var lines []PurchaseRecordMaterial
		if err := tx.Where("record_id = ?", id).Find(&lines).Error; err != nil {
			return err
		}
		for _, line := range lines {
			if err := tx.Model(&Material{}).Where("material_id = ?", line.MaterialID).
				Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("record_id = ?", id).Delete(&PurchaseRecordMaterial{}).Error; err != nil {
			return err
		}
		return tx.Delete(&record).Error
	})
}

func (s *Service) ListSales() ([]sales.SaleRecord, error) {
	var rows []SaleRecord
	if err := s.db.Order("record_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]sales.SaleRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, sales.SaleRecord{
			RecordID:   r.ID,
			Date:       r.Date,
			CustomerID: r.CustomerID,
			EmployeeID: r.EmployeeID,
		})
	}
	return out, nil
}

func (s *Service) GetSale(id int64) (sales.SaleDetail, error) {
	var detail sales.SaleDetail
	err := s.db.Table("sale_records").
		Select("sale_records.record_id, sale_records.date, sale_records.customer_id, customers.name AS customer_name, sale_records.employee_id, employees.name AS employee_name").
		Joins("LEFT JOIN customers ON customers.customer_id = sale_records.customer_id").
		Joins("LEFT JOIN employees ON employees.employee_id = sale_records.employee_id").
		Where("sale_records.record_id = ?", id).
		Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sales.SaleDetail{}, ErrNotFound
		}
		return sales.SaleDetail{}, err
	}
	return detail, nil
}

func (s *Service) SaleProducts(id int64) ([]sales.SaleItem, error) {
	var items []sales.SaleItem
	err := s.db.Table("sale_record_products").
		Select("sale_record_products.product_id, products.name, sale_record_products.quantity, sale_record_products.unit_price, products.unit").
		Joins("LEFT JOIN products ON products.product_id = sale_record_products.product_id").
		Where("sale_record_products.record_id = ?", id).
		Order("sale_record_products.id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreateSale inserts the record with its lines and decrements product stock.
// A line that would drive stock negative fails the whole transaction.
func (s *Service) CreateSale(in sales.SaleInput) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		record := SaleRecord{Date: in.Date, CustomerID: in.CustomerID, EmployeeID: in.EmployeeID}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for _, line := range in.Products {
			if err := tx.Create(&SaleRecordProduct{
				RecordID:  record.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}).Error; err != nil {
				return err
			}
			var product Product
			if err := tx.First(&product, "product_id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if product.Stock < line.Quantity {
				return ErrStock{What: "product", ID: line.ProductID}
			}
			if err := tx.Model(&Product{}).Where("product_id = ?", line.ProductID).
				Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteSale removes the record and restores the product stock it consumed.
func (s *Service) DeleteSale(id int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var record SaleRecord
		if err := tx.First(&record, "record_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var lines []SaleRecordProduct
		if err := tx.Where("record_id = ?", id).Find(&lines).Error; err != nil {
			return err
		}
		for _, line := range lines {
			if err := tx.Model(&Product{}).Where("product_id = ?", line.ProductID).
				Update("stock", gorm.Expr("stock + ?", line.Quantity)).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("record_id = ?", id).Delete(&SaleRecordProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&record).Error
	})
}

func (s *Service) ListProduction() ([]production.ProductionRecord, error) {
	var rows []production.ProductionRecord
	err := s.db.Table("production_records").
		Select("production_records.record_id, production_records.date, products.name AS product_name, production_lines.name AS line_name, production_records.theoretical_output, production_records.actual_output").
		Joins("LEFT JOIN products ON products.product_id = production_records.product_id").
		Joins("LEFT JOIN production_lines ON production_lines.line_id = production_records.line_id").
		Order("production_records.record_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) GetProduction(id int64) (production.ProductionDetail, error) {
	var detail production.ProductionDetail
	err := s.db.Table("production_records").
		Select("production_records.record_id, production_records.date, production_records.product_id, products.name AS product_name, production_records.line_id, production_lines.name AS line_name, production_records.theoretical_output, production_records.actual_output").
		Joins("LEFT JOIN products ON products.product_id = production_records.product_id").
		Joins("LEFT JOIN production_lines ON production_lines.line_id = production_records.line_id").
		Where("production_records.record_id = ?", id).
		Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return production.ProductionDetail{}, ErrNotFound
		}
		return production.ProductionDetail{}, err
	}
	return detail, nil
}

func (s *Service) ProductionMaterials(id int64) ([]production.ProductionItem, error) {
	var items []production.ProductionItem
	err := s.db.Table("production_record_materials").
		Select("production_record_materials.material_id, materials.name AS material_name, production_record_materials.quantity_used, materials.unit").
		Joins("LEFT JOIN materials ON materials.material_id = production_record_materials.material_id").
		Where("production_record_materials.record_id = ?", id).
		Order("production_record_materials.id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreateProduction consumes material stock and credits the product with the
// actual output, all in one transaction. There is no delete counterpart:
// production history is immutable.
func (s *Service) CreateProduction(in production.ProductionInput) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		record := ProductionRecord{
			Date:              in.Date,
			ProductID:         in.ProductID,
			LineID:            in.LineID,
			TheoreticalOutput: in.TheoreticalOutput,
			ActualOutput:      in.ActualOutput,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		for _, line := range in.Materials {
			if err := tx.Create(&ProductionRecordMaterial{
				RecordID:   record.ID,
				MaterialID: line.MaterialID,
				Quantity:   line.Quantity,
			}).Error; err != nil {
				return err
			}
			var material Material
			if err := tx.First(&material, "material_id = ?", line.MaterialID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if material.Stock < line.Quantity {
				return ErrStock{What: "material", ID: line.MaterialID}
			}
			if err := tx.Model(&Material{}).Where("material_id = ?", line.MaterialID).
				Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&Product{}).Where("product_id = ?", in.ProductID).
			Update("stock", gorm.Expr("stock + ?", in.ActualOutput))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
