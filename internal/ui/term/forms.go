package term

import (
	"strconv"
	"strings"

	"github.com/chemstack/chemconsole/internal/materials"
	"github.com/chemstack/chemconsole/internal/production"
	"github.com/chemstack/chemconsole/internal/products"
	"github.com/chemstack/chemconsole/internal/purchases"
	"github.com/chemstack/chemconsole/internal/sales"
	"github.com/chemstack/chemconsole/internal/view"
)

// Forms collects editor input from the terminal. Each method prompts field
// by field; an EOF or a lone "." cancels the whole form and returns ok=false.
type Forms struct {
	surface *Surface
}

func NewForms(surface *Surface) *Forms {
	return &Forms{surface: surface}
}

// promptString reads one field. Empty input keeps the default. A "." alone
// cancels the form.
func (f *Forms) promptString(label, def string) (string, bool) {
	if def != "" {
		f.surface.Printf("%s [%s]: ", label, def)
	} else {
		f.surface.Printf("%s: ", label)
	}
	line, err := f.surface.ReadLine()
	if err != nil {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "." {
		return "", false
	}
	if line == "" {
		return def, true
	}
	return line, true
}

func (f *Forms) promptFloat(label string, def float64) (float64, bool) {
	for {
		raw, ok := f.promptString(label, strconv.FormatFloat(def, 'f', -1, 64))
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			f.surface.Printf("not a number: %s\n", raw)
			continue
		}
		return v, true
	}
}

func (f *Forms) promptInt(label string, def int64) (int64, bool) {
	for {
		raw, ok := f.promptString(label, strconv.FormatInt(def, 10))
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			f.surface.Printf("not an integer: %s\n", raw)
			continue
		}
		return v, true
	}
}

func (f *Forms) MaterialForm(existing *materials.Material) (materials.MaterialInput, bool) {
	var def materials.MaterialInput
	if existing != nil {
		def = materials.MaterialInput{
			Name:              existing.Name,
			CASNumber:         existing.CASNumber,
			Unit:              existing.Unit,
			Concentration:     existing.Concentration,
			Category:          existing.Category,
			StorageCondition:  existing.StorageCondition,
			MinStockThreshold: existing.MinStockThreshold,
		}
	}

	var (
		input materials.MaterialInput
		ok    bool
	)
	if input.Name, ok = f.promptString("name", def.Name); !ok {
		return materials.MaterialInput{}, false
	}
	if input.CASNumber, ok = f.promptString("cas_number", def.CASNumber); !ok {
		return materials.MaterialInput{}, false
	}
	if input.Unit, ok = f.promptString("unit", def.Unit); !ok {
		return materials.MaterialInput{}, false
	}
	if input.Concentration, ok = f.promptFloat("concentration", def.Concentration); !ok {
		return materials.MaterialInput{}, false
	}
	if input.Category, ok = f.promptString("category", def.Category); !ok {
		return materials.MaterialInput{}, false
	}
	if input.StorageCondition, ok = f.promptString("storage_condition", def.StorageCondition); !ok {
		return materials.MaterialInput{}, false
	}
	if input.MinStockThreshold, ok = f.promptFloat("min_stock_threshold", def.MinStockThreshold); !ok {
		return materials.MaterialInput{}, false
	}
	return input, true
}

func (f *Forms) ProductForm(existing *products.Product) (products.ProductInput, bool) {
	var def products.ProductInput
	if existing != nil {
		def = products.ProductInput{
			Name:         existing.Name,
			Unit:         existing.Unit,
			HazardRating: existing.HazardRating,
		}
	}

	var (
		input products.ProductInput
		ok    bool
	)
	if input.Name, ok = f.promptString("name", def.Name); !ok {
		return products.ProductInput{}, false
	}
	if input.Unit, ok = f.promptString("unit", def.Unit); !ok {
		return products.ProductInput{}, false
	}
	if input.HazardRating, ok = f.promptString("hazard_rating", def.HazardRating); !ok {
		return products.ProductInput{}, false
	}
	return input, true
}

func (f *Forms) PurchaseForm() (purchases.PurchaseInput, bool) {
	var (
		input purchases.PurchaseInput
		ok    bool
	)
	if input.SupplierID, ok = f.promptInt("supplier_id", 0); !ok {
		return purchases.PurchaseInput{}, false
	}
	if input.Date, ok = f.promptString("date (YYYY-MM-DD)", ""); !ok {
		return purchases.PurchaseInput{}, false
	}
	if input.EmployeeID, ok = f.promptInt("employee_id", 0); !ok {
		return purchases.PurchaseInput{}, false
	}

	lines, ok := collectLines(f, "material", func() (purchases.PurchaseLine, bool) {
		var line purchases.PurchaseLine
		var ok bool
		if line.MaterialID, ok = f.promptInt("  material_id", 0); !ok {
			return purchases.PurchaseLine{}, false
		}
		if line.Quantity, ok = f.promptFloat("  quantity", 0); !ok {
			return purchases.PurchaseLine{}, false
		}
		if line.UnitPrice, ok = f.promptFloat("  unit_price", 0); !ok {
			return purchases.PurchaseLine{}, false
		}
		return line, true
	})
	if !ok {
		return purchases.PurchaseInput{}, false
	}
	input.Materials = lines
	return input, true
}

func (f *Forms) SaleForm() (sales.SaleInput, bool) {
	var (
		input sales.SaleInput
		ok    bool
	)
	if input.CustomerID, ok = f.promptInt("customer_id", 0); !ok {
		return sales.SaleInput{}, false
	}
	if input.Date, ok = f.promptString("date (YYYY-MM-DD)", ""); !ok {
		return sales.SaleInput{}, false
	}
	if input.EmployeeID, ok = f.promptInt("employee_id", 0); !ok {
		return sales.SaleInput{}, false
	}

	lines, ok := collectLines(f, "product", func() (sales.SaleLine, bool) {
		var line sales.SaleLine
		var ok bool
		if line.ProductID, ok = f.promptInt("  product_id", 0); !ok {
			return sales.SaleLine{}, false
		}
		if line.Quantity, ok = f.promptFloat("  quantity", 0); !ok {
			return sales.SaleLine{}, false
		}
		if line.UnitPrice, ok = f.promptFloat("  unit_price", 0); !ok {
			return sales.SaleLine{}, false
		}
		return line, true
	})
	if !ok {
		return sales.SaleInput{}, false
	}
	input.Products = lines
	return input, true
}

func (f *Forms) ProductionForm() (production.ProductionInput, bool) {
	var (
		input production.ProductionInput
		ok    bool
	)
	if input.ProductID, ok = f.promptInt("product_id", 0); !ok {
		return production.ProductionInput{}, false
	}
	if input.LineID, ok = f.promptInt("line_id", 0); !ok {
		return production.ProductionInput{}, false
	}
	if input.Date, ok = f.promptString("date (YYYY-MM-DD)", ""); !ok {
		return production.ProductionInput{}, false
	}
	if input.TheoreticalOutput, ok = f.promptFloat("theoretical_output", 0); !ok {
		return production.ProductionInput{}, false
	}
	if input.ActualOutput, ok = f.promptFloat("actual_output", 0); !ok {
		return production.ProductionInput{}, false
	}

	lines, ok := collectLines(f, "material", func() (production.ProductionLine, bool) {
		var line production.ProductionLine
		var ok bool
		if line.MaterialID, ok = f.promptInt("  material_id", 0); !ok {
			return production.ProductionLine{}, false
		}
		if line.Quantity, ok = f.promptFloat("  quantity", 0); !ok {
			return production.ProductionLine{}, false
		}
		return line, true
	})
	if !ok {
		return production.ProductionInput{}, false
	}
	input.Materials = lines
	return input, true
}

// collectLines drives the line-item loop: one row is started automatically,
// then the user chooses add, del <n>, or done. The result keeps entry order
// and may legitimately end up empty after removals.
func collectLines[T any](f *Forms, noun string, prompt func() (T, bool)) ([]T, bool) {
	form := view.NewLineItemForm[T]()

	add := func() bool {
		f.surface.Printf("%s line %d\n", noun, form.Len()+1)
		value, ok := prompt()
		if !ok {
			return false
		}
		form.Add(value)
		return true
	}

	if !add() {
		return nil, false
	}

	for {
		f.surface.Printf("lines: %d  (add / del <n> / done): ", form.Len())
		line, err := f.surface.ReadLine()
		if err != nil {
			return nil, false
		}
		cmd := strings.Fields(strings.TrimSpace(line))
		switch {
		case len(cmd) == 0, cmd[0] == "done":
			return form.Items(), true
		case cmd[0] == "add":
			if !add() {
				return nil, false
			}
		case cmd[0] == "del" && len(cmd) == 2:
			n, err := strconv.Atoi(cmd[1])
			rows := form.Rows()
			if err != nil || n < 1 || n > len(rows) {
				f.surface.Printf("no such line: %s\n", cmd[1])
				continue
			}
			form.Remove(rows[n-1].ID)
		default:
			f.surface.Printf("unknown input: %s\n", line)
		}
	}
}
