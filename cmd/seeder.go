package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chemstack/chemconsole/internal/mockapi"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the mock backend database with demo users and inventory for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := openMockDB(cfg.MockAPI)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"production_record_materials", "production_records",
				"sale_record_products", "sale_records",
				"purchase_record_materials", "purchase_records",
				"materials", "products",
				"suppliers", "customers", "employees", "production_lines",
				"users",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []mockapi.User{
			{Username: "admin", Role: "admin"},
			{Username: "buyer", Role: "buyer"},
			{Username: "distributor", Role: "distributor"},
			{Username: "worker", Role: "worker"},
		}
		for _, u := range users {
			var exists int64
			db.Model(&mockapi.User{}).Where("username = ?", u.Username).Count(&exists)
			if exists > 0 {
				fmt.Printf("user %s already exists, skipping\n", u.Username)
				continue
			}
			u.PasswordHash = string(hash)
			if err := db.Create(&u).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Username, u.Role)
		}

		seedIfEmpty(db, &mockapi.Supplier{}, []mockapi.Supplier{
			{Name: "Northchem Supply Co."},
			{Name: "Hualin Reagents"},
		}, "suppliers")

		seedIfEmpty(db, &mockapi.Customer{}, []mockapi.Customer{
			{Name: "Brightwater Coatings"},
			{Name: "Delta Agro Ltd."},
		}, "customers")

		seedIfEmpty(db, &mockapi.Employee{}, []mockapi.Employee{
			{Name: "Chen Wei"},
			{Name: "Maria Lopez"},
		}, "employees")

		seedIfEmpty(db, &mockapi.ProductionFacility{}, []mockapi.ProductionFacility{
			{Name: "Line A"},
			{Name: "Line B"},
		}, "production lines")

		seedIfEmpty(db, &mockapi.Material{}, []mockapi.Material{
			{Name: "Sulfuric Acid", CASNumber: "7664-93-9", Stock: 500, Unit: "kg", Concentration: 98, Category: "acid", StorageCondition: "cool, ventilated", MinStockThreshold: 100},
			{Name: "Sodium Hydroxide", CASNumber: "1310-73-2", Stock: 300, Unit: "kg", Concentration: 99, Category: "base", StorageCondition: "dry", MinStockThreshold: 50},
			{Name: "Ethanol", CASNumber: "64-17-5", Stock: 800, Unit: "L", Concentration: 95, Category: "solvent", StorageCondition: "flammables cabinet", MinStockThreshold: 200},
		}, "materials")

		seedIfEmpty(db, &mockapi.Product{}, []mockapi.Product{
			{Name: "Sodium Sulfate", Unit: "kg", HazardRating: "low", Stock: 120},
			{Name: "Industrial Cleaner", Unit: "L", HazardRating: "medium", Stock: 60},
		}, "products")

		fmt.Println("Seeding complete")
	},
}

func seedIfEmpty[T any](db *gorm.DB, model *T, rows []T, what string) {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		log.Fatalf("failed to count %s: %v", what, err)
	}
	if count > 0 {
		fmt.Printf("%s already present, skipping\n", what)
		return
	}
	if err := db.Create(&rows).Error; err != nil {
		log.Fatalf("failed to seed %s: %v", what, err)
	}
	fmt.Printf("Seeded %d %s\n", len(rows), what)
}
