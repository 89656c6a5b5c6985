package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/eezystore/eezystore-backend/config"
	"github.com/eezystore/eezystore-backend/internal/app/model"
	"github.com/eezystore/eezystore-backend/internal/app/repository"
	"github.com/eezystore/eezystore-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Imports the product catalog from an XLSX file with the columns:
// name, description, price, image.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 100
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seen := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 3 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		priceStr := strings.TrimSpace(row[2])

		image := ""
		if len(row) > 3 {
			image = strings.TrimSpace(row[3])
		}

		if name == "" || priceStr == "" {
			skippedCount++
			continue
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			skippedCount++
			continue
		}

		// Duplicate names within the file are skipped
		if seen[name] {
			skippedCount++
			continue
		}
		seen[name] = true

		products = append(products, model.Product{
			Name:        name,
			Description: description,
			Price:       price,
			Image:       image,
		})
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return products, nil
}
