package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ikkim/marketplace-backend/config"
	"github.com/ikkim/marketplace-backend/internal/app/repository"
	"github.com/ikkim/marketplace-backend/internal/app/service"
	"github.com/ikkim/marketplace-backend/internal/db"
	"github.com/ikkim/marketplace-backend/pkg/sheet"
	"gorm.io/gorm"
)

func main() {
	filePath := flag.String("file", "", "xlsx workbook of listings to import")
	ownerEmail := flag.String("owner", "", "email of the user who will own the imported listings")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	handle, err := db.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(handle)

	if err := db.Migrate(handle); err != nil {
		log.Fatal("Failed to migrate:", err)
	}
	if err := db.SeedCategories(handle); err != nil {
		log.Fatal("Failed to seed categories:", err)
	}
	fmt.Println("Categories seeded.")

	if *filePath == "" {
		return
	}
	if *ownerEmail == "" {
		log.Fatal("-owner is required when -file is given")
	}

	if err := importListings(handle, *filePath, *ownerEmail, *yes); err != nil {
		log.Fatal("Import failed:", err)
	}
}

func importListings(handle *gorm.DB, filePath, ownerEmail string, skipConfirm bool) error {
	userRepo := repository.NewUserRepository(handle)
	categoryRepo := repository.NewCategoryRepository(handle)
	productService := service.NewProductService(repository.NewProductRepository(handle), categoryRepo)

	owner, err := userRepo.FindByEmail(ownerEmail)
	if err != nil {
		return fmt.Errorf("owner %s: %w", ownerEmail, err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	listings, err := sheet.ReadListings(f)
	if err != nil {
		return err
	}

	categories, err := categoryRepo.FindAll()
	if err != nil {
		return err
	}
	ids := make(map[string]uint, len(categories))
	for _, c := range categories {
		ids[strings.ToLower(c.Name)] = c.ID
	}

	inputs := make([]service.CreateProductInput, 0, len(listings))
	for i, l := range listings {
		categoryID, ok := ids[strings.ToLower(strings.TrimSpace(l.Category))]
		if !ok {
			return fmt.Errorf("listing %d: unknown category %q", i+1, l.Category)
		}
		price := l.Price
		inputs = append(inputs, service.CreateProductInput{
			Title:       l.Title,
			Description: l.Description,
			Price:       &price,
			CategoryID:  categoryID,
			ImageURL:    l.ImageURL,
		})
	}

	fmt.Printf("Total listings to import for %s: %d\n", owner.Email, len(inputs))
	if !skipConfirm && !confirm() {
		fmt.Println("Import cancelled.")
		return nil
	}

	created, err := productService.ImportListings(owner.ID, inputs)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d listings.\n", len(created))
	return nil
}

func confirm() bool {
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "yes" || answer == "y"
}
