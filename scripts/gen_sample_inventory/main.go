package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"mini-inventory/internal/catalog"
	"mini-inventory/internal/codec"
	"mini-inventory/internal/model"
	"mini-inventory/internal/storage"

	"github.com/rs/zerolog"
)

// Writes a sample inventory in both the plain and the gzip-compressed flat-file
// format, for use with INVENTORY_FILE or the inventory command's -file flag.
func main() {
	dataDir := "data"

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
	store := storage.NewFileStore(dataDir, logger)

	cat := catalog.New()
	for _, in := range []model.ProductInput{
		{Name: "Laptop", Quantity: 10, Price: 350, Category: "Electronics"},
		{Name: "Iphone", Quantity: 10, Price: 800, Category: "Electronics"},
		{Name: "Airpods", Quantity: 10, Price: 290, Category: "Electronics"},
		{Name: "Desk Chair", Quantity: 4, Price: 129.99, Category: "Furniture"},
		{Name: "Notebook", Quantity: 250, Price: 2.5, Category: "Stationery"},
	} {
		cat.Add(in)
	}

	ctx := context.Background()
	for _, name := range []string{"inventory.txt", "inventory.txt.gz"} {
		if err := codec.Save(ctx, store, name, cat.All()); err != nil {
			log.Fatalf("Failed to create %s: %v", name, err)
		}
		fmt.Printf("Created %s/%s with %d products\n", dataDir, name, cat.Len())
	}

	fmt.Println("\nSample inventory files created successfully!")
}
