package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/config"
	"inventory/models"
)

// CheckLowStock scans the catalog for products at or below their minimum
// quantity and emails a digest to ALERT_EMAIL. Runs daily from the scheduler
// in main.
func CheckLowStock() {
	log.Println("Running low-stock check")

	to := os.Getenv("ALERT_EMAIL")
	if to == "" {
		log.Println("ALERT_EMAIL not set, skipping low-stock digest")
		return
	}

	filter := bson.M{"$expr": bson.M{"$lte": []string{"$quantity", "$minquantity"}}}
	opts := options.Find().SetSort(bson.M{"quantity": 1})

	cursor, err := config.ProductCollection.Find(context.TODO(), filter, opts)
	if err != nil {
		log.Printf("Low-stock query failed: %v", err)
		return
	}
	defer cursor.Close(context.TODO())

	var lines []string
	for cursor.Next(context.TODO()) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%s): %.0f left, minimum %.0f",
			product.Name, product.SKU, product.Quantity, product.MinQuantity))
	}
	if err := cursor.Err(); err != nil {
		log.Printf("Low-stock cursor error: %v", err)
		return
	}

	if len(lines) == 0 {
		log.Println("No low-stock products, digest skipped")
		return
	}

	body := fmt.Sprintf("%d product(s) need restocking:\n\n%s\n", len(lines), strings.Join(lines, "\n"))
	if err := SendEmail(to, "Low stock digest", body); err != nil {
		log.Printf("Failed to send low-stock digest: %v", err)
		return
	}

	log.Printf("Low-stock digest sent, %d product(s)", len(lines))
}
