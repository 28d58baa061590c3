package mongo

import (
	"log"

	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/models"
)

func floatPtr(f float64) *float64 { return &f }

var initialProducts = []models.CreateProductRequest{
	{
		Name:          "Pro Performance Jacket",
		Price:         129.99,
		OriginalPrice: floatPtr(179.99),
		Category:      "Apparel",
		Description:   "Professional skating jacket with moisture-wicking fabric and thermal insulation. Perfect for training sessions and casual skating.",
		StockQuantity: 50,
		SKU:           "JACKET-001",
	},
	{
		Name:          "Elite Figure Skates",
		Price:         349.99,
		OriginalPrice: floatPtr(449.99),
		Category:      "Ice Skates",
		Description:   "Professional-grade figure skates with premium leather boots and precision-ground blades. Designed for optimal performance and comfort.",
		StockQuantity: 30,
		SKU:           "SKATES-001",
	},
	{
		Name:          "Training Blade Guards",
		Price:         49.99,
		OriginalPrice: floatPtr(69.99),
		Category:      "Accessories",
		Description:   "High-quality blade guards to protect your skate blades when walking off the ice. Essential for maintaining blade sharpness.",
		StockQuantity: 100,
		SKU:           "GUARDS-001",
	},
	{
		Name:          "Pro Skating Gloves",
		Price:         39.99,
		OriginalPrice: floatPtr(59.99),
		Category:      "Protective Gear",
		Description:   "Insulated skating gloves with grip enhancement. Keep your hands warm while maintaining dexterity for spins and jumps.",
		StockQuantity: 75,
		SKU:           "GLOVES-001",
	},
}

var initialMemberships = []models.Membership{
	{
		Name:         "Silver Membership",
		Description:  "Entry-level club membership with member pricing on lessons.",
		Price:        29.99,
		DurationDays: 30,
		Benefits:     []string{"Member pricing on group lessons", "10% off accessories"},
		Icon:         "Star",
		Color:        "silver",
		IsActive:     true,
	},
	{
		Name:         "Gold Membership",
		Description:  "Quarterly membership with rink priority booking.",
		Price:        79.99,
		DurationDays: 90,
		Benefits:     []string{"Priority rink booking", "15% off all gear", "Free blade sharpening"},
		Icon:         "Crown",
		Color:        "gold",
		IsActive:     true,
	},
}

// SeedDemoData populates the catalog and membership plans on first startup.
// Best effort: any failure is logged and never blocks the server.
func SeedDemoData() {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	productCount, err := countProducts()
	if err != nil {
		log.Printf("Warning: demo seed skipped, could not count products: %v", err)
		return
	}
	if productCount == 0 {
		log.Println("Seeding initial products...")
		for i := range initialProducts {
			if _, err := CreateProduct(ctx, &initialProducts[i]); err != nil {
				log.Printf("Warning: failed to seed product %s: %v", initialProducts[i].SKU, err)
			}
		}
	}

	membershipCount, err := countMemberships()
	if err != nil {
		log.Printf("Warning: demo seed skipped, could not count memberships: %v", err)
		return
	}
	if membershipCount == 0 {
		log.Println("Seeding initial membership plans...")
		for i := range initialMemberships {
			plan := initialMemberships[i]
			if _, err := CreateMembership(ctx, &plan); err != nil {
				log.Printf("Warning: failed to seed membership %s: %v", plan.Name, err)
			}
		}
	}
}
