package db

import (
	"log"
	"os"

	"tg_miniapp/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	db_host := os.Getenv("DB_HOST")
	db_user := os.Getenv("DB_USER")
	db_password := os.Getenv("DB_PASSWORD")
	db_name := os.Getenv("DB_NAME")
	db_port := os.Getenv("DB_PORT")

	dsn := "host=" + db_host + " user=" + db_user + " password=" + db_password + " dbname=" + db_name + " port=" + db_port + " sslmode=disable"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Ошибка подключения к базе:", err)
	}
	return db, err
}

// Migrate - создает таблицы и составной индекс каталога
func Migrate(DB *gorm.DB) error {
	err := DB.AutoMigrate(
		&models.City{},
		&models.District{},
		&models.ProductType{},
		&models.Product{},
		&models.ProductMedia{},
		&models.WebAppUser{},
		&models.BasketItem{},
		&models.DiscountCode{},
		&models.ResellerDiscount{},
		&models.Order{},
	)
	if err != nil {
		return err
	}
	DB.Migrator().CreateIndex(&models.Product{}, "idx_city_type_district")
	return nil
}

func SeedTestData(DB *gorm.DB) error {
	cities := []models.City{
		{Name: "Berlin", Districts: []models.District{{Name: "Mitte"}, {Name: "Kreuzberg"}, {Name: "Neukölln"}}},
		{Name: "Hamburg", Districts: []models.District{{Name: "Altona"}, {Name: "St. Pauli"}}},
		{Name: "Munich", Districts: []models.District{{Name: "Schwabing"}}},
	}
	for i := range cities {
		if err := DB.Create(&cities[i]).Error; err != nil {
			return err
		}
	}

	types := []models.ProductType{
		{Name: "Widget", Emoji: "📦"},
		{Name: "Gadget", Emoji: "🔧"},
		{Name: "Gizmo", Emoji: "⚙️"},
	}
	for i := range types {
		if err := DB.Create(&types[i]).Error; err != nil {
			return err
		}
	}

	products := []models.Product{
		{City: "Berlin", District: "Mitte", ProductType: "Widget", Size: "S", Price: 9.99, Available: 5},
		{City: "Berlin", District: "Mitte", ProductType: "Widget", Size: "L", Price: 14.99, Available: 3},
		{City: "Berlin", District: "Kreuzberg", ProductType: "Widget", Size: "M", Price: 12.49, Available: 4},
		{City: "Berlin", District: "Neukölln", ProductType: "Gadget", Size: "M", Price: 19.99, Available: 2},
		{City: "Hamburg", District: "Altona", ProductType: "Widget", Size: "S", Price: 10.99, Available: 6},
		{City: "Hamburg", District: "St. Pauli", ProductType: "Gizmo", Size: "XL", Price: 24.99, Available: 1},
		{City: "Munich", District: "Schwabing", ProductType: "Gadget", Size: "L", Price: 21.99, Available: 2},
	}
	for i := range products {
		if err := DB.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	codes := []models.DiscountCode{
		{Code: "SAVE10", Percent: 10},
		{Code: "VIP20", Percent: 20, MinTotal: 50, MaxUses: 100},
	}
	for i := range codes {
		if err := DB.Create(&codes[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
