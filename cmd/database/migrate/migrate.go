package migration

import (
	"fmt"
	"log"

	"scannsave-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Shop{}); err != nil {
		log.Fatalf("Error migrating shop database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ShopParcel{}); err != nil {
		log.Fatalf("Error migrating shop parcel database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Category{}); err != nil {
		log.Fatalf("Error migrating category database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Product{}); err != nil {
		log.Fatalf("Error migrating product database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Receipt{}); err != nil {
		log.Fatalf("Error migrating receipt database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ReceiptIndex{}); err != nil {
		log.Fatalf("Error migrating receipt index database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ReceiptConnectIndex{}); err != nil {
		log.Fatalf("Error migrating receipt connect index database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ReceiptShare{}); err != nil {
		log.Fatalf("Error migrating receipt share database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
