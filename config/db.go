package config

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/models"
	"github.com/officeeats/cafeteria-app/utils"
)

// The whole application state lives in a single in-process sqlite database.
// cache=shared keeps every pooled connection on the same memory database;
// nothing survives a restart.
const memoryDSN = "file:cafeteria?mode=memory&cache=shared"

func InitDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(memoryDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := Seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	)
}

// Seed loads the demo accounts and the starter menu. Idempotent: skips any
// table that already has rows.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		adminPass, err := utils.HashPassword("admin123")
		if err != nil {
			return err
		}
		employeePass, err := utils.HashPassword("employee123")
		if err != nil {
			return err
		}

		users := []models.User{
			{
				Name:     "Admin User",
				Email:    "admin@company.com",
				Password: adminPass,
				Role:     models.RoleAdmin,
				Verified: true,
			},
			{
				Name:       "John Doe",
				Email:      "john.doe@company.com",
				Password:   employeePass,
				Role:       models.RoleEmployee,
				EmployeeID: "EMP001",
				Department: "Engineering",
				Verified:   true,
			},
		}
		if err := db.Create(&users).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded %d demo users", len(users))
	}

	var menuCount int64
	if err := db.Model(&models.Menu{}).Count(&menuCount).Error; err != nil {
		return err
	}
	if menuCount == 0 {
		menus := []models.Menu{
			{
				Name:            "Grilled Chicken Sandwich",
				Description:     "Tender grilled chicken breast with fresh lettuce, tomatoes, and mayo on toasted bread",
				Price:           12.99,
				Category:        models.CategoryLunch,
				Available:       true,
				PreparationTime: 15,
			},
			{
				Name:            "Caesar Salad",
				Description:     "Fresh romaine lettuce, parmesan cheese, croutons with classic Caesar dressing",
				Price:           9.99,
				Category:        models.CategoryLunch,
				Available:       true,
				PreparationTime: 10,
			},
			{
				Name:            "Fresh Coffee",
				Description:     "Freshly brewed premium coffee blend",
				Price:           3.99,
				Category:        models.CategoryBeverages,
				Available:       true,
				PreparationTime: 5,
			},
			{
				Name:            "Pancakes",
				Description:     "Fluffy pancakes served with butter and maple syrup",
				Price:           8.99,
				Category:        models.CategoryBreakfast,
				Available:       true,
				PreparationTime: 12,
			},
		}
		if err := db.Create(&menus).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded %d menu items", len(menus))
	}

	return nil
}
