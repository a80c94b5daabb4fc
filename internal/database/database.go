package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/resumoteca/resumoteca/internal/entities"
)

// defaultCategories is the category dictionary the catalog ships with.
// Additional categories are created on demand when books reference them.
var defaultCategories = []entities.Category{
	{Name: "Negócios"},
	{Name: "Produtividade"},
	{Name: "Psicologia"},
	{Name: "Filosofia"},
	{Name: "Liderança"},
	{Name: "Saúde"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Category{},
		&entities.Theme{},
		&entities.Book{},
		&entities.KeyTakeaway{},
		&entities.User{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedCategories(); err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DefaultCategoryNames returns the names of the curated base categories.
// Orphan cleanup keeps these rows even when no book references them.
func DefaultCategoryNames() []string {
	names := make([]string, 0, len(defaultCategories))
	for _, c := range defaultCategories {
		names = append(names, c.Name)
	}
	return names
}

func (d *Database) seedCategories() error {
	for _, category := range defaultCategories {
		var existing entities.Category
		result := d.DB.Where("name = ?", category.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to create category %s: %w", category.Name, err)
			}
			log.Printf("Created category: %s", category.Name)
		}
	}
	return nil
}
