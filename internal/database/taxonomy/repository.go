// Package taxonomy provides database operations for the shared category and
// theme dictionaries.
//
// Categories and themes are dictionary entities: rows referenced by name and
// reused across books through the book_categories/book_themes link tables.
// Writing a book must reuse an existing row when the name matches exactly and
// create one otherwise, never duplicating names.
//
// # Usage
//
//	repo := taxonomy.NewRepository(db)
//	cat, err := repo.GetOrCreateCategory(tx, "Produtividade")
package taxonomy

import (
	"gorm.io/gorm"

	"github.com/resumoteca/resumoteca/internal/entities"
)

// Repository handles all category and theme dictionary operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new taxonomy repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreateCategory resolves a category by exact name, creating the
// dictionary row if absent. When tx is non-nil the lookup and insert run
// inside that transaction so book writes stay atomic.
func (r *Repository) GetOrCreateCategory(tx *gorm.DB, name string) (*entities.Category, error) {
	if tx == nil {
		tx = r.db
	}
	var category entities.Category
	err := tx.Where("name = ?", name).First(&category).Error
	if err == gorm.ErrRecordNotFound {
		category = entities.Category{Name: name}
		if err := tx.Create(&category).Error; err != nil {
			return nil, err
		}
		return &category, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetOrCreateTheme resolves a theme by exact name, creating the dictionary
// row if absent.
func (r *Repository) GetOrCreateTheme(tx *gorm.DB, name string) (*entities.Theme, error) {
	if tx == nil {
		tx = r.db
	}
	var theme entities.Theme
	err := tx.Where("name = ?", name).First(&theme).Error
	if err == gorm.ErrRecordNotFound {
		theme = entities.Theme{Name: name}
		if err := tx.Create(&theme).Error; err != nil {
			return nil, err
		}
		return &theme, nil
	}
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

// ListCategories retrieves all categories ordered by name.
func (r *Repository) ListCategories() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// ListThemes retrieves all themes ordered by name.
func (r *Repository) ListThemes() ([]entities.Theme, error) {
	var themes []entities.Theme
	err := r.db.Order("name ASC").Find(&themes).Error
	return themes, err
}

// GetCategoryByName retrieves a category by exact name.
func (r *Repository) GetCategoryByName(name string) (*entities.Category, error) {
	var category entities.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryBookCount returns the number of books linked to a category.
func (r *Repository) CategoryBookCount(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Table("book_categories").Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// DeleteOrphanCategories removes categories with no linked books, keeping the
// named rows (the curated base dictionary) regardless of link count.
func (r *Repository) DeleteOrphanCategories(keep []string) (int64, error) {
	if len(keep) == 0 {
		keep = []string{""}
	}
	result := r.db.Exec(`
		DELETE FROM categories
		WHERE id NOT IN (SELECT category_id FROM book_categories)
		AND name NOT IN (?)
	`, keep)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteOrphanThemes removes themes with no linked books. Themes are
// free-text entries, so none are protected.
func (r *Repository) DeleteOrphanThemes() (int64, error) {
	result := r.db.Exec(`
		DELETE FROM themes
		WHERE id NOT IN (SELECT theme_id FROM book_themes)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
