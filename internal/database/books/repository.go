// Package books provides database operations for book summaries.
//
// This is the synchronization core of the catalog: it maps between the flat
// Record shape the application works with and the normalized tables the
// store holds (books, categories, themes, link rows, key_takeaways). Every
// multi-step write runs inside a single transaction, so a failed step rolls
// back the whole operation.
//
// # Usage
//
//	repo := books.NewRepository(db, taxonomy.NewRepository(db))
//	book, err := repo.CreateBook(record)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/resumoteca/resumoteca/internal/database/taxonomy"
	"github.com/resumoteca/resumoteca/internal/entities"
)

// ErrDuplicateSlug is returned when a write would reuse another book's slug.
var ErrDuplicateSlug = errors.New("a book with this slug already exists")

// Record is the flat, application-facing shape of a book summary. The
// repository fans it out into scalar, dictionary, link, and child rows on
// write, and reconstructs preloaded books on read.
type Record struct {
	Title        string
	Author       string
	Year         int
	Categories   []string
	Themes       []string
	Summary      string
	KeyTakeaways []string
	ForWhom      string
	Quote        string
	CoverImage   string
	Slug         string
}

// Repository handles all book database operations.
type Repository struct {
	db       *gorm.DB
	taxonomy *taxonomy.Repository
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB, taxonomyRepo *taxonomy.Repository) *Repository {
	return &Repository{db: db, taxonomy: taxonomyRepo}
}

// GetAllBooks retrieves the full catalog, newest-created first, with
// categories, themes, and key takeaways preloaded. Key takeaways keep their
// insertion order; category and theme sets carry no ordering guarantee.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Categories").Preload("Themes").
		Preload("KeyTakeaways", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Order("created_at DESC, id DESC").
		Find(&books).Error
	return books, err
}

// GetBookByID retrieves a book by its ID with all related data.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Categories").Preload("Themes").
		Preload("KeyTakeaways", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookBySlug retrieves a book by its URL slug.
func (r *Repository) GetBookBySlug(slug string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Categories").Preload("Themes").
		Preload("KeyTakeaways", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Where("slug = ?", slug).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook inserts a new book from its flat record: duplicate-slug check,
// scalar row, lookup-or-create for each category and theme name plus the
// link rows, and one child row per key takeaway. Runs in one transaction.
func (r *Repository) CreateBook(rec Record) (*entities.Book, error) {
	var bookID uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		taken, err := r.slugTaken(tx, rec.Slug, 0)
		if err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if taken {
			return ErrDuplicateSlug
		}

		book := entities.Book{
			Title:      rec.Title,
			Author:     rec.Author,
			Year:       rec.Year,
			Summary:    rec.Summary,
			ForWhom:    rec.ForWhom,
			Quote:      rec.Quote,
			CoverImage: rec.CoverImage,
			Slug:       rec.Slug,
		}
		if err := tx.Omit("Categories", "Themes", "KeyTakeaways").Create(&book).Error; err != nil {
			return fmt.Errorf("failed to create book: %w", err)
		}

		if err := r.linkAssociations(tx, &book, rec); err != nil {
			return err
		}

		bookID = book.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetBookByID(bookID)
}

// UpdateBook replaces a book's scalar fields and its entire category, theme,
// and key-takeaway associations. The delete-all-then-reinsert replacement is
// safe here because the whole operation runs in one transaction: readers
// never observe the book without associations.
func (r *Repository) UpdateBook(id uint, rec Record) (*entities.Book, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}

		taken, err := r.slugTaken(tx, rec.Slug, id)
		if err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if taken {
			return ErrDuplicateSlug
		}

		updates := map[string]any{
			"title":       rec.Title,
			"author":      rec.Author,
			"year":        rec.Year,
			"summary":     rec.Summary,
			"for_whom":    rec.ForWhom,
			"quote":       rec.Quote,
			"cover_image": rec.CoverImage,
			"slug":        rec.Slug,
		}
		if err := tx.Model(&book).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update book: %w", err)
		}

		if err := tx.Model(&book).Association("Categories").Clear(); err != nil {
			return fmt.Errorf("failed to clear categories: %w", err)
		}
		if err := tx.Model(&book).Association("Themes").Clear(); err != nil {
			return fmt.Errorf("failed to clear themes: %w", err)
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.KeyTakeaway{}).Error; err != nil {
			return fmt.Errorf("failed to clear key takeaways: %w", err)
		}

		return r.linkAssociations(tx, &book, rec)
	})
	if err != nil {
		return nil, err
	}
	return r.GetBookByID(id)
}

// DeleteBook removes a book together with its link rows and key takeaways.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_categories WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM book_themes WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.KeyTakeaway{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetStats returns total book and category counts.
func (r *Repository) GetStats() (totalBooks int64, totalCategories int64, err error) {
	err = r.db.Model(&entities.Book{}).Count(&totalBooks).Error
	if err != nil {
		return
	}
	err = r.db.Model(&entities.Category{}).Count(&totalCategories).Error
	return
}

// linkAssociations resolves dictionary rows for every category and theme
// name and attaches them to the book, then writes the key-takeaway child
// rows in input order. Duplicate names in the input are collapsed so a book
// never holds two link rows to the same dictionary entry.
func (r *Repository) linkAssociations(tx *gorm.DB, book *entities.Book, rec Record) error {
	seenCategories := make(map[string]bool)
	for _, name := range rec.Categories {
		if seenCategories[name] {
			continue
		}
		seenCategories[name] = true

		category, err := r.taxonomy.GetOrCreateCategory(tx, name)
		if err != nil {
			return fmt.Errorf("failed to resolve category %q: %w", name, err)
		}
		if err := tx.Model(book).Omit("Categories.*").Association("Categories").Append(category); err != nil {
			return fmt.Errorf("failed to link category %q: %w", name, err)
		}
	}

	seenThemes := make(map[string]bool)
	for _, name := range rec.Themes {
		if seenThemes[name] {
			continue
		}
		seenThemes[name] = true

		theme, err := r.taxonomy.GetOrCreateTheme(tx, name)
		if err != nil {
			return fmt.Errorf("failed to resolve theme %q: %w", name, err)
		}
		if err := tx.Model(book).Omit("Themes.*").Association("Themes").Append(theme); err != nil {
			return fmt.Errorf("failed to link theme %q: %w", name, err)
		}
	}

	for i, content := range rec.KeyTakeaways {
		takeaway := entities.KeyTakeaway{
			BookID:   book.ID,
			Position: i + 1,
			Content:  content,
		}
		if err := tx.Create(&takeaway).Error; err != nil {
			return fmt.Errorf("failed to create key takeaway: %w", err)
		}
	}

	return nil
}

// slugTaken reports whether another book already uses the slug. excludeID
// lets edits keep their own slug.
func (r *Repository) slugTaken(tx *gorm.DB, slug string, excludeID uint) (bool, error) {
	var count int64
	query := tx.Model(&entities.Book{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
