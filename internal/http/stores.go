package http

import (
	"time"

	"github.com/resumoteca/resumoteca/internal/database/books"
	"github.com/resumoteca/resumoteca/internal/entities"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the methods it actually uses.

// BookReader provides read access to the full catalog.
type BookReader interface {
	GetAllBooks() ([]entities.Book, error)
	GetBookBySlug(slug string) (*entities.Book, error)
	GetStats() (totalBooks int64, totalCategories int64, err error)
}

// BookWriter provides the admin mutation operations.
type BookWriter interface {
	CreateBook(rec books.Record) (*entities.Book, error)
	UpdateBook(id uint, rec books.Record) (*entities.Book, error)
	DeleteBook(id uint) error
	GetBookByID(id uint) (*entities.Book, error)
}

// TaxonomyReader provides read access to the category dictionary.
type TaxonomyReader interface {
	ListCategories() ([]entities.Category, error)
	ListThemes() ([]entities.Theme, error)
	GetCategoryByName(name string) (*entities.Category, error)
	CategoryBookCount(categoryID uint) (int64, error)
}

// Auditor records admin mutations for the audit trail.
type Auditor interface {
	LogBookCreate(userID uint, bookID uint, title, slug string, err error)
	LogBookUpdate(userID uint, bookID uint, title, slug string, err error)
	LogBookDelete(userID uint, bookID uint, title string)
}

// AuditReader provides read access to recorded audit events.
type AuditReader interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// CleanupRunner triggers the maintenance tasks immediately.
type CleanupRunner interface {
	RunNow() error
}
