package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/resumoteca/resumoteca/internal/catalog"
)

// BooksController serves the public, read-only catalog endpoints.
type BooksController struct {
	reader BookReader
}

func NewBooksController(reader BookReader) *BooksController {
	return &BooksController{
		reader: reader,
	}
}

// GetAllBooks handles GET /api/books. Books come back newest-first.
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.reader.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": newBookViews(books), "count": len(books)})
}

// GetBookBySlug handles GET /api/books/:slug.
func (controller *BooksController) GetBookBySlug(c *gin.Context) {
	slug := c.Param("slug")

	book, err := controller.reader.GetBookBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book by slug")
		return
	}

	c.IndentedJSON(http.StatusOK, newBookView(*book))
}

// SearchBooks handles GET /api/books/search?q=. The query matches as a
// case-insensitive substring of title, author, theme, or category names.
// An empty query returns an empty result set.
func (controller *BooksController) SearchBooks(c *gin.Context) {
	query := c.Query("q")

	books, err := controller.reader.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}

	matched := catalog.Search(books, query)
	c.IndentedJSON(http.StatusOK, gin.H{
		"books": newBookViews(matched),
		"count": len(matched),
		"query": query,
	})
}

// GetBookStats handles GET /api/books/stats.
func (controller *BooksController) GetBookStats(c *gin.Context) {
	totalBooks, totalCategories, err := controller.reader.GetStats()
	if err != nil {
		respondInternalError(c, err, "book stats")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"total_books":      totalBooks,
		"total_categories": totalCategories,
	})
}
