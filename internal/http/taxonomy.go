package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/resumoteca/resumoteca/internal/catalog"
)

// CategoryView pairs a category name with its current book count.
type CategoryView struct {
	Name      string `json:"name"`
	BookCount int64  `json:"book_count"`
}

// TaxonomyController serves the public category endpoints.
type TaxonomyController struct {
	taxonomy TaxonomyReader
	reader   BookReader
}

func NewTaxonomyController(taxonomy TaxonomyReader, reader BookReader) *TaxonomyController {
	return &TaxonomyController{
		taxonomy: taxonomy,
		reader:   reader,
	}
}

// GetAllCategories handles GET /api/categories, ordered by name.
func (controller *TaxonomyController) GetAllCategories(c *gin.Context) {
	categories, err := controller.taxonomy.ListCategories()
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}

	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		count, err := controller.taxonomy.CategoryBookCount(category.ID)
		if err != nil {
			respondInternalError(c, err, "category book count")
			return
		}
		views = append(views, CategoryView{Name: category.Name, BookCount: count})
	}

	c.IndentedJSON(http.StatusOK, gin.H{"categories": views, "count": len(views)})
}

// GetBooksByCategory handles GET /api/categories/:name/books. Matching is
// exact and case-sensitive against the stored category name; an unknown
// category is a 404, a known category with no books an empty list.
func (controller *TaxonomyController) GetBooksByCategory(c *gin.Context) {
	name := c.Param("name")

	if _, err := controller.taxonomy.GetCategoryByName(name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "category")
			return
		}
		respondInternalError(c, err, "get category")
		return
	}

	books, err := controller.reader.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books by category")
		return
	}

	matched := catalog.FindByCategory(books, name)
	c.IndentedJSON(http.StatusOK, gin.H{
		"category": name,
		"books":    newBookViews(matched),
		"count":    len(matched),
	})
}
