package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/resumoteca/resumoteca/internal/config"
	"github.com/resumoteca/resumoteca/internal/database/books"
)

// BookInput is the admin write payload. The binding tags mirror the form
// contract the public site enforces client-side; the server revalidates
// everything.
type BookInput struct {
	Title        string   `json:"title" binding:"required,min=3"`
	Author       string   `json:"author" binding:"required,min=2"`
	Year         int      `json:"year" binding:"required,bookyear"`
	Categories   []string `json:"categories" binding:"required,min=1,dive,required"`
	Themes       []string `json:"themes" binding:"required,min=1,dive,required"`
	Summary      string   `json:"summary" binding:"required,min=100"`
	KeyTakeaways []string `json:"keyTakeaways" binding:"required,min=3,max=7,dive,required"`
	ForWhom      string   `json:"forWhom" binding:"required,min=20"`
	Quote        string   `json:"quote" binding:"required,min=5"`
	CoverImage   string   `json:"coverImage" binding:"omitempty,max=2048"`
	Slug         string   `json:"slug" binding:"required,max=256,slug"`
}

// toRecord converts the validated input to the repository's flat record,
// applying the placeholder cover when none was given.
func (in BookInput) toRecord() books.Record {
	cover := in.CoverImage
	if cover == "" {
		cover = config.PlaceholderCover
	}
	return books.Record{
		Title:        in.Title,
		Author:       in.Author,
		Year:         in.Year,
		Categories:   in.Categories,
		Themes:       in.Themes,
		Summary:      in.Summary,
		KeyTakeaways: in.KeyTakeaways,
		ForWhom:      in.ForWhom,
		Quote:        in.Quote,
		CoverImage:   cover,
		Slug:         in.Slug,
	}
}

// fieldMessages maps field+tag combinations to human-readable messages.
var fieldMessages = map[string]string{
	"Title.min":             "title must be at least 3 characters",
	"Author.min":            "author must be at least 2 characters",
	"Year.bookyear":         "year must be between 1000 and the current year",
	"Categories.min":        "at least one category is required",
	"Themes.min":            "at least one theme is required",
	"Summary.min":           "summary must be at least 100 characters",
	"KeyTakeaways.min":      "at least 3 key takeaways are required",
	"KeyTakeaways.max":      "at most 7 key takeaways are allowed",
	"ForWhom.min":           "forWhom must be at least 20 characters",
	"Quote.min":             "quote must be at least 5 characters",
	"Slug.slug":             "slug must be lowercase words separated by single hyphens",
	"Slug.max":              "slug must be at most 256 characters",
	"CoverImage.max":        "coverImage must be at most 2048 characters",
	"Categories.required":   "category names must not be empty",
	"Themes.required":       "theme names must not be empty",
	"KeyTakeaways.required": "key takeaways must not be empty",
}

// jsonFieldNames maps struct field names back to their JSON keys.
var jsonFieldNames = map[string]string{
	"Title":        "title",
	"Author":       "author",
	"Year":         "year",
	"Categories":   "categories",
	"Themes":       "themes",
	"Summary":      "summary",
	"KeyTakeaways": "keyTakeaways",
	"ForWhom":      "forWhom",
	"Quote":        "quote",
	"CoverImage":   "coverImage",
	"Slug":         "slug",
}

// validationFieldErrors flattens validator errors into a json-field -> message
// map. The first error per field wins.
func validationFieldErrors(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string)
	for _, fe := range errs {
		name := fe.StructField()
		jsonName, ok := jsonFieldNames[name]
		if !ok {
			jsonName = name
		}
		if _, seen := fields[jsonName]; seen {
			continue
		}
		if msg, ok := fieldMessages[name+"."+fe.Tag()]; ok {
			fields[jsonName] = msg
		} else if fe.Tag() == "required" {
			fields[jsonName] = jsonName + " is required"
		} else {
			fields[jsonName] = jsonName + " is invalid"
		}
	}
	return fields
}

// AdminBooksController handles the authenticated mutation endpoints.
type AdminBooksController struct {
	store   BookWriter
	auditor Auditor
}

func NewAdminBooksController(store BookWriter, auditor Auditor) *AdminBooksController {
	return &AdminBooksController{
		store:   store,
		auditor: auditor,
	}
}

// bindInput parses and validates the request body. Malformed JSON is a 400,
// a well-formed body failing the field contract a 422.
func (controller *AdminBooksController) bindInput(c *gin.Context) (BookInput, bool) {
	var input BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondValidationErrors(c, validationFieldErrors(verrs))
			return input, false
		}
		respondBadRequest(c, "invalid request body")
		return input, false
	}
	return input, true
}

// CreateBook handles POST /api/admin/books.
func (controller *AdminBooksController) CreateBook(c *gin.Context) {
	input, ok := controller.bindInput(c)
	if !ok {
		return
	}

	book, err := controller.store.CreateBook(input.toRecord())
	if err != nil {
		if errors.Is(err, books.ErrDuplicateSlug) {
			respondConflict(c, books.ErrDuplicateSlug.Error(), "duplicate_slug")
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	if controller.auditor != nil {
		controller.auditor.LogBookCreate(GetUserID(c), book.ID, book.Title, book.Slug, nil)
	}

	respondCreated(c, newBookView(*book))
}

// UpdateBook handles PUT /api/admin/books/:id. The request body fully
// replaces the book, including its category, theme, and takeaway sets.
func (controller *AdminBooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	input, ok := controller.bindInput(c)
	if !ok {
		return
	}

	book, err := controller.store.UpdateBook(id, input.toRecord())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		if errors.Is(err, books.ErrDuplicateSlug) {
			respondConflict(c, books.ErrDuplicateSlug.Error(), "duplicate_slug")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	if controller.auditor != nil {
		controller.auditor.LogBookUpdate(GetUserID(c), book.ID, book.Title, book.Slug, nil)
	}

	c.IndentedJSON(http.StatusOK, newBookView(*book))
}

// DeleteBook handles DELETE /api/admin/books/:id.
func (controller *AdminBooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book for delete")
		return
	}

	if err := controller.store.DeleteBook(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	if controller.auditor != nil {
		controller.auditor.LogBookDelete(GetUserID(c), id, book.Title)
	}

	respondSuccess(c, "book deleted")
}
