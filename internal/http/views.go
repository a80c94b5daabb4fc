package http

import (
	"time"

	"github.com/resumoteca/resumoteca/internal/entities"
)

// BookView is the flat JSON shape the API exposes: category and theme names
// as plain string sets and key takeaways in stored order. Clients never see
// dictionary IDs or link rows.
type BookView struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Year         int       `json:"year"`
	Categories   []string  `json:"categories"`
	Themes       []string  `json:"themes"`
	Summary      string    `json:"summary"`
	KeyTakeaways []string  `json:"keyTakeaways"`
	ForWhom      string    `json:"forWhom"`
	Quote        string    `json:"quote"`
	CoverImage   string    `json:"coverImage"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"created_at"`
}

// newBookView flattens a preloaded book into its API shape.
func newBookView(book entities.Book) BookView {
	return BookView{
		ID:           book.ID,
		Title:        book.Title,
		Author:       book.Author,
		Year:         book.Year,
		Categories:   book.CategoryNames(),
		Themes:       book.ThemeNames(),
		Summary:      book.Summary,
		KeyTakeaways: book.TakeawayContents(),
		ForWhom:      book.ForWhom,
		Quote:        book.Quote,
		CoverImage:   book.CoverImage,
		Slug:         book.Slug,
		CreatedAt:    book.CreatedAt,
	}
}

// newBookViews flattens a book list, preserving order.
func newBookViews(books []entities.Book) []BookView {
	views := make([]BookView, 0, len(books))
	for _, book := range books {
		views = append(views, newBookView(book))
	}
	return views
}
