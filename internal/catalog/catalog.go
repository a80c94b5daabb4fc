// Package catalog implements pure in-memory queries over a book list.
//
// The functions here perform no I/O: callers fetch the current catalog from
// the books repository and derive filtered views from it.
package catalog

import (
	"strings"

	"github.com/resumoteca/resumoteca/internal/entities"
)

// FindBySlug returns the book whose slug matches exactly. Slugs are unique
// across the catalog, so at most one book matches; absence is a valid
// outcome, not an error.
func FindBySlug(books []entities.Book, slug string) (*entities.Book, bool) {
	for i := range books {
		if books[i].Slug == slug {
			return &books[i], true
		}
	}
	return nil, false
}

// FindByCategory returns all books whose category set contains the named
// category (exact, case-sensitive match against stored names). Input order
// is preserved.
func FindByCategory(books []entities.Book, category string) []entities.Book {
	matched := make([]entities.Book, 0)
	for _, book := range books {
		if book.HasCategory(category) {
			matched = append(matched, book)
		}
	}
	return matched
}

// Search returns books matching the query as a case-insensitive substring
// of the title, author, any theme name, or any category name. An empty
// query yields an empty result set.
func Search(books []entities.Book, query string) []entities.Book {
	matched := make([]entities.Book, 0)
	if query == "" {
		return matched
	}

	lowerQuery := strings.ToLower(query)
	for _, book := range books {
		if matchesQuery(book, lowerQuery) {
			matched = append(matched, book)
		}
	}
	return matched
}

func matchesQuery(book entities.Book, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(book.Title), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(book.Author), lowerQuery) {
		return true
	}
	for _, theme := range book.Themes {
		if strings.Contains(strings.ToLower(theme.Name), lowerQuery) {
			return true
		}
	}
	for _, category := range book.Categories {
		if strings.Contains(strings.ToLower(category.Name), lowerQuery) {
			return true
		}
	}
	return false
}
