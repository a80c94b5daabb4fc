package entities

import (
	"time"
)

// Book is the stored book-summary record. Categories and themes are shared
// dictionary rows linked through join tables; key takeaways are owned child
// rows kept in insertion order.
type Book struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Title      string `gorm:"index;size:512" json:"title"`
	Author     string `gorm:"index;size:256" json:"author"`
	Year       int    `json:"year"`
	Summary    string `gorm:"type:text" json:"summary"`
	ForWhom    string `gorm:"type:text" json:"for_whom"`
	Quote      string `gorm:"type:text" json:"quote"`
	CoverImage string `gorm:"size:2048" json:"cover_image"`
	Slug       string `gorm:"uniqueIndex;size:256" json:"slug"`

	Categories   []Category    `gorm:"many2many:book_categories;" json:"categories,omitempty"`
	Themes       []Theme       `gorm:"many2many:book_themes;" json:"themes,omitempty"`
	KeyTakeaways []KeyTakeaway `gorm:"foreignKey:BookID" json:"key_takeaways,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category is a shared dictionary entry referenced by name.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	Books     []Book    `gorm:"many2many:book_categories;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Theme is a shared dictionary entry for free-text themes.
type Theme struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	Books     []Book    `gorm:"many2many:book_themes;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// KeyTakeaway is an ordered child row owned by a single book.
type KeyTakeaway struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BookID   uint   `gorm:"index" json:"book_id"`
	Position int    `json:"position"`
	Content  string `gorm:"type:text" json:"content"`
}

func (Book) TableName() string {
	return "books"
}

func (Category) TableName() string {
	return "categories"
}

func (Theme) TableName() string {
	return "themes"
}

func (KeyTakeaway) TableName() string {
	return "key_takeaways"
}

// CategoryNames returns the book's category names as a flat set.
func (b Book) CategoryNames() []string {
	names := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		names = append(names, c.Name)
	}
	return names
}

// ThemeNames returns the book's theme names as a flat set.
func (b Book) ThemeNames() []string {
	names := make([]string, 0, len(b.Themes))
	for _, t := range b.Themes {
		names = append(names, t.Name)
	}
	return names
}

// TakeawayContents returns the key-takeaway texts in stored order.
func (b Book) TakeawayContents() []string {
	contents := make([]string, 0, len(b.KeyTakeaways))
	for _, kt := range b.KeyTakeaways {
		contents = append(contents, kt.Content)
	}
	return contents
}

// HasCategory reports whether the book belongs to the named category
// (exact, case-sensitive match against the stored name).
func (b Book) HasCategory(name string) bool {
	for _, c := range b.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}
