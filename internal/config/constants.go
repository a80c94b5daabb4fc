package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./resumoteca.db"

	// PlaceholderCover is used when no cover image URL is provided
	PlaceholderCover = "/placeholder.svg"
)
