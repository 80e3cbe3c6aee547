package repository

// Term represents a glossary row.
type Term struct {
	ID          int64
	Name        string
	Description string
}
