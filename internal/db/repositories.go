package db

// Repositories provides access to all database repositories
type Repositories struct {
	Videos *VideoRepository
}

// NewRepositories creates a new repository collection
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Videos: NewVideoRepository(db),
	}
}
