package store

import (
	"github.com/SAMAymen/formix/internal/logger"
)

// Repositories bundles all server-side repositories behind one constructor so
// the service layer receives a single dependency.
type Repositories struct {
	UserRepository       UserRepository
	FormRepository       FormRepository
	SubmissionRepository SubmissionRepository
	AccountRepository    AccountRepository
}

// NewRepositories wires every repository to the shared database handle.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db, logger),
		FormRepository:       NewFormRepository(db, logger),
		SubmissionRepository: NewSubmissionRepository(db, logger),
		AccountRepository:    NewAccountRepository(db, logger),
	}
}
