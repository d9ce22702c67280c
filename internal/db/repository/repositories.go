package repository

import (
	"github.com/jmoiron/sqlx"
)

// Repositories provides access to all repository instances
type Repositories struct {
	User  *UserRepository
	Menu  *MenuRepository
	Order *OrderRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:  NewUserRepository(db),
		Menu:  NewMenuRepository(db),
		Order: NewOrderRepository(db),
	}
}
