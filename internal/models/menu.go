package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem represents a sellable item on the cafeteria menu
type MenuItem struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Category    string          `db:"category" json:"category"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// MenuItemRequest is used for menu item creation/update. Price arrives
// as a string and is validated server-side.
type MenuItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       string  `json:"price"`
	Category    string  `json:"category"`
}

// CategoryGroup is one category's slice of the menu, in display order
type CategoryGroup struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}
