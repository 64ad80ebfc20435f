package repositories

import (
	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/mutators"
)

// MenuRepository stores menu items.
type MenuRepository interface {
	Repository[models.MenuItem]
}

// NewMenuRepository creates a new instance of MenuRepository seeded from db.
func NewMenuRepository(db *database.Dataset, ids mutators.IDGenerator) MenuRepository {
	return newMemoryStore("menu item", db.MenuItems, ids, nil)
}
