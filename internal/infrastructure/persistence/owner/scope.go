// Package owner guards every query against owner leakage. Repositories
// take the owner ID as an explicit parameter and pass it through Scope;
// nothing in this codebase reads an owner from ambient state.
package owner

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/washdesk/backend/internal/domain/shared"
)

// Require returns ErrOwnerRequired when ownerID is the zero UUID.
// Repositories call this before touching the database so a missing
// owner fails loudly instead of matching every row.
func Require(ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return shared.ErrOwnerRequired
	}
	return nil
}

// Scope restricts a query to one owner's rows. Use with db.Scopes:
//
//	db.Scopes(owner.Scope(ownerID)).Find(&invoices)
func Scope(ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}
