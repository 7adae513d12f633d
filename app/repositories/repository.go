package repositories

import (
	"context"

	"gorm.io/gorm"
)

// conn picks the transaction handle when one is given so reads and writes
// issued inside a unit of work see its uncommitted state.
func conn(ctx context.Context, db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
