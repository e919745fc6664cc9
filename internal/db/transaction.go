package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// InTransaction runs fn inside a transaction. Nothing fn wrote survives an
// error or a panic. op names the write in the returned error.
func (db *DB) InTransaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	err := db.DB.WithContext(ctx).Transaction(fn)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, MapGormError(err))
	}
	return nil
}
