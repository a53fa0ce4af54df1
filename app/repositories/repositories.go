// Package repositories owns the two backing stores: users in the relational
// database and products in the document store. The two never share a
// transaction.
package repositories

import (
	"fmt"

	"github.com/shashiranjanraj/nexus/app/models"
)

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}
