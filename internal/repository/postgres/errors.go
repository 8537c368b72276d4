package postgres

import (
	"errors"
	"fmt"

	"kledje/domain"

	"gorm.io/gorm"
)

// storeError maps a missing row to domain.ErrNotFound and everything else to
// an upstream store failure, keeping the driver error in the chain.
func storeError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return domain.NewUpstreamStoreError(fmt.Errorf("%s: %w", op, err))
}
