package sqlstore

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-ledger/core"
)

// storageError tags an unexpected driver failure as a storage fault so the
// engine surfaces it under its own code instead of the generic internal one.
// Domain sentinels pass through untouched so their mappings stay intact.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		core.ErrStorageFailure,
		core.ErrAccountNotFound,
		core.ErrEntryNotFound,
		core.ErrBalanceFloorViolated,
		core.ErrIdempotencyKeyAlreadyClaimed,
		core.ErrIdempotencyClaimNotFound,
		core.ErrEntryTerminal,
		core.ErrInvalidEntryStatusTransition,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", core.ErrStorageFailure, err)
}
