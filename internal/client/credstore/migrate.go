package credstore

import (
	"context"
	"fmt"

	"github.com/mastereducationkz/lms-front-sub003/internal/logging"
)

// MigrateLegacy moves every live entry from the legacy store into the primary
// store and erases the legacy copies. It runs once per installation in
// practice: after the first call the legacy store is empty, so repeated calls
// are no-ops. Entries keep their original expiry.
func MigrateLegacy(ctx context.Context, legacy, primary Store, log logging.Logger) error {
	entries, err := legacy.Entries(ctx)
	if err != nil {
		return fmt.Errorf("read legacy credentials: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	if err := primary.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("copy legacy credentials: %w", err)
	}
	if err := legacy.Clear(ctx); err != nil {
		return fmt.Errorf("erase legacy credentials: %w", err)
	}

	log.Info(ctx, "migrated legacy credentials", "entries", len(entries))
	return nil
}
