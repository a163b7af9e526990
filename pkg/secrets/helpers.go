package secrets

import (
	"context"
	"errors"
	"sort"

	"github.com/jordanlanch/industrycatalog/pkg/logger"
)

// Resolve overwrites each target with the secret stored under its key.
// Missing secrets keep the current value; other failures are returned.
func Resolve(ctx context.Context, m Manager, targets map[string]*string, log logger.Logger) error {
	if log == nil {
		log = logger.Discard()
	}

	keys := make([]string, 0, len(targets))
	for k := range targets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		value, err := m.GetSecret(ctx, key)
		if errors.Is(err, ErrNotFound) {
			log.Debug("secret not set, keeping environment value", "key", key)
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*targets[key] = value
		log.Info("loaded secret", "key", key)
	}
	return errors.Join(errs...)
}
