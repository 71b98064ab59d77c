package storage

import (
	"context"
	"fmt"

	"github.com/diwise/veda-client/pkg/veda/types/individuals"
)

// Vacuumer is implemented by stores that can reclaim space after a purge
type Vacuumer interface {
	Vacuum(ctx context.Context) error
}

// PurgeDeleted removes all individuals marked with v-s:deleted and returns their uris.
// A failing removal stops the purge, individuals removed before that stay removed.
func PurgeDeleted(ctx context.Context, s Store) ([]string, error) {
	deleted, err := s.Select(ctx, isDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to find deleted individuals: %w", err)
	}

	purged := make([]string, 0, len(deleted))

	for _, i := range deleted {
		err = s.Remove(ctx, i.URI())
		if err != nil {
			return purged, fmt.Errorf("failed to remove %s: %w", i.URI(), err)
		}
		purged = append(purged, i.URI())
	}

	return purged, nil
}

func isDeleted(i *individuals.Individual) bool {
	for _, v := range i.GetProperty(individuals.VsDeleted) {
		if deleted, err := v.AsBool(); err == nil && deleted {
			return true
		}
	}
	return false
}
