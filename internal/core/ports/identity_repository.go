package ports

import (
	"context"

	"github.com/fieldsight/device-monitor/internal/core/domain"
)

// IdentityRepository persists consumer identities and their owned-device
// sets. Lookup misses return domain.ErrIdentityNotFound.
type IdentityRepository interface {
	// FindByDeviceID returns the identity owning deviceID, if any.
	FindByDeviceID(ctx context.Context, deviceID string) (*domain.Identity, error)

	// FindByConsumerNo returns the identity registered under consumerNo.
	FindByConsumerNo(ctx context.Context, consumerNo string) (*domain.Identity, error)

	// Create inserts a new identity and returns it with its assigned id.
	// domain.ErrDuplicateDevice when any of its device ids is already
	// bound, domain.ErrConsumerExists when the consumer number is taken.
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)

	// AddDevice binds deviceID to the identity. Idempotent: re-adding an
	// id the identity already owns succeeds without effect.
	AddDevice(ctx context.Context, identityID, deviceID string) error

	// UpdateCredential overwrites the stored credential hash.
	UpdateCredential(ctx context.Context, identityID, newHash string) error

	// ListAll returns every identity, credential hashes excluded.
	ListAll(ctx context.Context) ([]*domain.Identity, error)
}
