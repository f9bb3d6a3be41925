package ports

import (
	"context"

	"github.com/fieldsight/device-monitor/internal/core/domain"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	DeviceID        string
	Password        string
	ConsumerName    string
	ConsumerAddress string
	ConsumerNo      string
}

// RegisterOutcome distinguishes the two success shapes of registration.
type RegisterOutcome int

const (
	// OutcomeCreated means a new identity was created (HTTP 201).
	OutcomeCreated RegisterOutcome = iota
	// OutcomeDeviceAdded means the device was bound to an existing
	// identity, or was already bound to it (HTTP 200).
	OutcomeDeviceAdded
)

// LoginResult is a successful authentication: the signed bearer token and
// the identity it asserts.
type LoginResult struct {
	Token     string
	ExpiresIn string
	Identity  *domain.Identity
}

// AuthService is the access gateway: registration, credential issuance,
// and password reset.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (RegisterOutcome, error)
	Login(ctx context.Context, consumerNo, password string) (*LoginResult, error)
	// ResetPassword overwrites the credential for consumerNo. An unknown
	// consumerNo is not an error: the caller must not learn whether the
	// account exists.
	ResetPassword(ctx context.Context, consumerNo, newPassword string) error
}
