package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldsight/device-monitor/internal/core/domain"
	"github.com/fieldsight/device-monitor/internal/core/ports"
)

// AuthService implements registration, login, and password reset.
type AuthService struct {
	repo      ports.IdentityRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.IdentityRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates an identity for a fresh consumer, or binds one more
// device to an existing consumer presenting correct credentials.
//
// The device-uniqueness invariant is enforced first: a device id bound to
// a different identity is rejected before anything else is looked at.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (ports.RegisterOutcome, error) {
	owner, err := s.repo.FindByDeviceID(ctx, in.DeviceID)
	if err != nil && !errors.Is(err, domain.ErrIdentityNotFound) {
		return 0, fmt.Errorf("register: %w", err)
	}
	// A device bound to a different identity is a hard conflict. The same
	// identity re-presenting its own device falls through to the
	// existing-identity flow and collapses into an idempotent success.
	if owner != nil && !owner.MatchesProfile(in.ConsumerName, in.ConsumerAddress, in.ConsumerNo) {
		s.log.Warn().Str("device_id", in.DeviceID).Msg("registration rejected: device already bound")
		return 0, domain.ErrDuplicateDevice
	}

	existing, err := s.repo.FindByConsumerNo(ctx, in.ConsumerNo)
	if err != nil && !errors.Is(err, domain.ErrIdentityNotFound) {
		return 0, fmt.Errorf("register: %w", err)
	}

	if existing != nil && existing.MatchesProfile(in.ConsumerName, in.ConsumerAddress, in.ConsumerNo) {
		if bcrypt.CompareHashAndPassword([]byte(existing.CredentialHash), []byte(in.Password)) != nil {
			s.log.Warn().Str("consumer_no", in.ConsumerNo).Msg("registration rejected: wrong password")
			return 0, domain.ErrInvalidCredentials
		}
		// AddDevice is idempotent, so re-registering an id the identity
		// already owns collapses into the same outcome.
		if err := s.repo.AddDevice(ctx, existing.ID, in.DeviceID); err != nil {
			return 0, fmt.Errorf("register: add device: %w", err)
		}
		s.log.Info().Str("consumer_no", in.ConsumerNo).Str("device_id", in.DeviceID).Msg("device added to existing identity")
		return ports.OutcomeDeviceAdded, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		ConsumerNo:      in.ConsumerNo,
		ConsumerName:    in.ConsumerName,
		ConsumerAddress: in.ConsumerAddress,
		CredentialHash:  string(hash),
		Role:            domain.RoleOwner,
		DeviceIDs:       []string{in.DeviceID},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := s.repo.Create(ctx, identity); err != nil {
		return 0, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("consumer_no", in.ConsumerNo).Str("device_id", in.DeviceID).Msg("identity created")
	return ports.OutcomeCreated, nil
}

// Login verifies credentials and issues a signed token embedding the
// identity's owned-device snapshot. Unknown consumer and wrong password
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, consumerNo, password string) (*ports.LoginResult, error) {
	identity, err := s.repo.FindByConsumerNo(ctx, consumerNo)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.CredentialHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(identity)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("consumer_no", consumerNo).Msg("login successful")
	return &ports.LoginResult{
		Token:     token,
		ExpiresIn: s.tokenTTL.String(),
		Identity:  identity,
	}, nil
}

// ResetPassword overwrites the stored credential. A consumerNo with no
// identity behind it succeeds silently so the endpoint discloses nothing
// about account existence.
func (s *AuthService) ResetPassword(ctx context.Context, consumerNo, newPassword string) error {
	identity, err := s.repo.FindByConsumerNo(ctx, consumerNo)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			s.log.Warn().Str("consumer_no", consumerNo).Msg("password reset for unknown consumer")
			return nil
		}
		return fmt.Errorf("reset password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}
	if err := s.repo.UpdateCredential(ctx, identity.ID, string(hash)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("consumer_no", consumerNo).Msg("password reset")
	return nil
}

func (s *AuthService) generateToken(identity *domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"identity_id": identity.ID,
		"consumer_no": identity.ConsumerNo,
		"devices":     identity.DeviceIDs,
		"role":        identity.Role,
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
