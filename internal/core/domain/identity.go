package domain

import (
	"errors"
	"time"
)

const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

var ErrIdentityNotFound = errors.New("identity not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrDuplicateDevice = errors.New("device already registered")
var ErrConsumerExists = errors.New("consumer number already registered")
var ErrForbidden = errors.New("access forbidden")

// Identity is a registered consumer account together with the set of
// device identifiers it owns. A device id is bound to at most one
// identity at a time; the owned set only ever grows.
type Identity struct {
	ID              string    `json:"id"`
	ConsumerNo      string    `json:"consumer_no"`
	ConsumerName    string    `json:"consumer_name"`
	ConsumerAddress string    `json:"consumer_address"`
	CredentialHash  string    `json:"-"`
	Role            string    `json:"role"`
	DeviceIDs       []string  `json:"device_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OwnsDevice reports whether deviceID is in the identity's owned set.
func (i *Identity) OwnsDevice(deviceID string) bool {
	for _, id := range i.DeviceIDs {
		if id == deviceID {
			return true
		}
	}
	return false
}

// MatchesProfile reports whether the descriptive fields match exactly.
// Registration uses this to decide between "same consumer adding a
// device" and "new consumer".
func (i *Identity) MatchesProfile(name, address, consumerNo string) bool {
	return i.ConsumerName == name &&
		i.ConsumerAddress == address &&
		i.ConsumerNo == consumerNo
}
