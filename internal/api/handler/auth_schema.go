package handler

// Validation mirrors the registration form contract: every field present,
// passwords at least six characters.

type registerRequest struct {
	DeviceID        string `json:"deviceId"        validate:"required"`
	Password        string `json:"password"        validate:"required,min=6"`
	ConsumerName    string `json:"consumerName"    validate:"required"`
	ConsumerAddress string `json:"consumerAddress" validate:"required"`
	ConsumerNo      string `json:"consumerNo"      validate:"required"`
}

type loginRequest struct {
	ConsumerNo string `json:"consumerNo" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type resetPasswordRequest struct {
	ConsumerNo  string `json:"consumerNo"  validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type registerResponse struct {
	Message  string `json:"message"`
	DeviceID string `json:"deviceId"`
}

type loginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	User      identityView `json:"user"`
	ExpiresIn string       `json:"expiresIn"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// identityView is the outward projection of an Identity; the credential
// hash has no representation here at all.
type identityView struct {
	ID              string   `json:"id"`
	ConsumerNo      string   `json:"consumerNo"`
	ConsumerName    string   `json:"consumerName"`
	ConsumerAddress string   `json:"consumerAddress"`
	Role            string   `json:"role"`
	DeviceIDs       []string `json:"deviceId"`
}
