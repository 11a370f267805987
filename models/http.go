package models

// LoginRequest is the body of the API login call.
// The identifier may arrive as "username", "email" or "identifier".
type LoginRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginIdentifier returns the first non-empty identifier field.
func (r LoginRequest) LoginIdentifier() string {
	switch {
	case r.Username != "":
		return r.Username
	case r.Email != "":
		return r.Email
	default:
		return r.Identifier
	}
}

// InitialPasswordRequest is the body of the API forced password change.
type InitialPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// PasswordChangeForm is the web forced password change form.
type PasswordChangeForm struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// RecoveryForm is the second step of the recovery flow.
type RecoveryForm struct {
	Code            string
	NewPassword     string
	ConfirmPassword string
}

// DeleteAccountRequest carries the explicit confirmation required
// by the irreversible account deletion.
type DeleteAccountRequest struct {
	Confirm bool `json:"confirm"`
}
