package models

// AccountSummary is the account view returned by the API login.
// LastName holds the display surname.
type AccountSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewAccountSummary builds the summary of r.
func NewAccountSummary(r AccountRecord) AccountSummary {
	a := r.GetAccount()
	return AccountSummary{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  DisplaySurname(r),
	}
}

// LoginResult is the outcome of a successful API login.
// Token is nil when the token store failed; the login itself still succeeded.
type LoginResult struct {
	Token              *APIToken
	MustChangePassword bool
	Account            AccountSummary
}

// LoginResponse is the JSON body of a successful API login.
type LoginResponse struct {
	Success            bool           `json:"success"`
	Message            string         `json:"message"`
	Token              *string        `json:"token"`
	MustChangePassword bool           `json:"must_change_password"`
	User               AccountSummary `json:"user"`
}

// MessageResponse is the generic JSON reply of API operations.
type MessageResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Code     string   `json:"code,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Redirect string   `json:"redirect,omitempty"`
}

// HealthResponse is the body of the health probe.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// PingResponse is the body of the liveness probe.
type PingResponse struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// RoleListEntry is one entry of the users-by-role listing.
type RoleListEntry struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UsersByRoleResponse wraps the users-by-role listing.
type UsersByRoleResponse struct {
	Results []RoleListEntry `json:"results"`
}

// AccountStatusResult reports an account-management operation.
// Changed is false when the account was already in the requested state.
type AccountStatusResult struct {
	Account Account
	Changed bool
}
