package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-community-access/internal/app"
	"github.com/MKhiriev/go-community-access/internal/service"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/internal/validators"
	"github.com/MKhiriev/go-community-access/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAPILogin_Success(t *testing.T) {
	env := newTestEnv(t)
	summary := models.AccountSummary{ID: 7, Username: "ana", Email: "ana@example.org", FirstName: "Ana", LastName: "Diaz"}
	env.auth.EXPECT().LoginAPI(gomock.Any(), "ana", "secret").Return(models.LoginResult{
		Token:              &models.APIToken{Key: "k3y", AccountID: 7},
		MustChangePassword: true,
		Account:            summary,
	}, nil)

	rr := httptest.NewRecorder()
	env.h.apiLogin(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"ana","password":"secret"}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	var body models.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Token)
	assert.Equal(t, "k3y", *body.Token)
	assert.True(t, body.MustChangePassword)
	assert.Equal(t, summary, body.User)
}

func TestAPILogin_IdentifierFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"email field", `{"email":"ana@example.org","password":"pw"}`, "ana@example.org"},
		{"identifier field", `{"identifier":"ana","password":"pw"}`, "ana"},
		{"username wins", `{"username":"ana","email":"other@example.org","password":"pw"}`, "ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.auth.EXPECT().LoginAPI(gomock.Any(), tt.want, "pw").
				Return(models.LoginResult{Token: &models.APIToken{Key: "k"}}, nil)

			rr := httptest.NewRecorder()
			env.h.apiLogin(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestAPILogin_TokenNotIssued(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().LoginAPI(gomock.Any(), "ana", "secret").Return(models.LoginResult{Account: models.AccountSummary{ID: 7}}, nil)

	rr := httptest.NewRecorder()
	env.h.apiLogin(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"ana","password":"secret"}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Contains(t, raw, "token")
	assert.Nil(t, raw["token"])
	assert.Equal(t, true, raw["success"])
}

func TestAPILogin_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	rr := httptest.NewRecorder()
	env.h.apiLogin(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid JSON."}`, rr.Body.String())
}

func TestAPILogin_Failures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing credentials", service.ErrMissingCredentials, http.StatusBadRequest, "Missing credentials."},
		{"ambiguous e-mail", service.ErrAmbiguousIdentifier, http.StatusBadRequest, "This e-mail address is registered to more than one account. Sign in with your username."},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials."},
		{"inactive account", service.ErrInactiveAccount, http.StatusForbidden, "This account is inactive."},
		{"store failure", errors.Join(errors.New("account lookup failed"), store.ErrExecutingQuery), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.auth.EXPECT().LoginAPI(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.LoginResult{}, tt.err)

			rr := httptest.NewRecorder()
			env.h.apiLogin(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"ana","password":"x"}`)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body models.MessageResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestAPIInitialPassword_Success(t *testing.T) {
	env := newTestEnv(t)
	env.password.EXPECT().ChangeInitial(gomock.Any(), tokenIdentity, "Kx7!quilt-meadow-harbor").Return("Welcome, Api Client, ...", nil)

	req := withIdentity(httptest.NewRequest(http.MethodPost, pathAPIInitialPassword, strings.NewReader(`{"new_password":"Kx7!quilt-meadow-harbor"}`)), tokenIdentity)
	rr := httptest.NewRecorder()
	env.h.apiInitialPassword(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"Welcome, Api Client, ..."}`, rr.Body.String())
}

func TestAPIInitialPassword_PolicyViolation(t *testing.T) {
	env := newTestEnv(t)
	violation := &validators.PolicyViolationError{Violations: []validators.Violation{
		{Rule: validators.RuleMinimumLength, Message: "This password is too short. It must contain at least 14 characters."},
		{Rule: validators.RuleNumericPassword, Message: "This password is entirely numeric."},
	}}
	env.password.EXPECT().ChangeInitial(gomock.Any(), tokenIdentity, "123").Return("", violation)

	req := withIdentity(httptest.NewRequest(http.MethodPost, pathAPIInitialPassword, strings.NewReader(`{"new_password":"123"}`)), tokenIdentity)
	rr := httptest.NewRecorder()
	env.h.apiInitialPassword(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var body models.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, violation.Messages(), body.Errors)
}

func TestAPIInitialPassword_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.password.EXPECT().ChangeInitial(gomock.Any(), tokenIdentity, "").Return("", service.ErrPasswordRequired)

	req := withIdentity(httptest.NewRequest(http.MethodPost, pathAPIInitialPassword, strings.NewReader(`{}`)), tokenIdentity)
	rr := httptest.NewRecorder()
	env.h.apiInitialPassword(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"A new password is required."}`, rr.Body.String())
}

func TestAPIInitialPassword_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	req := withIdentity(httptest.NewRequest(http.MethodPost, pathAPIInitialPassword, strings.NewReader(`not json`)), tokenIdentity)
	rr := httptest.NewRecorder()
	env.h.apiInitialPassword(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
