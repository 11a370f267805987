package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-community-access/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForcePasswordChange_PassesUnflaggedAccounts(t *testing.T) {
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/home", nil),
		withIdentity(httptest.NewRequest(http.MethodGet, "/home", nil), secretaryIdentity),
	} {
		var c captured
		rr := httptest.NewRecorder()
		newTestHandler().forcePasswordChange(c.handler()).ServeHTTP(rr, req)

		assert.True(t, c.called)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestForcePasswordChange_AllowList(t *testing.T) {
	flagged := secretaryIdentity
	flagged.MustChangePassword = true

	for _, path := range []string{pathAPIInitialPassword, pathPasswordChangeRequired, pathLogout, pathHealth, pathPing} {
		t.Run(path, func(t *testing.T) {
			var c captured
			req := withIdentity(httptest.NewRequest(http.MethodPost, path, nil), flagged)
			rr := httptest.NewRecorder()
			newTestHandler().forcePasswordChange(c.handler()).ServeHTTP(rr, req)

			assert.True(t, c.called)
		})
	}
}

func TestForcePasswordChange_WebRedirect(t *testing.T) {
	flagged := secretaryIdentity
	flagged.MustChangePassword = true

	var c captured
	req := withIdentity(httptest.NewRequest(http.MethodGet, "/home", nil), flagged)
	rr := httptest.NewRecorder()
	newTestHandler().forcePasswordChange(c.handler()).ServeHTTP(rr, req)

	assert.False(t, c.called)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, pathPasswordChangeRequired, rr.Header().Get("Location"))
}

func TestForcePasswordChange_APIForbidden(t *testing.T) {
	flagged := tokenIdentity
	flagged.MustChangePassword = true

	var c captured
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/users/3/deactivate", nil), flagged)
	rr := httptest.NewRecorder()
	newTestHandler().forcePasswordChange(c.handler()).ServeHTTP(rr, req)

	assert.False(t, c.called)
	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, pathAPIInitialPassword, rr.Header().Get("Location"))

	var body models.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, codePasswordChangeRequired, body.Code)
	assert.Equal(t, pathAPIInitialPassword, body.Redirect)
}

func TestForcePasswordChange_TokenOnWebPathIsAPI(t *testing.T) {
	flagged := tokenIdentity
	flagged.MustChangePassword = true

	var c captured
	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.Header.Set("Authorization", "Token abc")
	req = withIdentity(req, flagged)
	rr := httptest.NewRecorder()
	newTestHandler().forcePasswordChange(c.handler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
