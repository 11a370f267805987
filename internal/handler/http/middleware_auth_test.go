package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-community-access/internal/service"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// captured records what authenticate left in the request context.
type captured struct {
	called      bool
	identity    models.Identity
	hasIdentity bool
	session     *models.Session
}

func (c *captured) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.identity, c.hasIdentity = utils.IdentityFromContext(r.Context())
		c.session, _ = utils.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().IdentityFromToken(gomock.Any(), "abc123").Return(tokenIdentity, nil)

	var c captured
	req := httptest.NewRequest(http.MethodGet, "/api/users/by-role", nil)
	req.Header.Set("Authorization", "Token abc123")
	rr := httptest.NewRecorder()
	env.h.authenticate(c.handler()).ServeHTTP(rr, req)

	require.True(t, c.called)
	assert.True(t, c.hasIdentity)
	assert.Equal(t, tokenIdentity, c.identity)
	assert.Nil(t, c.session, "token requests carry no browser session")
}

func TestAuthenticate_TokenFailures(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		lookupErr  error
		lookup     bool
		wantStatus int
	}{
		{"unknown scheme", "Basic dXNlcjpwYXNz", nil, false, http.StatusUnauthorized},
		{"empty credential", "Token", nil, false, http.StatusUnauthorized},
		{"unknown token", "Token nope", service.ErrInvalidCredentials, true, http.StatusUnauthorized},
		{"inactive owner", "Token nope", service.ErrInactiveAccount, true, http.StatusUnauthorized},
		{"store failure", "Token nope", errors.Join(errors.New("token lookup failed"), store.ErrExecutingQuery), true, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.lookup {
				env.auth.EXPECT().IdentityFromToken(gomock.Any(), "nope").Return(models.Identity{}, tt.lookupErr)
			}

			var c captured
			req := httptest.NewRequest(http.MethodGet, "/api/users/by-role", nil)
			req.Header.Set("Authorization", tt.header)
			rr := httptest.NewRecorder()
			env.h.authenticate(c.handler()).ServeHTTP(rr, req)

			assert.False(t, c.called)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestAuthenticate_AnonymousBrowser(t *testing.T) {
	env := newTestEnv(t)
	env.expectAnonymous()

	var c captured
	rr := httptest.NewRecorder()
	env.h.authenticate(c.handler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/accounts/login/", nil))

	require.True(t, c.called)
	assert.False(t, c.hasIdentity)
	require.NotNil(t, c.session)
	assert.Equal(t, "anon", c.session.ID)
}

func TestAuthenticate_SessionCookie(t *testing.T) {
	env := newTestEnv(t)
	session := &models.Session{ID: "s1", AccountID: secretaryIdentity.AccountID}
	env.sessions.EXPECT().Load(gomock.Any(), "signed-s1").Return(session, nil)
	env.auth.EXPECT().IdentityFromSession(gomock.Any(), session).Return(secretaryIdentity, nil)

	var c captured
	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "signed-s1"})
	rr := httptest.NewRecorder()
	env.h.authenticate(c.handler()).ServeHTTP(rr, req)

	require.True(t, c.called)
	assert.Equal(t, secretaryIdentity, c.identity)
	assert.Same(t, session, c.session)
}

func TestAuthenticate_SessionAccountNoLongerUsable(t *testing.T) {
	for _, lookupErr := range []error{service.ErrNoAccountFound, service.ErrInactiveAccount} {
		t.Run(lookupErr.Error(), func(t *testing.T) {
			env := newTestEnv(t)
			session := &models.Session{ID: "s1", AccountID: 9}
			env.sessions.EXPECT().Load(gomock.Any(), "signed-s1").Return(session, nil)
			env.auth.EXPECT().IdentityFromSession(gomock.Any(), session).Return(models.Identity{}, lookupErr)

			var c captured
			req := httptest.NewRequest(http.MethodGet, "/home", nil)
			req.AddCookie(&http.Cookie{Name: testCookieName, Value: "signed-s1"})
			rr := httptest.NewRecorder()
			env.h.authenticate(c.handler()).ServeHTTP(rr, req)

			require.True(t, c.called)
			assert.False(t, c.hasIdentity)
			assert.False(t, c.session.Authenticated())
		})
	}
}

func TestAuthenticate_SessionLookupFailure(t *testing.T) {
	env := newTestEnv(t)
	session := &models.Session{ID: "s1", AccountID: 9}
	env.sessions.EXPECT().Load(gomock.Any(), "signed-s1").Return(session, nil)
	env.auth.EXPECT().IdentityFromSession(gomock.Any(), session).
		Return(models.Identity{}, errors.Join(errors.New("account lookup failed"), store.ErrExecutingQuery))

	var c captured
	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "signed-s1"})
	rr := httptest.NewRecorder()
	env.h.authenticate(c.handler()).ServeHTTP(rr, req)

	assert.False(t, c.called)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAuthenticate_SessionStoreDownStillServes(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.EXPECT().Load(gomock.Any(), "signed-s1").Return(&models.Session{ID: "fresh"}, store.ErrSessionStore)

	var c captured
	req := httptest.NewRequest(http.MethodGet, "/accounts/login/", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "signed-s1"})
	rr := httptest.NewRecorder()
	env.h.authenticate(c.handler()).ServeHTTP(rr, req)

	require.True(t, c.called)
	assert.Equal(t, "fresh", c.session.ID)
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		identity     *models.Identity
		wantStatus   int
		wantLocation string
	}{
		{"authenticated", "/home", &secretaryIdentity, http.StatusOK, ""},
		{"anonymous api", "/api/users/by-role", nil, http.StatusUnauthorized, ""},
		{"anonymous web", "/home", nil, http.StatusFound, "/accounts/login/?next=%2Fhome"},
		{"anonymous web with query", "/home?tab=1", nil, http.StatusFound, "/accounts/login/?next=%2Fhome%3Ftab%3D1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c captured
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.identity != nil {
				req = withIdentity(req, *tt.identity)
			}
			rr := httptest.NewRecorder()
			newTestHandler().requireAuth(c.handler()).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.identity != nil, c.called)
			assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
		})
	}
}
