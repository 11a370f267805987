package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/go-community-access/internal/service"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/internal/validators"
	"github.com/MKhiriev/go-community-access/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func anaRecord(mustChange bool) models.AccountRecord {
	return models.AccountWithProfile{
		Account: models.Account{ID: 7, Username: "ana", Email: "ana@example.org", Active: true, FirstName: "Ana", LastName: "Diaz"},
		Profile: models.Profile{AccountID: 7, Role: models.RoleSecretary, MustChangePassword: mustChange},
	}
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"", pathHome},
		{"/meetings/3", "/meetings/3"},
		{"https://evil.example", pathHome},
		{"//evil.example", pathHome},
		{"/\\evil.example", pathHome},
		{"relative", pathHome},
	}

	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			assert.Equal(t, tt.want, safeNext(tt.next))
		})
	}
}

func TestLoginPage_Renders(t *testing.T) {
	env := newTestEnv(t)

	req := withSession(httptest.NewRequest(http.MethodGet, "/accounts/login/?next=/meetings", nil), &models.Session{ID: "anon"})
	rr := httptest.NewRecorder()
	env.h.loginPage(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="next" value="/meetings"`)
}

func TestLoginPage_AlreadySignedIn(t *testing.T) {
	env := newTestEnv(t)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/accounts/login/?next=/meetings", nil), secretaryIdentity)
	rr := httptest.NewRecorder()
	env.h.loginPage(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/meetings", rr.Header().Get("Location"))
}

func TestLoginPage_ShowsFlashesOnce(t *testing.T) {
	env := newTestEnv(t)
	env.expectSave()

	session := &models.Session{ID: "anon"}
	session.AddFlash(models.FlashSuccess, "Password reset successfully! You can now sign in.")

	req := withSession(httptest.NewRequest(http.MethodGet, "/accounts/login/", nil), session)
	rr := httptest.NewRecorder()
	env.h.loginPage(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Password reset successfully! You can now sign in.")
	assert.Empty(t, session.Flashes)
}

func TestLoginSubmit_Success(t *testing.T) {
	env := newTestEnv(t)
	current := &models.Session{ID: "anon"}
	started := &models.Session{ID: "s-new", AccountID: 7}
	env.auth.EXPECT().Authenticate(gomock.Any(), "ana@example.org", "secret").Return(anaRecord(false), nil)
	env.sessions.EXPECT().Start(gomock.Any(), current, int64(7)).Return(started, nil)
	env.sessions.EXPECT().Save(gomock.Any(), started).Return(models.SessionCookie{SignedString: "signed-s-new"}, nil)

	req := withSession(postForm(pathLogin, url.Values{
		"username": {" ana@example.org "},
		"password": {"secret"},
		"next":     {"/meetings"},
	}), current)
	rr := httptest.NewRecorder()
	env.h.loginSubmit(rr, req)

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/meetings", rr.Header().Get("Location"))

	cookie := findCookie(rr, testCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-s-new", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestLoginSubmit_MustChangePassword(t *testing.T) {
	env := newTestEnv(t)
	env.expectSave()
	env.auth.EXPECT().Authenticate(gomock.Any(), "ana", "secret").Return(anaRecord(true), nil)
	env.sessions.EXPECT().Start(gomock.Any(), gomock.Any(), int64(7)).Return(&models.Session{ID: "s2", AccountID: 7}, nil)

	req := withSession(postForm(pathLogin, url.Values{"username": {"ana"}, "password": {"secret"}, "next": {"/meetings"}}), &models.Session{ID: "anon"})
	rr := httptest.NewRecorder()
	env.h.loginSubmit(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, pathPasswordChangeRequired, rr.Header().Get("Location"))
}

func TestLoginSubmit_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusOK, "Invalid credentials."},
		{"inactive", service.ErrInactiveAccount, http.StatusOK, "This account is inactive."},
		{"missing", service.ErrMissingCredentials, http.StatusOK, "Missing credentials."},
		{"store failure", errors.Join(errors.New("lookup failed"), store.ErrExecutingQuery), http.StatusInternalServerError, "Please try again in a few minutes."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.auth.EXPECT().Authenticate(gomock.Any(), "ana", "bad").Return(nil, tt.err)

			req := withSession(postForm(pathLogin, url.Values{"username": {"ana"}, "password": {"bad"}}), &models.Session{ID: "anon"})
			rr := httptest.NewRecorder()
			env.h.loginSubmit(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantText)
			assert.Contains(t, rr.Body.String(), `value="ana"`)
			assert.Nil(t, findCookie(rr, testCookieName))
		})
	}
}

func TestLoginSubmit_SessionStoreDown(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().Authenticate(gomock.Any(), "ana", "secret").Return(anaRecord(false), nil)
	env.sessions.EXPECT().Start(gomock.Any(), gomock.Any(), int64(7)).Return(nil, store.ErrSessionStore)

	req := withSession(postForm(pathLogin, url.Values{"username": {"ana"}, "password": {"secret"}}), &models.Session{ID: "anon"})
	rr := httptest.NewRecorder()
	env.h.loginSubmit(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Nil(t, findCookie(rr, testCookieName))
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	session := &models.Session{ID: "s1", AccountID: 7}
	env.sessions.EXPECT().Destroy(gomock.Any(), session).Return(nil)

	req := withIdentity(withSession(httptest.NewRequest(http.MethodPost, pathLogout, nil), session), secretaryIdentity)
	rr := httptest.NewRecorder()
	env.h.logout(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, pathLogin, rr.Header().Get("Location"))
	cookie := findCookie(rr, testCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "", cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestLogout_DestroyFailureStillClearsCookie(t *testing.T) {
	env := newTestEnv(t)
	session := &models.Session{ID: "s1", AccountID: 7}
	env.sessions.EXPECT().Destroy(gomock.Any(), session).Return(store.ErrSessionStore)

	req := withIdentity(withSession(httptest.NewRequest(http.MethodPost, pathLogout, nil), session), secretaryIdentity)
	rr := httptest.NewRecorder()
	env.h.logout(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	require.NotNil(t, findCookie(rr, testCookieName))
}

func TestPasswordChangeRequiredPage(t *testing.T) {
	env := newTestEnv(t)

	req := withIdentity(withSession(httptest.NewRequest(http.MethodGet, pathPasswordChangeRequired, nil), &models.Session{ID: "s1", AccountID: 7}), secretaryIdentity)
	rr := httptest.NewRecorder()
	env.h.passwordChangeRequiredPage(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `name="old_password"`)
	assert.Contains(t, body, `name="new_password1"`)
	assert.Contains(t, body, `name="new_password2"`)
	assert.Contains(t, body, "Ana Diaz")
}

func TestPasswordChangeRequiredSubmit_Success(t *testing.T) {
	env := newTestEnv(t)
	current := &models.Session{ID: "s1", AccountID: 7}
	renewed := &models.Session{ID: "s2", AccountID: 7}
	form := models.PasswordChangeForm{CurrentPassword: "old", NewPassword: "Kx7!quilt-meadow-harbor", ConfirmPassword: "Kx7!quilt-meadow-harbor"}

	env.password.EXPECT().ChangeWithCurrent(gomock.Any(), secretaryIdentity, form).Return(nil)
	env.sessions.EXPECT().Start(gomock.Any(), current, int64(7)).Return(renewed, nil)
	env.sessions.EXPECT().Save(gomock.Any(), renewed).Return(models.SessionCookie{SignedString: "signed-s2"}, nil)

	req := withIdentity(withSession(postForm(pathPasswordChangeRequired, url.Values{
		"old_password":  {"old"},
		"new_password1": {"Kx7!quilt-meadow-harbor"},
		"new_password2": {"Kx7!quilt-meadow-harbor"},
	}), current), secretaryIdentity)
	rr := httptest.NewRecorder()
	env.h.passwordChangeRequiredSubmit(rr, req)

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, pathHome, rr.Header().Get("Location"))
	assert.Equal(t, "signed-s2", findCookie(rr, testCookieName).Value)
	require.Len(t, renewed.Flashes, 1)
	assert.Equal(t, models.FlashSuccess, renewed.Flashes[0].Level)
}

func TestPasswordChangeRequiredSubmit_Rejected(t *testing.T) {
	violation := &validators.PolicyViolationError{Violations: []validators.Violation{
		{Rule: validators.RuleCommonPassword, Message: "This password is too common."},
	}}

	tests := []struct {
		name     string
		err      error
		wantText []string
	}{
		{"wrong current password", service.ErrInvalidCurrentPassword, []string{"Your current password was entered incorrectly."}},
		{"mismatch", service.ErrPasswordMismatch, []string{"The passwords do not match."}},
		{"policy", violation, []string{"This password is too common."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.password.EXPECT().ChangeWithCurrent(gomock.Any(), secretaryIdentity, gomock.Any()).Return(tt.err)

			req := withIdentity(withSession(postForm(pathPasswordChangeRequired, url.Values{
				"old_password":  {"old"},
				"new_password1": {"a"},
				"new_password2": {"b"},
			}), &models.Session{ID: "s1", AccountID: 7}), secretaryIdentity)
			rr := httptest.NewRecorder()
			env.h.passwordChangeRequiredSubmit(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			for _, text := range tt.wantText {
				assert.Contains(t, rr.Body.String(), text)
			}
		})
	}
}

func TestHome(t *testing.T) {
	env := newTestEnv(t)

	req := withIdentity(withSession(httptest.NewRequest(http.MethodGet, pathHome, nil), &models.Session{ID: "s1", AccountID: 7}), secretaryIdentity)
	rr := httptest.NewRecorder()
	env.h.home(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Welcome, Ana Diaz")
	assert.Contains(t, rr.Body.String(), "SECRETARY")
}
