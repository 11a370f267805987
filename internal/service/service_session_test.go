package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/mock"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testAuthCfg = config.Auth{
	SessionSignKey: "test-sign-key",
	SessionIssuer:  "community-access",
	SessionTTL:     time.Hour,
}

func newTestSessionSvc(t *testing.T) (SessionService, *mock.MockSessionStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionStore(ctrl)
	return NewSessionService(sessions, testAuthCfg, &utils.FixedClock{T: testNow}, logger.Nop()), sessions
}

func TestSessionLoad_NoCookieGivesFreshAnonymousSession(t *testing.T) {
	svc, _ := newTestSessionSvc(t)

	session, err := svc.Load(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.False(t, session.Authenticated())
	assert.Equal(t, testNow, session.CreatedAt)
}

func TestSessionLoad_InvalidCookieIsIgnored(t *testing.T) {
	svc, _ := newTestSessionSvc(t)

	forged, err := utils.SignSessionCookie(testAuthCfg.SessionIssuer, "victim", time.Hour, "other-key")
	require.NoError(t, err)

	for _, value := range []string{"garbage", forged.SignedString} {
		session, err := svc.Load(context.Background(), value)
		require.NoError(t, err)
		assert.NotEqual(t, "victim", session.ID)
		assert.False(t, session.Authenticated())
	}
}

func TestSessionSaveThenLoad(t *testing.T) {
	svc, sessions := newTestSessionSvc(t)
	session := &models.Session{ID: "sid-1", AccountID: 7, RecoveryEmail: "ana@example.org"}

	sessions.EXPECT().Save(gomock.Any(), *session, time.Hour).Return(nil)
	sessions.EXPECT().Get(gomock.Any(), "sid-1").Return(*session, nil)

	cookie, err := svc.Save(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", cookie.Subject)

	loaded, err := svc.Load(context.Background(), cookie.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(7), loaded.AccountID)
	assert.Equal(t, "ana@example.org", loaded.RecoveryEmail)
}

func TestSessionLoad_ExpiredRecordGivesFreshSession(t *testing.T) {
	svc, sessions := newTestSessionSvc(t)

	cookie, err := utils.SignSessionCookie(testAuthCfg.SessionIssuer, "gone", time.Hour, testAuthCfg.SessionSignKey)
	require.NoError(t, err)
	sessions.EXPECT().Get(gomock.Any(), "gone").Return(models.Session{}, store.ErrSessionNotFound)

	session, err := svc.Load(context.Background(), cookie.SignedString)
	require.NoError(t, err)
	assert.NotEqual(t, "gone", session.ID)
}

func TestSessionLoad_StoreFailure(t *testing.T) {
	svc, sessions := newTestSessionSvc(t)

	cookie, err := utils.SignSessionCookie(testAuthCfg.SessionIssuer, "sid", time.Hour, testAuthCfg.SessionSignKey)
	require.NoError(t, err)
	sessions.EXPECT().Get(gomock.Any(), "sid").Return(models.Session{}, errors.New("redis down"))

	session, err := svc.Load(context.Background(), cookie.SignedString)
	require.Error(t, err)
	require.NotNil(t, session)
	assert.False(t, session.Authenticated())
}

func TestSessionStart_RotatesIDAndKeepsFlashes(t *testing.T) {
	svc, sessions := newTestSessionSvc(t)
	current := &models.Session{ID: "anon", RecoveryEmail: "ana@example.org"}
	current.AddFlash(models.FlashSuccess, "Password reset successfully! You can now sign in.")

	sessions.EXPECT().Delete(gomock.Any(), "anon").Return(nil)

	next, err := svc.Start(context.Background(), current, 7)
	require.NoError(t, err)
	assert.NotEqual(t, "anon", next.ID)
	assert.Equal(t, int64(7), next.AccountID)
	assert.Empty(t, next.RecoveryEmail)
	assert.Equal(t, current.Flashes, next.Flashes)
}

func TestSessionStart_DeleteFailure(t *testing.T) {
	svc, sessions := newTestSessionSvc(t)

	sessions.EXPECT().Delete(gomock.Any(), "anon").Return(errors.New("redis down"))

	_, err := svc.Start(context.Background(), &models.Session{ID: "anon"}, 7)
	assert.Error(t, err)
}

func TestSessionSave_StoreFailure(t *testing.T) {
	svc, sessions := newTestSessionSvc(t)

	sessions.EXPECT().Save(gomock.Any(), gomock.Any(), time.Hour).Return(store.ErrSessionStore)

	_, err := svc.Save(context.Background(), &models.Session{ID: "sid"})
	assert.ErrorIs(t, err, store.ErrSessionStore)
}

func TestSessionDestroy(t *testing.T) {
	svc, sessions := newTestSessionSvc(t)

	sessions.EXPECT().Delete(gomock.Any(), "sid").Return(nil)

	assert.NoError(t, svc.Destroy(context.Background(), &models.Session{ID: "sid"}))
	assert.NoError(t, svc.Destroy(context.Background(), nil))
}
