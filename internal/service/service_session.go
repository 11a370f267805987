package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
	"github.com/google/uuid"
)

// sessionService keeps session state in the SessionStore and hands the
// browser a signed cookie carrying only the session id.
type sessionService struct {
	sessions store.SessionStore

	signKey string
	issuer  string
	ttl     time.Duration

	clock  utils.Clock
	logger *logger.Logger
}

// NewSessionService constructs a SessionService from the auth settings.
func NewSessionService(sessions store.SessionStore, cfg config.Auth, clock utils.Clock, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		signKey:  cfg.SessionSignKey,
		issuer:   cfg.SessionIssuer,
		ttl:      cfg.SessionTTL,
		clock:    clock,
		logger:   logger,
	}
}

func (s *sessionService) Load(ctx context.Context, cookieValue string) (*models.Session, error) {
	log := logger.FromContext(ctx)

	if cookieValue == "" {
		return s.fresh(), nil
	}

	cookie, err := utils.ParseSessionCookie(cookieValue, s.signKey, s.issuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "sessionService.Load").Msg("discarding invalid session cookie")
		return s.fresh(), nil
	}

	id, err := cookie.SessionID()
	if err != nil || id == "" {
		return s.fresh(), nil
	}

	session, err := s.sessions.Get(ctx, id)
	if errors.Is(err, store.ErrSessionNotFound) {
		return s.fresh(), nil
	}
	if err != nil {
		log.Err(err).Str("func", "sessionService.Load").Msg("session store failed, continuing anonymously")
		return s.fresh(), fmt.Errorf("loading session: %w", err)
	}

	return &session, nil
}

// Start rotates the session id on sign-in. Flashes survive the rotation;
// the previous record is deleted.
func (s *sessionService) Start(ctx context.Context, current *models.Session, accountID int64) (*models.Session, error) {
	next := s.fresh()
	next.AccountID = accountID

	if current != nil {
		next.Flashes = append(next.Flashes, current.Flashes...)
		if err := s.sessions.Delete(ctx, current.ID); err != nil {
			return nil, fmt.Errorf("discarding previous session: %w", err)
		}
	}

	return next, nil
}

func (s *sessionService) Save(ctx context.Context, session *models.Session) (models.SessionCookie, error) {
	if session == nil {
		return models.SessionCookie{}, fmt.Errorf("saving session: %w", store.ErrSessionNotFound)
	}

	if err := s.sessions.Save(ctx, *session, s.ttl); err != nil {
		return models.SessionCookie{}, fmt.Errorf("saving session: %w", err)
	}

	cookie, err := utils.SignSessionCookie(s.issuer, session.ID, s.ttl, s.signKey)
	if err != nil {
		return models.SessionCookie{}, fmt.Errorf("signing session cookie: %w", err)
	}

	return cookie, nil
}

func (s *sessionService) Destroy(ctx context.Context, session *models.Session) error {
	if session == nil {
		return nil
	}
	return s.sessions.Delete(ctx, session.ID)
}

func (s *sessionService) fresh() *models.Session {
	return &models.Session{
		ID:        uuid.NewString(),
		CreatedAt: s.clock.Now(),
	}
}
