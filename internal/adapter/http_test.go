// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, url, secret string) MessageGateway {
	t.Helper()
	return NewWebhookMessageGateway(config.Mailer{
		WebhookURL:    url,
		WebhookSecret: secret,
		Timeout:       2 * time.Second,
	}, logger.Nop())
}

var testMessage = models.Message{
	To:       "ana@example.org",
	Subject:  "Recovery code - Community Board",
	HTMLBody: "<p>123456</p>",
	TextBody: "123456",
}

func TestSend_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hooks/mail", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var payload webhookPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "s3cret", payload.Secret)
		assert.Equal(t, testMessage.To, payload.To)
		assert.Equal(t, testMessage.Subject, payload.Subject)
		assert.Equal(t, testMessage.HTMLBody, payload.HTMLBody)
		assert.Equal(t, testMessage.TextBody, payload.TextBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	err := newTestGateway(t, srv.URL+"/hooks/mail", "s3cret").Send(context.Background(), testMessage)
	require.NoError(t, err)
}

func TestSend_AcceptsPlainTextContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	require.NoError(t, newTestGateway(t, srv.URL, "s3cret").Send(context.Background(), testMessage))
}

func TestSend_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"status":"ok"}`},
		{"unauthorized", http.StatusUnauthorized, "bad secret"},
		{"status not ok", http.StatusOK, `{"status":"queued"}`},
		{"malformed body", http.StatusOK, "ok"},
		{"empty body", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := newTestGateway(t, srv.URL, "s3cret").Send(context.Background(), testMessage)
			assert.ErrorIs(t, err, ErrDeliveryFailure)
		})
	}
}

func TestSend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestGateway(t, url, "s3cret").Send(context.Background(), testMessage)
	assert.ErrorIs(t, err, ErrDeliveryFailure)
}

func TestSend_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := newTestGateway(t, srv.URL, "s3cret").Send(ctx, testMessage)
	assert.ErrorIs(t, err, ErrDeliveryFailure)
}

func TestSend_MissingConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		secret string
	}{
		{"no url", "", "s3cret"},
		{"no secret", "http://localhost:1/hook", ""},
		{"blank values", "  ", "  "},
		{"relative url", "hooks/mail", "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestGateway(t, tt.url, tt.secret).Send(context.Background(), testMessage)
			assert.ErrorIs(t, err, ErrMissingConfiguration)
		})
	}
}
