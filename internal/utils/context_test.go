// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-community-access/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestIdentityCtxKey(t *testing.T) {
	if IdentityCtxKey.String() != "identity" {
		t.Errorf("expected 'identity', got '%s'", IdentityCtxKey.String())
	}
}

func TestIdentityFromContext_Success(t *testing.T) {
	want := models.Identity{AccountID: 42, Username: "ana", Role: models.RoleSecretary}
	ctx := WithIdentity(context.Background(), want)

	got, ok := IdentityFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	got, ok := IdentityFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if got.AccountID != 0 {
		t.Errorf("expected zero identity, got %+v", got)
	}
}

func TestIdentityFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, int64(42))

	if _, ok := IdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestIdentityFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, models.Identity{AccountID: 1})

	if _, ok := IdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}

func TestSessionFromContext(t *testing.T) {
	session := &models.Session{ID: "abc", AccountID: 7}
	ctx := WithSession(context.Background(), session)

	got, ok := SessionFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != session {
		t.Error("expected the same session pointer")
	}
}

func TestSessionFromContext_NilSession(t *testing.T) {
	ctx := WithSession(context.Background(), nil)

	if _, ok := SessionFromContext(ctx); ok {
		t.Fatal("expected ok=false for nil session, got true")
	}
}
