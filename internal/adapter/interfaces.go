// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the community-access
// server.
//
// The primary abstraction is [MessageGateway], which decouples the recovery
// flow from the mechanics of e-mail delivery. The package ships a webhook
// implementation ([NewWebhookMessageGateway]) that posts each message as JSON
// to a configured endpoint.
//
// Error values defined in errors.go let callers distinguish a retryable
// delivery failure ([ErrDeliveryFailure]) from a deployment problem
// ([ErrMissingConfiguration]) with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-community-access/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// MessageGateway delivers a message to one recipient.
type MessageGateway interface {
	// Send delivers msg and returns only after the remote side accepted it.
	// The caller bounds the call with ctx.
	Send(ctx context.Context, msg models.Message) error
}
