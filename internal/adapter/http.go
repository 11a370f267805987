package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
)

const webhookStatusOK = "ok"

// webhookPayload is the JSON body accepted by the mail webhook.
type webhookPayload struct {
	Secret   string `json:"secret"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	TextBody string `json:"text_body"`
}

type webhookResult struct {
	Status string `json:"status"`
}

type webhookMessageGateway struct {
	client *utils.HTTPClient

	endpoint string
	secret   string

	logger *logger.Logger
}

// NewWebhookMessageGateway constructs a [MessageGateway] that posts messages
// to cfg.WebhookURL.
//
// A missing URL or secret does not fail construction: the gateway is still
// returned and every Send reports [ErrMissingConfiguration], so a
// misconfigured deployment starts but cannot silently drop messages.
func NewWebhookMessageGateway(cfg config.Mailer, logger *logger.Logger) MessageGateway {
	endpoint := strings.TrimSpace(cfg.WebhookURL)
	secret := strings.TrimSpace(cfg.WebhookSecret)

	if endpoint == "" || secret == "" {
		logger.Warn().Msg("mail webhook url or secret is not configured, message delivery is disabled")
	}

	return &webhookMessageGateway{
		client:   utils.NewHTTPClient("", cfg.Timeout),
		endpoint: endpoint,
		secret:   secret,
		logger:   logger,
	}
}

// Send implements [MessageGateway]. It POSTs msg together with the shared
// secret and treats anything but a 2xx response with {"status":"ok"} as a
// failed delivery.
func (g *webhookMessageGateway) Send(ctx context.Context, msg models.Message) error {
	log := logger.FromContext(ctx)

	if g.endpoint == "" || g.secret == "" {
		log.Error().Err(ErrMissingConfiguration).Str("func", "webhookMessageGateway.Send").Msg("cannot send message")
		return ErrMissingConfiguration
	}
	if _, err := url.ParseRequestURI(g.endpoint); err != nil {
		log.Error().Err(err).Str("func", "webhookMessageGateway.Send").Msg("invalid mail webhook url")
		return fmt.Errorf("%w: invalid webhook url: %w", ErrMissingConfiguration, err)
	}

	textBody := msg.TextBody
	if textBody == "" {
		// the webhook rejects an empty text part
		textBody = " "
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{
			Secret:   g.secret,
			To:       msg.To,
			Subject:  msg.Subject,
			HTMLBody: msg.HTMLBody,
			TextBody: textBody,
		}).
		Post(g.endpoint)
	if err != nil {
		log.Error().Err(err).Str("func", "webhookMessageGateway.Send").Msg("mail webhook request failed")
		return fmt.Errorf("%w: %w", ErrDeliveryFailure, err)
	}

	if err = mapDeliveryError(resp); err != nil {
		log.Error().Err(err).Str("func", "webhookMessageGateway.Send").Int("status", resp.StatusCode()).Msg("mail webhook rejected message")
		return err
	}

	log.Info().Str("func", "webhookMessageGateway.Send").Msg("message delivered")
	return nil
}
