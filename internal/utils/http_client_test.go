package utils

import (
	"testing"
	"time"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient("http://localhost", time.Second)

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}

	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_Settings(t *testing.T) {
	client := NewHTTPClient("http://mail.local", 3*time.Second)

	if client.BaseURL != "http://mail.local" {
		t.Errorf("expected base url 'http://mail.local', got '%s'", client.BaseURL)
	}
	if got := client.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected json content type, got '%s'", got)
	}
	if client.GetClient().Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", client.GetClient().Timeout)
	}
}

func TestNewHTTPClient_ZeroTimeout(t *testing.T) {
	client := NewHTTPClient("http://mail.local", 0)

	if client.GetClient().Timeout != 0 {
		t.Errorf("expected no timeout, got %s", client.GetClient().Timeout)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("http://a", 0)
	client2 := NewHTTPClient("http://a", 0)

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}
