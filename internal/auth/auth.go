// Package auth verifies identity-provider tokens. The service never creates
// accounts; it only maps a verified token onto an opaque UID and e-mail.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/VibeFlow-2025/eduvibe-service/internal/config"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrUnknownKey   = errors.New("unknown signing key")
)

// Identity is what a verified token says about the caller
type Identity struct {
	UID      string
	Email    string
	Provider string
}

type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// NewVerifier builds the verifier for the configured provider
func NewVerifier(cfg *config.Config, logger *slog.Logger) (TokenVerifier, error) {
	switch cfg.Auth.Provider {
	case config.ProviderFirebase:
		return NewFirebaseVerifier(FirebaseConfig{
			ProjectID: cfg.Firebase.ProjectID,
			CertsURL:  cfg.Firebase.CertsURL,
		}, logger), nil
	case config.ProviderCasdoor:
		return NewCasdoorVerifier(cfg.Casdoor), nil
	default:
		return nil, fmt.Errorf("unsupported auth provider %q", cfg.Auth.Provider)
	}
}
