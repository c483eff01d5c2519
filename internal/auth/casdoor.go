package auth

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/VibeFlow-2025/eduvibe-service/internal/config"
)

// CasdoorVerifier validates tokens issued by a self-hosted Casdoor
type CasdoorVerifier struct {
	client *casdoorsdk.Client
}

func NewCasdoorVerifier(cfg config.CasdoorConfig) *CasdoorVerifier {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return &CasdoorVerifier{client: client}
}

func (v *CasdoorVerifier) Verify(_ context.Context, rawToken string) (*Identity, error) {
	if rawToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := v.client.ParseJwtToken(rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Id == "" {
		return nil, fmt.Errorf("%w: invalid user ID in token", ErrInvalidToken)
	}

	return &Identity{
		UID:      claims.Id,
		Email:    claims.Email,
		Provider: "casdoor",
	}, nil
}
