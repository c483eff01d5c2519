package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VibeFlow-2025/eduvibe-service/internal/config"
)

func TestNewVerifier(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	v, err := NewVerifier(&config.Config{
		Auth:     config.AuthConfig{Provider: config.ProviderFirebase},
		Firebase: config.FirebaseConfig{ProjectID: testProject},
	}, logger)
	require.NoError(t, err)
	assert.IsType(t, &FirebaseVerifier{}, v)

	v, err = NewVerifier(&config.Config{
		Auth:    config.AuthConfig{Provider: config.ProviderCasdoor},
		Casdoor: config.CasdoorConfig{Endpoint: "https://door.example.com", ClientID: "client"},
	}, logger)
	require.NoError(t, err)
	assert.IsType(t, &CasdoorVerifier{}, v)

	_, err = NewVerifier(&config.Config{Auth: config.AuthConfig{Provider: "ldap"}}, logger)
	assert.Error(t, err)
}

func TestCasdoorVerifier_RejectsBadInput(t *testing.T) {
	v := NewCasdoorVerifier(config.CasdoorConfig{Endpoint: "https://door.example.com", ClientID: "client"})

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = v.Verify(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
