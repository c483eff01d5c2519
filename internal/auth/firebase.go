package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultFirebaseCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	firebaseIssuerPrefix    = "https://securetoken.google.com/"

	defaultKeyTTL      = time.Hour
	minRefreshInterval = 30 * time.Second
)

type FirebaseConfig struct {
	ProjectID  string
	CertsURL   string
	HTTPClient *http.Client
	// Now overrides the clock used for expiry checks.
	Now func() time.Time
}

type firebaseClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// FirebaseVerifier checks Firebase ID tokens against Google's published
// signing certificates.
type FirebaseVerifier struct {
	projectID  string
	issuer     string
	certsURL   string
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger

	mu          sync.RWMutex
	keys        map[string]*rsa.PublicKey
	expiresAt   time.Time
	lastRefresh time.Time
}

func NewFirebaseVerifier(cfg FirebaseConfig, logger *slog.Logger) *FirebaseVerifier {
	if cfg.CertsURL == "" {
		cfg.CertsURL = DefaultFirebaseCertsURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &FirebaseVerifier{
		projectID:  cfg.ProjectID,
		issuer:     firebaseIssuerPrefix + cfg.ProjectID,
		certsURL:   cfg.CertsURL,
		httpClient: cfg.HTTPClient,
		now:        cfg.Now,
		logger:     logger,
	}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	if rawToken == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(rawToken, &firebaseClaims{},
		func(t *jwt.Token) (interface{}, error) {
			kid, _ := t.Header["kid"].(string)
			if kid == "" {
				return nil, fmt.Errorf("%w: token has no kid", ErrUnknownKey)
			}
			return v.publicKey(ctx, kid)
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*firebaseClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Identity{
		UID:      claims.Subject,
		Email:    claims.Email,
		Provider: "firebase",
	}, nil
}

func (v *FirebaseVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := v.now().Before(v.expiresAt)
	v.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	if err := v.refresh(ctx, !fresh); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	if key, ok := v.keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKey, kid)
}

// refresh downloads the certificate set. Unknown-kid refreshes are throttled;
// expired sets are always refetched.
func (v *FirebaseVerifier) refresh(ctx context.Context, expired bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	if !expired && now.Sub(v.lastRefresh) < minRefreshInterval {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build certs request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch signing certs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch signing certs: status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("failed to decode signing certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, certPEM := range certs {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(certPEM))
		if err != nil {
			v.logger.Warn("Skipping unparsable signing cert", "kid", kid, "error", err)
			continue
		}
		keys[kid] = key
	}

	v.keys = keys
	v.lastRefresh = now
	v.expiresAt = now.Add(maxAge(resp.Header.Get("Cache-Control")))

	v.logger.Debug("Refreshed Firebase signing certs", "count", len(keys))
	return nil
}

func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(directive), "=")
		if !found || !strings.EqualFold(name, "max-age") {
			continue
		}
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultKeyTTL
}
