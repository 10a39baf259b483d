// internal/app/system/authidp/firebase.go
package authidp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultFirebaseEndpoint is the Identity Toolkit REST base URL.
const DefaultFirebaseEndpoint = "https://identitytoolkit.googleapis.com/v1"

// FirebaseProvider talks to the Firebase Identity Toolkit REST API using a
// web API key. The key identifies the project and is not a secret in the
// usual sense, but it still comes from configuration.
type FirebaseProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewFirebaseProvider creates a provider against the production endpoint.
func NewFirebaseProvider(apiKey string, logger *zap.Logger) *FirebaseProvider {
	return &FirebaseProvider{
		apiKey:   apiKey,
		endpoint: DefaultFirebaseEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

// NewFirebaseProviderWithEndpoint creates a provider against a custom
// endpoint, such as the local auth emulator.
func NewFirebaseProviderWithEndpoint(apiKey, endpoint string, logger *zap.Logger) *FirebaseProvider {
	p := NewFirebaseProvider(apiKey, logger)
	p.endpoint = strings.TrimRight(endpoint, "/")
	return p
}

type firebaseAuthResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

type firebaseErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn implements Provider.
func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	var resp firebaseAuthResponse
	err := p.post(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UID:         resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		Token:       resp.IDToken,
	}, nil
}

// CreateIdentity implements Provider.
func (p *FirebaseProvider) CreateIdentity(ctx context.Context, email, password string) (*Identity, error) {
	var resp firebaseAuthResponse
	err := p.post(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UID:   resp.LocalID,
		Email: resp.Email,
		Token: resp.IDToken,
	}, nil
}

// DeleteIdentity implements Provider.
func (p *FirebaseProvider) DeleteIdentity(ctx context.Context, token string) error {
	return p.post(ctx, "accounts:delete", map[string]any{
		"idToken": token,
	}, nil)
}

// SetDisplayName implements Provider.
func (p *FirebaseProvider) SetDisplayName(ctx context.Context, token, displayName string) error {
	return p.post(ctx, "accounts:update", map[string]any{
		"idToken":           token,
		"displayName":       displayName,
		"returnSecureToken": false,
	}, nil)
}

// post sends one Identity Toolkit call and decodes the response into out
// (which may be nil for calls whose response body we do not need).
func (p *FirebaseProvider) post(ctx context.Context, action string, body map[string]any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", action, err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", p.endpoint, action, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr firebaseErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if p.logger != nil {
			p.logger.Debug("identity provider rejected request",
				zap.String("action", action),
				zap.Int("status", resp.StatusCode),
				zap.String("code", apiErr.Error.Message))
		}
		return mapFirebaseError(action, resp.StatusCode, apiErr.Error.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", action, err)
		}
	}
	return nil
}

// mapFirebaseError converts Identity Toolkit error codes to the package's
// sentinel errors. Codes sometimes arrive with a trailing explanation
// ("WEAK_PASSWORD : Password should be at least 6 characters"), so match on
// prefix.
func mapFirebaseError(action string, status int, code string) error {
	switch {
	case strings.HasPrefix(code, "EMAIL_EXISTS"):
		return ErrEmailInUse
	case strings.HasPrefix(code, "INVALID_EMAIL"),
		strings.HasPrefix(code, "MISSING_EMAIL"):
		return ErrInvalidEmail
	case strings.HasPrefix(code, "WEAK_PASSWORD"),
		strings.HasPrefix(code, "MISSING_PASSWORD"):
		return ErrWeakPassword
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(code, "USER_DISABLED"):
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("identity provider %s failed: status %d code %q", action, status, code)
	}
}
