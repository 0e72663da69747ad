package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bookit-platform/internal/models"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken is returned for any token that fails verification
var ErrInvalidToken = errors.New("invalid identity token")

// Claims are the identity provider claims a booking needs
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// VerifierConfig configures token verification. JWKSURL takes precedence
// over Secret when both are set.
type VerifierConfig struct {
	JWKSURL string
	Secret  string
	Issuer  string
}

// TokenVerifier verifies identity provider bearer tokens
type TokenVerifier struct {
	keyfunc jwt.Keyfunc
	methods []string
	issuer  string
	jwks    *keyfunc.JWKS
}

// NewTokenVerifier creates a verifier backed by a JWKS endpoint or a shared
// HMAC secret. It returns nil when neither is configured.
func NewTokenVerifier(cfg VerifierConfig) (*TokenVerifier, error) {
	switch {
	case cfg.JWKSURL != "":
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshRateLimit:  5 * time.Minute,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				log.Printf("Warning: failed to refresh identity provider keys: %v", err)
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load identity provider keys: %w", err)
		}
		return &TokenVerifier{
			keyfunc: jwks.Keyfunc,
			methods: []string{"RS256", "RS384", "RS512", "ES256", "ES384"},
			issuer:  cfg.Issuer,
			jwks:    jwks,
		}, nil
	case cfg.Secret != "":
		return NewHMACVerifier([]byte(cfg.Secret), cfg.Issuer), nil
	default:
		return nil, nil
	}
}

// NewHMACVerifier creates a verifier for tokens signed with a shared secret
func NewHMACVerifier(secret []byte, issuer string) *TokenVerifier {
	return &TokenVerifier{
		keyfunc: func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		methods: []string{"HS256", "HS384", "HS512"},
		issuer:  issuer,
	}
}

// Verify parses and validates tokenString and returns the identity it asserts
func (v *TokenVerifier) Verify(tokenString string) (*models.Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods(v.methods))
	token, err := parser.ParseWithClaims(tokenString, claims, v.keyfunc)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return nil, ErrInvalidToken
	}

	identity := &models.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}
	if err := identity.Validate(); err != nil {
		return nil, ErrInvalidToken
	}
	return identity, nil
}

// Close stops the background key refresh, if any
func (v *TokenVerifier) Close() {
	if v != nil && v.jwks != nil {
		v.jwks.EndBackground()
	}
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
