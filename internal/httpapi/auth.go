package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/pkg/logger"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller extracted from the bearer
// token. Email and DisplayName are optional claims supplied by the
// identity provider.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator validates HMAC-signed bearer tokens and places the
// caller identity into the request context.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
	log    *logger.Logger
}

// NewAuthenticator creates an authenticator verifying with secret.
func NewAuthenticator(secret string, log *logger.Logger) *Authenticator {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &Authenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})),
		log:    log,
	}
}

// Middleware rejects requests without a valid bearer token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, apperr.Unauthorized("missing Authorization header"))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeError(w, apperr.Unauthorized("invalid Authorization header format"))
			return
		}

		claims := tokenClaims{}
		_, err := a.parser.ParseWithClaims(parts[1], &claims, func(*jwt.Token) (any, error) {
			return a.secret, nil
		})
		if err != nil {
			a.log.WithError(err).Warn("token validation failed")
			writeError(w, apperr.Unauthorized("invalid token"))
			return
		}
		if claims.Subject == "" {
			writeError(w, apperr.Unauthorized("token has no subject"))
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, Identity{
			UserID:      claims.Subject,
			Email:       claims.Email,
			DisplayName: claims.Name,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFrom returns the caller identity stored in ctx.
func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}

// UserID returns the authenticated user id stored in ctx, or "".
func UserID(ctx context.Context) string {
	return IdentityFrom(ctx).UserID
}

// WithIdentity returns ctx carrying the given identity. Tests use it to
// exercise handlers without minting tokens.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
