package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"crowdfund/internal/domain"
)

// TokenIssuer is the iss claim of every bearer token this service accepts.
const TokenIssuer = "crowdfund"

// TokenClaims identifies the caller. Subject is the ledger principal.
type TokenClaims struct {
	Locale string `json:"locale,omitempty"`
	jwt.RegisteredClaims
}

type principalKey struct{}

// SignToken issues an HS256 bearer token for sub valid for ttl.
func SignToken(secret string, sub domain.Principal, ttl time.Duration, now time.Time) (string, error) {
	if strings.TrimSpace(string(sub)) == "" {
		return "", domain.ErrInvalidPrincipal
	}
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   string(sub),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer token.
func VerifyToken(secret, token string) (*TokenClaims, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrUnauthorized)
	}
	return &claims, nil
}

// AuthJWT requires a valid bearer token and stores its subject as the
// request principal. onFail writes the rejection.
func AuthJWT(secret string, onFail func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	if onFail == nil {
		onFail = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				onFail(w, r, fmt.Errorf("%w: missing authorization", domain.ErrUnauthorized))
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				onFail(w, r, fmt.Errorf("%w: invalid authorization", domain.ErrUnauthorized))
				return
			}
			claims, err := VerifyToken(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				onFail(w, r, err)
				return
			}
			ctx := ContextWithPrincipal(r.Context(), domain.Principal(claims.Subject))
			if claims.Locale != "" {
				ctx = context.WithValue(ctx, LocaleKey, claims.Locale)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the authenticated caller, empty when absent.
func PrincipalFromContext(ctx context.Context) domain.Principal {
	if v, ok := ctx.Value(principalKey{}).(domain.Principal); ok {
		return v
	}
	return ""
}

func ContextWithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	if strings.TrimSpace(string(p)) == "" {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, p)
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
