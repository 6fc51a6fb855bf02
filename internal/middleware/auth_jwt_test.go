package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"crowdfund/internal/domain"
)

const testSecret = "test-secret"

func TestSignAndVerifyToken(t *testing.T) {
	token, err := SignToken(testSecret, "alice", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	claims, err := VerifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "alice" || claims.Issuer != TokenIssuer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	valid, _ := SignToken(testSecret, "alice", time.Hour, time.Now())
	expired, _ := SignToken(testSecret, "alice", time.Minute, time.Now().Add(-time.Hour))
	foreign, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  TokenIssuer,
		Subject: "alice",
	}).SignedString([]byte(testSecret))

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{name: "wrong secret", secret: "other", token: valid},
		{name: "expired", secret: testSecret, token: expired},
		{name: "foreign issuer", secret: testSecret, token: foreign},
		{name: "missing expiry", secret: testSecret, token: noExpiry},
		{name: "garbage", secret: testSecret, token: "not.a.jwt"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := VerifyToken(tc.secret, tc.token)
			if !IsUnauthorized(err) {
				t.Fatalf("err = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestSignTokenRequiresSubject(t *testing.T) {
	if _, err := SignToken(testSecret, " ", time.Hour, time.Now()); err != domain.ErrInvalidPrincipal {
		t.Fatalf("err = %v, want ErrInvalidPrincipal", err)
	}
}

func TestAuthJWTMiddleware(t *testing.T) {
	token, _ := SignToken(testSecret, "bob", time.Hour, time.Now())
	var seen domain.Principal
	h := AuthJWT(testSecret, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, want: http.StatusUnauthorized},
		{name: "valid bearer", header: "Bearer " + token, want: http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			if tc.want == http.StatusNoContent && seen != "bob" {
				t.Fatalf("principal = %q, want bob", seen)
			}
		})
	}
}
