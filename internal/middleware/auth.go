package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const authUserKey ctxKey = "authUser"

// AuthUser is the identity carried by a verified bearer token.
type AuthUser struct {
	ID          string
	Email       string
	Role        string
	IsOrganizer bool
}

// Claims is the JWT payload issued at login.
type Claims struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsOrganizer bool   `json:"isOrganizer"`
	jwt.RegisteredClaims
}

const TokenTTL = 72 * time.Hour

// SignToken issues an HMAC-signed bearer token for the given identity.
func SignToken(secret, userID, email, role string, isOrganizer bool) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email:       email,
		Role:        role,
		IsOrganizer: isOrganizer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
				http.Error(w, "missing Authorization: Bearer <token>", http.StatusUnauthorized)
				return
			}
			raw := strings.TrimSpace(h[len("Bearer "):])

			var claims Claims
			tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			au := &AuthUser{
				ID:          claims.Subject,
				Email:       claims.Email,
				Role:        claims.Role,
				IsOrganizer: claims.IsOrganizer,
			}

			ctx := context.WithValue(r.Context(), authUserKey, au)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAuthUser(ctx context.Context) (*AuthUser, bool) {
	v := ctx.Value(authUserKey)
	if v == nil {
		return nil, false
	}
	au, ok := v.(*AuthUser)
	return au, ok
}

// RequireOrganizer rejects callers that are not approved organizers.
func RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		au, ok := GetAuthUser(r.Context())
		if !ok || au.Role != "Organizer" || !au.IsOrganizer {
			http.Error(w, "organizer access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects callers without the Admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		au, ok := GetAuthUser(r.Context())
		if !ok || au.Role != "Admin" {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
