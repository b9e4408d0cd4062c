package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// User is an authenticated caller.
type User struct {
	ID    string `json:"user_id"`
	Email string `json:"email,omitempty"`
}

type contextKey string

const userContextKey contextKey = "authenticated_user"

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the caller, or nil for an anonymous request.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}

// ErrInvalidToken is returned for bearer tokens that fail verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier validates HS256 bearer tokens issued by the identity provider.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the shared signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses the token and returns the user it identifies. The user ID is taken
// from the "sub" claim, falling back to "user_id".
func (v *Verifier) Verify(tokenString string) (*User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		userID, _ = claims["user_id"].(string)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: token carries no subject", ErrInvalidToken)
	}

	email, _ := claims["email"].(string)
	return &User{ID: userID, Email: email}, nil
}

// BearerToken extracts the token from an Authorization header value. It reports
// false when the header is not a bearer credential.
func BearerToken(header string) (string, bool) {
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
