package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"freight/internal/entities"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid session token")
)

type identityKey struct{}

// Claims токен сессии: sub - идентификатор водителя, role - driver или system.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func WithIdentity(ctx context.Context, identity entities.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFrom(ctx context.Context) (entities.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(entities.Identity)
	return identity, ok
}

type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// FromHeader разбирает заголовок Authorization вида "Bearer <jwt>".
func (v *Verifier) FromHeader(header string) (entities.Identity, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return entities.Identity{}, ErrMissingToken
	}
	return v.Parse(strings.TrimSpace(token))
}

func (v *Verifier) Parse(token string) (entities.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return entities.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return entities.Identity{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	role := entities.Role(strings.ToLower(claims.Role))
	switch role {
	case "":
		role = entities.RoleDriver
	case entities.RoleDriver, entities.RoleSystem:
	default:
		return entities.Identity{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return entities.Identity{DriverID: claims.Subject, Role: role}, nil
}

// Sign выпускает токен сессии; используется freightctl и тестами.
func (v *Verifier) Sign(identity entities.Identity, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = identity.DriverID
	if claims.Issuer == "" {
		claims.Issuer = v.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             string(identity.Role),
		RegisteredClaims: claims,
	})

	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}
