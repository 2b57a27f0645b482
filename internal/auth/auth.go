package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	AuthenticateAdmin(dto LoginDTO) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolvePrincipal(ctx context.Context, claims *Claims) (*Principal, error)
	HashPassword(password string) (string, error)
}

type RepositoryAPI interface {
	GetPasswordForEmail(email string) (passwordHash string, userID int64, err error)
	GetAdminPasswordForEmail(email string) (passwordHash string, adminID int64, err error)
	GetUserBasic(userID int64) (id int64, email string, err error)
	GetAdminBasic(adminID int64) (id int64, email string, err error)
	GetRoleSlugsForUser(userID int64) ([]string, error)
	GetPermissionSlugsForUser(userID int64) ([]string, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(subjectID int64, email string, isAdmin bool) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Principal is the resolved identity for one request: the authenticated id
// plus its role and permission slugs, loaded fresh from the RBAC graph.
// IsAdmin marks the separate administrative identity class; admin principals
// are not members of the graph and pass every authorization check.
type Principal struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	IsAdmin     bool     `json:"is_admin"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

func (p *Principal) HasAnyRole(required []string) bool {
	for _, have := range p.Roles {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (p *Principal) HasAnyPermission(required []string) bool {
	for _, have := range p.Permissions {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

type AuthTokens struct {
	AccessToken string `json:"access_token"`
}

// Claims carry identity only. Roles and permissions are deliberately not
// embedded: they are loaded from the graph on every request so that a
// revocation takes effect on the next request, not at token expiry.
type Claims struct {
	SubjectID int64  `json:"sub_id"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

type ctxKey string

const ContextPrincipalKey ctxKey = "principal"

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ContextPrincipalKey).(*Principal)
	return p, ok
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
