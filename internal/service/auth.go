// Package service contains application services for authentication and tasks.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	pkgcrypto "github.com/and161185/taskkeep/internal/crypto"
	"github.com/and161185/taskkeep/internal/errs"
	"github.com/and161185/taskkeep/internal/limiter"
	"github.com/and161185/taskkeep/internal/model"
	"github.com/and161185/taskkeep/internal/repository"
)

// AuthService defines registration, login, and token resolution.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, email, password string) (*model.User, error)
	// LoginWithIP applies rate limiting and authenticates the user.
	LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, error)
	// ResolveToken maps a bearer token back to the user it was issued for.
	ResolveToken(ctx context.Context, token string) (*model.User, error)
}

// dummyHash is a valid bcrypt hash used to equalize the cost of the
// unknown-email path with a real password compare.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type AuthServiceImpl struct {
	users     repository.UserRepository
	lim       limiter.Limiter
	signKey   []byte
	method    jwt.SigningMethod
	accessTTL time.Duration
	now       func() time.Time
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, lim limiter.Limiter, signKey []byte, method jwt.SigningMethod, accessTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:     users,
		lim:       lim,
		signKey:   signKey,
		method:    method,
		accessTTL: accessTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a new user record. A taken email surfaces as
// errs.ErrAlreadyExists from the repository.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("empty email/password: %w", errs.ErrValidation)
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	hash, err := pkgcrypto.HashPassword([]byte(password))
	if err != nil {
		return nil, err
	}

	u := &model.User{ID: uid, Email: email, PwdHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// LoginWithIP authenticates with rate limiting by (email, ip). Unknown
// email and wrong password are indistinguishable, and both paths run a
// bcrypt compare so they cost roughly the same.
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Tokens{}, err
	}
	if !allowed {
		return model.Tokens{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		// A store failure is not a credential failure; let it surface.
		return model.Tokens{}, err
	}
	if err != nil {
		// burn a compare so the miss path is not cheaper
		pkgcrypto.VerifyPassword([]byte(password), dummyHash)
	}
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Tokens{}, errs.ErrRateLimited
		}
		return model.Tokens{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	access, exp, err := s.issueAccessToken(u.Email)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: access, TokenType: "bearer", ExpiresAt: exp}, nil
}

// issueAccessToken creates a signed JWT with the user's email as subject.
func (s *AuthServiceImpl) issueAccessToken(email string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(s.method, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

// ResolveToken verifies signature and expiry, extracts the subject, and
// loads the user. Bad signature, expiry, missing claim, and unknown user
// all collapse into errs.ErrUnauthorized.
func (s *AuthServiceImpl) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, errs.ErrUnauthorized
	}

	u, err := s.users.GetByEmail(ctx, claims.Subject)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
