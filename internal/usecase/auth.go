package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/sxtvrno/storefront/internal/domain/errors"
	"github.com/sxtvrno/storefront/internal/domain/model"
	"github.com/sxtvrno/storefront/internal/domain/repository"
	pkgAuth "github.com/sxtvrno/storefront/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	carts  repository.CartRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, carts repository.CartRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, carts: carts, hasher: hasher, tokens: strategy}
}

// Register creates a new customer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, email, hash, model.RoleCustomer)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID, usr.Role)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns an auth token. When the
// caller arrives with an anonymous session cart it is folded into the
// customer's cart; a merge failure does not fail the login.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password, sessionID string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID, usr.Role)
	if err != nil {
		return nil, "", err
	}

	if sessionID != "" {
		if mergeErr := u.carts.Merge(ctx, sessionID, usr.ID); mergeErr != nil && !errors.Is(mergeErr, domainErrors.ErrNotFound) {
			return nil, "", mergeErr
		}
	}

	return usr, token, nil
}

// ParseToken extracts the principal from a bearer token.
func (u *AuthUseCase) ParseToken(token string) (model.Principal, error) {
	if token == "" {
		return model.Principal{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
