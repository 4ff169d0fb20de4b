// Package services holds the account and task use cases. Both services talk
// to the store interfaces only and report failures with the sentinels of the
// common package.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/biosecret/voice-todo/common"
	"github.com/biosecret/voice-todo/models"
	"github.com/biosecret/voice-todo/store"
	"github.com/biosecret/voice-todo/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	accounts store.AccountStore
	secret   []byte
	cost     int
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService returns an AuthService signing tokens with secret and
// hashing passwords at the given bcrypt cost (bcrypt.DefaultCost when zero).
func NewAuthService(accounts store.AccountStore, secret string, cost int) *AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		accounts: accounts,
		secret:   []byte(secret),
		cost:     cost,
		now:      time.Now,
	}
}

// Register creates an account for email. Surrounding whitespace is dropped
// from the email; its case is kept.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", common.ErrInvalidInput)
	}

	_, err := s.accounts.FindByEmail(ctx, email)
	if err == nil {
		return common.ErrDuplicateAccount
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: find account: %v", common.ErrStoreUnavailable, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%w: password is too long", common.ErrInvalidInput)
		}
		return fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		ID:           utils.GenerateRandomID(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return common.ErrDuplicateAccount
		}
		return fmt.Errorf("%w: insert account: %v", common.ErrStoreUnavailable, err)
	}

	return nil
}

// Login checks the credentials and returns a signed token valid for TokenTTL.
// Unknown emails and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", common.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		// compare anyway so unknown emails take as long as wrong passwords
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return "", common.ErrInvalidCredentials
	} else if err != nil {
		return "", fmt.Errorf("%w: find account: %v", common.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrInvalidCredentials
	}

	token, err := generateToken(account.ID, account.Email, s.secret, s.now(), TokenTTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify decodes a token issued by Login.
func (s *AuthService) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, common.ErrMissingToken
	}

	claims, err := parseToken(token, s.secret, s.now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidOrExpiredToken, err)
	}
	return claims, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), s.cost)
	})
	return s.dummyHash
}
