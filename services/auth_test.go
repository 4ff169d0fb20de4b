package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/biosecret/voice-todo/common"
	"github.com/biosecret/voice-todo/models"
	"github.com/biosecret/voice-todo/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, store.AccountStore) {
	t.Helper()
	accounts := store.NewMemory().Accounts()
	return NewAuthService(accounts, "test-secret", bcrypt.MinCost), accounts
}

type failingAccounts struct{ err error }

func (f failingAccounts) Insert(context.Context, *models.Account) error { return f.err }
func (f failingAccounts) FindByEmail(context.Context, string) (*models.Account, error) {
	return nil, f.err
}
func (f failingAccounts) FindByID(context.Context, string) (*models.Account, error) {
	return nil, f.err
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash", func(t *testing.T) {
		s, accounts := newAuthService(t)
		require.NoError(t, s.Register(ctx, "a@x.com", "pw123"))

		a, err := accounts.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.NotEqual(t, "pw123", a.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("pw123")))
		assert.NotEmpty(t, a.ID)
		assert.False(t, a.CreatedAt.IsZero())
	})

	t.Run("duplicate email", func(t *testing.T) {
		s, _ := newAuthService(t)
		require.NoError(t, s.Register(ctx, "a@x.com", "pw123"))
		assert.ErrorIs(t, s.Register(ctx, "a@x.com", "other"), common.ErrDuplicateAccount)
	})

	t.Run("missing fields", func(t *testing.T) {
		s, _ := newAuthService(t)
		assert.ErrorIs(t, s.Register(ctx, "", "pw123"), common.ErrInvalidInput)
		assert.ErrorIs(t, s.Register(ctx, "  ", "pw123"), common.ErrInvalidInput)
		assert.ErrorIs(t, s.Register(ctx, "a@x.com", ""), common.ErrInvalidInput)
	})

	t.Run("store failure", func(t *testing.T) {
		s := NewAuthService(failingAccounts{err: errors.New("conn reset")}, "k", bcrypt.MinCost)
		assert.ErrorIs(t, s.Register(ctx, "a@x.com", "pw123"), common.ErrStoreUnavailable)
	})

	t.Run("email is trimmed, case kept", func(t *testing.T) {
		s, accounts := newAuthService(t)
		require.NoError(t, s.Register(ctx, "  A@x.com\t", "pw123"))

		a, err := accounts.FindByEmail(ctx, "A@x.com")
		require.NoError(t, err)
		assert.Equal(t, "A@x.com", a.Email)

		assert.ErrorIs(t, s.Register(ctx, "A@x.com ", "other"), common.ErrDuplicateAccount)

		_, err = s.Login(ctx, " A@x.com ", "pw123")
		assert.NoError(t, err)
		_, err = s.Login(ctx, "a@x.com", "pw123")
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})
}

func TestDefaultCost(t *testing.T) {
	s := NewAuthService(store.NewMemory().Accounts(), "k", 0)
	assert.Equal(t, 10, s.cost)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(t)
	require.NoError(t, s.Register(ctx, "a@x.com", "pw123"))

	t.Run("valid credentials", func(t *testing.T) {
		token, err := s.Login(ctx, "a@x.com", "pw123")
		require.NoError(t, err)

		claims, err := s.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)
		assert.NotEmpty(t, claims.AccountID)
		assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, 5*time.Second)
	})

	t.Run("wrong password and unknown email fail the same way", func(t *testing.T) {
		_, errWrong := s.Login(ctx, "a@x.com", "nope")
		_, errUnknown := s.Login(ctx, "b@x.com", "pw123")

		assert.ErrorIs(t, errWrong, common.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("email is case-sensitive", func(t *testing.T) {
		_, err := s.Login(ctx, "A@X.com", "pw123")
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	s, _ := newAuthService(t)
	require.NoError(t, s.Register(ctx, "a@x.com", "pw123"))

	t.Run("missing", func(t *testing.T) {
		_, err := s.Verify("")
		assert.ErrorIs(t, err, common.ErrMissingToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Verify("not.a.jwt")
		assert.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)
	})

	t.Run("accepted before expiry and rejected after", func(t *testing.T) {
		issued := time.Now()
		s.now = func() time.Time { return issued }
		token, err := s.Login(ctx, "a@x.com", "pw123")
		require.NoError(t, err)

		s.now = func() time.Time { return issued.Add(TokenTTL - time.Minute) }
		_, err = s.Verify(token)
		require.NoError(t, err)

		s.now = func() time.Time { return issued.Add(TokenTTL + time.Minute) }
		_, err = s.Verify(token)
		assert.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)

		s.now = time.Now
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := generateToken("id", "a@x.com", []byte("other-secret"), time.Now(), TokenTTL)
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			AccountID: "id",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)
	})

	t.Run("token without expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{AccountID: "id"}).
			SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)
	})

	t.Run("token without account id", func(t *testing.T) {
		token, err := generateToken("", "a@x.com", []byte("test-secret"), time.Now(), TokenTTL)
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)
	})
}
