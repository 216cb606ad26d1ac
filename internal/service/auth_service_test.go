package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository/mocks"
)

func TestRegister_DefaultsToAdvertiserRole(t *testing.T) {
	userRepo := mocks.NewUserRepository(t)
	svc := NewAuthService(userRepo, "secret", time.Hour)

	userRepo.On("FindByUsername", mock.Anything, "asha").Return(nil, repository.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == "advertiser" && u.Password != "plaintext"
	})).Return(
		func(_ context.Context, u *domain.User) *domain.User { u.ID = 1; return u },
		nil,
	)

	user, err := svc.Register(context.Background(), domain.RegisterUserDTO{
		Username: "asha",
		Password: "plaintext",
	})

	assert.NoError(t, err)
	assert.Equal(t, "advertiser", user.Role)
	assert.Empty(t, user.Password)
}

func TestRegister_AdminRoleNotSelfAssignable(t *testing.T) {
	userRepo := mocks.NewUserRepository(t)
	svc := NewAuthService(userRepo, "secret", time.Hour)

	userRepo.On("FindByUsername", mock.Anything, "mallory").Return(nil, repository.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == "advertiser"
	})).Return(
		func(_ context.Context, u *domain.User) *domain.User { u.ID = 2; return u },
		nil,
	)

	_, err := svc.Register(context.Background(), domain.RegisterUserDTO{
		Username: "mallory",
		Password: "plaintext",
		Role:     "admin",
	})

	assert.NoError(t, err)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	userRepo := mocks.NewUserRepository(t)
	svc := NewAuthService(userRepo, "secret", time.Hour)

	userRepo.On("FindByUsername", mock.Anything, "asha").Return(&domain.User{ID: 1, Username: "asha"}, nil)

	_, err := svc.Register(context.Background(), domain.RegisterUserDTO{
		Username: "asha",
		Password: "plaintext",
	})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin_IssuesValidToken(t *testing.T) {
	userRepo := mocks.NewUserRepository(t)
	svc := NewAuthService(userRepo, "secret", time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("plaintext"), bcrypt.MinCost)
	assert.NoError(t, err)
	userRepo.On("FindByUsername", mock.Anything, "asha").Return(&domain.User{
		ID: 1, Username: "asha", Password: string(hash), Role: "advertiser",
	}, nil)

	resp, err := svc.Login(context.Background(), domain.LoginUserDTO{Username: "asha", Password: "plaintext"})

	assert.NoError(t, err)
	assert.Equal(t, "asha", resp.Username)
	assert.Equal(t, "advertiser", resp.Role)

	_, claims, err := svc.ValidateToken(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, "1", claims["sub"])
	assert.Equal(t, "advertiser", claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := mocks.NewUserRepository(t)
	svc := NewAuthService(userRepo, "secret", time.Hour)

	hash, _ := bcrypt.GenerateFromPassword([]byte("plaintext"), bcrypt.MinCost)
	userRepo.On("FindByUsername", mock.Anything, "asha").Return(&domain.User{
		ID: 1, Username: "asha", Password: string(hash), Role: "advertiser",
	}, nil)

	_, err := svc.Login(context.Background(), domain.LoginUserDTO{Username: "asha", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	userRepo := mocks.NewUserRepository(t)
	issuer := NewAuthService(userRepo, "secret-a", time.Hour)
	verifier := NewAuthService(userRepo, "secret-b", time.Hour)

	hash, _ := bcrypt.GenerateFromPassword([]byte("plaintext"), bcrypt.MinCost)
	userRepo.On("FindByUsername", mock.Anything, "asha").Return(&domain.User{
		ID: 1, Username: "asha", Password: string(hash), Role: "advertiser",
	}, nil)

	resp, err := issuer.Login(context.Background(), domain.LoginUserDTO{Username: "asha", Password: "plaintext"})
	assert.NoError(t, err)

	_, _, err = verifier.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
