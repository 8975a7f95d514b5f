package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/config"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/services"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/storage"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTConfig = config.JWTConfig{
	Secret:     "test-secret",
	Expiration: time.Hour,
}

func TestUserService_Register_Success(t *testing.T) {
	userRepo := &fakeUserRepo{
		CreateFn: func(_ context.Context, rec *dto.CreateUserRecord) (*models.User, error) {
			// The service must hand over a bcrypt hash, never the raw password.
			require.NotEqual(t, "hunter2secret", rec.PasswordHash)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte("hunter2secret")))
			return &models.User{
				ID:    uuid.New(),
				Name:  rec.Name,
				Email: rec.Email,
			}, nil
		},
	}
	svc := services.NewUserService(userRepo, testJWTConfig)

	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	userRepo := &fakeUserRepo{
		CreateFn: func(context.Context, *dto.CreateUserRecord) (*models.User, error) {
			return nil, storage.ErrDuplicateEmail
		},
	}
	svc := services.NewUserService(userRepo, testJWTConfig)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2secret",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrDuplicateUser))
}

func TestUserService_Login_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2secret"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	userRepo := &fakeUserRepo{
		GetByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			require.Equal(t, "ada@example.com", email)
			return &models.User{ID: userID, Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := services.NewUserService(userRepo, testJWTConfig)

	user, token, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2secret",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	require.NotEmpty(t, token)

	// Token must carry the user ID as subject and be signed with our secret.
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTConfig.Secret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, userID.String(), claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		GetByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := services.NewUserService(userRepo, testJWTConfig)

	_, _, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	userRepo := &fakeUserRepo{
		GetByEmailFn: func(context.Context, string) (*models.User, error) {
			return nil, storage.ErrNotFound
		},
	}
	svc := services.NewUserService(userRepo, testJWTConfig)

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})

	// Unknown email and wrong password collapse into the same error.
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	userRepo := &fakeUserRepo{
		GetByIDFn: func(context.Context, uuid.UUID) (*models.User, error) {
			return nil, storage.ErrNotFound
		},
	}
	svc := services.NewUserService(userRepo, testJWTConfig)

	_, err := svc.GetByID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotFound))
}
