package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/config"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/storage"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	userRepo storage.UserRepository
	jwtCfg   config.JWTConfig
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo storage.UserRepository, jwtCfg config.JWTConfig) UserService {
	return &userService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Register: Error hashing password: %v", err)
		return nil, fmt.Errorf("internal error during registration: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &dto.CreateUserRecord{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, ErrDuplicateUser
		}
		return nil, mapRepoError(err, "creating user")
	}

	log.Printf("User registered: %s (%s)", user.ID, user.Email)
	return user, nil
}

// Login verifies the credentials and issues a signed token. Both unknown
// emails and wrong passwords collapse into the same error so the response
// never reveals which half failed.
func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", mapRepoError(err, "fetching user by email")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		log.Printf("Login: Error signing token for user %s: %v", user.ID, err)
		return nil, "", fmt.Errorf("internal error during login: %w", err)
	}

	return user, token, nil
}

// GetByID retrieves a user by their unique identifier.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching user %s", id))
	}
	return user, nil
}

func (s *userService) generateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.Expiration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}
