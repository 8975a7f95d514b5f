package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/api/handlers"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/services"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserService is a mock type for the services.UserService interface.
type MockUserService struct {
	mock.Mock
}

var _ services.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupUserRouter(svc services.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewUserHandler(svc, validator.New())
	router := gin.New()
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
	}
	return router
}

func jsonRequest(method, url string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestUserHandler_Register_Success(t *testing.T) {
	created := &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}

	mockSvc := new(MockUserService)
	mockSvc.On("Register", mock.Anything, &dto.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2secret",
	}).Return(created, nil).Once()

	router := setupUserRouter(mockSvc)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2secret",
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.NotContains(t, w.Body.String(), "password")
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, services.ErrDuplicateUser).Once()

	router := setupUserRouter(mockSvc)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2secret",
	}))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestUserHandler_Register_InvalidEmail(t *testing.T) {
	mockSvc := new(MockUserService)

	router := setupUserRouter(mockSvc)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Ada", "email": "not-an-email", "password": "hunter2secret",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
	mockSvc.AssertNotCalled(t, "Register")
}

func TestUserHandler_Login_Success(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}

	mockSvc := new(MockUserService)
	mockSvc.On("Login", mock.Anything, &dto.LoginRequest{
		Email: "ada@example.com", Password: "hunter2secret",
	}).Return(user, "signed-token", nil).Once()

	router := setupUserRouter(mockSvc)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "ada@example.com", "password": "hunter2secret",
	}))

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("Login", mock.Anything, mock.Anything).Return(nil, "", services.ErrInvalidCredentials).Once()

	router := setupUserRouter(mockSvc)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "ada@example.com", "password": "wrong-password",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}
