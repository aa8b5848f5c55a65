package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nestlink/internal/config"
	"nestlink/internal/models"
	"nestlink/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authTestServer(mockRepo *MockUserRepository) *Server {
	return &Server{
		config:      &config.Config{JWTSecret: "test_secret"},
		userRepo:    mockRepo,
		userService: service.NewUserService(mockRepo),
	}
}

func TestRegister(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"email":    "ann@example.com",
				"password": "Password123",
				"name":     "Ann",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "ann@example.com").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Existing email with matching password is idempotent",
			body: map[string]string{
				"email":    "ann@example.com",
				"password": "Password123",
				"name":     "Ann",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "ann@example.com").Return(
					&models.User{ID: 3, Email: "ann@example.com", Password: string(hashed)}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Existing email with wrong password",
			body: map[string]string{
				"email":    "ann@example.com",
				"password": "Different123",
				"name":     "Mallory",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "ann@example.com").Return(
					&models.User{ID: 3, Email: "ann@example.com", Password: string(hashed)}, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Invalid email",
			body: map[string]string{
				"email":    "not-an-email",
				"password": "Password123",
				"name":     "Ann",
			},
			mockSetup:      func(*MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := authTestServer(mockRepo)
			app.Post("/register", s.Register)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRegister_RepeatReturnsSameIdentity(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)

	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "ann@example.com").Return(
		&models.User{ID: 3, Email: "ann@example.com", Password: string(hashed)}, nil)
	s := authTestServer(mockRepo)
	app.Post("/register", s.Register)

	body, _ := json.Marshal(map[string]string{
		"email": "ann@example.com", "password": "Password123", "name": "Ann",
	})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var payload struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, uint(3), payload.User.ID)
	assert.NotEmpty(t, payload.Token)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"email": "ann@example.com", "password": "Password123"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "ann@example.com").Return(
					&models.User{ID: 3, Email: "ann@example.com", Password: string(hashed)}, nil)
				m.On("Update", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Unknown email",
			body: map[string]string{"email": "ghost@example.com", "password": "Password123"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Wrong password",
			body: map[string]string{"email": "ann@example.com", "password": "WrongPass123"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "ann@example.com").Return(
					&models.User{ID: 3, Email: "ann@example.com", Password: string(hashed)}, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := authTestServer(mockRepo)
			app.Post("/login", s.Login)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLogin_ErrorsAreIndistinguishable(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)

	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "ann@example.com").Return(
		&models.User{ID: 3, Email: "ann@example.com", Password: string(hashed)}, nil)
	mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
	s := authTestServer(mockRepo)
	app.Post("/login", s.Login)

	attempt := func(email string) string {
		body, _ := json.Marshal(map[string]string{"email": email, "password": "WrongPass123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var payload models.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		return payload.Error
	}

	assert.Equal(t, attempt("ghost@example.com"), attempt("ann@example.com"),
		"error body must not reveal whether the account exists")
}
