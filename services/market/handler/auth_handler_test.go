package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/services/market/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// Test SignUpHandler
func TestSignUpHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := NewMockAuthServiceInterface(ctrl)
	h := NewMarketHandler(mockAuth, nil, nil, nil, nil, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/signup", h.SignUpHandler)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success",
			requestBody: helpers.SignUpRequest{Username: "alice", Password: "hunter2secret"},
			mockSetup: func() {
				mockAuth.EXPECT().
					SignUp(gomock.Any(), "alice", "hunter2secret").
					Return(models.Profile{UserID: "u1", Username: "alice"}, "token-1", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "account created",
		},
		{
			name:           "short_password",
			requestBody:    helpers.SignUpRequest{Username: "alice", Password: "abc"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "username_taken",
			requestBody: helpers.SignUpRequest{Username: "alice", Password: "hunter2secret"},
			mockSetup: func() {
				mockAuth.EXPECT().
					SignUp(gomock.Any(), "alice", "hunter2secret").
					Return(models.Profile{}, "", marketerrors.ErrUsernameTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "username already taken",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reqBody, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Contains(t, resp["message"], tc.expectedMsg)

			if w.Code == http.StatusCreated {
				data := resp["data"].(map[string]any)
				require.Equal(t, "alice", data["username"])
				require.NotEmpty(t, data["token"])
			}
		})
	}
}

// Test SignInHandler
func TestSignInHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := NewMockAuthServiceInterface(ctrl)
	h := NewMarketHandler(mockAuth, nil, nil, nil, nil, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/signin", h.SignInHandler)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success",
			requestBody: helpers.SignInRequest{Username: "alice", Password: "hunter2secret"},
			mockSetup: func() {
				mockAuth.EXPECT().
					SignIn(gomock.Any(), "alice", "hunter2secret").
					Return(models.Profile{UserID: "u1", Username: "alice"}, "token-2", nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "signed in",
		},
		{
			name:        "bad_credentials",
			requestBody: helpers.SignInRequest{Username: "alice", Password: "wrongpassword"},
			mockSetup: func() {
				mockAuth.EXPECT().
					SignIn(gomock.Any(), "alice", "wrongpassword").
					Return(models.Profile{}, "", marketerrors.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "invalid credentials",
		},
		{
			name:           "missing_username",
			requestBody:    helpers.SignInRequest{Password: "hunter2secret"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reqBody, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Contains(t, resp["message"], tc.expectedMsg)
		})
	}
}

// Test SignOutHandler
func TestSignOutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := NewMockAuthServiceInterface(ctrl)
	h := NewMarketHandler(mockAuth, nil, nil, nil, nil, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/signout", h.SignOutHandler)

	mockAuth.EXPECT().SignOut("token-3")

	req := httptest.NewRequest(http.MethodPost, "/auth/signout", nil)
	req.Header.Set("Authorization", "Bearer token-3")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "well_formed", header: "Bearer abc123", want: "abc123"},
		{name: "missing_header", header: "", want: ""},
		{name: "wrong_scheme", header: "Basic abc123", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			require.Equal(t, tc.want, BearerToken(c))
		})
	}
}
