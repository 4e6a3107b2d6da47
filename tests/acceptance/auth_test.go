package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/CamiloCastellanos/drop-sub000/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	reqBody := dto.RegisterRequest{
		FirstName:   "Camilo",
		LastName:    "Castellanos",
		Email:       "test@example.com",
		Password:    "Password123",
		Phone:       "3001234567",
		CountryCode: "+57",
		Role:        "DROPSHIPPER",
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/register",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var registered dto.RegisterResponse
	err = json.NewDecoder(resp.Body).Decode(&registered)
	s.Require().NoError(err)

	s.NotEmpty(registered.UserID)

	// New accounts start OFF and are not logged in
	s.Equal("OFF", s.userStatus(registered.UserID))
}

func (s *Suite) TestRegister_DuplicateEmail() {
	s.register("duplicate@example.com", "Password123")

	reqBody := dto.RegisterRequest{
		FirstName:   "Another",
		LastName:    "Person",
		Email:       "duplicate@example.com",
		Password:    "Password456",
		Phone:       "3009876543",
		CountryCode: "+57",
		Role:        "PROVIDER",
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/register",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Conflict", errResp.Error)
}

func (s *Suite) TestRegister_InvalidPayload() {
	cases := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
	}{
		{"invalid email", func(r *dto.RegisterRequest) { r.Email = "invalid-email" }},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "short" }},
		{"admin role", func(r *dto.RegisterRequest) { r.Role = "ADMIN" }},
		{"missing phone", func(r *dto.RegisterRequest) { r.Phone = "" }},
	}

	for _, tc := range cases {
		reqBody := dto.RegisterRequest{
			FirstName:   "Camilo",
			LastName:    "Castellanos",
			Email:       "valid@example.com",
			Password:    "Password123",
			Phone:       "3001234567",
			CountryCode: "+57",
			Role:        "DROPSHIPPER",
		}
		tc.mutate(&reqBody)
		body, _ := json.Marshal(reqBody)

		resp, err := http.Post(
			s.BaseURL+"/api/v1/auth/register",
			"application/json",
			bytes.NewBuffer(body),
		)
		s.Require().NoError(err)
		resp.Body.Close()

		s.Equal(http.StatusBadRequest, resp.StatusCode, tc.name)
	}
}

func (s *Suite) TestLogin_Success() {
	userID := s.register("login@example.com", "Password123")

	loginReq := dto.LoginRequest{
		Email:    "login@example.com",
		Password: "Password123",
	}
	body, _ := json.Marshal(loginReq)

	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/login",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	err = json.NewDecoder(resp.Body).Decode(&authResp)
	s.Require().NoError(err)

	s.NotEmpty(authResp.Token)
	s.Equal("Bearer", authResp.TokenType)
	s.Equal(3600, authResp.ExpiresIn)
	s.Equal("login@example.com", authResp.User.Email)
	s.Equal(userID, authResp.User.ID)
	s.Equal("DROPSHIPPER", authResp.User.Role)

	s.Equal("ON", s.userStatus(userID))
}

func (s *Suite) TestLogin_InvalidCredentials() {
	s.register("known@example.com", "Password123")

	// Unknown account and wrong password answer identically
	for _, loginReq := range []dto.LoginRequest{
		{Email: "nonexistent@example.com", Password: "Password123"},
		{Email: "known@example.com", Password: "WrongPassword123"},
	} {
		body, _ := json.Marshal(loginReq)

		resp, err := http.Post(
			s.BaseURL+"/api/v1/auth/login",
			"application/json",
			bytes.NewBuffer(body),
		)
		s.Require().NoError(err)

		s.Equal(http.StatusUnauthorized, resp.StatusCode)

		var errResp dto.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&errResp)
		resp.Body.Close()
		s.Equal("Unauthorized", errResp.Error)
	}
}

func (s *Suite) TestGetMe_Success() {
	s.register("getme@example.com", "Password123")
	token := s.login("getme@example.com", "Password123")

	resp := s.doJSON("GET", "/api/v1/auth/me", token, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var userResp dto.UserResponse
	err := json.NewDecoder(resp.Body).Decode(&userResp)
	s.Require().NoError(err)

	s.NotEmpty(userResp.ID)
	s.Equal("getme@example.com", userResp.Email)
	s.Equal("DROPSHIPPER", userResp.Role)
	s.Equal("ON", userResp.Status)
	s.NotEmpty(userResp.CreatedAt)
	s.NotNil(userResp.LastLoginAt)
}

func (s *Suite) TestGetMe_NoToken() {
	resp := s.doJSON("GET", "/api/v1/auth/me", "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_InvalidToken() {
	resp := s.doJSON("GET", "/api/v1/auth/me", "invalid-token", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogout_Success() {
	userID := s.register("logout@example.com", "Password123")
	token := s.login("logout@example.com", "Password123")

	resp := s.doJSON("POST", "/api/v1/auth/logout", token, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var successResp dto.SuccessResponse
	json.NewDecoder(resp.Body).Decode(&successResp)
	s.Equal("Logged out successfully", successResp.Message)

	s.Equal("OFF", s.userStatus(userID))

	// The revoked token is rejected afterwards
	meResp := s.doJSON("GET", "/api/v1/auth/me", token, nil)
	defer meResp.Body.Close()
	s.Equal(http.StatusUnauthorized, meResp.StatusCode)
}

func (s *Suite) TestLogout_NoToken() {
	resp := s.doJSON("POST", "/api/v1/auth/logout", "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestForgotPassword_AlwaysAccepts() {
	s.register("forgot@example.com", "Password123")

	// Known and unknown addresses get the same answer
	for _, email := range []string{"forgot@example.com", "stranger@example.com"} {
		resp := s.doJSON("POST", "/api/v1/auth/forgot-password", "", dto.ForgotPasswordRequest{Email: email})

		s.Equal(http.StatusOK, resp.StatusCode)

		var successResp dto.SuccessResponse
		json.NewDecoder(resp.Body).Decode(&successResp)
		resp.Body.Close()
		s.Equal("If the email is registered, a reset link has been sent", successResp.Message)
	}

	// Only the known account got a token stored
	s.NotEmpty(s.resetTokenFor("forgot@example.com"))
}

func (s *Suite) TestResetPassword_Flow() {
	s.register("reset@example.com", "OldPassword123")

	resp := s.doJSON("POST", "/api/v1/auth/forgot-password", "", dto.ForgotPasswordRequest{Email: "reset@example.com"})
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	token := s.resetTokenFor("reset@example.com")

	resetResp := s.doJSON("POST", "/api/v1/auth/reset-password", "", dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "NewPassword123",
	})
	resetResp.Body.Close()
	s.Equal(http.StatusOK, resetResp.StatusCode)

	// Old password is rejected, new one works
	body, _ := json.Marshal(dto.LoginRequest{Email: "reset@example.com", Password: "OldPassword123"})
	oldResp, err := http.Post(s.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	oldResp.Body.Close()
	s.Equal(http.StatusUnauthorized, oldResp.StatusCode)

	s.login("reset@example.com", "NewPassword123")

	// The token is consumed
	reuseResp := s.doJSON("POST", "/api/v1/auth/reset-password", "", dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "AnotherPassword123",
	})
	reuseResp.Body.Close()
	s.Equal(http.StatusUnauthorized, reuseResp.StatusCode)
}

func (s *Suite) TestResetPassword_UnknownToken() {
	resp := s.doJSON("POST", "/api/v1/auth/reset-password", "", dto.ResetPasswordRequest{
		Token:       "deadbeefdeadbeef",
		NewPassword: "NewPassword123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestChangePassword_Success() {
	s.register("change@example.com", "OldPassword123")
	token := s.login("change@example.com", "OldPassword123")

	resp := s.doJSON("POST", "/api/v1/auth/change-password", token, dto.ChangePasswordRequest{
		CurrentPassword: "OldPassword123",
		NewPassword:     "NewPassword123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	s.login("change@example.com", "NewPassword123")
}

func (s *Suite) TestChangePassword_WrongCurrent() {
	s.register("changewrong@example.com", "Password123")
	token := s.login("changewrong@example.com", "Password123")

	resp := s.doJSON("POST", "/api/v1/auth/change-password", token, dto.ChangePasswordRequest{
		CurrentPassword: "WrongPassword123",
		NewPassword:     "NewPassword123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestCompleteFlow() {
	email := "complete@example.com"
	password := "Password123"

	userID := s.register(email, password)
	token := s.login(email, password)

	meResp := s.doJSON("GET", "/api/v1/auth/me", token, nil)
	meResp.Body.Close()
	s.Equal(http.StatusOK, meResp.StatusCode)
	s.Equal("ON", s.userStatus(userID))

	logoutResp := s.doJSON("POST", "/api/v1/auth/logout", token, nil)
	logoutResp.Body.Close()
	s.Equal(http.StatusOK, logoutResp.StatusCode)
	s.Equal("OFF", s.userStatus(userID))

	meResp2 := s.doJSON("GET", "/api/v1/auth/me", token, nil)
	meResp2.Body.Close()
	s.Equal(http.StatusUnauthorized, meResp2.StatusCode)

	// A fresh login issues a new valid token
	newToken := s.login(email, password)
	meResp3 := s.doJSON("GET", "/api/v1/auth/me", newToken, nil)
	meResp3.Body.Close()
	s.Equal(http.StatusOK, meResp3.StatusCode)
}
