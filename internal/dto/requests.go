package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Phone       string `json:"phone" binding:"required"`
	CountryCode string `json:"countryCode" binding:"required"`
	Role        string `json:"role" binding:"required,oneof=DROPSHIPPER PROVIDER"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest represents a forgot-password request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents a password reset using a mailed token
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ChangePasswordRequest represents an authenticated password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// RegisterResponse carries the id of the newly created user
type RegisterResponse struct {
	UserID string `json:"userId"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int      `json:"expires_in"`
	User      UserInfo `json:"user"`
}

// UserInfo represents user information in an auth response
type UserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// UserResponse represents a user profile response
type UserResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	CountryCode string  `json:"country_code"`
	Role        string  `json:"role"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	LastLoginAt *string `json:"last_login_at"`
}

// AppendEntryRequest represents a manual ledger adjustment
type AppendEntryRequest struct {
	UserID      string `json:"userId" binding:"required,uuid"`
	Type        string `json:"type" binding:"required,oneof=ENTRADA SALIDA"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// TransferRequest represents a wallet-to-wallet transfer; the source wallet
// is always the authenticated user
type TransferRequest struct {
	ToUserID    string `json:"toUserId" binding:"required,uuid"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// BalanceResponse carries the materialized wallet balance
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance string `json:"balance"`
}

// EntryResponse represents one ledger entry
type EntryResponse struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	Type             string `json:"type"`
	Amount           string `json:"amount"`
	PreviousBalance  string `json:"previous_balance"`
	ResultingBalance string `json:"resulting_balance"`
	Description      string `json:"description"`
	CreatedAt        string `json:"created_at"`
}

// EntriesResponse pages through a wallet history
type EntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response; Error is the machine-checkable
// kind, Message the human-readable text
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
