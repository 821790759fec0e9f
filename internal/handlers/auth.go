package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopcart-backend/internal/config"
	"shopcart-backend/internal/dto"
	"shopcart-backend/internal/middleware"
	"shopcart-backend/internal/models"
	"shopcart-backend/internal/storage"
	"shopcart-backend/internal/utils"
)

// AuthHandler handles account-related HTTP requests
type AuthHandler struct {
	users  storage.UserStore
	config *config.Config
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users storage.UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, config: cfg}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new account and sign the caller in, returning a signed bearer token
// @Tags account
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 200 {string} string "Signed token"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/account/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "A valid email address is required")
		return
	}
	if err := validatePassword(req.Password); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := h.users.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Email already registered")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	// Registration doubles as sign-in: the response is the signed token.
	token, err := middleware.GenerateToken(created.ID, created.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	writeTokenResponse(w, token)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password, returning a signed bearer token
// @Tags account
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {string} string "Signed token"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/account/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Email and password are required")
		return
	}

	// A generic 400 for both unknown email and wrong password, so responses
	// do not reveal which accounts exist.
	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid credentials", "Email or password is incorrect")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch user", err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	writeTokenResponse(w, token)
}

// GetUserName returns the username for a given user id
// @Summary Get username
// @Description Look up a user's display name by id
// @Tags account
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {string} string "Username"
// @Failure 400 {object} dto.ErrorResponse "Invalid user id"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/account/getusername [get]
func (h *AuthHandler) GetUserName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid user id", "userId must be UUID")
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "User not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch user", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, user.Username)
}

// GetProfile returns the current user's profile
// @Summary Get user profile
// @Description Get the current authenticated user's profile information
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse "User profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/account/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No user for the authenticated id")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	})
}

// writeTokenResponse writes the raw compact token string as the whole body.
func writeTokenResponse(w http.ResponseWriter, token string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(token))
}

// validatePassword enforces the account password policy: at least six
// characters including an upper-case letter, a lower-case letter, a digit,
// and a non-alphanumeric character.
func validatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("Password must be at least 6 characters")
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return errors.New("Password must contain an upper-case letter, a lower-case letter, a digit, and a symbol")
	}
	return nil
}
