package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"restaurant-api/apperrors"
	"restaurant-api/models"
	"restaurant-api/stores"
	"restaurant-api/utils"
)

// invalidCredentials is returned for both an unknown email and a wrong
// password, so callers cannot probe which accounts exist.
var invalidCredentials = apperrors.New(apperrors.KindAuthentication, "Invalid email or password.")

// SignUpDTO is the signup request body.
type SignUpDTO struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginDTO is the login request body.
type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthController handles signup and login
type AuthController struct {
	Users  stores.UserStore
	Mailer utils.Mailer
}

// NewAuthController creates a new AuthController
func NewAuthController(users stores.UserStore, mailer utils.Mailer) *AuthController {
	return &AuthController{Users: users, Mailer: mailer}
}

// SignUp registers a new user and returns a signed token
func (ac *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var dto SignUpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, apperrors.New(apperrors.KindValidation, "Invalid input."))
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	user := &models.User{
		Name:     dto.Name,
		Email:    dto.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	// Duplicate emails come back as a Conflict from the store's unique
	// index; any other create failure propagates as-is.
	if err := ac.Users.Create(r.Context(), user); err != nil {
		utils.WriteError(w, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if ac.Mailer != nil {
		go func(name, email string) {
			if err := ac.Mailer.SendWelcomeEmail(name, email); err != nil {
				slog.Warn("send welcome email", "email", email, "error", err)
			}
		}(user.Name, user.Email)
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// Login authenticates a user and returns a signed token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, apperrors.New(apperrors.KindValidation, "Invalid input."))
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	user, err := ac.Users.FindByEmail(r.Context(), dto.Email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			utils.WriteError(w, invalidCredentials)
			return
		}
		utils.WriteError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		utils.WriteError(w, invalidCredentials)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}
