package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/glucheck/backend/logger"
	"github.com/glucheck/backend/models"
	"github.com/glucheck/backend/repository"
	"github.com/glucheck/backend/util"

	"go.uber.org/zap"
)

// AuthController handles registration and login. It issues the verified
// identity the rest of the pipeline trusts.
type AuthController struct {
	users        *repository.UserRepository
	jwtSecretKey []byte
}

func NewAuthController(users *repository.UserRepository, jwtSecretKey []byte) *AuthController {
	return &AuthController{users: users, jwtSecretKey: jwtSecretKey}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := c.users.GetByEmail(r.Context(), req.Email); err == nil {
		respondError(w, http.StatusBadRequest, "email already registered")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		respondServiceError(w, err)
		return
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	user := &models.User{Name: req.Name, Email: req.Email, Password: hash}
	if err := c.users.Create(r.Context(), user); err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info("user registered", zap.Uint("user_id", user.ID))
	respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login and returns a signed JWT.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := c.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondServiceError(w, err)
		return
	}

	if !util.CheckPasswordHash(req.Password, user.Password) {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := util.GenerateJWT(user.ID, user.Email, c.jwtSecretKey)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}
