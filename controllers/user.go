package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/glucheck/backend/repository"
)

// UserController serves the caller's own profile.
type UserController struct {
	users *repository.UserRepository
}

func NewUserController(users *repository.UserRepository) *UserController {
	return &UserController{users: users}
}

type updateProfileRequest struct {
	Name   *string  `json:"name"`
	Height *int     `json:"height"`
	Weight *int     `json:"weight"`
	BMI    *float64 `json:"bmi"`
}

// Me handles GET /user/me.
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := c.users.GetByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateMe handles PUT /user/me. When height and weight are provided without
// an explicit BMI, BMI is derived and stored as a float; it is never rounded
// to an integer.
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := c.users.GetByID(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Height != nil {
		if *req.Height <= 0 {
			respondError(w, http.StatusBadRequest, "height must be positive")
			return
		}
		user.Height = req.Height
	}
	if req.Weight != nil {
		if *req.Weight <= 0 {
			respondError(w, http.StatusBadRequest, "weight must be positive")
			return
		}
		user.Weight = req.Weight
	}

	switch {
	case req.BMI != nil:
		user.BMI = req.BMI
	case user.Height != nil && user.Weight != nil:
		meters := float64(*user.Height) / 100
		bmi := float64(*user.Weight) / (meters * meters)
		user.BMI = &bmi
	}

	if err := c.users.Update(r.Context(), user); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
