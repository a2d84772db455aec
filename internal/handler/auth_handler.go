package handlers

import (
	"net/http"

	"portfolioAPI/internal/apierror"
	"portfolioAPI/internal/middleware"
	"portfolioAPI/internal/models"
)

type MeResponse struct {
	User *models.User `json:"user"`
	Role string       `json:"role"`
}

// GetCurrentUser returns the admin behind the bearer token.
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authorization required"))
		return
	}

	writeSuccess(w, MeResponse{User: user, Role: models.RoleAdmin}, http.StatusOK)
}
