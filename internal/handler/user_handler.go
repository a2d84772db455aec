package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

type RoleResponse struct {
	Status int    `json:"status"`
	Role   string `json:"role"`
}

// GetRole tells a client whether the google account may edit content.
func (h *Handlers) GetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.Service.User.Role(r.Context(), mux.Vars(r)["googleId"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, RoleResponse{Status: http.StatusOK, Role: role}, http.StatusOK)
}
