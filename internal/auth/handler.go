package auth

import (
	"net/http"

	"github.com/shaadination/gallery-api/internal/response"
)

// Handler holds HTTP handlers for auth endpoints.
type Handler struct {
	verifier *Verifier
}

// NewHandler creates a new auth Handler.
func NewHandler(verifier *Verifier) *Handler {
	return &Handler{verifier: verifier}
}

// Validate godoc
//
//	@Summary		Validate token
//	@Description	Reports whether the presented bearer token is currently valid. The admin UI calls this on load to decide whether to show the login screen.
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]bool
//	@Failure		401	{object}	map[string]bool
//	@Router			/api/auth/validate [post]
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	if h.verifier.Authorize(r) {
		response.JSON(w, http.StatusOK, map[string]bool{"valid": true})
		return
	}
	response.JSON(w, http.StatusUnauthorized, map[string]bool{"valid": false})
}
