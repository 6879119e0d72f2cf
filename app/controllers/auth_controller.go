// Package controllers holds the HTTP handlers. Each controller binds and
// validates its payloads, delegates to a service, and maps the service's
// sentinel errors onto the wire contract.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/auth"
	"github.com/shashiranjanraj/plantnet/pkg/bind"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/response"
)

// AuthController mints and clears session cookies.
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// Login handles POST /jwt: sign the caller-supplied identity claim into a
// session token and deliver it as the HTTP-only cookie. There is no
// credential check here; identity is established by the front-end's auth
// provider and this endpoint only converts it into a session.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	token, err := auth.GenerateToken(req.Email, role)
	if err != nil {
		logger.WithCtx(r.Context()).Error("token generation failed", "error", err)
		response.Internal(w)
		return
	}

	auth.SetTokenCookie(w, token)
	response.Success(w, map[string]bool{"success": true})
}

// Logout handles GET /logout: expire the session cookie. Idempotent.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearTokenCookie(w)
	response.Success(w, map[string]bool{"success": true})
}
