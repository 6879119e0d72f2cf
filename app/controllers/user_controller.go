package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/bind"
	"github.com/shashiranjanraj/plantnet/pkg/response"
)

// UserController serves the public user upsert.
type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// Upsert handles POST /users/{email}: create once per email, return the
// existing record unchanged on repeat calls.
func (c *UserController) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, created, err := c.service.Upsert(r.Context(), chi.URLParam(r, "email"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if created {
		response.Success(w, response.InsertResult{Acknowledged: true, InsertedID: user.ID})
		return
	}
	response.Success(w, user)
}
