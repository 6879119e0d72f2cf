package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/bind"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/response"
)

// OrderController serves order placement, history, and cancellation.
type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Create handles POST /orders (guarded).
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.service.Place(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order placed",
		"order_id", id.Hex(),
		"plant_id", req.PlantID,
		"customer", req.Customer.Email,
	)
	response.Success(w, response.InsertResult{Acknowledged: true, InsertedID: id})
}

// History handles GET /customer/orders/{email} (guarded): the customer's
// orders enriched with plant name/image/category.
func (c *OrderController) History(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.History(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, rows)
}

// Cancel handles DELETE /customer/orders/{id} (guarded): delete unless the
// order has shipped.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "Order not found")
		return
	}

	deleted, err := c.service.Cancel(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.Success(w, response.DeleteResult{Acknowledged: true, DeletedCount: deleted})
}
