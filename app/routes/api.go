// Package routes wires the HTTP surface onto the router.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/plantnet/app/controllers"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/router"
)

// API bundles the controllers behind the HTTP surface. Building it from the
// repository interfaces keeps the whole route table testable against the
// in-memory stores.
type API struct {
	auth   *controllers.AuthController
	plants *controllers.PlantController
	orders *controllers.OrderController
	users  *controllers.UserController
}

func NewAPI(users repositories.UserRepository, plants repositories.PlantRepository, orders repositories.OrderRepository) *API {
	return &API{
		auth:   controllers.NewAuthController(),
		plants: controllers.NewPlantController(services.NewPlantService(plants)),
		orders: controllers.NewOrderController(services.NewOrderService(orders, plants)),
		users:  controllers.NewUserController(services.NewUserService(users)),
	}
}

// Register mounts every route. Guarded endpoints sit behind the auth gate;
// catalog reads, the user upsert, and the session endpoints stay public.
func (a *API) Register(r *router.Router) {
	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Hello from plantNet Server.."))
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	// Session
	r.Post("/jwt", "auth.login", a.auth.Login)
	r.Get("/logout", "auth.logout", a.auth.Logout)

	// Public catalog + user upsert
	r.Get("/plants", "plants.list", a.plants.List)
	r.Get("/plants/{id}", "plants.show", a.plants.Show)
	r.Post("/users/{email}", "users.upsert", a.users.Upsert)

	// Guarded workflow
	protected := r.Group("", middleware.Auth)
	protected.Post("/plants", "plants.create", a.plants.Create)
	protected.Post("/plants/image", "plants.image", a.plants.UploadImage)
	protected.Patch("/plants/quantity/{id}", "plants.quantity", a.plants.AdjustQuantity)
	protected.Post("/orders", "orders.create", a.orders.Create)
	protected.Get("/customer/orders/{email}", "orders.history", a.orders.History)
	protected.Delete("/customer/orders/{id}", "orders.cancel", a.orders.Cancel)
}
