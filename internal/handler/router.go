package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	custommiddleware "github.com/doctordoom101/laundryapp-dashboard/internal/middleware"
	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

// SetupRouter настраивает маршруты экранов, права ролей и middleware.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	staff := []model.Role{model.RoleAdmin, model.RolePetugas}
	management := []model.Role{model.RoleAdmin, model.RoleOwner}
	admin := model.RoleAdmin

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: h.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		}).Handler)
		r.Use(h.limiter.Limit)

		r.Get("/check/{code}", h.CheckStatusJSON)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Get("/login", h.LoginPage)
		r.With(h.limiter.Limit).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/unauthorized", h.Unauthorized)
		r.With(h.limiter.Limit).Get("/check-status", h.CheckStatus)

		r.With(h.guard.Require()).Get("/", h.Dashboard)

		r.Route("/products", func(r chi.Router) {
			r.With(h.guard.Require()).Get("/", h.Products)
			r.Group(func(r chi.Router) {
				r.Use(h.guard.Require(admin))
				r.Get("/new", h.NewProduct)
				r.Post("/", h.SaveProduct)
				r.Get("/{id}/edit", h.EditProduct)
				r.Post("/{id}", h.SaveProduct)
				r.Post("/{id}/delete", h.DeleteProduct)
			})
		})

		r.Route("/laundry-items", func(r chi.Router) {
			r.Use(h.guard.Require(staff...))
			r.Get("/", h.LaundryItems)
			r.Get("/new", h.NewLaundryItem)
			r.Post("/", h.CreateLaundryItem)
			r.Get("/{id}", h.LaundryItem)
			r.Post("/{id}/status", h.UpdateLaundryStatus)
			r.Get("/{id}/qr.png", h.LaundryQR)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(h.guard.Require(staff...))
			r.Get("/", h.Transactions)
			r.Get("/new", h.NewTransaction)
			r.Post("/", h.CreateTransaction)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.guard.Require(admin))
			r.Get("/", h.Users)
			r.Get("/new", h.NewUser)
			r.Post("/", h.SaveUser)
			r.Get("/{id}/edit", h.EditUser)
			r.Post("/{id}", h.SaveUser)
			r.Post("/{id}/delete", h.DeleteUser)
		})

		r.Route("/outlets", func(r chi.Router) {
			r.With(h.guard.Require(management...)).Get("/", h.Outlets)
			r.Group(func(r chi.Router) {
				r.Use(h.guard.Require(admin))
				r.Get("/new", h.NewOutlet)
				r.Post("/", h.SaveOutlet)
				r.Get("/{id}/edit", h.EditOutlet)
				r.Post("/{id}", h.SaveOutlet)
				r.Post("/{id}/delete", h.DeleteOutlet)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(h.guard.Require(management...))
			r.Get("/", h.Reports)
			r.Get("/export.pdf", h.ExportReport)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
