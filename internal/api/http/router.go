// Package http provides the JSON API surface: routing, middleware and
// handlers over the service layer.
package http

import (
	"database/sql"
	"net/http"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/security"
	"carrental-backoffice/internal/service"

	"github.com/gorilla/mux"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	DB           *sql.DB
	Tokens       security.TokenManager
	AuthSvc      service.AuthService
	UserSvc      service.UserService
	CarSvc       service.CarService
	BookingSvc   service.BookingService
	DashboardSvc service.DashboardService
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(deps RouterDeps) *mux.Router {
	authHandler := NewAuthHandler(deps.AuthSvc)
	userHandler := NewUserHandler(deps.UserSvc)
	carHandler := NewCarHandler(deps.CarSvc)
	bookingHandler := NewBookingHandler(deps.BookingSvc)
	dashboardHandler := NewDashboardHandler(deps.DashboardSvc)
	authMw := NewAuthMiddleware(deps.Tokens)

	adminOnly := RequireRole() // admins pass implicitly
	staff := RequireRole(domain.UserRoleOwner)

	r := mux.NewRouter()
	r.Use(RequestID)
	r.Use(Logging)
	r.Use(Recovery)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", HealthCheck(deps.DB)).Methods("GET")

	// Public auth endpoints
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Everything else requires a valid token.
	authed := api.NewRoute().Subrouter()
	authed.Use(authMw.Authenticate)

	// Users (admin)
	authed.Handle("/users", adminOnly(http.HandlerFunc(userHandler.List))).Methods("GET")
	authed.Handle("/users/{id:[0-9]+}", adminOnly(http.HandlerFunc(userHandler.Get))).Methods("GET")

	// Cars
	authed.HandleFunc("/cars", carHandler.List).Methods("GET")
	authed.HandleFunc("/cars/{id:[0-9]+}", carHandler.Get).Methods("GET")
	authed.Handle("/cars", staff(http.HandlerFunc(carHandler.Create))).Methods("POST")
	authed.Handle("/cars/{id:[0-9]+}", staff(http.HandlerFunc(carHandler.Update))).Methods("PUT")
	authed.Handle("/cars/{id:[0-9]+}", adminOnly(http.HandlerFunc(carHandler.Delete))).Methods("DELETE")

	// Bookings
	authed.HandleFunc("/bookings", bookingHandler.Create).Methods("POST")
	authed.HandleFunc("/bookings/mine", bookingHandler.ListMine).Methods("GET")
	authed.HandleFunc("/bookings/conflict", bookingHandler.CheckConflict).Methods("GET")
	authed.HandleFunc("/contracts/mine", bookingHandler.ListMyContracts).Methods("GET")
	authed.Handle("/bookings", adminOnly(http.HandlerFunc(bookingHandler.List))).Methods("GET")
	authed.Handle("/bookings/summary", adminOnly(http.HandlerFunc(bookingHandler.Summary))).Methods("GET")
	authed.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Get).Methods("GET")
	authed.Handle("/bookings/{id:[0-9]+}/status", staff(http.HandlerFunc(bookingHandler.UpdateStatus))).Methods("PATCH")

	// Dashboard (admin)
	authed.Handle("/dashboard/stats", adminOnly(http.HandlerFunc(dashboardHandler.Stats))).Methods("GET")

	return r
}
