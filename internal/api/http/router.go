package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"library-rental-backend/internal/security"
)

// NewRouter registers every REST route. Route names key into config.EndpointSecurityConfig.
func NewRouter(h *Handler, tm security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestID, Recovery, Logging, NewAuthMiddleware(tm).Handler)

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet).Name("Health")

	api := router.PathPrefix("/api").Subrouter()

	// Fixed paths first so "sweep" is never read as an {id}
	api.HandleFunc("/rentals/sweep", h.SweepOverdue).Methods(http.MethodPost).Name("SweepOverdue")
	api.HandleFunc("/rentals/return/{id}", h.ReturnRental).Methods(http.MethodPut).Name("ReturnRental")
	api.HandleFunc("/rentals/overdue/{id}", h.MarkOverdue).Methods(http.MethodPut).Name("MarkOverdue")
	api.HandleFunc("/rentals", h.CreateRental).Methods(http.MethodPost).Name("CreateRental")
	api.HandleFunc("/rentals", h.ListRentals).Methods(http.MethodGet).Name("ListRentals")
	api.HandleFunc("/rentals/{id}", h.GetRental).Methods(http.MethodGet).Name("GetRental")
	api.HandleFunc("/rentals/{id}", h.DeleteRental).Methods(http.MethodDelete).Name("DeleteRental")

	api.HandleFunc("/books/{id}/inventory", h.CheckInventory).Methods(http.MethodGet).Name("CheckInventory")

	api.HandleFunc("/rental-rules", h.ListRentalRules).Methods(http.MethodGet).Name("ListRentalRules")
	api.HandleFunc("/rental-rules/{name}", h.GetRentalRule).Methods(http.MethodGet).Name("GetRentalRule")
	api.HandleFunc("/rental-rules/{name}", h.PutRentalRule).Methods(http.MethodPut).Name("PutRentalRule")
	api.HandleFunc("/rental-rules/{name}", h.DeleteRentalRule).Methods(http.MethodDelete).Name("DeleteRentalRule")

	return router
}
