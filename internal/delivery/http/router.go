package http

import (
	"net/http"

	"clinic-booking-bot/internal/delivery/http/handler"
	"clinic-booking-bot/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	catalogHandler     *handler.CatalogHandler
	appointmentHandler *handler.AppointmentHandler
	webhookPath        string
	webhookHandler     http.HandlerFunc
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	appointmentHandler *handler.AppointmentHandler,
	webhookPath string,
	webhookHandler http.HandlerFunc,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		catalogHandler:     catalogHandler,
		appointmentHandler: appointmentHandler,
		webhookPath:        webhookPath,
		webhookHandler:     webhookHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Telegram webhook (unversioned, token path acts as the secret)
	r.router.HandleFunc(r.webhookPath, r.webhookHandler).Methods(http.MethodPost)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Admin routes (protected)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)

	// Catalog management
	admin.HandleFunc("/doctors", r.catalogHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.catalogHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.catalogHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/services", r.catalogHandler.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services", r.catalogHandler.GetAllServices).Methods(http.MethodGet)

	// Appointment listing
	admin.HandleFunc("/appointments", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
