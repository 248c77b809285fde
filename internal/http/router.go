package http

import (
	"github.com/gorilla/mux"

	"github.com/Mynor454-s/iccsa-admin/internal/handlers"
	"github.com/Mynor454-s/iccsa-admin/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	quoteAdminHandler *handlers.QuoteAdminHandler,
	quoteHandler *handlers.QuoteHandler,
	paymentHandler *handlers.PaymentHandler,
	catalogHandler *handlers.CatalogHandler,
	userHandler *handlers.UserHandler,
	exportHandler *handlers.ExportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Everything below requires a session
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	// Order administration page: reconciled view plus its mutations
	api.HandleFunc("/admin/quotes/{id:[0-9]+}", quoteAdminHandler.GetView).Methods("GET")
	api.HandleFunc("/admin/quotes/{id:[0-9]+}/status", quoteAdminHandler.UpdateStatus).Methods("PUT")
	api.HandleFunc("/admin/quotes/{id:[0-9]+}/cancel", quoteAdminHandler.Cancel).Methods("POST")
	api.HandleFunc("/admin/quotes/{id:[0-9]+}/payments", quoteAdminHandler.CreatePayment).Methods("POST")
	api.HandleFunc("/admin/payments/{paymentId:[0-9]+}", quoteAdminHandler.UpdatePayment).Methods("PUT")
	api.HandleFunc("/admin/payments/{paymentId:[0-9]+}", quoteAdminHandler.DeletePayment).Methods("DELETE")

	// Exports
	api.HandleFunc("/admin/quotes/{id:[0-9]+}/export/pdf", exportHandler.OrderPDF).Methods("GET")
	api.HandleFunc("/admin/quotes/{id:[0-9]+}/export/csv", exportHandler.OrderCSV).Methods("GET")
	api.HandleFunc("/quotes/export/csv", exportHandler.QuoteListCSV).Methods("GET")

	// Quote listing and creation
	api.HandleFunc("/quotes", quoteHandler.List).Methods("GET")
	api.HandleFunc("/quotes", quoteHandler.Create).Methods("POST")
	api.HandleFunc("/quotes/{id:[0-9]+}/qr-info", quoteHandler.QRInfo).Methods("GET")

	// Payment listing and reports
	api.HandleFunc("/payments", paymentHandler.List).Methods("GET")
	api.HandleFunc("/payments/summary", paymentHandler.SummaryReport).Methods("GET")

	// Catalog CRUD
	api.HandleFunc("/clients", catalogHandler.ListClients).Methods("GET")
	api.HandleFunc("/clients", catalogHandler.CreateClient).Methods("POST")
	api.HandleFunc("/clients/{id:[0-9]+}", catalogHandler.GetClient).Methods("GET")
	api.HandleFunc("/clients/{id:[0-9]+}", catalogHandler.UpdateClient).Methods("PUT")
	api.HandleFunc("/clients/{id:[0-9]+}", catalogHandler.DeleteClient).Methods("DELETE")

	api.HandleFunc("/materials", catalogHandler.ListMaterials).Methods("GET")
	api.HandleFunc("/materials", catalogHandler.CreateMaterial).Methods("POST")
	api.HandleFunc("/materials/{id:[0-9]+}", catalogHandler.UpdateMaterial).Methods("PUT")
	api.HandleFunc("/materials/{id:[0-9]+}", catalogHandler.DeleteMaterial).Methods("DELETE")

	api.HandleFunc("/products", catalogHandler.ListProducts).Methods("GET")
	api.HandleFunc("/products", catalogHandler.CreateProduct).Methods("POST")
	api.HandleFunc("/products/{id:[0-9]+}", catalogHandler.UpdateProduct).Methods("PUT")
	api.HandleFunc("/products/{id:[0-9]+}", catalogHandler.DeleteProduct).Methods("DELETE")

	api.HandleFunc("/services", catalogHandler.ListServices).Methods("GET")
	api.HandleFunc("/services", catalogHandler.CreateService).Methods("POST")
	api.HandleFunc("/services/{id:[0-9]+}", catalogHandler.UpdateService).Methods("PUT")
	api.HandleFunc("/services/{id:[0-9]+}", catalogHandler.DeleteService).Methods("DELETE")

	// User administration, admin role only
	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware.RequireAdmin)
	users.HandleFunc("", userHandler.List).Methods("GET")
	users.HandleFunc("", userHandler.Create).Methods("POST")
	users.HandleFunc("/{id:[0-9]+}", userHandler.Update).Methods("PUT")
	users.HandleFunc("/{id:[0-9]+}", userHandler.Delete).Methods("DELETE")

	roles := api.PathPrefix("/roles").Subrouter()
	roles.Use(authMiddleware.RequireAdmin)
	roles.HandleFunc("", userHandler.ListRoles).Methods("GET")

	return r
}
