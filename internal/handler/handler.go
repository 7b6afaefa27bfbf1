package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/expense-tracker/internal/analytics"
	"github.com/Dan9191/expense-tracker/internal/config"
	"github.com/Dan9191/expense-tracker/internal/middleware"
	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/Dan9191/expense-tracker/internal/service"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Service is the business API the handlers call
type Service interface {
	Register(ctx context.Context, fullName, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	CreateTransaction(ctx context.Context, userID int64, kind models.Kind, in service.TransactionInput) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID int64, kind models.Kind, lf service.ListFilter) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID int64, kind models.Kind, id int64) error
	Summary(ctx context.Context, userID int64) (*models.Summary, error)
	Analytics(ctx context.Context, userID int64, q analytics.Query) (*models.AnalyticsReport, error)
}

type Handler struct {
	svc   Service
	log   *logrus.Logger
	ready func(ctx context.Context) error
}

func NewHandler(svc Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// WithReadiness sets the dependency check behind /readyz
func (h *Handler) WithReadiness(check func(ctx context.Context) error) *Handler {
	h.ready = check
	return h
}

// Routes wires every endpoint, the auth middleware and CORS
func (h *Handler) Routes(cfg *config.Config) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logging(h.log))

	// Public routes
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/readyz", h.Ready).Methods("GET")
	r.HandleFunc("/auth/signup", h.Signup).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/incomes", h.listTransactions(models.KindIncome)).Methods("GET")
	authRouter.HandleFunc("/incomes", h.createTransaction(models.KindIncome)).Methods("POST")
	authRouter.HandleFunc("/incomes/{id:[0-9]+}", h.deleteTransaction(models.KindIncome, "Income deleted")).Methods("DELETE")
	authRouter.HandleFunc("/expenses", h.listTransactions(models.KindExpense)).Methods("GET")
	authRouter.HandleFunc("/expenses", h.createTransaction(models.KindExpense)).Methods("POST")
	authRouter.HandleFunc("/expenses/{id:[0-9]+}", h.deleteTransaction(models.KindExpense, "Expense deleted")).Methods("DELETE")
	authRouter.HandleFunc("/stats/summary", h.Summary).Methods("GET")
	authRouter.HandleFunc("/stats/analytics", h.Analytics).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler(r)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the database is reachable
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			h.log.WithError(err).Warn("readiness check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps service errors to status codes. Anything unrecognized is
// logged and reported generically.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, analytics.ErrInvalidPeriod),
		errors.Is(err, analytics.ErrInvalidRange):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUserExists):
		status, msg = http.StatusBadRequest, "User already exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, middleware.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, "Access denied. No token provided."
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, "Unauthorized"
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.RequestIDFromContext(r.Context()),
			"path":       r.URL.Path,
		}).Error("request failed")
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
