package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pharmapos/m/internal/sales"
)

type ctxKey string

const (
	ctxUserID   ctxKey = "userID"
	ctxUsername ctxKey = "username"
	ctxRole     ctxKey = "role"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db     *sqlx.DB
	secret string
	engine *sales.Engine
}

// New constructs a Handler.
func New(db *sqlx.DB, secret string, engine *sales.Engine) *Handler {
	return &Handler{db: db, secret: secret, engine: engine}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // Change "*" to a list of allowed domains (e.g., ["http://localhost:3000"])
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.root)
	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.login)

		r.Group(func(pr chi.Router) {
			pr.Use(h.authMiddleware)

			pr.Route("/medicines", func(r chi.Router) {
				r.Get("/", h.listMedicines)
				r.Post("/", h.createMedicine)
				r.Get("/{id}", h.getMedicine)
				r.Put("/{id}", h.updateMedicine)
				r.Delete("/{id}", h.deleteMedicine)
			})

			pr.Route("/customers", func(r chi.Router) {
				r.Get("/", h.listCustomers)
				r.Post("/", h.createCustomer)
				r.Put("/{id}", h.updateCustomer)
				r.Delete("/{id}", h.deleteCustomer)
			})

			pr.Route("/suppliers", func(r chi.Router) {
				r.Get("/", h.listSuppliers)
				r.Post("/", h.createSupplier)
				r.Put("/{id}", h.updateSupplier)
				r.Delete("/{id}", h.deleteSupplier)
			})

			pr.Route("/sales", func(r chi.Router) {
				r.Get("/", h.listSales)
				r.Post("/", h.createSale)
				r.Get("/{id}", h.getSale)
			})

			pr.Route("/prescriptions", func(r chi.Router) {
				r.Get("/", h.listPrescriptions)
				r.Post("/", h.createPrescription)
			})

			pr.Get("/dashboard/stats", h.dashboardStats)
		})
	})

	return r
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Pharmacy Management System API",
		"status":  "running",
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Authentication helpers

type authClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(userID int64, username, role string) (string, error) {
	claims := authClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "access token required")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusForbidden, "invalid or expired token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusForbidden, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxUsername, claims.Username)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helpers

func nullIfEmpty(val string) *string {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
