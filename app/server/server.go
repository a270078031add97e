package server

import (
	"context"
	"net/http"
	"time"

	"github.com/catalogapp/catalog-api/app/catalog"
	"github.com/catalogapp/catalog-api/app/categories"
	"github.com/catalogapp/catalog-api/app/middleware"
	"github.com/catalogapp/catalog-api/app/products"
	"github.com/catalogapp/catalog-api/app/response"
	"github.com/sirupsen/logrus"
)

// Repository is everything the HTTP layer needs from the catalog store.
type Repository interface {
	catalog.CatalogProvider
	categories.CategoryProvider
	products.ProductRemover
}

type Options struct {
	Repo           Repository
	Ping           func(ctx context.Context) error
	AuthSecret     []byte
	AuthIssuer     string
	AllowedOrigins []string
	Logger         logrus.FieldLogger
}

// NewRouter wires handlers and middleware. Every catalog route requires a session.
func NewRouter(opts Options) http.Handler {
	secure := middleware.RequireSession(opts.AuthSecret, opts.AuthIssuer, opts.Logger)

	catalogHandler := catalog.NewCatalogHandler(opts.Repo, opts.Logger)
	categoryHandler := categories.NewCategoryHandler(opts.Repo, opts.Logger)
	productHandler := products.NewProductHandler(opts.Repo)

	mux := http.NewServeMux()
	mux.Handle("GET /api/v1/secure/category", secure(http.HandlerFunc(catalogHandler.HandleGet)))
	mux.Handle("POST /api/v1/secure/category", secure(http.HandlerFunc(categoryHandler.HandleCreate)))
	mux.Handle("DELETE /api/v1/secure/category/{categoryId}", secure(http.HandlerFunc(categoryHandler.HandleDelete)))
	mux.Handle("DELETE /api/v1/secure/product/{productId}", secure(http.HandlerFunc(productHandler.HandleDelete)))
	mux.HandleFunc("GET /healthz", healthHandler(opts.Ping, opts.Logger))

	var h http.Handler = mux
	h = middleware.Recoverer(opts.Logger)(h)
	h = middleware.RequestLogger(opts.Logger)(h)
	h = middleware.CORS(opts.AllowedOrigins)(h)
	return h
}

func healthHandler(ping func(ctx context.Context) error, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			log.Errorf("Health check failed: %v", err)
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
