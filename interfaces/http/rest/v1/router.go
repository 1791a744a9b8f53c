// Package v1 keeps the retired API surface alive as a redirect shim.
// Old clients hitting /api/v1 get deprecation headers and a permanent
// redirect to the matching /api/v2 path.
package v1

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// NewRouter creates the legacy v1 router
func NewRouter() *mux.Router {
	router := mux.NewRouter()
	v1 := router.PathPrefix("/api/v1").Subrouter()

	v1.Use(versionHeaders)

	v1.HandleFunc("/health", healthCheck).Methods("GET")
	v1.PathPrefix("/").HandlerFunc(redirectToV2)

	return router
}

// redirectToV2 maps a v1 path onto its v2 equivalent
func redirectToV2(w http.ResponseWriter, r *http.Request) {
	target := strings.Replace(r.URL.Path, "/api/v1", "/api/v2", 1)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusPermanentRedirect)
}

// versionHeaders adds API version headers to responses
func versionHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-API-Version", "v1")
		w.Header().Set("X-API-Deprecated", "true")
		next.ServeHTTP(w, r)
	})
}

// healthCheck provides a health check endpoint
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","version":"v1"}`))
}
