// Package api exposes the content platform over REST: collection CRUD,
// login/profile, liveness, and media upload URLs.
package api

import (
	"fmt"
	"net/http"

	"github.com/freelancework02/welfare-admin/internal/logging"
	"github.com/freelancework02/welfare-admin/internal/server/services"
	"github.com/gorilla/mux"
)

// Handler bundles the services the HTTP layer dispatches to.
type Handler struct {
	logger    logging.Logger
	users     *services.UserService
	content   *services.ContentService
	media     *services.MediaService
	jwtSecret []byte
}

func NewHandler(logger logging.Logger, users *services.UserService, content *services.ContentService, media *services.MediaService, jwtSecret []byte) *Handler {
	return &Handler{
		logger:    logger,
		users:     users,
		content:   content,
		media:     media,
		jwtSecret: jwtSecret,
	}
}

// NewRouter wires all routes. Everything except /health and /auth/login
// requires a valid bearer token.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(h.authMiddleware)

	protected.HandleFunc("/auth/profile", h.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/auth/register", h.requireRoles(h.RegisterUser, "admin", "superadmin")).Methods(http.MethodPost)
	protected.HandleFunc("/media/upload-url", h.UploadURL).Methods(http.MethodPost)

	protected.HandleFunc("/{collection}", h.ListRecords).Methods(http.MethodGet)
	protected.HandleFunc("/{collection}", h.CreateRecord).Methods(http.MethodPost)
	protected.HandleFunc("/{collection}/{id}", h.UpdateRecord).Methods(http.MethodPut)
	protected.HandleFunc("/{collection}/{id}", h.DeleteRecord).Methods(http.MethodDelete)

	return r
}
