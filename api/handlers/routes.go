package handlers

import (
	"net/http"

	"github.com/bbenesh/Snippets/api/middleware"
	"github.com/bbenesh/Snippets/api/services"
	"github.com/gorilla/mux"
)

// NewRouter registers the API routes under the configured base path.
func NewRouter(svc *services.Service) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix(svc.Config.BasePath).Subrouter()
	api.Use(middleware.WithLogger)

	// Member routes
	api.HandleFunc("/members", SearchMembers(svc)).Methods(http.MethodGet)
	api.HandleFunc("/groups/{group-id}/members", GetGroupMembers(svc)).Methods(http.MethodGet)

	// Role routes
	api.HandleFunc("/roles", GetRole(svc)).Methods(http.MethodGet)
	api.HandleFunc("/roles/teacher", GetTeacherRole(svc)).Methods(http.MethodGet)

	// Link routes
	api.HandleFunc("/memberships/delete-link", GetDeleteLink(svc)).Methods(http.MethodGet)
	api.HandleFunc("/memberships/delete-link", RenderDeleteLink(svc)).Methods(http.MethodPost)

	return r
}
