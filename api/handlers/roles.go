package handlers

import (
	"net/http"

	"github.com/bbenesh/Snippets/api/services"
)

func GetRole(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetRoleService(svc, w, r)
	}
}

func GetTeacherRole(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetTeacherRoleService(svc, w, r)
	}
}
