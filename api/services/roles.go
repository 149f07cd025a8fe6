package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bbenesh/Snippets/models"
	"github.com/rs/zerolog"
)

// GetRoleService retrieves the role named by the bundle and name parameters.
func GetRoleService(svc *Service, w http.ResponseWriter, r *http.Request) {
	bundle := r.URL.Query().Get("bundle")
	name := r.URL.Query().Get("name")
	if bundle == "" || name == "" {
		HandleErrResponse(w, http.StatusBadRequest, errors.New("bundle and name are required"))
		return
	}

	role, err := svc.DB.GetRoleByBundleAndName(r.Context(), bundle, name)
	writeRole(w, r, role, err, bundle, name)
}

// GetTeacherRoleService retrieves the configured teacher role.
func GetTeacherRoleService(svc *Service, w http.ResponseWriter, r *http.Request) {
	teacher := svc.Config.Roles.Teacher

	role, err := svc.DB.GetTeacherRoleForSchool(r.Context(), teacher)
	writeRole(w, r, role, err, teacher.Bundle, teacher.Name)
}

func writeRole(w http.ResponseWriter, r *http.Request, role *models.Role, err error, bundle, name string) {
	logger := zerolog.Ctx(r.Context())

	if err != nil {
		logger.Error().Err(err).Str("bundle", bundle).Str("name", name).Msg("failed to retrieve role")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}
	if role == nil {
		HandleErrResponse(w, http.StatusNotFound, fmt.Errorf("role %s not found on %s groups", name, bundle))
		return
	}

	HandleSuccessResponse(w, models.RoleResponse{Role: *role})
}
