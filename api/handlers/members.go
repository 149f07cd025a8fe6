package handlers

import (
	"net/http"

	"github.com/bbenesh/Snippets/api/services"
)

func GetGroupMembers(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetGroupMembersService(svc, w, r)
	}
}

func SearchMembers(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.SearchMembersService(svc, w, r)
	}
}
