package handlers

import (
	"net/http"

	"github.com/bbenesh/Snippets/api/services"
)

func GetDeleteLink(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.GetDeleteLinkService(svc, w, r)
	}
}

func RenderDeleteLink(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.RenderDeleteLinkService(svc, w, r)
	}
}
