package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bbenesh/Snippets/db"
	"github.com/bbenesh/Snippets/links"
	"github.com/bbenesh/Snippets/models"
	"github.com/rs/zerolog"
)

// GetDeleteLinkService renders the path removing an entry from a contest.
func GetDeleteLinkService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	entryID, err := positiveID(r, "entry")
	if err != nil {
		HandleErrResponse(w, http.StatusBadRequest, err)
		return
	}
	contestID, err := positiveID(r, "contest")
	if err != nil {
		HandleErrResponse(w, http.StatusBadRequest, err)
		return
	}

	path, err := svc.Links.BuildDeleteMembershipLink(r.Context(), entryID, contestID)
	if errors.Is(err, db.ErrMembershipNotFound) {
		HandleErrResponse(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("entry", entryID).Int64("contest", contestID).Msg("failed to build delete link")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	HandleSuccessResponse(w, models.LinkResponse{Path: path})
}

// RenderDeleteLinkService renders the delete-membership path for a views row
// posted as JSON.
func RenderDeleteLinkService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var values links.Values
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("invalid link values: %w", err))
		return
	}

	path, err := svc.Links.Render(r.Context(), values)
	switch {
	case errors.Is(err, links.ErrMissingContest):
		HandleErrResponse(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, db.ErrMembershipNotFound):
		HandleErrResponse(w, http.StatusNotFound, err)
		return
	case err != nil:
		logger.Error().Err(err).Int64("entry", values.OGMembershipGID).Msg("failed to render delete link")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	HandleSuccessResponse(w, models.LinkResponse{Path: path})
}

func positiveID(r *http.Request, param string) (int64, error) {
	raw := r.URL.Query().Get(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", param, raw)
	}
	return id, nil
}
