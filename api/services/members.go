package services

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bbenesh/Snippets/models"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// parseMemberQuery reads the role, name and order filters of a member
// lookup. Each rid parameter adds a role id; an empty rid or member=true
// adds plain members.
func parseMemberQuery(svc *Service, r *http.Request) (models.MemberQuery, error) {
	params := r.URL.Query()

	var rids []*string
	for _, rid := range params["rid"] {
		rid := rid
		rids = append(rids, &rid)
	}
	q := models.MemberQuery{
		Roles:      models.ParseRoleIDs(rids),
		NamePrefix: params.Get("q"),
		Order:      svc.Config.MembersOrder(),
	}

	if member := params.Get("member"); member != "" {
		ok, err := strconv.ParseBool(member)
		if err != nil {
			return q, fmt.Errorf("invalid member flag %q", member)
		}
		if ok {
			q.Roles = q.Roles.WithMembers()
		}
	}

	if order := params.Get("order"); order != "" {
		o, err := models.ParseOrder(order)
		if err != nil {
			return q, err
		}
		q.Order = o
	}

	return q, nil
}

// GetGroupMembersService lists the users of one group.
func GetGroupMembersService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	gid, err := strconv.ParseInt(mux.Vars(r)["group-id"], 10, 64)
	if err != nil || gid <= 0 {
		HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("invalid group id %q", mux.Vars(r)["group-id"]))
		return
	}

	q, err := parseMemberQuery(svc, r)
	if err != nil {
		HandleErrResponse(w, http.StatusBadRequest, err)
		return
	}
	q.GroupID = gid

	members, err := svc.DB.GetUsersByGroupAndRoles(r.Context(), q)
	if err != nil {
		logger.Error().Err(err).Int64("gid", gid).Msg("failed to retrieve group members")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	HandleSuccessResponse(w, models.MembersResponse{Members: members})
}

// SearchMembersService lists group members across all groups.
func SearchMembersService(svc *Service, w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	q, err := parseMemberQuery(svc, r)
	if err != nil {
		HandleErrResponse(w, http.StatusBadRequest, err)
		return
	}

	members, err := svc.DB.GetUsersByGroupAndRoles(r.Context(), q)
	if err != nil {
		logger.Error().Err(err).Msg("failed to search group members")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	HandleSuccessResponse(w, models.MembersResponse{Members: members})
}
