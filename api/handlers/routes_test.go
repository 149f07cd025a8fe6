package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bbenesh/Snippets/api/services"
	"github.com/bbenesh/Snippets/db"
	"github.com/bbenesh/Snippets/internal/appconfig"
	"github.com/bbenesh/Snippets/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetUsersByGroupAndRoles(ctx context.Context, q models.MemberQuery) ([]models.MemberRecord, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MemberRecord), args.Error(1)
}

func (m *MockStore) GetRoleByBundleAndName(ctx context.Context, bundle, name string) (*models.Role, error) {
	args := m.Called(ctx, bundle, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockStore) GetTeacherRoleForSchool(ctx context.Context, teacher appconfig.RoleConfig) (*models.Role, error) {
	args := m.Called(ctx, teacher)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockStore) GetMembershipForEntityInGroup(ctx context.Context, etid, gid int64, match models.ContestMatch) (*models.Membership, error) {
	args := m.Called(ctx, etid, gid, match)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}

// envelope mirrors models.Response with a typed payload.
type envelope[T any] struct {
	Success      int    `json:"success"`
	ErrorCode    string `json:"error_code"`
	ErrorDetails string `json:"error_details"`
	Data         T      `json:"data"`
}

func serve(t *testing.T, store *MockStore, cfg *appconfig.Config, target string) *httptest.ResponseRecorder {
	t.Helper()
	return serveRequest(t, store, cfg, http.MethodGet, target, "")
}

func serveRequest(t *testing.T, store *MockStore, cfg *appconfig.Config, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	if cfg == nil {
		cfg = appconfig.Default()
	}

	req, err := http.NewRequest(method, target, strings.NewReader(body))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	NewRouter(services.NewService(cfg, store)).ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var body envelope[T]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func TestGetGroupMembers(t *testing.T) {
	teacher := "teacher"
	rid := "2"
	members := []models.MemberRecord{
		{UID: 2, Name: "john", GID: 5, RID: &rid, RoleName: &teacher, MembershipID: 101},
		{UID: 4, Name: "mary", GID: 5, MembershipID: 103},
	}

	store := new(MockStore)
	store.On("GetUsersByGroupAndRoles", mock.Anything, models.MemberQuery{
		GroupID: 5,
		Roles:   models.RoleFilter{RoleIDs: []string{"2"}, Members: true},
	}).Return(members, nil)

	rr := serve(t, store, nil, "/api/groups/5/members?rid=2&rid=")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decode[models.MembersResponse](t, rr)
	assert.Equal(t, 1, body.Success)
	assert.Equal(t, members, body.Data.Members)
	store.AssertExpectations(t)
}

func TestGetGroupMembersMemberFlagAndOrder(t *testing.T) {
	store := new(MockStore)
	store.On("GetUsersByGroupAndRoles", mock.Anything, models.MemberQuery{
		GroupID: 5,
		Roles:   models.PlainMembers(),
		Order:   models.OrderGroupAsc,
	}).Return([]models.MemberRecord{}, nil)

	rr := serve(t, store, nil, "/api/groups/5/members?member=true&order=gid")

	assert.Equal(t, http.StatusOK, rr.Code)
	store.AssertExpectations(t)
}

func TestGetGroupMembersUsesConfiguredOrder(t *testing.T) {
	cfg := appconfig.Default()
	cfg.Members.Order = "gid"

	store := new(MockStore)
	store.On("GetUsersByGroupAndRoles", mock.Anything, models.MemberQuery{
		GroupID: 7,
		Order:   models.OrderGroupAsc,
	}).Return([]models.MemberRecord{}, nil)

	rr := serve(t, store, cfg, "/api/groups/7/members")

	assert.Equal(t, http.StatusOK, rr.Code)
	store.AssertExpectations(t)
}

func TestGetGroupMembersBadRequests(t *testing.T) {
	for _, target := range []string{
		"/api/groups/abc/members",
		"/api/groups/0/members",
		"/api/groups/5/members?member=maybe",
		"/api/groups/5/members?order=name",
	} {
		t.Run(target, func(t *testing.T) {
			store := new(MockStore)
			rr := serve(t, store, nil, target)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, 0, decode[any](t, rr).Success)
			store.AssertNotCalled(t, "GetUsersByGroupAndRoles", mock.Anything, mock.Anything)
		})
	}
}

func TestGetGroupMembersDatabaseError(t *testing.T) {
	store := new(MockStore)
	store.On("GetUsersByGroupAndRoles", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("error retrieving group members: %w", &pq.Error{Code: "42P01", Message: `relation "og_role" does not exist`}))

	rr := serve(t, store, nil, "/api/groups/5/members")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode[any](t, rr)
	assert.Equal(t, "undefined_table", body.ErrorCode)
	assert.Equal(t, `relation "og_role" does not exist`, body.ErrorDetails)
}

func TestSearchMembers(t *testing.T) {
	store := new(MockStore)
	store.On("GetUsersByGroupAndRoles", mock.Anything, models.MemberQuery{NamePrefix: "jo"}).
		Return([]models.MemberRecord{{UID: 2, Name: "john", GID: 5}}, nil)

	rr := serve(t, store, nil, "/api/members?q=jo")

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode[models.MembersResponse](t, rr)
	require.Len(t, body.Data.Members, 1)
	assert.Equal(t, "john", body.Data.Members[0].Name)
	store.AssertExpectations(t)
}

func TestGetTeacherRole(t *testing.T) {
	store := new(MockStore)
	store.On("GetTeacherRoleForSchool", mock.Anything, appconfig.RoleConfig{Bundle: "school", Name: "teacher"}).
		Return(&models.Role{RID: 2, GroupBundle: "school", Name: "teacher"}, nil)

	rr := serve(t, store, nil, "/api/roles/teacher")

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode[models.RoleResponse](t, rr)
	assert.Equal(t, int64(2), body.Data.Role.RID)
	store.AssertExpectations(t)
}

func TestGetTeacherRoleMissing(t *testing.T) {
	store := new(MockStore)
	store.On("GetTeacherRoleForSchool", mock.Anything, appconfig.RoleConfig{Bundle: "school", Name: "teacher"}).
		Return(nil, nil)

	rr := serve(t, store, nil, "/api/roles/teacher")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	store.AssertNotCalled(t, "GetRoleByBundleAndName", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetTeacherRoleUsesConfiguredRole(t *testing.T) {
	cfg := appconfig.Default()
	cfg.Roles.Teacher = appconfig.RoleConfig{Bundle: "class", Name: "instructor"}

	store := new(MockStore)
	store.On("GetTeacherRoleForSchool", mock.Anything, cfg.Roles.Teacher).
		Return(&models.Role{RID: 9, GroupBundle: "class", Name: "instructor"}, nil)

	rr := serve(t, store, cfg, "/api/roles/teacher")

	assert.Equal(t, http.StatusOK, rr.Code)
	store.AssertExpectations(t)
}

func TestGetRole(t *testing.T) {
	store := new(MockStore)
	store.On("GetRoleByBundleAndName", mock.Anything, "contest", "judge").
		Return(&models.Role{RID: 4, GroupBundle: "contest", Name: "judge"}, nil)

	rr := serve(t, store, nil, "/api/roles?bundle=contest&name=judge")

	assert.Equal(t, http.StatusOK, rr.Code)
	store.AssertExpectations(t)

	rr = serve(t, new(MockStore), nil, "/api/roles?bundle=contest")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetDeleteLink(t *testing.T) {
	store := new(MockStore)
	store.On("GetMembershipForEntityInGroup", mock.Anything, int64(900), int64(800), models.ContestMatchExact).
		Return(&models.Membership{ID: 106, GID: 800, ETID: 900}, nil)

	rr := serve(t, store, nil, "/api/memberships/delete-link?entry=900&contest=800")

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode[models.LinkResponse](t, rr)
	assert.Equal(t, "group/node/800/admin/people/delete-membership/106", body.Data.Path)
	store.AssertExpectations(t)
}

func TestGetDeleteLinkLegacyMatchNotFound(t *testing.T) {
	cfg := appconfig.Default()
	cfg.Links.ContestMatch = "legacy"

	store := new(MockStore)
	store.On("GetMembershipForEntityInGroup", mock.Anything, int64(900), int64(800), models.ContestMatchLegacy).
		Return(nil, fmt.Errorf("%w: entity 900 in group 800", db.ErrMembershipNotFound))

	rr := serve(t, store, cfg, "/api/memberships/delete-link?entry=900&contest=800")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	store.AssertExpectations(t)
}

func TestGetDeleteLinkBadRequest(t *testing.T) {
	rr := serve(t, new(MockStore), nil, "/api/memberships/delete-link?entry=900")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRenderDeleteLink(t *testing.T) {
	store := new(MockStore)
	store.On("GetMembershipForEntityInGroup", mock.Anything, int64(900), int64(800), models.ContestMatchExact).
		Return(&models.Membership{ID: 106, GID: 800, ETID: 900}, nil)

	rr := serveRequest(t, store, nil, http.MethodPost, "/api/memberships/delete-link",
		`{"og_membership_gid": 900, "field_og_contest_group_ref": [{"raw": {"target_id": 800}}]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode[models.LinkResponse](t, rr)
	assert.Equal(t, "group/node/800/admin/people/delete-membership/106", body.Data.Path)
	store.AssertExpectations(t)
}

func TestRenderDeleteLinkBadRequests(t *testing.T) {
	for name, body := range map[string]string{
		"missing contest": `{"og_membership_gid": 900}`,
		"empty contest":   `{"og_membership_gid": 900, "field_og_contest_group_ref": []}`,
		"malformed body":  `{"og_membership_gid":`,
	} {
		t.Run(name, func(t *testing.T) {
			store := new(MockStore)
			rr := serveRequest(t, store, nil, http.MethodPost, "/api/memberships/delete-link", body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, 0, decode[any](t, rr).Success)
			store.AssertNotCalled(t, "GetMembershipForEntityInGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRenderDeleteLinkMembershipNotFound(t *testing.T) {
	store := new(MockStore)
	store.On("GetMembershipForEntityInGroup", mock.Anything, int64(900), int64(802), models.ContestMatchExact).
		Return(nil, fmt.Errorf("%w: entity 900 in group 802", db.ErrMembershipNotFound))

	rr := serveRequest(t, store, nil, http.MethodPost, "/api/memberships/delete-link",
		`{"og_membership_gid": 900, "field_og_contest_group_ref": [{"raw": {"target_id": 802}}]}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	store.AssertExpectations(t)
}
