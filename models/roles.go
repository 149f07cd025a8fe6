package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is a row of og_role.
type Role struct {
	RID         int64  `json:"rid"`
	GroupBundle string `json:"group_bundle"`
	Name        string `json:"name"`
}

// RoleResponse represents a response with a single role.
type RoleResponse struct {
	Role Role `json:"role"`
}

// RoleFilter restricts a member lookup by role. RoleIDs selects users holding
// one of the given roles; Members selects plain members, who hold no role row
// in the group. An empty filter applies no role restriction.
//
// Role ids are compared with the decimal text of og_role.rid, so "02" does
// not match rid 2. ParseRoleIDs canonicalises numeric input.
type RoleFilter struct {
	RoleIDs []string
	Members bool
}

// SpecificRoles returns a filter matching any of the given role ids.
func SpecificRoles(ids ...string) RoleFilter {
	return RoleFilter{RoleIDs: ids}
}

// PlainMembers returns a filter matching members without a role.
func PlainMembers() RoleFilter {
	return RoleFilter{Members: true}
}

// WithMembers returns a copy of f that also matches plain members.
func (f RoleFilter) WithMembers() RoleFilter {
	f.Members = true
	return f
}

func (f RoleFilter) IsEmpty() bool {
	return len(f.RoleIDs) == 0 && !f.Members
}

// ParseRoleIDs converts a role id list in which an empty or nil element
// stands for the implicit member role. Numeric ids are trimmed and written
// without leading zeros; anything else is kept as given.
func ParseRoleIDs(rids []*string) RoleFilter {
	var f RoleFilter
	for _, rid := range rids {
		if rid == nil || strings.TrimSpace(*rid) == "" {
			f.Members = true
			continue
		}
		f.RoleIDs = append(f.RoleIDs, canonicalRoleID(*rid))
	}
	return f
}

func canonicalRoleID(rid string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(rid), 10, 64)
	if err != nil {
		return rid
	}
	return strconv.FormatInt(n, 10)
}

// Order selects the row order of a member lookup.
type Order int

const (
	// OrderNone leaves rows in the order the database returns them.
	OrderNone Order = iota
	// OrderGroupAsc sorts rows by group id, ascending.
	OrderGroupAsc
)

func (o Order) String() string {
	switch o {
	case OrderGroupAsc:
		return "gid"
	default:
		return "none"
	}
}

// ParseOrder accepts "", "none" and "gid".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return OrderNone, nil
	case "gid":
		return OrderGroupAsc, nil
	}
	return OrderNone, fmt.Errorf("unknown order %q", s)
}
