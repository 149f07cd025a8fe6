package models

// MemberRecord is one user/membership/role row. Role columns are nil for
// plain members, who have no row in og_users_roles.
type MemberRecord struct {
	UID             int64   `json:"uid"`
	Name            string  `json:"name"`
	Mail            string  `json:"mail"`
	Status          int     `json:"status"`
	GID             int64   `json:"gid"`
	GroupType       string  `json:"group_type"`
	GroupBundle     *string `json:"group_bundle"`
	RID             *string `json:"rid"`
	RoleName        *string `json:"role_name"`
	MembershipID    int64   `json:"membership_id"`
	MembershipState string  `json:"membership_state"`
	MembershipField string  `json:"membership_field"`
}

// MemberQuery narrows a member lookup. The zero value returns every user
// membership in every group.
type MemberQuery struct {
	GroupID    int64
	Roles      RoleFilter
	NamePrefix string
	Order      Order
}

// MembersResponse holds a list of member rows.
type MembersResponse struct {
	Members []MemberRecord `json:"members"`
}
