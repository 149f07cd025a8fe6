package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bbenesh/Snippets/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SearchLimit caps the rows returned by a member lookup with a name prefix.
const SearchLimit = 10

const memberColumns = "u.uid, u.name, u.mail, u.status, ogm.gid, ogm.group_type, " +
	"ogr.group_bundle, ogr.rid, ogr.name AS role_name, " +
	"ogm.id AS membership_id, ogm.state AS membership_state, ogm.field_name AS membership_field"

// og_role.rid is an integer column; role ids are compared as text so the
// empty member marker can be matched as well.
const roleIDText = "CAST(ogr.rid AS TEXT)"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match itself literally in a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// membersQuery narrows the user/membership/role join by the filters of q:
//
//	SELECT ... FROM users u
//	INNER JOIN og_membership ogm ON ogm.etid = u.uid
//	LEFT JOIN og_users_roles ogur ON ogm.etid = ogur.uid AND ogm.gid = ogur.gid
//	LEFT JOIN og_role ogr ON ogur.rid = ogr.rid
//	WHERE ogm.entity_type = 'user'
func membersQuery(db *gorm.DB, q models.MemberQuery) *gorm.DB {
	tx := db.Table("users u").
		Select(memberColumns).
		Joins("INNER JOIN og_membership ogm ON ogm.etid = u.uid").
		Joins("LEFT JOIN og_users_roles ogur ON ogm.etid = ogur.uid AND ogm.gid = ogur.gid").
		Joins("LEFT JOIN og_role ogr ON ogur.rid = ogr.rid").
		Where("ogm.entity_type = ?", "user")

	if q.GroupID != 0 {
		tx = tx.Where("ogm.gid = ?", q.GroupID)
	}

	if !q.Roles.IsEmpty() {
		cond := db.Session(&gorm.Session{NewDB: true})
		switch {
		case len(q.Roles.RoleIDs) > 0 && q.Roles.Members:
			tx = tx.Where(cond.Where(roleIDText+" = ANY(?)", pq.Array(q.Roles.RoleIDs)).Or("ogr.rid IS NULL"))
		case len(q.Roles.RoleIDs) > 0:
			tx = tx.Where(roleIDText+" = ANY(?)", pq.Array(q.Roles.RoleIDs))
		default:
			// Members hold no role row, so their role id comes back NULL
			tx = tx.Where(cond.Where(roleIDText+" = ?", "").Or("ogr.rid IS NULL"))
		}
	}

	if q.NamePrefix != "" {
		tx = tx.Where("u.name ILIKE ?", escapeLike(q.NamePrefix)+"%").Limit(SearchLimit)
	}

	if q.Order == models.OrderGroupAsc {
		tx = tx.Order("ogm.gid ASC")
	}

	return tx
}

// GetUsersByGroupAndRoles retrieves the users holding a membership, narrowed
// by group, role and user name prefix.
func (o *OGDB) GetUsersByGroupAndRoles(ctx context.Context, q models.MemberQuery) ([]models.MemberRecord, error) {
	o.Log.Debug().
		Int64("gid", q.GroupID).
		Strs("rids", q.Roles.RoleIDs).
		Bool("members", q.Roles.Members).
		Str("prefix", q.NamePrefix).
		Msg("looking up group members")

	rows, err := membersQuery(o.Gorm.WithContext(ctx), q).Rows()
	if err != nil {
		return nil, fmt.Errorf("error retrieving group members: %w", err)
	}
	defer rows.Close()

	members := []models.MemberRecord{}
	for rows.Next() {
		var m models.MemberRecord
		var bundle, rid, roleName sql.NullString
		if err := rows.Scan(
			&m.UID,
			&m.Name,
			&m.Mail,
			&m.Status,
			&m.GID,
			&m.GroupType,
			&bundle,
			&rid,
			&roleName,
			&m.MembershipID,
			&m.MembershipState,
			&m.MembershipField); err != nil {
			return nil, fmt.Errorf("error scanning group member: %w", err)
		}
		m.GroupBundle = nullString(bundle)
		m.RID = nullString(rid)
		m.RoleName = nullString(roleName)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error retrieving group members: %w", err)
	}

	return members, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
