package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/bbenesh/Snippets/models"
	"gorm.io/gorm"
)

var ErrMembershipNotFound = errors.New("membership not found")

func membershipQuery(db *gorm.DB, etid, gid int64, match models.ContestMatch) *gorm.DB {
	tx := db.Table("og_membership ogm").
		Select("ogm.id, ogm.gid, ogm.group_type, ogm.entity_type, ogm.etid, ogm.state, ogm.field_name").
		Where("ogm.etid = ?", etid)

	switch match {
	case models.ContestMatchLegacy:
		// MySQL casts '<gid>=' back to <gid>; PostgreSQL compares the text
		tx = tx.Where("CAST(ogm.gid AS TEXT) = ?", strconv.FormatInt(gid, 10)+"=")
	default:
		tx = tx.Where("ogm.gid = ?", gid)
	}

	return tx.Order("ogm.id ASC").Limit(1)
}

// GetMembershipForEntityInGroup retrieves the first membership of entity etid
// in group gid. ErrMembershipNotFound is returned when there is none.
func (o *OGDB) GetMembershipForEntityInGroup(ctx context.Context, etid, gid int64, match models.ContestMatch) (*models.Membership, error) {
	row := membershipQuery(o.Gorm.WithContext(ctx), etid, gid, match).Row()

	var m models.Membership
	if err := row.Scan(
		&m.ID,
		&m.GID,
		&m.GroupType,
		&m.EntityType,
		&m.ETID,
		&m.State,
		&m.FieldName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: entity %d in group %d", ErrMembershipNotFound, etid, gid)
		}
		return nil, fmt.Errorf("error retrieving membership: %w", err)
	}

	return &m, nil
}
