package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bbenesh/Snippets/internal/appconfig"
	"github.com/bbenesh/Snippets/models"
	"gorm.io/gorm"
)

func roleQuery(db *gorm.DB, bundle, name string) *gorm.DB {
	return db.Table("og_role ogr").
		Select("ogr.rid, ogr.group_bundle, ogr.name").
		Where("ogr.group_bundle = ?", bundle).
		Where("ogr.name = ?", name).
		Order("ogr.rid ASC").
		Limit(1)
}

// GetRoleByBundleAndName retrieves the role called name on groups of the
// given bundle. It returns nil and no error when there is no such role.
func (o *OGDB) GetRoleByBundleAndName(ctx context.Context, bundle, name string) (*models.Role, error) {
	row := roleQuery(o.Gorm.WithContext(ctx), bundle, name).Row()

	var role models.Role
	if err := row.Scan(&role.RID, &role.GroupBundle, &role.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving role %s/%s: %w", bundle, name, err)
	}

	return &role, nil
}

// GetTeacherRoleForSchool retrieves the teacher role of school groups, as
// named by the roles.teacher config section.
func (o *OGDB) GetTeacherRoleForSchool(ctx context.Context, teacher appconfig.RoleConfig) (*models.Role, error) {
	return o.GetRoleByBundleAndName(ctx, teacher.Bundle, teacher.Name)
}
