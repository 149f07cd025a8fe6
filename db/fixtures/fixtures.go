// Package fixtures loads users, group memberships and group roles into the
// organic groups tables. It backs the seed command and the database tests.
package fixtures

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

type User struct {
	UID    int64  `gorm:"column:uid;primaryKey;autoIncrement:false" yaml:"uid"`
	Name   string `gorm:"column:name" yaml:"name"`
	Mail   string `gorm:"column:mail" yaml:"mail"`
	Status int    `gorm:"column:status" yaml:"status"`
}

func (User) TableName() string { return "users" }

type Membership struct {
	ID         int64  `gorm:"column:id;primaryKey" yaml:"id"`
	Type       string `gorm:"column:type" yaml:"type"`
	ETID       int64  `gorm:"column:etid" yaml:"etid"`
	EntityType string `gorm:"column:entity_type" yaml:"entity_type"`
	GID        int64  `gorm:"column:gid" yaml:"gid"`
	GroupType  string `gorm:"column:group_type" yaml:"group_type"`
	State      string `gorm:"column:state" yaml:"state"`
	FieldName  string `gorm:"column:field_name" yaml:"field_name"`
}

func (Membership) TableName() string { return "og_membership" }

type Role struct {
	RID         int64  `gorm:"column:rid;primaryKey" yaml:"rid"`
	GID         int64  `gorm:"column:gid" yaml:"gid"`
	GroupType   string `gorm:"column:group_type" yaml:"group_type"`
	GroupBundle string `gorm:"column:group_bundle" yaml:"group_bundle"`
	Name        string `gorm:"column:name" yaml:"name"`
}

func (Role) TableName() string { return "og_role" }

type UserRole struct {
	UID       int64  `gorm:"column:uid;primaryKey;autoIncrement:false" yaml:"uid"`
	RID       int64  `gorm:"column:rid;primaryKey;autoIncrement:false" yaml:"rid"`
	GID       int64  `gorm:"column:gid;primaryKey;autoIncrement:false" yaml:"gid"`
	GroupType string `gorm:"column:group_type;primaryKey" yaml:"group_type"`
}

func (UserRole) TableName() string { return "og_users_roles" }

// Fixture is a set of rows to insert, in dependency order.
type Fixture struct {
	Users       []User       `yaml:"users"`
	Roles       []Role       `yaml:"roles"`
	Memberships []Membership `yaml:"memberships"`
	UserRoles   []UserRole   `yaml:"user_roles"`
}

// Parse decodes a YAML fixture.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("error parsing fixture: %w", err)
	}
	return &f, nil
}

// LoadFile reads and decodes the YAML fixture at path.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading fixture %s: %w", path, err)
	}
	return Parse(data)
}

// Apply inserts every row of f in a single transaction.
func (f *Fixture) Apply(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(f.Users) > 0 {
			if err := tx.Create(&f.Users).Error; err != nil {
				return fmt.Errorf("error inserting users: %w", err)
			}
		}
		if len(f.Roles) > 0 {
			if err := tx.Create(&f.Roles).Error; err != nil {
				return fmt.Errorf("error inserting roles: %w", err)
			}
		}
		if len(f.Memberships) > 0 {
			if err := tx.Create(&f.Memberships).Error; err != nil {
				return fmt.Errorf("error inserting memberships: %w", err)
			}
		}
		if len(f.UserRoles) > 0 {
			if err := tx.Create(&f.UserRoles).Error; err != nil {
				return fmt.Errorf("error inserting user roles: %w", err)
			}
		}
		return nil
	})
}

// Clear empties the organic groups tables.
func Clear(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).
		Exec("TRUNCATE TABLE og_users_roles, og_membership, og_role, users").Error
	if err != nil {
		return fmt.Errorf("error clearing tables: %w", err)
	}
	return nil
}
