package services

import (
	"context"

	"github.com/bbenesh/Snippets/internal/appconfig"
	"github.com/bbenesh/Snippets/links"
	"github.com/bbenesh/Snippets/models"
)

// Store is the database surface the handlers need.
type Store interface {
	GetUsersByGroupAndRoles(ctx context.Context, q models.MemberQuery) ([]models.MemberRecord, error)
	GetRoleByBundleAndName(ctx context.Context, bundle, name string) (*models.Role, error)
	GetTeacherRoleForSchool(ctx context.Context, teacher appconfig.RoleConfig) (*models.Role, error)
	GetMembershipForEntityInGroup(ctx context.Context, etid, gid int64, match models.ContestMatch) (*models.Membership, error)
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config *appconfig.Config
	DB     Store
	Links  *links.Renderer
}

func NewService(cfg *appconfig.Config, store Store) *Service {
	return &Service{
		Config: cfg,
		DB:     store,
		Links:  &links.Renderer{Finder: store, Match: cfg.ContestMatch()},
	}
}
