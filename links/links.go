// Package links renders the group administration paths shown next to
// contest entries.
package links

import (
	"context"
	"errors"
	"fmt"

	"github.com/bbenesh/Snippets/models"
)

var ErrMissingContest = errors.New("entry has no contest group reference")

// FieldItem is one item of an entity reference field as exposed to views.
type FieldItem struct {
	Raw struct {
		TargetID int64 `json:"target_id"`
	} `json:"raw"`
}

// Values is the row a delete link is rendered for. OGMembershipGID holds the
// entry node id and ContestGroupRef references the contest group.
type Values struct {
	OGMembershipGID int64       `json:"og_membership_gid"`
	ContestGroupRef []FieldItem `json:"field_og_contest_group_ref"`
}

// ContestID returns the contest referenced by the first field item.
func (v Values) ContestID() (int64, error) {
	if len(v.ContestGroupRef) == 0 || v.ContestGroupRef[0].Raw.TargetID == 0 {
		return 0, ErrMissingContest
	}
	return v.ContestGroupRef[0].Raw.TargetID, nil
}

// MembershipFinder looks up the membership of an entity in a group.
type MembershipFinder interface {
	GetMembershipForEntityInGroup(ctx context.Context, etid, gid int64, match models.ContestMatch) (*models.Membership, error)
}

// DeleteMembershipPath is the admin path removing membership from contest.
func DeleteMembershipPath(contestID, membershipID int64) string {
	return fmt.Sprintf("group/node/%d/admin/people/delete-membership/%d", contestID, membershipID)
}

// Renderer builds delete-membership links for contest entries.
type Renderer struct {
	Finder MembershipFinder
	Match  models.ContestMatch
}

// BuildDeleteMembershipLink returns the path removing entry from contest.
func (r *Renderer) BuildDeleteMembershipLink(ctx context.Context, entryID, contestID int64) (string, error) {
	m, err := r.Finder.GetMembershipForEntityInGroup(ctx, entryID, contestID, r.Match)
	if err != nil {
		return "", err
	}
	return DeleteMembershipPath(contestID, m.ID), nil
}

// Render returns the delete-membership path for a views row.
func (r *Renderer) Render(ctx context.Context, v Values) (string, error) {
	contestID, err := v.ContestID()
	if err != nil {
		return "", err
	}
	return r.BuildDeleteMembershipLink(ctx, v.OGMembershipGID, contestID)
}
