package models

import (
	"fmt"
	"strings"
)

// Membership is a row of og_membership.
type Membership struct {
	ID         int64  `json:"id"`
	GID        int64  `json:"gid"`
	GroupType  string `json:"group_type"`
	EntityType string `json:"entity_type"`
	ETID       int64  `json:"etid"`
	State      string `json:"state"`
	FieldName  string `json:"field_name"`
}

// LinkResponse represents a response carrying a rendered path.
type LinkResponse struct {
	Path string `json:"path"`
}

// ContestMatch selects how the contest group id is compared when looking up
// the membership behind a delete link.
type ContestMatch int

const (
	// ContestMatchExact compares og_membership.gid with the contest id.
	ContestMatchExact ContestMatch = iota
	// ContestMatchLegacy compares og_membership.gid with the contest id
	// followed by "=", as the old link renderer did. MySQL casts that string
	// back to the number, so the old renderer found the membership there.
	// PostgreSQL compares the text instead and never matches.
	ContestMatchLegacy
)

func (m ContestMatch) String() string {
	if m == ContestMatchLegacy {
		return "legacy"
	}
	return "exact"
}

// ParseContestMatch accepts "", "exact" and "legacy".
func ParseContestMatch(s string) (ContestMatch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return ContestMatchExact, nil
	case "legacy":
		return ContestMatchLegacy, nil
	}
	return ContestMatchExact, fmt.Errorf("unknown contest match %q", s)
}
