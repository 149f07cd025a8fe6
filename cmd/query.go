package cmd

import (
	"errors"
	"fmt"

	"github.com/bbenesh/Snippets/links"
	"github.com/bbenesh/Snippets/models"
	"github.com/spf13/cobra"
)

var (
	memberGID    int64
	memberRIDs   []string
	memberPlain  bool
	memberPrefix string
	memberOrder  string

	roleBundle string
	roleName   string

	linkEntry   int64
	linkContest int64
	linkMatch   string
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List users by group, role and name prefix",
	Long: `List users holding a group membership. Repeat --rid to match several
roles; --rid "" or --member also matches plain members.`,
	RunE: func(cmd *cobra.Command, args []string) error {

		commonSetUp()
		defer ogDB.Close()

		q, err := memberQueryFromFlags(cmd)
		if err != nil {
			return err
		}

		members, err := ogDB.GetUsersByGroupAndRoles(cmd.Context(), q)
		if err != nil {
			return err
		}
		return printJSON(cmd, models.MembersResponse{Members: members})
	},
}

func memberQueryFromFlags(cmd *cobra.Command) (models.MemberQuery, error) {
	rids := make([]*string, 0, len(memberRIDs))
	for i := range memberRIDs {
		rids = append(rids, &memberRIDs[i])
	}

	q := models.MemberQuery{
		GroupID:    memberGID,
		Roles:      models.ParseRoleIDs(rids),
		NamePrefix: memberPrefix,
		Order:      appCfg.MembersOrder(),
	}
	if memberPlain {
		q.Roles = q.Roles.WithMembers()
	}
	if cmd.Flags().Changed("order") {
		o, err := models.ParseOrder(memberOrder)
		if err != nil {
			return q, err
		}
		q.Order = o
	}
	return q, nil
}

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Look up a group role by bundle and name",
	Long:  `Look up a group role. Without flags the configured teacher role is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {

		commonSetUp()
		defer ogDB.Close()

		teacher := appCfg.Roles.Teacher
		bundle, name := teacher.Bundle, teacher.Name
		if roleBundle != "" {
			bundle = roleBundle
		}
		if roleName != "" {
			name = roleName
		}

		var role *models.Role
		var err error
		if bundle == teacher.Bundle && name == teacher.Name {
			role, err = ogDB.GetTeacherRoleForSchool(cmd.Context(), teacher)
		} else {
			role, err = ogDB.GetRoleByBundleAndName(cmd.Context(), bundle, name)
		}
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("role %s not found on %s groups", name, bundle)
		}
		return printJSON(cmd, models.RoleResponse{Role: *role})
	},
}

var deleteLinkCmd = &cobra.Command{
	Use:   "delete-link",
	Short: "Print the path removing a contest entry from its contest",
	RunE: func(cmd *cobra.Command, args []string) error {
		if linkEntry <= 0 || linkContest <= 0 {
			return errors.New("--entry and --contest are required")
		}

		commonSetUp()
		defer ogDB.Close()

		match := appCfg.ContestMatch()
		if cmd.Flags().Changed("match") {
			m, err := models.ParseContestMatch(linkMatch)
			if err != nil {
				return err
			}
			match = m
		}

		r := &links.Renderer{Finder: ogDB, Match: match}
		path, err := r.BuildDeleteMembershipLink(cmd.Context(), linkEntry, linkContest)
		if err != nil {
			return err
		}
		return printJSON(cmd, models.LinkResponse{Path: path})
	},
}

func init() {
	rootCmd.AddCommand(membersCmd, roleCmd, deleteLinkCmd)

	membersCmd.Flags().Int64Var(&memberGID, "gid", 0, "group id, 0 for every group")
	membersCmd.Flags().StringArrayVar(&memberRIDs, "rid", nil, "role id to match, empty for plain members")
	membersCmd.Flags().BoolVar(&memberPlain, "member", false, "also match plain members")
	membersCmd.Flags().StringVar(&memberPrefix, "q", "", "user name prefix, caps the result at 10 rows")
	membersCmd.Flags().StringVar(&memberOrder, "order", "none", "row order: none or gid")

	roleCmd.Flags().StringVar(&roleBundle, "bundle", "", "group bundle the role is scoped to")
	roleCmd.Flags().StringVar(&roleName, "name", "", "role name")

	deleteLinkCmd.Flags().Int64Var(&linkEntry, "entry", 0, "entry node id")
	deleteLinkCmd.Flags().Int64Var(&linkContest, "contest", 0, "contest group id")
	deleteLinkCmd.Flags().StringVar(&linkMatch, "match", "exact", "contest match: exact or legacy")
}
