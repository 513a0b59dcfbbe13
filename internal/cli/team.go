package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/contentloom/contentloom/pkg/client"
	"github.com/spf13/cobra"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage your team",
	}

	cmd.AddCommand(newTeamMembersCmd())
	cmd.AddCommand(newTeamAddCmd())

	return cmd
}

func newTeamMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			members, err := apiClient.ListMembers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(members)
			}

			table := NewTable("ID", "EMAIL", "NAME", "ROLE")
			for _, m := range members {
				table.AddRow(strconv.FormatInt(m.ID, 10), m.Email, m.FullName, m.Role)
			}
			table.Render()
			return nil
		},
	}
}

func newTeamAddCmd() *cobra.Command {
	var email, password, fullName string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member to your team, subject to plan limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
			}

			ctx := context.Background()
			member, err := apiClient.AddMember(ctx, client.AddMemberRequest{
				Email:    email,
				Password: password,
				FullName: fullName,
			})
			if err != nil {
				if apiErr, ok := err.(*client.APIError); ok && apiErr.IsQuotaExceeded() {
					return fmt.Errorf("member limit reached: %s", apiErr.Message)
				}
				return fmt.Errorf("failed to add member: %w", err)
			}

			fmt.Printf("Added %s (id %d)\n", member.Email, member.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&fullName, "name", "", "full name")

	return cmd
}
