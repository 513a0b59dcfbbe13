package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show subscription status for your team",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			status, err := apiClient.SubscriptionStatus(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve subscription status: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(status)
			}

			fmt.Println("ContentLoom Subscription")
			fmt.Println(strings.Repeat("=", 40))

			switch {
			case status.IsTrial:
				fmt.Printf("  Status:    trial (%d days remaining)\n", status.DaysRemaining)
			case status.IsExpired:
				fmt.Println("  Status:    trial expired")
			case status.IsActive:
				fmt.Println("  Status:    active")
			default:
				fmt.Println("  Status:    inactive")
			}

			if status.CanAccess {
				fmt.Println("  Access:    granted")
			} else {
				fmt.Println("  Access:    blocked, upgrade to continue")
			}

			if p := status.Plan; p != nil {
				fmt.Printf("  Plan:      %s (%s)\n", p.Name, formatPrice(p.PriceCents))
				fmt.Printf("  Members:   up to %s\n", formatLimit(p.MaxMembers))
				fmt.Printf("  Brands:    up to %s\n", formatLimit(p.MaxBrands))
				fmt.Printf("  Personas:  up to %s\n", formatLimit(p.MaxPersonas))
				fmt.Printf("  Themes:    up to %s\n", formatLimit(p.MaxThemes))
			}

			return nil
		},
	}
}
