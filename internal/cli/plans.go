package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newPlansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Plan and billing commands",
	}

	cmd.AddCommand(newPlansListCmd())
	cmd.AddCommand(newPlansTrialCmd())
	cmd.AddCommand(newPlansCheckoutCmd())
	cmd.AddCommand(newPlansActivateCmd())

	return cmd
}

func newPlansListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available plan tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plans, err := apiClient.ListPlans(ctx)
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(plans)
			}

			table := NewTable("ID", "NAME", "PRICE", "TRIAL", "MEMBERS", "BRANDS", "QUICK", "SUGGESTIONS", "PLANS", "REVIEWS")
			for _, p := range plans {
				table.AddRow(
					p.ID,
					p.Name,
					formatPrice(p.PriceCents),
					fmt.Sprintf("%dd", p.TrialDays),
					formatLimit(p.MaxMembers),
					formatLimit(p.MaxBrands),
					formatLimit(p.QuickContentCreations),
					formatLimit(p.CustomContentSuggestions),
					formatLimit(p.ContentPlans),
					formatLimit(p.ContentReviews),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newPlansTrialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trial <plan-id>",
		Short: "Start a trial of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sub, err := apiClient.StartTrial(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to start trial: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(sub)
			}

			fmt.Printf("Trial of %s started", sub.PlanID)
			if sub.TrialEndDate != "" {
				fmt.Printf(", ends %s", sub.TrialEndDate)
			}
			fmt.Println()
			return nil
		},
	}
}

func newPlansCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <plan-id>",
		Short: "Open a payment checkout session for a paid plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := apiClient.CreateCheckout(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to create checkout session: %w", err)
			}

			fmt.Println("Open this URL to complete payment:")
			fmt.Println(sess.URL)
			return nil
		},
	}
}

func newPlansActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <plan-id>",
		Short: "Activate a plan after a completed checkout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sub, err := apiClient.ActivatePlan(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to activate plan: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(sub)
			}

			fmt.Printf("Plan %s is now active\n", sub.PlanID)
			return nil
		},
	}
}
