package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentloom/contentloom/pkg/client"
	"github.com/spf13/cobra"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Generate marketing content",
	}

	cmd.AddCommand(newContentGenerateCmd("quick", "Generate a short piece of marketing content", apiQuick))
	cmd.AddCommand(newContentGenerateCmd("suggest", "Generate tailored content suggestions", apiSuggest))
	cmd.AddCommand(newContentGenerateCmd("plan", "Generate a structured content plan", apiPlan))
	cmd.AddCommand(newContentGenerateCmd("review", "Review a draft and suggest improvements", apiReview))

	return cmd
}

func apiQuick(ctx context.Context, prompt string) (*client.ContentResult, error) {
	return apiClient.QuickContent(ctx, prompt)
}

func apiSuggest(ctx context.Context, prompt string) (*client.ContentResult, error) {
	return apiClient.ContentSuggestions(ctx, prompt)
}

func apiPlan(ctx context.Context, prompt string) (*client.ContentResult, error) {
	return apiClient.ContentPlan(ctx, prompt)
}

func apiReview(ctx context.Context, prompt string) (*client.ContentResult, error) {
	return apiClient.ContentReview(ctx, prompt)
}

func newContentGenerateCmd(use, short string, op func(context.Context, string) (*client.ContentResult, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <prompt>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")

			ctx := context.Background()
			res, err := op(ctx, prompt)
			if err != nil {
				if apiErr, ok := err.(*client.APIError); ok && apiErr.IsQuotaExceeded() {
					return fmt.Errorf("quota exceeded: %s", apiErr.Message)
				}
				return fmt.Errorf("generation failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(res)
			}

			fmt.Println(res.Text)
			if res.Warning != "" {
				fmt.Printf("\nWarning: %s\n", res.Warning)
			}
			if len(res.Credits) > 0 {
				fmt.Println("\nRemaining credits:")
				for kind, n := range res.Credits {
					fmt.Printf("  %s: %s\n", kind, formatLimit(n))
				}
			}
			return nil
		},
	}
}
