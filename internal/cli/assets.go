package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/contentloom/contentloom/pkg/client"
	"github.com/spf13/cobra"
)

var assetKinds = []string{"brands", "personas", "themes"}

func newAssetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage brands, personas and themes",
	}

	cmd.AddCommand(newAssetsListCmd())
	cmd.AddCommand(newAssetsCreateCmd())
	cmd.AddCommand(newAssetsDeleteCmd())

	return cmd
}

func validAssetKind(kind string) error {
	for _, k := range assetKinds {
		if k == kind {
			return nil
		}
	}
	return fmt.Errorf("unknown asset kind %q (want brands, personas or themes)", kind)
}

func newAssetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List your team's assets of one kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if err := validAssetKind(kind); err != nil {
				return err
			}

			ctx := context.Background()
			assets, err := apiClient.ListAssets(ctx, kind)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", kind, err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(assets)
			}

			table := NewTable("ID", "NAME", "DESCRIPTION")
			for _, a := range assets {
				table.AddRow(strconv.FormatInt(a.ID, 10), a.Name, a.Description)
			}
			table.Render()
			return nil
		},
	}
}

func newAssetsCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <kind> <name>",
		Short: "Create an asset, subject to plan limits",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if err := validAssetKind(kind); err != nil {
				return err
			}

			ctx := context.Background()
			a, err := apiClient.CreateAsset(ctx, kind, client.CreateAssetRequest{
				Name:        args[1],
				Description: description,
			})
			if err != nil {
				if apiErr, ok := err.(*client.APIError); ok && apiErr.IsQuotaExceeded() {
					return fmt.Errorf("plan limit reached: %s", apiErr.Message)
				}
				return fmt.Errorf("failed to create asset: %w", err)
			}

			fmt.Printf("Created %s %q (id %d)\n", a.Kind, a.Name, a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "asset description")

	return cmd
}

func newAssetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete an asset by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if err := validAssetKind(kind); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid asset id %q", args[1])
			}

			ctx := context.Background()
			if err := apiClient.DeleteAsset(ctx, kind, id); err != nil {
				return fmt.Errorf("failed to delete asset: %w", err)
			}

			fmt.Printf("Deleted %s %d\n", kind, id)
			return nil
		},
	}
}
