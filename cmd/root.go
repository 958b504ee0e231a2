package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Vendor product feed sync with local image mirroring",
		Long: `Catalog ingests a vendor product feed (CSV), normalizes each row into a
catalog item, mirrors product images to local storage with retry and proxy
fallback strategies, and writes the in-stock catalog as JSON for the
storefront.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
