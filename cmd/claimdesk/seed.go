package claimdesk

import (
	"fmt"
	"os"

	"github.com/avolkov/claimdesk/db"
	"github.com/spf13/cobra"
)

// seedCmd represents the seed command.
var seedCmd = &cobra.Command{
	Use:              "seed",
	Short:            "Populate a database with sample records",
	Long:             `Create a sqlite database filled with sample forms, audit entries and reports for local development.`,
	PersistentPreRun: bindFlags,
	RunE: func(_ *cobra.Command, _ []string) error {
		if _, err := os.Stat(storagePath); err == nil && !force {
			return fmt.Errorf("output file %s already exists, use --force to seed into it", storagePath)
		}

		storage, err := db.ConnectDB(storagePath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}
		defer storage.Close()

		return db.Seed(storage, entries)
	},
}

var (
	entries int
	force   bool
)

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVarP(
		&storagePath,
		"storage",
		"s",
		"./claimdesk.sqlite",
		"Path to the sqlite database")

	seedCmd.Flags().IntVar(&entries,
		"entries",
		500,
		"How many audit entries to generate")

	seedCmd.Flags().BoolVar(&force,
		"force",
		false,
		"Seed into an existing database file")
}
