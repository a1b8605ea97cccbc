package claimdesk

import (
	"fmt"
	"log/slog"

	"github.com/avolkov/claimdesk/db"
	"github.com/avolkov/claimdesk/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:              "serve",
	Short:            "Run the administration web interface",
	Long:             `Serve the forms, audit log and reports views against a sqlite database.`,
	PersistentPreRun: bindFlags,
	RunE: func(_ *cobra.Command, _ []string) error {
		slog.Debug("Resolved configuration",
			"config", viper.ConfigFileUsed(),
			"storage", storagePath,
			"port", port)

		storage, err := db.ConnectDB(storagePath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}
		defer storage.Close()

		web.StartServer(port, storage, dev)

		return nil
	},
}

var (
	storagePath string
	port        int
	dev         bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080,
		"Port on which server should be watching")

	serveCmd.Flags().StringVarP(
		&storagePath,
		"storage",
		"s",
		"./claimdesk.sqlite",
		"Path to the sqlite database")

	serveCmd.Flags().BoolVar(&dev,
		"dev",
		false,
		"Enable developer mode")
}
