package commands

import (
	"context"
	"fmt"
	"os"

	"library-catalog/internal/data/repository"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/database"
	"library-catalog/pkg/storage"
	"library-catalog/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	dbURL   string
	verbose bool

	config *utils.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "libraryctl",
	Short: "Administration tool for the library catalog",
	Long: `libraryctl manages the library catalog database outside the web application.

Commands:
  migrate   - Apply or roll back schema migrations
  category  - Manage book categories
  staff     - Create staff accounts and grant or revoke staff access
  sessions  - Purge expired and revoked sessions`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = utils.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to the DB_* settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func connectionString() string {
	if dbURL != "" {
		return dbURL
	}
	return database.DSN(config.Database)
}

// openServices connects to the database and builds the service layer.
// The returned func releases the connection.
func openServices(ctx context.Context) (*usecase.Service, func(), error) {
	db, err := database.Connect(ctx, connectionString(), config.Database.MaxConns)
	if err != nil {
		return nil, nil, err
	}

	repos := repository.NewRepository(db, logger)
	covers := storage.NewLocalStorage(config.Storage.MediaRoot, config.Storage.MediaURL, logger)
	service := usecase.NewService(repos, config, covers, logger)

	return service, db.Close, nil
}

// openRepositories is used by maintenance commands that have no service operation
func openRepositories(ctx context.Context) (*repository.Repository, func(), error) {
	db, err := database.Connect(ctx, connectionString(), config.Database.MaxConns)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewRepository(db, logger), db.Close, nil
}
