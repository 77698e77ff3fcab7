package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/config"
	"github.com/BruksfildServices01/medical-scheduler/internal/db"
	"github.com/BruksfildServices01/medical-scheduler/internal/logging"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
	ucAccount "github.com/BruksfildServices01/medical-scheduler/internal/usecase/account"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "api",
		Short:         "Medical appointment scheduling API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and the root logger shared by every
// subcommand.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logging.New(cfg.Env, cfg.LogLevel), nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			return runServer(cfg, logger)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			// Open migrates relational schemas and ensures Mongo indexes.
			stores, err := db.Open(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			logger.Info().Str("driver", cfg.DBDriver).Msg("migrations applied")
			return stores.Close(context.Background())
		},
	}
}

func createAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			stores, err := db.Open(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer stores.Close(context.Background())

			auditDispatcher := audit.NewDispatcher(stores.Audit, logger, audit.DefaultQueueSize)
			defer auditDispatcher.Close()

			u, err := ucAccount.NewRegister(stores.Users, auditDispatcher, nil).Execute(cmd.Context(), ucAccount.RegisterInput{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     models.RoleAdmin,
			})
			if err != nil {
				return err
			}

			logger.Info().Str("user_id", u.ID).Str("email", u.Email).Msg("administrator created")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password (min 6 characters)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
