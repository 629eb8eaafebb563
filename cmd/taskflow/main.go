package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/taskflow/internal/cli"
	"github.com/terraincognita07/taskflow/internal/config"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "taskflow",
		Short:         "TaskFlow - recurring task checklists for small teams",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a TOML config file")

	loadConfig := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	rootCmd.AddCommand(serveCmd(loadConfig))
	rootCmd.AddCommand(seedCmd(loadConfig))
	rootCmd.AddCommand(generateCmd(loadConfig))
	rootCmd.AddCommand(resetPasswordCmd(loadConfig))
	return rootCmd
}

type configLoader func() (*config.Config, error)

func seedCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the Acme Kitchens demo tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cli.RunSeedCommand(cfg.DBPath, time.Now(), cmd.OutOrStdout())
		},
	}
}

func generateCmd(loadConfig configLoader) *cobra.Command {
	var (
		companyID uint
		date      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create a company's task instances for one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cli.RunGenerateCommand(cfg.DBPath, companyID, date, time.Now(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().UintVar(&companyID, "company", 0, "Company ID")
	cmd.Flags().StringVar(&date, "date", "", "Day as YYYY-MM-DD (default today, UTC)")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func resetPasswordCmd(loadConfig configLoader) *cobra.Command {
	var (
		email  string
		prompt bool
	)

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a user's password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cli.RunResetPasswordCommand(cfg.DBPath, email, prompt, os.Stdin, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "Choose the new password interactively instead of generating one")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
