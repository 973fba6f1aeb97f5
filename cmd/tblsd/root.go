package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/tbls/internal/config"
)

const (
	flagHome    = "home"
	flagEnvFile = "env-file"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tblsd",
		Short: "Two-party blinded threshold BLS signing daemon",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString(flagEnvFile)
			if envFile == "" {
				return config.LoadEnvFiles()
			}
			return config.LoadEnvFiles(envFile)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagHome, defaultHome(), "directory holding config/tblsd_config.json")
	rootCmd.PersistentFlags().String(flagEnvFile, "", ".env file to load (default ./.env when present)")

	InitRootCmd(rootCmd)

	return rootCmd
}

func InitRootCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(keygenCmd())
	rootCmd.AddCommand(demoCmd())
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tblsd"
	}
	return filepath.Join(home, ".tblsd")
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	home, _ := cmd.Flags().GetString(flagHome)
	return config.LoadOrDefault(home)
}
