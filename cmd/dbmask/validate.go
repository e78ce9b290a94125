package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long:  `Validate the configuration file without executing any client binaries.`,
	RunE:  validateConfig,
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Configuration is valid!")
	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  Engine: %s\n", cfg.Engine)
	fmt.Printf("  Database: %s\n", cfg.Name)
	if cfg.Host != "" {
		fmt.Printf("  Host: %s\n", cfg.Host)
	}
	if cfg.Port != "" {
		fmt.Printf("  Port: %s\n", cfg.Port)
	}
	if cfg.User != "" {
		fmt.Printf("  User: %s\n", cfg.User)
	}
	fmt.Printf("  Password: %v\n", passwordSummary(cfg.Password))
	if cfg.DumpOpts != "" {
		fmt.Printf("  Dump options: %s\n", cfg.DumpOpts)
	}
	if cfg.CmdOpts != "" {
		fmt.Printf("  Command options: %s\n", cfg.CmdOpts)
	}

	return nil
}

func passwordSummary(password string) string {
	if password == "" {
		return "(not configured)"
	}
	return "(configured)"
}
