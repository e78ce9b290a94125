package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/skessler/dbmask/internal/services/database"
	"github.com/spf13/cobra"
)

var (
	execScoped bool
	execSingle bool
)

var execCmd = &cobra.Command{
	Use:   "exec [statement...]",
	Short: "Execute SQL statements through the client binary",
	Long: `Execute one or more SQL statements through the backend's client
binary (mysql or psql). Each statement runs as its own invocation and the
captured output is printed in order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().BoolVar(&execScoped, "db", false, "scope statements to the configured database")
	execCmd.Flags().BoolVar(&execSingle, "single", false, "return a single unadorned result (one statement only)")
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if execSingle && len(args) != 1 {
		return fmt.Errorf("--single requires exactly one statement")
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner, err := database.NewCmdRunner(cfg.Engine, log.Logger, cfg.CmdSpec())
	if err != nil {
		log.Error().Err(err).Msg("failed to create command runner")
		return err
	}

	var results []string
	switch {
	case execSingle:
		result, err := runner.SingleResult(ctx, args[0])
		if err != nil {
			log.Error().Err(err).Msg("statement failed")
			return err
		}
		results = []string{result}
	case execScoped:
		results, err = runner.DBExecuteMany(ctx, args)
		if err != nil {
			log.Error().Err(err).Msg("statement failed")
			return err
		}
	default:
		results, err = runner.ExecuteMany(ctx, args)
		if err != nil {
			log.Error().Err(err).Msg("statement failed")
			return err
		}
	}

	for _, result := range results {
		fmt.Print(result)
	}

	log.Info().Int("statements", len(args)).Msg("execution completed")
	return nil
}
