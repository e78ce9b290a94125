package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/skessler/dbmask/internal/config"
	"github.com/skessler/dbmask/internal/models"
	"github.com/skessler/dbmask/internal/services/database"
	"github.com/spf13/cobra"
)

var dumpOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Stream a database dump",
	Long: `Stream a dump of the configured database through the backend's dump
utility (mysqldump or pg_dump) to a file, or to stdout when no output file
is given.`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "output file (default stdout)")
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner, err := database.NewDumpRunner(cfg.Engine, log.Logger, cfg.DumpSpec())
	if err != nil {
		log.Error().Err(err).Msg("failed to create dump runner")
		return err
	}

	stream, err := runner.OpenDumper(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open dump stream")
		return err
	}

	out := io.Writer(os.Stdout)
	var outFile *os.File
	if dumpOutput != "" {
		f, err := os.Create(dumpOutput)
		if err != nil {
			_ = stream.Close()
			log.Error().Err(err).Str("output", dumpOutput).Msg("failed to create output file")
			return err
		}
		outFile = f
		out = f
	}

	written, err := io.Copy(out, stream)
	closeErr := stream.Close()
	if err != nil {
		if outFile != nil {
			_ = outFile.Close()
		}
		log.Error().Err(err).Msg("dump stream failed")
		return err
	}
	if closeErr != nil {
		if outFile != nil {
			_ = outFile.Close()
		}
		log.Error().Err(closeErr).Msg("dump process failed")
		return closeErr
	}
	if outFile != nil {
		// A close-time flush failure means an incomplete dump.
		if err := outFile.Close(); err != nil {
			log.Error().Err(err).Str("output", dumpOutput).Msg("failed to close output file")
			return err
		}
	}

	log.Info().
		Str("database", cfg.Name).
		Int64("bytes", written).
		Msg("dump completed")
	return nil
}

// loadConfig loads and validates the configuration from the --config flag.
func loadConfig(cmd *cobra.Command) (*models.Config, error) {
	if configFile == "" {
		log.Error().Msg("config file is required")
		_ = cmd.Help()
		return nil, fmt.Errorf("config file is required")
	}

	parser := config.NewParser()
	cfg, err := parser.LoadFile(configFile)
	if err != nil {
		log.Error().Err(err).Str("file", configFile).Msg("failed to load config")
		return nil, err
	}

	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
		cancel()
	}()

	return ctx, cancel
}
