// Package config provides configuration file parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/skessler/dbmask/internal/models"
	"github.com/spf13/viper"
)

// Parser handles configuration file parsing.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	v := viper.New()
	v.SetConfigType("yaml")
	return &Parser{v: v}
}

// LoadFile loads configuration from a file path.
func (p *Parser) LoadFile(path string) (*models.Config, error) {
	p.v.SetConfigFile(path)

	if err := p.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return p.parse()
}

// LoadReader loads configuration from a string (useful for testing).
func (p *Parser) LoadReader(content string) (*models.Config, error) {
	if err := p.v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return p.parse()
}

func (p *Parser) parse() (*models.Config, error) {
	cfg := &models.Config{
		Engine:   models.Engine(p.v.GetString("database.engine")),
		Host:     p.v.GetString("database.host"),
		Port:     p.v.GetString("database.port"),
		User:     p.v.GetString("database.user"),
		Password: p.expandEnv(p.v.GetString("database.password")),
		Name:     p.v.GetString("database.name"),
		DumpOpts: p.v.GetString("database.dump_opts"),
		CmdOpts:  p.v.GetString("database.cmd_opts"),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// expandEnv expands environment variables in the format ${VAR} or $VAR.
func (p *Parser) expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Validate performs validation on the loaded configuration.
func Validate(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.Engine == "" {
		return fmt.Errorf("database.engine is required")
	}

	switch cfg.Engine {
	case models.EngineMySQL, models.EnginePostgres:
	default:
		return fmt.Errorf("database.engine must be one of: mysql, postgres")
	}

	if cfg.Name == "" {
		return fmt.Errorf("database.name is required")
	}

	return nil
}
