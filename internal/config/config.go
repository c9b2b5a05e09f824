package config

import (
	"os"

	"github.com/cockroachdb/errors"
	goFlags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const (
	ModeHTTP = "http"
	ModeMCP  = "mcp"
)

// Config holds server settings. Each flag falls back to its environment
// variable, then to the default.
type Config struct {
	Addr         string `long:"addr"           env:"TOONBENCH_ADDR"           default:":3000"   description:"HTTP listen address"`
	Mode         string `long:"mode"           env:"TOONBENCH_MODE"           default:"http"    choice:"http" choice:"mcp" description:"Transport to serve"`
	Debug        bool   `long:"debug"          env:"TOONBENCH_DEBUG"                             description:"Enable development logging"`
	SeedsDir     string `long:"seeds-dir"      env:"TOONBENCH_SEEDS_DIR"      default:"seeds"   description:"Directory of scripted formats to load on start"`
	MaxBodyBytes int64  `long:"max-body-bytes" env:"TOONBENCH_MAX_BODY_BYTES" default:"1048576" description:"Maximum accepted request body size"`
}

// Load reads envFile into the environment (a missing file is ignored,
// existing variables win) and then parses args.
func Load(envFile string, args []string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, errors.Wrapf(err, "load %s", envFile)
		}
	}

	var cfg Config
	parser := goFlags.NewParser(&cfg, goFlags.HelpFlag|goFlags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return cfg, errors.Wrap(err, "parse config")
	}
	if cfg.MaxBodyBytes <= 0 {
		return cfg, errors.Newf("max-body-bytes must be positive, got %d", cfg.MaxBodyBytes)
	}
	return cfg, nil
}

// IsErrOfType returns true if err wraps a go-flags error of type t
func IsErrOfType(err error, t goFlags.ErrorType) bool {
	goFlagsErr := &goFlags.Error{}
	if ok := errors.As(err, &goFlagsErr); ok && goFlagsErr.Type == t {
		return true
	}
	return false
}
