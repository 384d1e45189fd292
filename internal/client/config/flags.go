package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/newscheck/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the analysis service (default from Config)
//	-d string   path to the session database file
//	-m int      maximum text length in characters
//
// The function filters os.Args to only the flags it owns, via
// flagx.FilterArgs, so it does not interfere with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the analysis service")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "path to the session database file")
	fs.IntVar(&cfg.MaxTextLength, "m", cfg.MaxTextLength, "maximum text length (in characters)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
