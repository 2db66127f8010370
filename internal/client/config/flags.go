package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/logingate/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server address (e.g., "localhost:8080")
//	-o string   redirect target shown after a successful sign-in
//	-f string   path of the local SQLite database file
//
// os.Args is filtered through flagx.FilterArgs first so that flags meant
// for other components do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-o", "-f"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "server address")
	fs.StringVar(&config.RedirectTarget, "o", config.RedirectTarget, "redirect target after sign-in")
	fs.StringVar(&config.LocalDBPath, "f", config.LocalDBPath, "local database file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
