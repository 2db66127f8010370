package flagx

import (
	"flag"
	"os"
)

// JsonConfigFlags returns the JSON config file path supplied via the -c or
// -config flag, or an empty string when none was given. Both config packages
// call this before parsing their own flag subsets.
func JsonConfigFlags() string {
	args := FilterArgs(os.Args[1:], []string{"-c", "-config", "--config"})

	fs := flag.NewFlagSet("jsonconfig", flag.ContinueOnError)
	short := fs.String("c", "", "path to JSON config file")
	long := fs.String("config", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return ""
	}
	if *long != "" {
		return *long
	}
	return *short
}
