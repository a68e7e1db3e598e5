// Package flagx lets several config stages parse their own subset of
// os.Args without tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// Filter returns only the arguments belonging to the given flag names,
// keeping "-f value" pairs as well as "-f=value" forms. Everything else is
// dropped, so a flag.FlagSet over the result never sees unknown flags.
func Filter(args []string, names []string) []string {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := wanted[name]; ok {
				kept = append(kept, arg)
			}
			continue
		}

		if _, ok := wanted[arg]; ok {
			kept = append(kept, arg)
			// A following non-flag argument is this flag's value.
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				kept = append(kept, args[i+1])
				i++
			}
		}
	}
	return kept
}

// ConfigFilePath extracts the config file path given via -c or -config,
// returning "" when neither is present. Other flags are ignored entirely.
func ConfigFilePath() string {
	var path string

	args := Filter(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("configfile", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(args)

	return path
}
