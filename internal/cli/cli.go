package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/propgraph/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// repeated collects every occurrence of a repeatable flag.
type repeated []string

func (r *repeated) String() string { return strings.Join(*r, ", ") }

func (r *repeated) Set(v string) error {
	*r = append(*r, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("propgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
propgraph - A reactive document engine.

Usage:
  propgraph [options] [DOC_PATH...]
  propgraph --watch URL

Arguments:
  DOC_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Examples:
  propgraph --set 'name=Ada' page.hcl
  propgraph --action 'field:updateValue:{"text":"hi"}' page.hcl
  propgraph --serve-port 8080 pages/
  propgraph --watch http://localhost:8080

Options:
`)
		flagSet.PrintDefaults()
	}

	docFlag := flagSet.String("doc", "", "Path to the document file or directory.")
	dFlag := flagSet.String("d", "", "Path to the document file or directory (shorthand).")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	servePortFlag := flagSet.Int("serve-port", 0, "Serve the document to socket.io clients on this port. 0 prints one render and exits.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	watchFlag := flagSet.String("watch", "", "Follow the server at this URL and print every render it pushes.")
	var sets, actions repeated
	flagSet.Var(&sets, "set", "Assign a prop after loading, as component[.prop]=value. Repeatable.")
	flagSet.Var(&actions, "action", "Run a component action after --set, as component:action[:json]. Repeatable.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	switch {
	case *docFlag != "":
		paths = append(paths, *docFlag)
	case *dFlag != "":
		paths = append(paths, *dFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Document paths determined.", "paths", paths)

	if len(paths) == 0 && *watchFlag == "" {
		slog.Debug("No document path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DocPaths:        paths,
		HealthcheckPort: *healthPortFlag,
		ServePort:       *servePortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Sets:            sets,
		Actions:         actions,
		WatchURL:        *watchFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
