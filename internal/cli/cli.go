package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/specialistvlad/wiregrid/internal/app"
	"github.com/specialistvlad/wiregrid/internal/whatif"
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

// overrideList collects repeated -override name=value flags.
type overrideList []whatif.Assignment

func (o *overrideList) String() string {
	parts := make([]string, 0, len(*o))
	for _, a := range *o {
		parts = append(parts, fmt.Sprintf("%s=%d", a.Wire, a.Value))
	}
	return strings.Join(parts, ",")
}

func (o *overrideList) Set(s string) error {
	wire, raw, ok := strings.Cut(s, "=")
	if !ok || wire == "" {
		return fmt.Errorf("override %q must look like wire=value", s)
	}
	v, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return fmt.Errorf("override %q: value must be an integer in [0,65535]", s)
	}
	*o = append(*o, whatif.Assignment{Wire: wire, Value: uint16(v)})
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("wiregrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
wiregrid - Evaluate 16-bit logic circuits described as netlists.

Usage:
  wiregrid [options] [NETLIST]

Arguments:
  NETLIST
    Path to a netlist file, one "<gate> -> <wire>" instruction per line.

Options:
`)
		flagSet.PrintDefaults()
	}

	netlistFlag := flagSet.String("netlist", "", "Path to the netlist file.")
	nFlag := flagSet.String("n", "", "Path to the netlist file (shorthand).")
	scenarioFlag := flagSet.String("scenario", "", "Path to an HCL scenario file or directory.")
	wireFlag := flagSet.String("wire", "a", "Wire to resolve.")
	feedbackFlag := flagSet.String("feedback", "b", "Wire that receives the first answer for part two. Empty disables part two.")
	allFlag := flagSet.Bool("all", false, "Print the signal of every wire.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 4, "Number of concurrent workers for override queries.")
	var overrides overrideList
	flagSet.Var(&overrides, "override", "Extra what-if query as wire=value. May be repeated.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *netlistFlag != "" {
		path = *netlistFlag
	} else if *nFlag != "" {
		path = *nFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Netlist path determined.", "path", path)

	if path == "" && *scenarioFlag == "" {
		slog.Debug("No netlist or scenario provided, printing usage and exiting.")
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
		NetlistPath:  path,
		ScenarioPath: *scenarioFlag,
		Wire:         *wireFlag,
		Feedback:     *feedbackFlag,
		Overrides:    overrides,
		ShowAll:      *allFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		WorkerCount:  *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
