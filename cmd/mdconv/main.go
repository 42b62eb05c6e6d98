package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Flags are parsed again by run; here only --verbose matters.
	flags, _, _ := parseConvertFlags(os.Args[1:])
	setMaxProcs(flags != nil && flags.common.verbose, os.Stderr)

	os.Exit(runMain(os.Args[1:], DefaultEnv(), newConverterPool))
}

// setMaxProcs configures GOMAXPROCS from the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// runMain runs the CLI and maps the outcome to an exit code.
func runMain(args []string, env *Environment, newPool poolFactory) int {
	ctx, stop := notifyContext(context.Background(), env.Stderr, func() {
		os.Exit(ExitGeneral)
	})
	defer stop()

	err := run(ctx, args, env, newPool)
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(env.Stderr, "mdconv: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}
