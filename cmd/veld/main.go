package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	verrs "github.com/veld-ui/veld/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "veld",
		Short: "Declarative UI for Go",
		Long: `Veld renders declarative component trees against a DOM-like host,
with hooks for state, effects, and context.

  • veld serve   — run the live demo server (WebSocket patch streaming)
  • veld render  — export the demo app as static HTML
  • veld deploy  — upload a rendered directory to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to veld.yaml")

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		deployCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var ve *verrs.Error
		if asVeldError(err, &ve) {
			fmt.Fprint(os.Stderr, verrs.Format(ve, stderrIsTTY()))
		} else {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: ")
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func asVeldError(err error, target **verrs.Error) bool {
	for err != nil {
		if e, ok := err.(*verrs.Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func stderrIsTTY() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// success prints a green check message.
func success(format string, args ...any) {
	color.New(color.FgGreen).Print("✓ ")
	fmt.Printf(format+"\n", args...)
}

// info prints a dimmed status message.
func info(format string, args ...any) {
	color.New(color.Faint).Printf(format+"\n", args...)
}
