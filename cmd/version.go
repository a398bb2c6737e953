package main

import (
	"fmt"
	"io"
	"runtime/debug"
	"slices"

	"github.com/consensys/gnark"
	"github.com/mynextid/zk-base64/server/api"
	"github.com/spf13/cobra"
)

// set at build time with -ldflags "-X main.version=..."
var (
	version   = ""
	commit    = "none"
	buildDate = "unknown"
)

// NewVersionCmd prints the build information and the versions of the
// circuits, setup files are named after them
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"ver"},
		Short:   "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(out io.Writer) {
	v := version
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			v = info.Main.Version
		}
	}

	fmt.Fprintf(out, "  version: %s\n", v)
	fmt.Fprintf(out, "  commit:  %s\n", commit)
	fmt.Fprintf(out, "  built:   %s\n", buildDate)
	fmt.Fprintf(out, "  gnark:   %s\n", gnark.Version)

	names := make([]string, 0, len(api.CircuitList))
	for name := range api.CircuitList {
		names = append(names, name)
	}
	slices.Sort(names)

	fmt.Fprintln(out, "  circuits:")
	for _, name := range names {
		fmt.Fprintf(out, "    %s v%d\n", name, api.CircuitList[name].Version)
	}
}
