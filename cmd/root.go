package main

import (
	"os"

	"github.com/consensys/gnark/logger"
	"github.com/mynextid/zk-base64/cmd/zkproof"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Init the cmd
func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "zkb64",
		Short: "Zero-Knowledge base64 encoding proofs",
		Long:  `A collection of tools and APIs for proving that a public base64 string encodes secret bytes`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print circuit debug logs")

	rootCmd.AddCommand(
		zkproof.NewServeCmd(),
		zkproof.NewCompileCmd(),
		zkproof.NewEncodeCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}

// setupLogger replaces the gnark logger, circuit gadgets log through it
func setupLogger(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	logger.Set(zerolog.New(output).Level(level).With().Timestamp().Logger())
}
