package zkproof

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/mynextid/zk-base64/server/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type compileConfig struct {
	outputDir string
	circuits  []string
	curve     string
	force     bool
	parallel  int
}

func NewCompileCmd() *cobra.Command {
	cfg := &compileConfig{}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile circuits and generate setup files",
		Long:  `Compile zero-knowledge circuits and generate constraint systems, proving keys, and verification keys. Compiling all circuits might take some time. List of circuits is available at server/api/list.go`,
		Example: `  # Compile all circuits
  zkb64 compile -o ./setup

  # Compile specific circuits, two at a time
  zkb64 compile -o ./setup -c base64-encode-32,base64-digest-sha256 --parallel 2

`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.outputDir, "output", "o", "./setup", "Output directory for compiled circuits")
	cmd.Flags().StringSliceVarP(&cfg.circuits, "circuits", "c", []string{}, "Specific circuits to compile (comma-separated, empty = all)")
	cmd.Flags().StringVar(&cfg.curve, "curve", "bn254", "Elliptic curve (bn254)")
	cmd.Flags().BoolVarP(&cfg.force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().IntVar(&cfg.parallel, "parallel", 1, "Number of circuits compiled concurrently")

	return cmd
}

func runCompile(cfg *compileConfig) error {
	if cfg.curve != "bn254" {
		return fmt.Errorf("unsupported curve: %s", cfg.curve)
	}
	if cfg.parallel < 1 {
		return fmt.Errorf("invalid parallel value: %d", cfg.parallel)
	}

	// Create output directory
	if err := os.MkdirAll(cfg.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	circuitsToCompile := cfg.circuits
	if len(circuitsToCompile) == 0 {
		for name := range api.CircuitList {
			circuitsToCompile = append(circuitsToCompile, name)
		}
		slices.Sort(circuitsToCompile)
	}

	fmt.Printf("\n==== Compiling %d circuits to %s ====\n", len(circuitsToCompile), cfg.outputDir)

	// every circuit is compiled by its own builder, failures are reported
	// and do not stop the others
	var g errgroup.Group
	g.SetLimit(cfg.parallel)

	for _, name := range circuitsToCompile {
		info, ok := api.CircuitList[name]
		if !ok {
			fmt.Printf("Circuit %s not found, skipping\n", name)
			continue
		}

		// set the output dir
		info.Dir = cfg.outputDir

		// Check if files exist
		if !cfg.force {
			if path, ok := existingSetup(info); ok {
				fmt.Printf("%s already exists, skipping (use --force to overwrite)\n", path)
				continue
			}
		}

		g.Go(func() error {
			start := time.Now()
			fmt.Printf("Compiling %s...\n", name)

			if err := info.Compile(); err != nil {
				fmt.Printf("[X] Failed to compile %s: %v\n", name, err)
				return nil
			}

			elapsed := time.Since(start)
			fmt.Printf("[OK] Compiled %s in %s\n", name, elapsed.Round(time.Second))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println("\n==== Compilation complete ====")
	return nil
}

// existingSetup returns the first setup file of info already on disk
func existingSetup(info api.CircuitInfo) (string, bool) {
	csPath, pkPath, vkPath := info.Paths()
	for _, path := range []string{csPath, pkPath, vkPath} {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
