package zkproof

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	cb64 "github.com/mynextid/zk-base64/circuits/base64"
	"github.com/mynextid/zk-base64/common"
	"github.com/spf13/cobra"
)

type encodeConfig struct {
	hex    string
	text   string
	layout bool
}

func NewEncodeCmd() *cobra.Command {
	cfg := &encodeConfig{}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode bytes and check the encoding circuit",
		Long:  `Encode the input bytes to base64, build the encoding circuit for the input size and check that the witness satisfies it. No setup is run.`,
		Example: `  # Encode hex bytes
  zkb64 encode --hex 4d616e

  # Encode a string and print the lane layout
  zkb64 encode --text "Man is" --layout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f := cmd.Flag("verbose"); f != nil && f.Value.String() == "true" {
				cfg.layout = true
			}
			return runEncode(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.hex, "hex", "", "Input bytes as hex")
	cmd.Flags().StringVar(&cfg.text, "text", "", "Input bytes as a string")
	cmd.Flags().BoolVar(&cfg.layout, "layout", false, "Print the lane layout of the gadget (implied by --verbose)")
	cmd.MarkFlagsMutuallyExclusive("hex", "text")
	cmd.MarkFlagsOneRequired("hex", "text")

	return cmd
}

func runEncode(out io.Writer, cfg *encodeConfig) error {
	data, err := encodeInput(cfg)
	if err != nil {
		return err
	}

	shape, err := cb64.NewShape(len(data))
	if err != nil {
		return err
	}

	encoded, err := cb64.EncodeNative(data)
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}

	ccs, err := common.Compile(cb64.NewEncodeTemplate(len(data)))
	if err != nil {
		return fmt.Errorf("failed to compile circuit: %w", err)
	}

	witness, err := frontend.NewWitness(&cb64.CircuitEncode{
		Bytes:    common.BytesToU8Array(data),
		BytesB64: common.StringToU8Array(encoded),
	}, ecc.BN254.ScalarField())
	if err != nil {
		return fmt.Errorf("witness creation failed: %w", err)
	}
	if err := ccs.IsSolved(witness); err != nil {
		return fmt.Errorf("circuit not satisfied: %w", err)
	}

	fmt.Fprintf(out, "  shape:       %s\n", shape)
	fmt.Fprintf(out, "  constraints: %d\n", ccs.GetNbConstraints())
	fmt.Fprintf(out, "  encoded:     %s\n", encoded)

	if cfg.layout {
		fmt.Fprintln(out)
		return cb64.WriteLayout(out, data)
	}
	return nil
}

func encodeInput(cfg *encodeConfig) ([]byte, error) {
	switch {
	case cfg.hex != "":
		data, err := hex.DecodeString(cfg.hex)
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return data, nil
	case cfg.text != "":
		return []byte(cfg.text), nil
	}
	return nil, errors.New("no input bytes, use --hex or --text")
}
