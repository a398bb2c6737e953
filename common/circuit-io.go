package common

import (
	"fmt"
	"io"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Compile compiles the circuit template to R1CS over the BN254 scalar field
func Compile(circuitTemplate frontend.Circuit, opts ...frontend.CompileOption) (constraint.ConstraintSystem, error) {
	return frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuitTemplate, opts...)
}

// IsSolved compiles the circuit and checks that the assignment satisfies
// every constraint, without running the setup
func IsSolved(circuitTemplate, assignment frontend.Circuit, opts ...frontend.CompileOption) error {
	ccs, err := Compile(circuitTemplate, opts...)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return fmt.Errorf("witness creation failed: %w", err)
	}
	return ccs.IsSolved(witness)
}

// Save compiled circuit and keys
func SetupAndSave(circuitTemplate frontend.Circuit, ccsPath, pkPath, vkPath string) error {
	fmt.Println("\n--- Compiling Circuit ---")
	ccs, err := Compile(circuitTemplate)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Circuit compiled: %d constraints\n", ccs.GetNbConstraints())

	if err := writeTo(ccsPath, ccs); err != nil {
		return err
	}

	fmt.Println("\n--- Running Setup ---")
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return err
	}

	if err := writeTo(pkPath, pk); err != nil {
		return err
	}
	if err := writeTo(vkPath, vk); err != nil {
		return err
	}

	fmt.Println("✓ Setup completed and saved!")
	return nil
}

// Load pre-compiled circuit and keys
func LoadSetup(ccsPath, pkPath, vkPath string) (constraint.ConstraintSystem, groth16.ProvingKey, groth16.VerifyingKey, error) {
	ccs := groth16.NewCS(ecc.BN254)
	if err := readFrom(ccsPath, ccs); err != nil {
		return nil, nil, nil, err
	}

	pk := groth16.NewProvingKey(ecc.BN254)
	if err := readFrom(pkPath, pk); err != nil {
		return nil, nil, nil, err
	}

	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := readFrom(vkPath, vk); err != nil {
		return nil, nil, nil, err
	}

	fmt.Println("✓ Loaded pre-compiled setup")
	return ccs, pk, vk, nil
}

func writeTo(path string, w io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readFrom(path string, r io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := r.ReadFrom(f); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}
