package api

import (
	"fmt"
	"path/filepath"

	"github.com/consensys/gnark/frontend"
	cb64 "github.com/mynextid/zk-base64/circuits/base64"
	"github.com/mynextid/zk-base64/common"
)

// contains a list of circuits
type CircuitInfo struct {
	Circuit     frontend.Circuit
	Dir         string
	Name        string
	Version     uint
	Description string
	// GadgetSize is the number of bytes the circuit base64 encodes
	GadgetSize  int
	InputParser InputParser
}

// Shape returns the shape of the base64 gadget inside the circuit
func (ci CircuitInfo) Shape() (cb64.Shape, error) {
	return cb64.NewShape(ci.GadgetSize)
}

// Paths returns the constraint system, proving key and verifying key paths
func (ci CircuitInfo) Paths() (csPath, pkPath, vkPath string) {
	base := filepath.Join(ci.Dir, fmt.Sprintf("%s-%d", ci.Name, ci.Version))
	return base + ".ccs", base + ".pk", base + ".vk"
}

// Compile compiles a circuit and stores the circuit information locally
func (ci CircuitInfo) Compile() error {
	csPath, pkPath, vkPath := ci.Paths()
	return common.SetupAndSave(ci.Circuit, csPath, pkPath, vkPath)
}
