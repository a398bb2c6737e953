package api

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mynextid/zk-base64/common"
)

// CircuitRegistry stores compiled circuits by name
type CircuitRegistry struct {
	mu       sync.RWMutex
	Circuits map[string]*Circuit
}

// NewCircuitRegistry creates a new registry
func NewCircuitRegistry() *CircuitRegistry {
	return &CircuitRegistry{
		Circuits: make(map[string]*Circuit),
	}
}

// LoadCircuit reads the setup files of ci and registers the circuit
func (cr *CircuitRegistry) LoadCircuit(ci CircuitInfo) error {
	csPath, pkPath, vkPath := ci.Paths()

	cs, pk, vk, err := common.LoadSetup(csPath, pkPath, vkPath)
	if err != nil {
		return fmt.Errorf("failed to load the circuit: %w", err)
	}

	return cr.Register(ci.Name, &Circuit{
		CS:           cs,
		ProvingKey:   pk,
		VerifyingKey: vk,
		InputParser:  ci.InputParser,
	})
}

// Get returns a circuit by name
func (cr *CircuitRegistry) Get(name string) (*Circuit, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if c, ok := cr.Circuits[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("circuit %s not found", name)
}

// Loaded reports whether a circuit is registered under name
func (cr *CircuitRegistry) Loaded(name string) bool {
	_, err := cr.Get(name)
	return err == nil
}

// Names returns the sorted names of the registered circuits
func (cr *CircuitRegistry) Names() []string {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	names := make([]string, 0, len(cr.Circuits))
	for name := range cr.Circuits {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Register registers a new circuit by user-defined name
func (cr *CircuitRegistry) Register(name string, circuit *Circuit) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if _, ok := cr.Circuits[name]; ok {
		return fmt.Errorf("circuit with name %s already exists", name)
	}
	cr.Circuits[name] = circuit
	return nil
}
