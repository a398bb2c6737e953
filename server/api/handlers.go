package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	cb64 "github.com/mynextid/zk-base64/circuits/base64"
)

// Server handles HTTP requests for ZK proof operations
type Server struct {
	registry *CircuitRegistry
}

// NewServer creates a new HTTP server
func NewServer(registry *CircuitRegistry) *Server {
	return &Server{
		registry: registry,
	}
}

// ==== Request/Response Types ====

// ProveRequest represents a proof generation request
type ProveRequest struct {
	PublicInput  json.RawMessage `json:"public_input"`
	PrivateInput json.RawMessage `json:"private_input"`
}

// ProveResponse represents a proof generation response
type ProveResponse struct {
	Proof     string    `json:"proof"` // base64 encoded
	Timestamp time.Time `json:"timestamp"`
}

// VerifyRequest represents a proof verification request
type VerifyRequest struct {
	PublicInput json.RawMessage `json:"public_input"`
	Proof       string          `json:"proof"` // base64 encoded
}

// VerifyResponse represents a proof verification response
type VerifyResponse struct {
	Valid     bool      `json:"valid"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CircuitInfoResponse represents circuit information
type CircuitInfoResponse struct {
	Name        string `json:"name"`
	Version     uint   `json:"version"`
	Description string         `json:"description,omitempty"`
	Loaded      bool           `json:"loaded"`
	Shape       *ShapeResponse `json:"shape,omitempty"`
}

// ShapeResponse represents the derived shape of a base64 gadget
type ShapeResponse struct {
	DecodedByteSize    int `json:"decoded_byte_size"`
	Num6BitChunks      int `json:"num_6bit_chunks"`
	NumZeroPaddingBits int `json:"num_zero_padding_bits"`
	EncodedByteSize    int `json:"encoded_byte_size"`
	NumEqualPaddings   int `json:"num_equal_paddings"`
}

// CircuitListResponse represents a list of circuits
type CircuitListResponse struct {
	Circuits []CircuitInfoResponse `json:"circuits"`
	Count    int                   `json:"count"`
}

// ==== Handlers ====

// HandleHealth handles health check requests
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// HandleListCircuits lists all available circuits
func (s *Server) HandleListCircuits(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(CircuitList))
	for name := range CircuitList {
		names = append(names, name)
	}
	slices.Sort(names)

	circuits := make([]CircuitInfoResponse, 0, len(names))
	for _, name := range names {
		circuits = append(circuits, s.circuitInfo(name, CircuitList[name]))
	}

	respondJSON(w, http.StatusOK, CircuitListResponse{
		Circuits: circuits,
		Count:    len(circuits),
	})
}

// HandleGetCircuit gets information about a specific circuit
func (s *Server) HandleGetCircuit(w http.ResponseWriter, r *http.Request) {
	circuitName := chi.URLParam(r, "circuit")

	info, ok := CircuitList[circuitName]
	if !ok {
		respondError(w, http.StatusNotFound, "circuit_not_found",
			fmt.Sprintf("circuit '%s' not found", circuitName))
		return
	}

	respondJSON(w, http.StatusOK, s.circuitInfo(circuitName, info))
}

// HandleShape returns the gadget shape for a decoded byte size
func (s *Server) HandleShape(w http.ResponseWriter, r *http.Request) {
	size, err := strconv.Atoi(chi.URLParam(r, "size"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_size",
			fmt.Sprintf("invalid decoded byte size: %v", err))
		return
	}

	shape, err := cb64.NewShape(size)
	if err != nil {
		code := "invalid_size"
		if errors.Is(err, cb64.ErrShapeInconsistency) {
			code = "shape_inconsistency"
		}
		respondError(w, http.StatusBadRequest, code, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, newShapeResponse(shape))
}

// HandleProve handles proof generation requests
func (s *Server) HandleProve(w http.ResponseWriter, r *http.Request) {
	circuitName := chi.URLParam(r, "circuit")

	// Check if circuit exists
	if _, ok := CircuitList[circuitName]; !ok {
		respondError(w, http.StatusNotFound, "circuit_not_found",
			fmt.Sprintf("circuit '%s' not found", circuitName))
		return
	}

	// Check if circuit is loaded
	circuit, err := s.registry.Get(circuitName)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "circuit_not_loaded",
			fmt.Sprintf("circuit '%s' is not loaded: %v", circuitName, err))
		return
	}

	// Parse request body
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request",
			"failed to read request body")
		return
	}
	defer r.Body.Close()

	var req ProveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_json",
			fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	// Validate inputs
	if len(req.PublicInput) == 0 || len(req.PrivateInput) == 0 {
		respondError(w, http.StatusBadRequest, "missing_input",
			"both public_input and private_input are required")
		return
	}

	// Generate proof
	proofBytes, err := circuit.ProveWithJSON(req.PublicInput, req.PrivateInput)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "proof_generation_failed",
			fmt.Sprintf("failed to generate proof: %v", err))
		return
	}

	// Encode proof as base64
	proofB64 := base64.StdEncoding.EncodeToString(proofBytes)

	respondJSON(w, http.StatusOK, ProveResponse{
		Proof:     proofB64,
		Timestamp: time.Now(),
	})
}

// HandleVerify handles proof verification requests
func (s *Server) HandleVerify(w http.ResponseWriter, r *http.Request) {
	circuitName := chi.URLParam(r, "circuit")

	// Check if circuit exists
	if _, ok := CircuitList[circuitName]; !ok {
		respondError(w, http.StatusNotFound, "circuit_not_found",
			fmt.Sprintf("circuit '%s' not found", circuitName))
		return
	}

	// Check if circuit is loaded
	circuit, err := s.registry.Get(circuitName)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "circuit_not_loaded",
			fmt.Sprintf("circuit '%s' is not loaded: %v", circuitName, err))
		return
	}

	// Parse request body
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request",
			"failed to read request body")
		return
	}
	defer r.Body.Close()

	var req VerifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_json",
			fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	// Validate inputs
	if len(req.PublicInput) == 0 || req.Proof == "" {
		respondError(w, http.StatusBadRequest, "missing_input",
			"both public_input and proof are required")
		return
	}

	// Decode proof from base64
	proofBytes, err := base64.StdEncoding.DecodeString(req.Proof)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_proof_encoding",
			fmt.Sprintf("failed to decode proof: %v", err))
		return
	}

	// Verify proof
	err = circuit.Public().VerifyWithJSON(req.PublicInput, proofBytes)

	response := VerifyResponse{
		Valid:     err == nil,
		Timestamp: time.Now(),
	}

	if err != nil {
		response.Message = fmt.Sprintf("verification failed: %v", err)
	} else {
		response.Message = "proof is valid"
	}

	respondJSON(w, http.StatusOK, response)
}

// ==== Helper Functions ====

func (s *Server) circuitInfo(name string, info CircuitInfo) CircuitInfoResponse {
	res := CircuitInfoResponse{
		Name:        info.Name,
		Version:     info.Version,
		Description: info.Description,
		Loaded:      s.registry.Loaded(name),
	}
	if shape, err := info.Shape(); err == nil {
		sr := newShapeResponse(shape)
		res.Shape = &sr
	}
	return res
}

func newShapeResponse(shape cb64.Shape) ShapeResponse {
	return ShapeResponse{
		DecodedByteSize:    shape.DecodedByteSize,
		Num6BitChunks:      shape.Num6BitChunks,
		NumZeroPaddingBits: shape.NumZeroPaddingBits,
		EncodedByteSize:    shape.EncodedByteSize,
		NumEqualPaddings:   shape.NumEqualPaddings,
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	})
}
