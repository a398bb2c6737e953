package server

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/test"
	"github.com/mynextid/zk-base64/common"
	"github.com/mynextid/zk-base64/server/api"
)

const encodeCircuit = "base64-encode-32"

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	assert := test.NewAssert(t)

	info := api.CircuitList[encodeCircuit]
	ccs, err := common.Compile(info.Circuit)
	assert.NoError(err)
	pk, vk, err := groth16.Setup(ccs)
	assert.NoError(err)

	registry := api.NewCircuitRegistry()
	assert.NoError(registry.Register(encodeCircuit, &api.Circuit{
		CS:           ccs,
		ProvingKey:   pk,
		VerifyingKey: vk,
		InputParser:  info.InputParser,
	}))

	return NewHandler(registry, testConfig(), SetupLogger(io.Discard, "error", "text"))
}

func testConfig() *ServeConfig {
	return &ServeConfig{
		Port:           8080,
		MaxRequestSize: 1 << 20,
		WriteTimeout:   time.Minute,
	}
}

func do(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCircuitInfo(t *testing.T) {
	h := newTestHandler(t)

	t.Run("list", func(t *testing.T) {
		assert := test.NewAssert(t)
		rec := do(h, http.MethodGet, "/circuits", nil)
		assert.Equal(http.StatusOK, rec.Code)

		var res struct {
			Circuits []api.CircuitInfoResponse `json:"circuits"`
		}
		assert.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Len(res.Circuits, len(api.CircuitList))
		for _, c := range res.Circuits {
			assert.Equal(c.Name == encodeCircuit, c.Loaded, c.Name)
			assert.NotEmpty(c.Description)
		}
	})

	t.Run("gadget shape", func(t *testing.T) {
		assert := test.NewAssert(t)
		rec := do(h, http.MethodGet, "/circuits/base64-digest-sha256", nil)
		assert.Equal(http.StatusOK, rec.Code)

		var res api.CircuitInfoResponse
		assert.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
		assert.False(res.Loaded)
		assert.NotNil(res.Shape)
		// 32-byte digest: 43 characters and one pad
		assert.Equal(32, res.Shape.DecodedByteSize)
		assert.Equal(43, res.Shape.Num6BitChunks)
		assert.Equal(44, res.Shape.EncodedByteSize)
		assert.Equal(1, res.Shape.NumEqualPaddings)
	})

	t.Run("unknown circuit", func(t *testing.T) {
		assert := test.NewAssert(t)
		rec := do(h, http.MethodGet, "/circuits/base64-encode-7", nil)
		assert.Equal(http.StatusNotFound, rec.Code)
	})

	t.Run("health", func(t *testing.T) {
		assert := test.NewAssert(t)
		rec := do(h, http.MethodGet, "/health", nil)
		assert.Equal(http.StatusOK, rec.Code)
	})
}

func TestShape(t *testing.T) {
	h := newTestHandler(t)

	t.Run("valid", func(t *testing.T) {
		assert := test.NewAssert(t)
		rec := do(h, http.MethodGet, "/shape/4", nil)
		assert.Equal(http.StatusOK, rec.Code)

		var shape api.ShapeResponse
		assert.NoError(json.Unmarshal(rec.Body.Bytes(), &shape))
		assert.Equal(api.ShapeResponse{
			DecodedByteSize:    4,
			Num6BitChunks:      6,
			NumZeroPaddingBits: 4,
			EncodedByteSize:    8,
			NumEqualPaddings:   2,
		}, shape)
	})

	for _, size := range []string{"-1", "abc"} {
		t.Run(size, func(t *testing.T) {
			assert := test.NewAssert(t)
			rec := do(h, http.MethodGet, "/shape/"+size, nil)
			assert.Equal(http.StatusBadRequest, rec.Code)
		})
	}
}

func TestProveVerify(t *testing.T) {
	h := newTestHandler(t)
	assert := test.NewAssert(t)

	data, err := common.GenerateRandomBytes(api.BYTE_SIZE32)
	assert.NoError(err)
	encoded := base64.StdEncoding.EncodeToString(data)

	public := map[string]string{"encoded": encoded}
	rec := do(h, http.MethodPost, "/prove/"+encodeCircuit, map[string]any{
		"public_input":  public,
		"private_input": map[string]string{"decoded_hex": hex.EncodeToString(data)},
	})
	assert.Equal(http.StatusOK, rec.Code, rec.Body.String())

	var proved api.ProveResponse
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &proved))
	assert.NotEmpty(proved.Proof)

	verify := func(publicInput any) api.VerifyResponse {
		rec := do(h, http.MethodPost, "/verify/"+encodeCircuit, map[string]any{
			"public_input": publicInput,
			"proof":        proved.Proof,
		})
		assert.Equal(http.StatusOK, rec.Code)
		var res api.VerifyResponse
		assert.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
		return res
	}

	assert.True(verify(public).Valid)

	other, err := common.GenerateRandomBytes(api.BYTE_SIZE32)
	assert.NoError(err)
	res := verify(map[string]string{"encoded": base64.StdEncoding.EncodeToString(other)})
	assert.False(res.Valid)
}

func TestProveRejects(t *testing.T) {
	h := newTestHandler(t)

	data := make([]byte, api.BYTE_SIZE32)
	encoded := base64.StdEncoding.EncodeToString(data)

	cases := []struct {
		name    string
		circuit string
		body    any
		status  int
	}{
		{"unknown circuit", "base64-encode-7", map[string]any{}, http.StatusNotFound},
		{"not loaded", "base64-encode-64", map[string]any{}, http.StatusServiceUnavailable},
		{"missing input", encodeCircuit, map[string]any{
			"public_input": map[string]string{"encoded": encoded},
		}, http.StatusBadRequest},
		{"private input does not encode", encodeCircuit, map[string]any{
			"public_input":  map[string]string{"encoded": encoded},
			"private_input": map[string]string{"decoded_hex": hex.EncodeToString(bytes.Repeat([]byte{1}, api.BYTE_SIZE32))},
		}, http.StatusInternalServerError},
		{"malformed base64", encodeCircuit, map[string]any{
			"public_input":  map[string]string{"encoded": "*" + encoded[1:]},
			"private_input": map[string]string{},
		}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert := test.NewAssert(t)
			rec := do(h, http.MethodPost, "/prove/"+tc.circuit, tc.body)
			assert.Equal(tc.status, rec.Code, rec.Body.String())

			var res api.ErrorResponse
			assert.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
			assert.NotEmpty(res.Code)
		})
	}
}

func TestRequestLog(t *testing.T) {
	assert := test.NewAssert(t)

	var logs bytes.Buffer
	h := NewHandler(api.NewCircuitRegistry(), testConfig(), SetupLogger(&logs, "info", "json"))

	rec := do(h, http.MethodGet, "/circuits/"+encodeCircuit, nil)
	assert.Equal(http.StatusOK, rec.Code)
	rec = do(h, http.MethodGet, "/shape/abc", nil)
	assert.Equal(http.StatusBadRequest, rec.Code)

	lines := bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n"))
	assert.Len(lines, 2)

	var info, warn map[string]any
	assert.NoError(json.Unmarshal(lines[0], &info))
	assert.Equal("INFO", info["level"])
	assert.Equal(encodeCircuit, info["circuit"])
	assert.Equal(float64(http.StatusOK), info["status"])

	assert.NoError(json.Unmarshal(lines[1], &warn))
	assert.Equal("WARN", warn["level"])
	assert.Equal("abc", warn["gadget_size"])
}

func TestValidateServeConfig(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name  string
		edit  func(cfg *ServeConfig)
		valid bool
	}{
		{"valid", func(cfg *ServeConfig) {}, true},
		{"port", func(cfg *ServeConfig) { cfg.Port = 0 }, false},
		{"request size", func(cfg *ServeConfig) { cfg.MaxRequestSize = 0 }, false},
		{"unknown circuit", func(cfg *ServeConfig) { cfg.Circuits = []string{"base64-encode-7"} }, false},
		{"known circuit", func(cfg *ServeConfig) { cfg.Circuits = []string{encodeCircuit} }, true},
		{"tls without files", func(cfg *ServeConfig) { cfg.EnableTLS = true }, false},
		{"missing dir", func(cfg *ServeConfig) { cfg.CircuitsDir = dir + "/missing" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert := test.NewAssert(t)
			cfg := testConfig()
			cfg.CircuitsDir = dir
			tc.edit(cfg)

			err := validateServeConfig(cfg)
			if tc.valid {
				assert.NoError(err)
			} else {
				assert.Error(err)
			}
		})
	}
}

func TestLoadCircuits(t *testing.T) {
	assert := test.NewAssert(t)

	dir := t.TempDir()
	info := api.CircuitList[encodeCircuit]
	info.Dir = dir
	assert.NoError(info.Compile())

	var logs bytes.Buffer
	cfg := testConfig()
	cfg.CircuitsDir = dir

	registry := api.NewCircuitRegistry()
	assert.NoError(loadCircuits(registry, cfg, SetupLogger(&logs, "info", "text")))
	assert.Equal([]string{encodeCircuit}, registry.Names())
	assert.Contains(logs.String(), "gadget_size=32")
	assert.Contains(logs.String(), "encoded_size=44")

	// nothing compiled
	cfg.CircuitsDir = t.TempDir()
	assert.Error(loadCircuits(api.NewCircuitRegistry(), cfg, SetupLogger(io.Discard, "info", "text")))
}
