package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dcshock/gbopcodes/config"
	"github.com/dcshock/gbopcodes/httpstages"
	"github.com/dcshock/gbopcodes/opcodes"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nopDoc = `{"unprefixed": {"0x00": {"mnemonic":"NOP"}}}`

// opcodeServer serves body with status and counts requests.
func opcodeServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func optionsFor(ts *httptest.Server) Options {
	cfg := config.Default()
	cfg.URL = ts.URL
	return Options{Config: cfg, Client: ts.Client()}
}

func TestFetch_NOP(t *testing.T) {
	ts, hits := opcodeServer(t, http.StatusOK, nopDoc)

	out, err := Fetch(context.Background(), optionsFor(ts))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"mnemonic\": \"NOP\"\n}", string(out))
	assert.EqualValues(t, 1, hits.Load())
}

func TestFetch_KeepsRecordKeyOrder(t *testing.T) {
	doc := `{"unprefixed": {"0x00": {"mnemonic": "NOP", "bytes": 1, "cycles": [4], "operands": [], "immediate": true,
		"flags": {"Z": "-", "N": "-", "H": "-", "C": "-"}}}, "cbprefixed": {}}`
	ts, _ := opcodeServer(t, http.StatusOK, doc)

	out, err := Fetch(context.Background(), optionsFor(ts))
	require.NoError(t, err)
	want := `{
    "mnemonic": "NOP",
    "bytes": 1,
    "cycles": [
        4
    ],
    "operands": [],
    "immediate": true,
    "flags": {
        "Z": "-",
        "N": "-",
        "H": "-",
        "C": "-"
    }
}`
	assert.Equal(t, want, string(out))
}

func TestFetch_Idempotent(t *testing.T) {
	ts, hits := opcodeServer(t, http.StatusOK, nopDoc)
	opts := optionsFor(ts)

	first, err := Fetch(context.Background(), opts)
	require.NoError(t, err)
	second, err := Fetch(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 2, hits.Load())
}

func TestFetch_NotFound(t *testing.T) {
	ts, hits := opcodeServer(t, http.StatusNotFound, nopDoc)

	out, err := Fetch(context.Background(), optionsFor(ts))
	assert.Nil(t, out)
	var statusErr *httpstages.StatusError
	require.True(t, errors.As(err, &statusErr), "got %v", err)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.EqualValues(t, 1, hits.Load())
}

func TestFetch_NotJSON(t *testing.T) {
	ts, _ := opcodeServer(t, http.StatusOK, "not json")

	_, err := Fetch(context.Background(), optionsFor(ts))
	var parseErr *httpstages.ParseError
	assert.True(t, errors.As(err, &parseErr), "got %v", err)
}

func TestFetch_MissingTable(t *testing.T) {
	ts, _ := opcodeServer(t, http.StatusOK, `{"cbprefixed": {"0x00": {}}}`)

	_, err := Fetch(context.Background(), optionsFor(ts))
	var notFound *opcodes.KeyNotFoundError
	require.True(t, errors.As(err, &notFound), "got %v", err)
	assert.Equal(t, "unprefixed", notFound.Key)
}

func TestFetch_MissingOpcode(t *testing.T) {
	ts, _ := opcodeServer(t, http.StatusOK, `{"unprefixed": {"0x01": {}}}`)

	_, err := Fetch(context.Background(), optionsFor(ts))
	var notFound *opcodes.KeyNotFoundError
	require.True(t, errors.As(err, &notFound), "got %v", err)
	assert.Equal(t, "0x00", notFound.Key)
}

func TestFetch_OtherTableAndIndent(t *testing.T) {
	ts, _ := opcodeServer(t, http.StatusOK, `{"unprefixed": {}, "cbprefixed": {"0x37": {"mnemonic": "SWAP", "operands": [{"name": "A", "immediate": true}]}}}`)
	opts := optionsFor(ts)
	opts.Config.Table = opcodes.CBPrefixed
	opts.Config.Opcode = "0x37"
	opts.Config.Indent = 2

	out, err := Fetch(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"mnemonic\": \"SWAP\",\n  \"operands\": [\n    {\n      \"name\": \"A\",\n      \"immediate\": true\n    }\n  ]\n}", string(out))
}

func TestFetch_UnknownStage(t *testing.T) {
	ts, hits := opcodeServer(t, http.StatusOK, nopDoc)
	opts := optionsFor(ts)
	opts.Config.Pipeline.Stages = append(opts.Config.Pipeline.Stages, config.StageRef{Name: "cache"})

	_, err := Fetch(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"cache"`)
	assert.EqualValues(t, 0, hits.Load())
}

func TestFetch_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.URL = ""
	_, err := Fetch(context.Background(), Options{Config: cfg})
	require.Error(t, err)
}

func TestFetch_LastStageNotBytes(t *testing.T) {
	ts, _ := opcodeServer(t, http.StatusOK, nopDoc)
	opts := optionsFor(ts)
	opts.Config.Pipeline.Stages = []config.StageRef{{Name: "fetch"}, {Name: "decode"}}

	_, err := Fetch(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render bytes")
}

func TestFetch_VerboseLogging(t *testing.T) {
	ts, _ := opcodeServer(t, http.StatusOK, `{"unprefixed": {"0x00": {"mnemonic": "NOP", "bytes": 1, "cycles": [4], "operands": []}}}`)
	var lines []string
	opts := optionsFor(ts)
	opts.Logger = funcr.New(func(prefix, args string) { lines = append(lines, args) }, funcr.Options{Verbosity: 1})

	_, err := Fetch(context.Background(), opts)
	require.NoError(t, err)
	all := strings.Join(lines, "\n")
	assert.Contains(t, all, `"asm"="NOP"`)
	assert.Contains(t, all, `"pipeline finished"`)
}
