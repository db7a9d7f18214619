package opcodes

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dcshock/gbopcodes/pipeline"
)

const (
	// DefaultURL is where the opcode document is published.
	DefaultURL = "https://gbdev.io/gb-opcodes/Opcodes.json"

	// Unprefixed is the table of instructions that do not need the 0xCB prefix byte.
	Unprefixed = "unprefixed"
	// CBPrefixed is the table of instructions that follow the 0xCB prefix byte.
	CBPrefixed = "cbprefixed"

	// DefaultOpcode is the NOP encoding.
	DefaultOpcode = "0x00"
)

// Document is the decoded top level of the opcode document. Values stay raw so
// record key order survives printing.
type Document map[string]json.RawMessage

// KeyNotFoundError is returned by Lookup when a key is absent. Path holds the
// keys already resolved before Key was tried.
type KeyNotFoundError struct {
	Path []string
	Key  string
}

func (e *KeyNotFoundError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("lookup: key %q not found", e.Key)
	}
	return fmt.Sprintf("lookup: key %q not found under %q", e.Key, strings.Join(e.Path, "."))
}

// Lookup returns the raw record at doc[table][opcode].
func Lookup(doc Document, table, opcode string) (json.RawMessage, error) {
	rawTable, ok := doc[table]
	if !ok {
		return nil, &KeyNotFoundError{Key: table}
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(rawTable, &entries); err != nil {
		return nil, fmt.Errorf("lookup %q: table is not an object: %w", table, err)
	}
	record, ok := entries[opcode]
	if !ok {
		return nil, &KeyNotFoundError{Path: []string{table}, Key: opcode}
	}
	return record, nil
}

// LookupStage returns a stage that takes the *Document produced by
// httpstages.ParseJSONTo[Document] and outputs the raw record for opcode in table.
func LookupStage(table, opcode string) pipeline.Stage {
	return pipeline.Transform(func(ctx context.Context, doc *Document) (json.RawMessage, error) {
		if doc == nil {
			return nil, &KeyNotFoundError{Key: table}
		}
		return Lookup(*doc, table, opcode)
	})
}

// NormalizeOpcode turns "0", "00", "0x0a" or "0XA" into the document key form "0x0A".
func NormalizeOpcode(s string) (string, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
	if v == "" || len(v) > 2 {
		return "", fmt.Errorf("opcode %q: want one byte in hex", s)
	}
	n, err := strconv.ParseUint(v, 16, 8)
	if err != nil {
		return "", fmt.Errorf("opcode %q: %w", s, err)
	}
	return fmt.Sprintf("0x%02X", n), nil
}

// ValidTable reports whether name is one of the two published tables.
func ValidTable(name string) bool {
	return name == Unprefixed || name == CBPrefixed
}
