package opcodes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	raw := json.RawMessage(`{"mnemonic": "JR", "bytes": 2, "cycles": [12, 8],
		"operands": [{"name": "NZ", "immediate": true}, {"name": "e8", "bytes": 1, "immediate": true}],
		"immediate": true, "flags": {"Z": "-", "N": "-", "H": "-", "C": "-"}}`)

	inst, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "JR", inst.Mnemonic)
	assert.Equal(t, 2, inst.Bytes)
	assert.Equal(t, []int{12, 8}, inst.Cycles)
	assert.Equal(t, "-", inst.Flags["Z"])
	assert.Equal(t, "JR NZ, e8", inst.String())
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(json.RawMessage(`[]`))
	assert.Error(t, err)
}

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		inst Instruction
		want string
	}{
		{inst: Instruction{Mnemonic: "NOP"}, want: "NOP"},
		{inst: Instruction{Mnemonic: "LD", Operands: []Operand{
			{Name: "HL", Increment: true},
			{Name: "A", Immediate: true},
		}}, want: "LD [HL+], A"},
		{inst: Instruction{Mnemonic: "LD", Operands: []Operand{
			{Name: "A", Immediate: true},
			{Name: "HL", Decrement: true},
		}}, want: "LD A, [HL-]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.inst.String())
	}
}
