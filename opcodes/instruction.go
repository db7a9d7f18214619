package opcodes

import (
	"encoding/json"
	"fmt"
)

// Operand is one operand of an instruction record.
type Operand struct {
	Name      string `json:"name"`
	Bytes     int    `json:"bytes,omitempty"`
	Immediate bool   `json:"immediate"`
	Increment bool   `json:"increment,omitempty"`
	Decrement bool   `json:"decrement,omitempty"`
}

// Instruction is a typed view of an instruction record. Cycles has two entries
// for conditional instructions: taken, then not taken.
type Instruction struct {
	Mnemonic  string            `json:"mnemonic"`
	Bytes     int               `json:"bytes"`
	Cycles    []int             `json:"cycles"`
	Operands  []Operand         `json:"operands"`
	Immediate bool              `json:"immediate"`
	Flags     map[string]string `json:"flags"`
}

// Decode parses a raw record. Fields missing from the record are left zero.
func Decode(raw json.RawMessage) (*Instruction, error) {
	var inst Instruction
	if err := json.Unmarshal(raw, &inst); err != nil {
		return nil, fmt.Errorf("decode instruction: %w", err)
	}
	return &inst, nil
}

// String renders the instruction as assembler-style text, e.g. "LD BC, n16".
func (i *Instruction) String() string {
	s := i.Mnemonic
	for n, op := range i.Operands {
		if n == 0 {
			s += " "
		} else {
			s += ", "
		}
		s += op.text()
	}
	return s
}

func (o Operand) text() string {
	name := o.Name
	switch {
	case o.Increment:
		name += "+"
	case o.Decrement:
		name += "-"
	}
	if !o.Immediate {
		return "[" + name + "]"
	}
	return name
}
