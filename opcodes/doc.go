// Package opcodes describes the Game Boy CPU opcode document published at
// DefaultURL and looks up single instruction records in it.
//
// The document is an object with two tables, "unprefixed" and "cbprefixed",
// each mapping an opcode key such as "0x00" to an instruction record
// (mnemonic, length, cycle timing, operands, flag effects). Records are kept
// as raw JSON so they can be printed back exactly as published.
package opcodes
