// Package format describes the on-disk layout of jdb snapshots.
//
// PLATFORM NOTES:
//   - Byte order: little-endian (the producer writes raw x86-64 structs)
//   - Alignment: natural C alignment, so the header carries 4 bytes of
//     padding before the 64-bit age field and 4 trailing bytes
//   - Addressing: section offsets are block indices of BlockSize bytes
//
// The package only decodes bytes into values. Range checks and version
// compatibility are the loader's job.
package format

import (
	"fmt"
	"math"
)

// BlockSize is the addressing unit of all section offsets.
const BlockSize = 256

// Record sizes in bytes.
const (
	HeaderSize = 96
	EqnSize    = 6
	NameSize   = 20
	WeightSize = 8
	ScalarSize = 8

	// NameLen is the width of the fixed name field.
	NameLen = 16

	// GrammarScalars is the number of float64 scalars that open the grammar section.
	GrammarScalars = 3
)

// MaxOb is the largest representable object id.
const MaxOb = math.MaxUint16

// Ob identifies an object. Zero is reserved.
type Ob uint16

// Eqn is lhs ∘ rhs = result under the operator of its table.
type Eqn struct {
	Lhs, Rhs, Result Ob
}

func (e Eqn) String() string {
	return fmt.Sprintf("(%d,%d,%d)", e.Lhs, e.Rhs, e.Result)
}

// Version is the producer version quadruple a.b.c.d.
type Version struct {
	A, B, C, D uint8
}

// Num packs the version into an ordinal: a is the most significant byte.
func (v Version) Num() uint32 {
	return uint32(v.A)<<24 | uint32(v.B)<<16 | uint32(v.C)<<8 | uint32(v.D)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.A, v.B, v.C, v.D)
}

// Header is the fixed descriptor at offset 0.
type Header struct {
	Version Version

	// Generic integer properties.
	Props1, Props2 uint32

	// Age of the knowledge base.
	Age uint64

	// Section sizes, in records.
	BasisSize    uint32 // named obs
	ObSize       uint32 // obs
	AppSize      uint32 // application equations
	CompSize     uint32 // composition equations
	JoinSize     uint32 // join equations
	WeightSize   uint32 // weighted atoms of the grammar
	RuleSize     uint32 // grammar rules
	ReservedSize uint32

	// Section offsets, in blocks.
	BasisBlock    uint32
	ObBlock       uint32
	AppBlock      uint32
	CompBlock     uint32
	JoinBlock     uint32
	OrderBlock    uint32
	GrammarBlock  uint32
	ReservedBlock [2]uint32
}

// NameRecord is a raw entry of the basis section.
type NameRecord struct {
	Ob   uint32
	Name [NameLen]byte
}

// WeightRecord is a raw (ob, mass) entry of the grammar section.
type WeightRecord struct {
	Ob   uint32
	Mass float32
}

// BlockOffset converts a block index to a byte offset.
func BlockOffset(block uint32) int64 {
	return int64(block) * BlockSize
}
