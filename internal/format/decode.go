package format

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Header field offsets.
const (
	offVersion = 0
	offProps1  = 4
	offProps2  = 8
	offAge     = 16 // 4 bytes of padding precede the 64-bit field
	offSizes   = 24
	offBlocks  = 56
)

// DecodeHeader decodes the fixed header record from b.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("format: header needs %d bytes, got %d", HeaderSize, len(b))
	}

	le := binary.LittleEndian
	var h Header

	h.Version = Version{A: b[offVersion], B: b[offVersion+1], C: b[offVersion+2], D: b[offVersion+3]}
	h.Props1 = le.Uint32(b[offProps1:])
	h.Props2 = le.Uint32(b[offProps2:])
	h.Age = le.Uint64(b[offAge:])

	sizes := [8]*uint32{
		&h.BasisSize, &h.ObSize, &h.AppSize, &h.CompSize,
		&h.JoinSize, &h.WeightSize, &h.RuleSize, &h.ReservedSize,
	}
	for i, p := range sizes {
		*p = le.Uint32(b[offSizes+4*i:])
	}

	blocks := [9]*uint32{
		&h.BasisBlock, &h.ObBlock, &h.AppBlock, &h.CompBlock, &h.JoinBlock,
		&h.OrderBlock, &h.GrammarBlock, &h.ReservedBlock[0], &h.ReservedBlock[1],
	}
	for i, p := range blocks {
		*p = le.Uint32(b[offBlocks+4*i:])
	}

	return h, nil
}

// DecodeEqn decodes one equation record. b must hold EqnSize bytes.
func DecodeEqn(b []byte) Eqn {
	_ = b[EqnSize-1]
	return Eqn{
		Lhs:    Ob(binary.LittleEndian.Uint16(b[0:])),
		Rhs:    Ob(binary.LittleEndian.Uint16(b[2:])),
		Result: Ob(binary.LittleEndian.Uint16(b[4:])),
	}
}

// DecodeNameRecord decodes one basis record. b must hold NameSize bytes.
func DecodeNameRecord(b []byte) NameRecord {
	_ = b[NameSize-1]
	var r NameRecord
	r.Ob = binary.LittleEndian.Uint32(b[0:])
	copy(r.Name[:], b[4:NameSize])
	return r
}

// DecodeWeightRecord decodes one grammar weight. b must hold WeightSize bytes.
func DecodeWeightRecord(b []byte) WeightRecord {
	_ = b[WeightSize-1]
	return WeightRecord{
		Ob:   binary.LittleEndian.Uint32(b[0:]),
		Mass: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
	}
}

// DecodeScalar decodes one float64 scalar. b must hold ScalarSize bytes.
func DecodeScalar(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// ParseName returns the bytes of a fixed name field before the first NUL.
// A field without a NUL uses all NameLen bytes.
func ParseName(field [NameLen]byte) string {
	if i := bytes.IndexByte(field[:], 0); i >= 0 {
		return string(field[:i])
	}
	return string(field[:])
}
