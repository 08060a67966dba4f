// Package jdbtest builds byte-exact jdb snapshots for tests.
package jdbtest

import (
	"encoding/binary"
	"math"

	"github.com/hupe1980/jdb/internal/format"
)

// Name is a basis entry. Names longer than format.NameLen are cut.
type Name struct {
	Ob   uint32
	Name string
}

// Snapshot describes the content of a jdb file.
type Snapshot struct {
	Version        format.Version
	Props1, Props2 uint32
	Age            uint64
	ObCount        uint32

	Apps, Comps, Joins []format.Eqn

	AppProb, CompProb, JoinProb float64
	Weights                     []format.WeightRecord

	Names []Name

	// Mutate, when set, edits the header after the layout is computed and
	// before it is encoded.
	Mutate func(h *format.Header)
}

// New returns a small valid snapshot: 3 obs, one app equation (1,2,3),
// grammar 0.3/0.3/0.3 and no weights or names.
func New() *Snapshot {
	return &Snapshot{
		Version:  format.Version{A: 0, B: 9, C: 1, D: 0},
		ObCount:  3,
		Apps:     []format.Eqn{{Lhs: 1, Rhs: 2, Result: 3}},
		AppProb:  0.3,
		CompProb: 0.3,
		JoinProb: 0.3,
	}
}

// Header returns the header Bytes would encode.
func (s *Snapshot) Header() format.Header {
	h, _ := s.layout()
	return h
}

// Bytes encodes the snapshot. The header occupies block 0 and every section
// starts on its own block.
func (s *Snapshot) Bytes() []byte {
	h, sections := s.layout()

	end := int64(format.HeaderSize)
	for _, sec := range sections {
		if e := format.BlockOffset(sec.block) + int64(len(sec.data)); e > end {
			end = e
		}
	}

	out := make([]byte, end)
	copy(out, encodeHeader(h))
	for _, sec := range sections {
		copy(out[format.BlockOffset(sec.block):], sec.data)
	}
	return out
}

type section struct {
	block uint32
	data  []byte
}

func (s *Snapshot) layout() (format.Header, []section) {
	h := format.Header{
		Version:    s.Version,
		Props1:     s.Props1,
		Props2:     s.Props2,
		Age:        s.Age,
		BasisSize:  uint32(len(s.Names)),
		ObSize:     s.ObCount,
		AppSize:    uint32(len(s.Apps)),
		CompSize:   uint32(len(s.Comps)),
		JoinSize:   uint32(len(s.Joins)),
		WeightSize: uint32(len(s.Weights)),
	}

	basis := encodeNames(s.Names)
	apps := encodeEqns(s.Apps)
	comps := encodeEqns(s.Comps)
	joins := encodeEqns(s.Joins)
	grammar := encodeGrammar(s.AppProb, s.CompProb, s.JoinProb, s.Weights)

	next := uint32(1)
	place := func(data []byte) uint32 {
		block := next
		next += uint32(max(1, (len(data)+format.BlockSize-1)/format.BlockSize))
		return block
	}

	h.BasisBlock = place(basis)
	h.AppBlock = place(apps)
	h.CompBlock = place(comps)
	h.JoinBlock = place(joins)
	h.GrammarBlock = place(grammar)

	if s.Mutate != nil {
		s.Mutate(&h)
	}

	return h, []section{
		{h.BasisBlock, basis},
		{h.AppBlock, apps},
		{h.CompBlock, comps},
		{h.JoinBlock, joins},
		{h.GrammarBlock, grammar},
	}
}

func encodeHeader(h format.Header) []byte {
	le := binary.LittleEndian
	b := make([]byte, format.HeaderSize)
	b[0], b[1], b[2], b[3] = h.Version.A, h.Version.B, h.Version.C, h.Version.D
	le.PutUint32(b[4:], h.Props1)
	le.PutUint32(b[8:], h.Props2)
	le.PutUint64(b[16:], h.Age)

	sizes := []uint32{
		h.BasisSize, h.ObSize, h.AppSize, h.CompSize,
		h.JoinSize, h.WeightSize, h.RuleSize, h.ReservedSize,
	}
	for i, v := range sizes {
		le.PutUint32(b[24+4*i:], v)
	}

	blocks := []uint32{
		h.BasisBlock, h.ObBlock, h.AppBlock, h.CompBlock, h.JoinBlock,
		h.OrderBlock, h.GrammarBlock, h.ReservedBlock[0], h.ReservedBlock[1],
	}
	for i, v := range blocks {
		le.PutUint32(b[56+4*i:], v)
	}
	return b
}

func encodeEqns(eqns []format.Eqn) []byte {
	b := make([]byte, 0, len(eqns)*format.EqnSize)
	for _, e := range eqns {
		b = binary.LittleEndian.AppendUint16(b, uint16(e.Lhs))
		b = binary.LittleEndian.AppendUint16(b, uint16(e.Rhs))
		b = binary.LittleEndian.AppendUint16(b, uint16(e.Result))
	}
	return b
}

func encodeGrammar(app, comp, join float64, weights []format.WeightRecord) []byte {
	b := make([]byte, 0, format.GrammarScalars*format.ScalarSize+len(weights)*format.WeightSize)
	for _, p := range []float64{app, comp, join} {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(p))
	}
	for _, w := range weights {
		b = binary.LittleEndian.AppendUint32(b, w.Ob)
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(w.Mass))
	}
	return b
}

func encodeNames(names []Name) []byte {
	b := make([]byte, 0, len(names)*format.NameSize)
	for _, n := range names {
		var field [format.NameLen]byte
		copy(field[:], n.Name)
		b = binary.LittleEndian.AppendUint32(b, n.Ob)
		b = append(b, field[:]...)
	}
	return b
}
