package jdb

import "github.com/hupe1980/jdb/internal/format"

// Ob identifies an object. Valid ids are 1..ObCount; zero never names an object.
type Ob = format.Ob

// Eqn is lhs ∘ rhs = result under the operator of its table.
type Eqn = format.Eqn

// Version is the producer version quadruple a.b.c.d.
type Version = format.Version

// Section names a part of a snapshot in errors, logs and metrics.
type Section string

const (
	SectionFile    Section = "file"
	SectionHeader  Section = "header"
	SectionApp     Section = "app"
	SectionComp    Section = "comp"
	SectionJoin    Section = "join"
	SectionGrammar Section = "grammar"
	SectionNames   Section = "names"
)

// record returns the noun used for a single record of the section.
func (s Section) record() string {
	switch s {
	case SectionApp, SectionComp, SectionJoin:
		return string(s) + " equation"
	case SectionGrammar:
		return "weight"
	case SectionNames:
		return "name"
	default:
		return string(s)
	}
}

// Stats summarizes a load.
type Stats struct {
	ObCount     int
	AppCount    int
	CompCount   int
	JoinCount   int
	WeightCount int
	NameCount   int

	// Size is the size of the source in bytes.
	Size int64

	// BytesRead is the number of bytes read from the source.
	BytesRead int64

	// MemoryBytes is the memory reserved against the resource controller.
	MemoryBytes int64
}
