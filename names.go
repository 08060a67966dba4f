package jdb

import (
	"fmt"

	"github.com/hupe1980/jdb/internal/format"
)

type nameTable struct {
	byName map[string]Ob
	byOb   map[Ob]string // first name read for each ob
}

// loadNames reads the basis section. Unlike the upstream producer, which
// accepts them, empty names are rejected: they cannot be looked up and
// would collide with each other.
func loadNames(s *source, h format.Header) (nameTable, error) {
	recs, err := loadArray(s, SectionNames, h.BasisBlock, h.BasisSize, format.NameSize, format.DecodeNameRecord)
	if err != nil {
		return nameTable{}, err
	}

	obCount := int(h.ObSize)
	t := nameTable{
		byName: make(map[string]Ob, len(recs)),
		byOb:   make(map[Ob]string, len(recs)),
	}
	for i, r := range recs {
		if !validOb(uint64(r.Ob), obCount) {
			return nameTable{}, &ValidationError{
				Section: SectionNames, Index: i, Field: "ob", Value: r.Ob,
				Reason: obRange(obCount),
			}
		}

		name := format.ParseName(r.Name)
		if name == "" {
			return nameTable{}, &ValidationError{
				Section: SectionNames, Index: i, Field: "name", Value: name,
				Reason: "is empty",
			}
		}
		ob := Ob(r.Ob)
		if prev, dup := t.byName[name]; dup {
			return nameTable{}, &ValidationError{
				Section: SectionNames, Index: i, Field: "name", Value: name,
				Reason: fmt.Sprintf("names ob %d, already names ob %d", ob, prev),
			}
		}

		t.byName[name] = ob
		if _, ok := t.byOb[ob]; !ok {
			t.byOb[ob] = name
		}
	}
	return t, nil
}
