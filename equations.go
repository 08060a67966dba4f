package jdb

import "github.com/hupe1980/jdb/internal/format"

func loadEquations(s *source, section Section, block, count uint32, obCount int) ([]Eqn, error) {
	eqns, err := loadArray(s, section, block, count, format.EqnSize, format.DecodeEqn)
	if err != nil {
		return nil, err
	}
	if err := validateEquations(section, eqns, obCount); err != nil {
		return nil, err
	}
	return eqns, nil
}

// validateEquations fails on the first record referencing an ob outside
// [1, obCount].
func validateEquations(section Section, eqns []Eqn, obCount int) error {
	for i, e := range eqns {
		fields := [...]struct {
			name string
			ob   Ob
		}{{"lhs", e.Lhs}, {"rhs", e.Rhs}, {"result", e.Result}}

		for _, f := range fields {
			if !validOb(uint64(f.ob), obCount) {
				return &ValidationError{
					Section: section, Index: i, Field: f.name, Value: f.ob,
					Reason: obRange(obCount),
				}
			}
		}
	}
	return nil
}
