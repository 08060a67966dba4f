package jdb

import (
	"github.com/hupe1980/jdb/internal/format"
)

type grammar struct {
	app, comp, join, atom float64

	atomProbs map[Ob]float64
}

func loadGrammar(s *source, h format.Header) (grammar, error) {
	off := format.BlockOffset(h.GrammarBlock)
	obCount := int(h.ObSize)

	scalars, err := loadArrayAt(s, SectionGrammar, off, format.GrammarScalars, format.ScalarSize, format.DecodeScalar)
	if err != nil {
		return grammar{}, err
	}

	g := grammar{app: scalars[0], comp: scalars[1], join: scalars[2]}
	g.atom = 1 - (g.app + g.comp + g.join)

	probs := [...]struct {
		field string
		p     float64
	}{{"app_prob", g.app}, {"comp_prob", g.comp}, {"join_prob", g.join}, {"atom_prob", g.atom}}
	for _, pr := range probs {
		if !(pr.p > 0 && pr.p < 1) {
			return grammar{}, &ValidationError{
				Section: SectionGrammar, Index: -1, Field: pr.field, Value: pr.p,
				Reason: "out of range (0,1)",
			}
		}
	}

	weights, err := loadArrayAt(s, SectionGrammar, off+format.GrammarScalars*format.ScalarSize,
		h.WeightSize, format.WeightSize, format.DecodeWeightRecord)
	if err != nil {
		return grammar{}, err
	}

	g.atomProbs = make(map[Ob]float64, len(weights))
	for i, w := range weights {
		if !validOb(uint64(w.Ob), obCount) {
			return grammar{}, &ValidationError{
				Section: SectionGrammar, Index: i, Field: "ob", Value: w.Ob,
				Reason: obRange(obCount),
			}
		}
		p := g.atom * float64(w.Mass)
		if !(p > 0 && p <= 1) {
			return grammar{}, &ValidationError{
				Section: SectionGrammar, Index: i, Field: "probability", Value: p,
				Reason: "out of range (0,1]",
			}
		}
		// Repeated ids overwrite.
		g.atomProbs[Ob(w.Ob)] = p
	}
	return g, nil
}
