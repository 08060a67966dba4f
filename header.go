package jdb

import (
	"fmt"

	"github.com/hupe1980/jdb/internal/format"
)

func decodeHeader(b []byte) format.Header {
	// loadArrayAt always hands over exactly HeaderSize bytes.
	h, _ := format.DecodeHeader(b)
	return h
}

func readHeader(s *source) (format.Header, error) {
	hs, err := loadArrayAt(s, SectionHeader, 0, 1, format.HeaderSize, decodeHeader)
	if err != nil {
		return format.Header{}, err
	}
	return hs[0], nil
}

// validateHeader checks the section sizes against the ob universe before any
// section is read.
func validateHeader(h format.Header) error {
	if h.ObSize > format.MaxOb {
		return &ValidationError{
			Section: SectionHeader, Index: -1, Field: "ob_size", Value: h.ObSize,
			Reason: fmt.Sprintf("exceeds %d", format.MaxOb),
		}
	}

	ob := uint64(h.ObSize)
	bounds := []struct {
		field string
		size  uint32
		limit uint64
	}{
		{"app_size", h.AppSize, ob * ob},
		{"comp_size", h.CompSize, ob * ob},
		{"join_size", h.JoinSize, ob * (ob + 1) / 2},
		{"weight_size", h.WeightSize, ob},
		{"basis_size", h.BasisSize, ob},
	}
	for _, b := range bounds {
		if uint64(b.size) > b.limit {
			return &ValidationError{
				Section: SectionHeader, Index: -1, Field: b.field, Value: b.size,
				Reason: fmt.Sprintf("exceeds %d", b.limit),
			}
		}
	}
	return nil
}
