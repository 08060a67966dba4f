package jdb

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/jdb/internal/format"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			&ValidationError{Section: SectionJoin, Index: 7, Field: "lhs", Value: Ob(0), Reason: obRange(5)},
			"jdb: join equation 7: lhs=0 out of range [1,5]",
		},
		{
			&ValidationError{Section: SectionHeader, Index: -1, Field: "app_size", Value: uint32(10), Reason: "exceeds 9"},
			"jdb: header: app_size=10 exceeds 9",
		},
		{
			&ValidationError{Section: SectionGrammar, Index: 2, Field: "probability", Value: 1.5, Reason: "out of range (0,1]"},
			"jdb: weight 2: probability=1.5 out of range (0,1]",
		},
		{
			&ValidationError{Section: SectionNames, Index: 0, Field: "name", Value: "", Reason: "is empty"},
			`jdb: name 0: name="" is empty`,
		},
		{
			&VersionError{Version: Version{A: 0, B: 9, C: 2, D: 0}, Kind: TooNew},
			"jdb: version 0.9.2.0 is too new (compatible 0.9.1.0..0.9.1.255)",
		},
		{
			&IOError{Op: "read", Section: SectionComp, Offset: 512, Err: io.ErrUnexpectedEOF},
			"jdb: read comp at offset 512: unexpected EOF",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	assert.ErrorIs(t, &VersionError{Kind: TooOld}, ErrIncompatibleVersion)
	assert.ErrorIs(t, &ValidationError{}, ErrInvalid)
	assert.NotErrorIs(t, &ValidationError{}, ErrIncompatibleVersion)

	wrapped := fmt.Errorf("loading kb: %w", &IOError{Op: "read", Err: io.ErrUnexpectedEOF})
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)

	var ioErr *IOError
	assert.True(t, errors.As(wrapped, &ioErr))
}

func TestVersionKindString(t *testing.T) {
	assert.Equal(t, "too old", TooOld.String())
	assert.Equal(t, "too new", TooNew.String())
	assert.Equal(t, "VersionKind(9)", VersionKind(9).String())
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, checkVersion(OldestCompatible))
	assert.NoError(t, checkVersion(NewestCompatible))
	assert.ErrorIs(t, checkVersion(Version{A: 0, B: 9, C: 0, D: 255}), ErrIncompatibleVersion)
	assert.ErrorIs(t, checkVersion(Version{A: 0, B: 9, C: 2, D: 0}), ErrIncompatibleVersion)
}

func TestValidateHeader(t *testing.T) {
	h := format.Header{ObSize: 3, AppSize: 9, CompSize: 9, JoinSize: 6, WeightSize: 3, BasisSize: 3}
	assert.NoError(t, validateHeader(h))

	h.JoinSize = 7
	var verr *ValidationError
	assert.ErrorAs(t, validateHeader(h), &verr)
	assert.Equal(t, "join_size", verr.Field)

	// The largest universe does not overflow the bounds.
	big := format.Header{ObSize: format.MaxOb, AppSize: format.MaxOb * format.MaxOb, JoinSize: format.MaxOb * (format.MaxOb + 1) / 2}
	assert.NoError(t, validateHeader(big))

	big.AppSize = ^uint32(0)
	assert.ErrorAs(t, validateHeader(big), &verr)
	assert.Equal(t, "app_size", verr.Field)
}

func TestValidOb(t *testing.T) {
	assert.False(t, validOb(0, 3))
	assert.True(t, validOb(1, 3))
	assert.True(t, validOb(3, 3))
	assert.False(t, validOb(4, 3))
	assert.False(t, validOb(1, 0))
}
