package jdb

// Compatibility window of producer versions, inclusive on both ends.
var (
	OldestCompatible = Version{A: 0, B: 9, C: 1, D: 0}
	NewestCompatible = Version{A: 0, B: 9, C: 1, D: 255}
)

// checkVersion gates a header version against the compatibility window.
func checkVersion(v Version) error {
	switch n := v.Num(); {
	case n < OldestCompatible.Num():
		return &VersionError{Version: v, Kind: TooOld}
	case n > NewestCompatible.Num():
		return &VersionError{Version: v, Kind: TooNew}
	}
	return nil
}
