// Package register turns a decoded COSEM value tree into a flat map of
// labelled measurements, using one of three vendor/version register
// dictionaries selected at configuration time.
package register

import (
	"errors"
	"fmt"
)

// VendorMap selects which register dictionary and payload-pairing rule the
// Interpreter applies.
type VendorMap string

const (
	AidonV0001    VendorMap = "AIDON_V0001"
	KamstrupV0001 VendorMap = "Kamstrup_V0001"
	KFM001        VendorMap = "KFM_001"
)

// ErrUnsupportedVendor is returned by LookupDictionary and reported at
// configuration time, before the pipeline starts.
var ErrUnsupportedVendor = errors.New("register: unsupported vendor map")

// DictEntry describes a single OBIS code's meaning: the canonical key it is
// emitted under, a human description, its default unit symbol, and the
// factor applied to its raw numeric value absent a scaler-unit pair on the
// wire.
type DictEntry struct {
	Key         string
	Description string
	Unit        string
	Factor      float64
}

// Dictionary maps an OBIS code string to its DictEntry.
type Dictionary map[string]DictEntry

// LookupDictionary returns the static dictionary for a vendor/version tag.
func LookupDictionary(v VendorMap) (Dictionary, error) {
	switch v {
	case AidonV0001:
		return aidonDictionary, nil
	case KamstrupV0001:
		return kamstrupDictionary, nil
	case KFM001:
		return kfmDictionary, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVendor, v)
	}
}
