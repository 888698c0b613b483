package register

import (
	"fmt"
	"math"

	"github.com/ambientsound/han-telemetry-decoder/pkg/cosem"
)

// meterClockOBIS is the OBIS code the interpreter renders as a clock string
// rather than a bare numeric or octet reading, per §4.4 step 2.
const meterClockOBIS = "0-0:1.0.0.255"

// Reading is one labelled measurement in the emitted data map.
type Reading struct {
	ObisCode    string      `json:"obis_code"`
	Value       interface{} `json:"value"`
	Description string      `json:"description,omitempty"`
	Unit        string      `json:"unit,omitempty"`
}

// Interpreter converts a decoded COSEM value tree into a flat map of
// labelled measurements, using a fixed vendor dictionary.
type Interpreter struct {
	Vendor     VendorMap
	Dictionary Dictionary
}

// NewInterpreter looks up the dictionary for vendor and returns a ready
// Interpreter, or ErrUnsupportedVendor if vendor names none of the three
// known schemas.
func NewInterpreter(vendor VendorMap) (*Interpreter, error) {
	dict, err := LookupDictionary(vendor)
	if err != nil {
		return nil, err
	}
	return &Interpreter{Vendor: vendor, Dictionary: dict}, nil
}

// Interpret pairs the top-level COSEM value list with OBIS identifiers
// according to the interpreter's vendor shape and returns the flat keyed
// measurement map.
func (in *Interpreter) Interpret(values []cosem.Value, frameType uint8) (map[string]Reading, error) {
	body := selectBody(values)

	switch in.Vendor {
	case AidonV0001:
		return in.interpretAidon(body)
	case KamstrupV0001:
		return in.interpretKamstrup(body)
	case KFM001:
		return in.interpretKFM(body, frameType)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVendor, in.Vendor)
	}
}

// selectBody applies the "payload is [timestamp, body]" shape from §4.4:
// when the payload carries two or more top-level values the body is the
// second one; a single top-level value (as in a payload with no separate
// timestamp entry, e.g. a bare register array) is its own body.
func selectBody(values []cosem.Value) cosem.Value {
	switch len(values) {
	case 0:
		return cosem.Array(nil)
	case 1:
		return values[0]
	default:
		return values[1]
	}
}

// containerElements returns the ordered elements of an Array or Structure,
// or a single-element slice for any other value — the generic COSEM tree
// has no other way to carry an ordered sequence of registers.
func containerElements(v cosem.Value) []cosem.Value {
	switch t := v.(type) {
	case cosem.Array:
		return t
	case cosem.Structure:
		return t
	default:
		return []cosem.Value{v}
	}
}

func (in *Interpreter) interpretAidon(body cosem.Value) (map[string]Reading, error) {
	out := make(map[string]Reading)
	for _, reg := range containerElements(body) {
		s, ok := reg.(cosem.Structure)
		if !ok || len(s) < 2 {
			continue
		}
		obisRaw, ok := s[0].(cosem.OctetString)
		if !ok {
			continue
		}
		code, ok := cosem.ParseOBIS(obisRaw)
		if !ok {
			continue
		}
		var scalerUnit cosem.Structure
		if len(s) >= 3 {
			scalerUnit, _ = s[2].(cosem.Structure)
		}
		key, reading := in.buildReading(code.String(), s[1], scalerUnit)
		out[key] = reading
	}
	return out, nil
}

// interpretKamstrup synthesises a leading obis_version entry from the
// body's first element, then pairs the remaining elements two at a time.
func (in *Interpreter) interpretKamstrup(body cosem.Value) (map[string]Reading, error) {
	elems := containerElements(body)
	out := make(map[string]Reading)
	if len(elems) == 0 {
		return out, nil
	}

	versionKey, versionReading := in.buildReading("1-1:0.2.129.255", elems[0], nil)
	out[versionKey] = versionReading

	rest := elems[1:]
	for i := 0; i+1 < len(rest); i += 2 {
		obisRaw, ok := rest[i].(cosem.OctetString)
		if !ok {
			continue
		}
		code, ok := cosem.ParseOBIS(obisRaw)
		if !ok {
			continue
		}
		key, reading := in.buildReading(code.String(), rest[i+1], nil)
		out[key] = reading
	}
	return out, nil
}

// interpretKFM assigns OBIS identity by position, per frame type, since the
// wire carries no OBIS codes at all for this vendor.
func (in *Interpreter) interpretKFM(body cosem.Value, frameType uint8) (map[string]Reading, error) {
	elems := containerElements(body)
	seq := kfmKeySequence(frameType)
	out := make(map[string]Reading)
	for i, v := range elems {
		if i >= len(seq) {
			break
		}
		key, reading := in.buildReading(seq[i], v, nil)
		out[key] = reading
	}
	return out, nil
}

// buildReading resolves one (obisCode, wireValue, scalerUnit) triple into
// the canonical map key and its Reading, per §4.4 steps 1-5.
func (in *Interpreter) buildReading(obisStr string, wire cosem.Value, scalerUnit cosem.Structure) (string, Reading) {
	entry, known := in.Dictionary[obisStr]

	if obisStr == meterClockOBIS {
		if raw, ok := wire.(cosem.OctetString); ok {
			if s, err := cosem.RenderClock(raw); err == nil {
				reading := Reading{ObisCode: obisStr, Value: s}
				if known {
					reading.Description = entry.Description
					return entry.Key, reading
				}
				return obisStr, reading
			}
		}
	}

	var factor float64 = 1
	var unit string
	switch {
	case len(scalerUnit) == 2:
		if exp, ok := scalerUnit[0].(cosem.I8); ok {
			factor = math.Pow(10, float64(exp))
		}
		if u, ok := scalerUnit[1].(cosem.Enum); ok {
			unit = UnitSymbol(uint8(u))
		}
	case known:
		factor = entry.Factor
		if factor == 0 {
			factor = 1
		}
		unit = entry.Unit
	}

	reading := Reading{ObisCode: obisStr, Unit: unit}
	if n, ok := numericValue(wire); ok {
		reading.Value = n * factor
	} else if s, ok := stringValue(wire); ok {
		reading.Value = s
	} else {
		reading.Value = wire
	}

	if !known {
		return obisStr, reading
	}
	reading.Description = entry.Description
	return entry.Key, reading
}

// numericValue extracts a float64 out of any COSEM numeric variant this
// module decodes, matching the widths §3 restricts a HAN meter to.
func numericValue(v cosem.Value) (float64, bool) {
	switch t := v.(type) {
	case cosem.U32:
		return float64(t), true
	case cosem.I16:
		return float64(t), true
	case cosem.U16:
		return float64(t), true
	case cosem.I8:
		return float64(t), true
	case cosem.Enum:
		return float64(t), true
	default:
		return 0, false
	}
}

func stringValue(v cosem.Value) (string, bool) {
	switch t := v.(type) {
	case cosem.VisibleString:
		return string(t), true
	case cosem.UTF8String:
		return string(t), true
	case cosem.OctetString:
		return fmt.Sprintf("%X", []byte(t)), true
	default:
		return "", false
	}
}
