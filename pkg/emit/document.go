// Package emit builds the JSON document produced for each decoded frame and
// dispatches it to one or more sinks.
package emit

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ambientsound/han-telemetry-decoder/pkg/cosem"
	"github.com/ambientsound/han-telemetry-decoder/pkg/hdlc"
	"github.com/ambientsound/han-telemetry-decoder/pkg/register"
)

// Header mirrors the HDLC/LLC/APDU fields of a decoded frame, hex-encoded
// where the wire value is more useful to a reader as hex than as decimal.
type Header struct {
	HDLCLength       uint16 `json:"hdlc_length"`
	HDLCSegmentation uint8  `json:"hdlc_segmentation"`
	HDLCType         uint8  `json:"hdlc_type"`
	HDLCFrameFormat  string `json:"hdlc_frame_format"`
	HDLCAddrClient   string `json:"hdlc_addr_client"`
	HDLCAddrServer   string `json:"hdlc_addr_server"`
	HDLCControl      string `json:"hdlc_control"`
	HDLCHCS          string `json:"hdlc_hcs"`
	LLCDstSvcAP      string `json:"llc_dst_svc_ap"`
	LLCSrcSvcAP      string `json:"llc_src_svc_ap"`
	LLCControl       string `json:"llc_control"`
	APDUTag          string `json:"apdu_tag"`
	APDUInvokeID     string `json:"apdu_invoke_id_and_priority"`
	HDLCFCS          string `json:"hdlc_fcs"`
}

// Document is the JSON shape emitted once per decoded frame: the link-layer
// header, the raw COSEM value tree (octet-strings rendered as hex so the
// document stays valid UTF-8 JSON), and the interpreted measurement map.
type Document struct {
	Header  Header                       `json:"header"`
	Payload []interface{}                `json:"payload"`
	Data    map[string]register.Reading  `json:"data"`
}

// segmentationBit renders a bool as the 0/1 the wire format uses.
func segmentationBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// BuildDocument assembles a Document from a validated frame and its
// interpreted register map.
func BuildDocument(frame *hdlc.DecodedFrame, values []cosem.Value, data map[string]register.Reading) Document {
	frameFormat := uint16(frame.Type)<<12 | boolBit(frame.Segmentation)<<11 | (frame.Length & 0x07FF)

	return Document{
		Header: Header{
			HDLCLength:       frame.Length,
			HDLCSegmentation: segmentationBit(frame.Segmentation),
			HDLCType:         frame.Type,
			HDLCFrameFormat:  hexUint16(frameFormat),
			HDLCAddrClient:   hexBytes(frame.ClientAddr),
			HDLCAddrServer:   hexBytes(frame.ServerAddr),
			HDLCControl:      hexByte(frame.Control),
			HDLCHCS:          hexUint16(frame.HCS),
			LLCDstSvcAP:      hexByte(frame.LLCDestSAP),
			LLCSrcSvcAP:      hexByte(frame.LLCSrcSAP),
			LLCControl:       hexByte(frame.LLCControl),
			APDUTag:          hexByte(frame.APDUTag),
			APDUInvokeID:     hexUint32(frame.InvokeIDAndPriority),
			HDLCFCS:          hexUint16(frame.FCS),
		},
		Payload: renderValues(values),
		Data:    data,
	}
}

func boolBit(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

func hexByte(b byte) string    { return fmt.Sprintf("0x%02X", b) }
func hexUint16(v uint16) string { return fmt.Sprintf("0x%04X", v) }
func hexUint32(v uint32) string { return fmt.Sprintf("0x%08X", v) }
func hexBytes(b []byte) string  { return "0x" + hex.EncodeToString(b) }

// renderValues turns a decoded COSEM value tree into a JSON-friendly
// structure, hex-encoding octet-strings so the document remains printable
// even when a register's raw value isn't text.
func renderValues(values []cosem.Value) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = renderValue(v)
	}
	return out
}

func renderValue(v cosem.Value) interface{} {
	switch t := v.(type) {
	case cosem.Null:
		return nil
	case cosem.Array:
		return renderValues([]cosem.Value(t))
	case cosem.Structure:
		return renderValues([]cosem.Value(t))
	case cosem.U32:
		return uint32(t)
	case cosem.OctetString:
		return hexBytes([]byte(t))
	case cosem.VisibleString:
		return string(t)
	case cosem.UTF8String:
		return string(t)
	case cosem.I8:
		return int8(t)
	case cosem.I16:
		return int16(t)
	case cosem.U16:
		return uint16(t)
	case cosem.Enum:
		return uint8(t)
	default:
		return nil
	}
}

// Marshal renders a Document as pretty-printed JSON (two-space indent,
// matching the teacher's json.MarshalIndent usage) or compact one-line JSON
// with sorted keys. encoding/json sorts map keys by default, so Data's
// canonical-key ordering is stable in both modes; pretty output keeps the
// struct field order for the document and header, while compact output is
// re-decoded into generic maps so every object's keys come out sorted.
func Marshal(doc Document, compact bool) ([]byte, error) {
	if !compact {
		return json.MarshalIndent(doc, "", "  ")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
