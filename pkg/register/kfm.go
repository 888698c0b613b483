package register

// kfmDictionary keys the KFM_001 register set. KFM_001 carries no OBIS
// codes on the wire at all — Interpret assigns them by position, using one
// of the sequences below, chosen by HDLC frame type, then looks the
// assigned code up here exactly as it would for a wire-native code.
var kfmDictionary = Dictionary{
	"1-0:1.7.0.255":   {Key: "power_active_import", Description: "Active power+ (Q1+Q4)", Unit: "W", Factor: 1},
	"1-0:2.7.0.255":   {Key: "power_active_export", Description: "Active power- (Q2+Q3)", Unit: "W", Factor: 1},
	"1-0:3.7.0.255":   {Key: "power_reactive_import", Description: "Reactive power+ (Q1+Q2)", Unit: "VAr", Factor: 1},
	"1-0:4.7.0.255":   {Key: "power_reactive_export", Description: "Reactive power- (Q3+Q4)", Unit: "VAr", Factor: 1},
	"1-0:31.7.0.255":  {Key: "current_l1", Description: "L1 current", Unit: "A", Factor: 0.001},
	"1-0:51.7.0.255":  {Key: "current_l2", Description: "L2 current", Unit: "A", Factor: 0.001},
	"1-0:71.7.0.255":  {Key: "current_l3", Description: "L3 current", Unit: "A", Factor: 0.001},
	"1-0:32.7.0.255":  {Key: "voltage_l1", Description: "L1 voltage", Unit: "V", Factor: 0.1},
	"1-0:52.7.0.255":  {Key: "voltage_l2", Description: "L2 voltage", Unit: "V", Factor: 0.1},
	"1-0:72.7.0.255":  {Key: "voltage_l3", Description: "L3 voltage", Unit: "V", Factor: 0.1},
	"1-0:1.8.0.255":   {Key: "energy_active_import", Description: "Active energy+ (Q1+Q4)", Unit: "Wh", Factor: 1},
	"1-0:2.8.0.255":   {Key: "energy_active_export", Description: "Active energy- (Q2+Q3)", Unit: "Wh", Factor: 1},
	"1-0:3.8.0.255":   {Key: "energy_reactive_import", Description: "Reactive energy+ (Q1+Q2)", Unit: "VArh", Factor: 1},
	"1-0:4.8.0.255":   {Key: "energy_reactive_export", Description: "Reactive energy- (Q3+Q4)", Unit: "VArh", Factor: 1},
	"1-1:0.2.129.255": {Key: "obis_version", Description: "OBIS list version identifier"},
	"0-0:96.1.0.255":  {Key: "meter_id", Description: "Meter serial number"},
	"0-0:96.1.7.255":  {Key: "meter_type", Description: "Meter type"},
	"0-0:1.0.0.255":   {Key: "clock", Description: "Meter clock"},
}

// kfmList1 is the position-to-OBIS assignment for HDLC frame type 7.
var kfmList1 = []string{"1-0:1.7.0.255"}

// kfmList2 is the base position-to-OBIS assignment for HDLC frame types
// 8, 9, 10, 11, shared by List 2 and the first 13 elements of List 3.
var kfmList2 = []string{
	"1-1:0.2.129.255",
	"0-0:96.1.0.255",
	"0-0:96.1.7.255",
	"1-0:1.7.0.255",
	"1-0:2.7.0.255",
	"1-0:3.7.0.255",
	"1-0:4.7.0.255",
	"1-0:31.7.0.255",
	"1-0:51.7.0.255",
	"1-0:71.7.0.255",
	"1-0:32.7.0.255",
	"1-0:52.7.0.255",
	"1-0:72.7.0.255",
}

// kfmList3Extra is appended to kfmList2 for HDLC frame types 10 and 11.
var kfmList3Extra = []string{
	"0-0:1.0.0.255",
	"1-0:1.8.0.255",
	"1-0:2.8.0.255",
	"1-0:3.8.0.255",
	"1-0:4.8.0.255",
}

// kfmKeySequence returns the OBIS assignment sequence for a given HDLC
// frame type, or nil if the frame type carries no KFM_001 register list.
func kfmKeySequence(frameType uint8) []string {
	switch frameType {
	case 7:
		return kfmList1
	case 8, 9:
		return kfmList2
	case 10, 11:
		seq := make([]string, 0, len(kfmList2)+len(kfmList3Extra))
		seq = append(seq, kfmList2...)
		seq = append(seq, kfmList3Extra...)
		return seq
	default:
		return nil
	}
}
