package register

// kamstrupDictionary keys the Kamstrup_V0001 register set. Kamstrup meters
// report the same logical measurements as Aidon's under the same OBIS
// addresses; the interpreter pairs wire values with codes differently (see
// interpretKamstrup). Unlike the Aidon dictionary, this one has no meter
// type entry (0-0:42.0.0.255).
var kamstrupDictionary = Dictionary{
	"1-1:0.2.129.255": {Key: "obis_version", Description: "OBIS list version identifier"},
	"1-0:1.7.0.255":   {Key: "power_active_import", Description: "Active power+ (Q1+Q4)", Unit: "W", Factor: 1},
	"1-0:2.7.0.255":   {Key: "power_active_export", Description: "Active power- (Q2+Q3)", Unit: "W", Factor: 1},
	"1-0:3.7.0.255":   {Key: "power_reactive_import", Description: "Reactive power+ (Q1+Q2)", Unit: "VAr", Factor: 1},
	"1-0:4.7.0.255":   {Key: "power_reactive_export", Description: "Reactive power- (Q3+Q4)", Unit: "VAr", Factor: 1},
	"1-0:31.7.0.255":  {Key: "current_l1", Description: "L1 current", Unit: "A", Factor: 1},
	"1-0:51.7.0.255":  {Key: "current_l2", Description: "L2 current", Unit: "A", Factor: 1},
	"1-0:71.7.0.255":  {Key: "current_l3", Description: "L3 current", Unit: "A", Factor: 1},
	"1-0:32.7.0.255":  {Key: "voltage_l1", Description: "L1 voltage", Unit: "V", Factor: 1},
	"1-0:52.7.0.255":  {Key: "voltage_l2", Description: "L2 voltage", Unit: "V", Factor: 1},
	"1-0:72.7.0.255":  {Key: "voltage_l3", Description: "L3 voltage", Unit: "V", Factor: 1},
	"1-0:1.8.0.255":   {Key: "energy_active_import", Description: "Active energy+ (Q1+Q4)", Unit: "Wh", Factor: 1},
	"1-0:2.8.0.255":   {Key: "energy_active_export", Description: "Active energy- (Q2+Q3)", Unit: "Wh", Factor: 1},
	"1-0:3.8.0.255":   {Key: "energy_reactive_import", Description: "Reactive energy+ (Q1+Q2)", Unit: "VArh", Factor: 1},
	"1-0:4.8.0.255":   {Key: "energy_reactive_export", Description: "Reactive energy- (Q3+Q4)", Unit: "VArh", Factor: 1},
	"0-0:1.0.0.255":   {Key: "clock", Description: "Meter clock"},
	"0-0:96.1.0.255":  {Key: "meter_id", Description: "Meter serial number"},
}
