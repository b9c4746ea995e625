// Package record defines the fixed telemetry schema and builds one Record
// per observation from classified signal values.
package record

// Sentinel marks a signal that could not be read. Fields are never emitted
// empty.
const Sentinel = "N/A"

// Per-field length caps tighter than the default.
const (
	maxPIDLen     = 20
	maxPercentLen = 10
	maxArgsLen    = 100
)

// Observation carries the classified and raw values of one observation, one
// field per column. Values may be empty; Build replaces empties with the
// sentinel.
type Observation struct {
	Date                string
	Time                string
	DeviceCount         string
	Serial              string
	OculusVersion       string
	BatteryLevel        string
	FastCharging        string
	ScreenState         string
	DeviceState         string
	GameClosed          string
	RilixBoard          string
	Programmer          string
	Port                string
	BoardType           string
	DefaultOutput       string
	Volume              string
	TeamViewerAssigned  string
	AnydeskIDState      string
	DBTeamViewerID      string
	DBKey               string
	DBCountry           string
	MaxChargingCurrent  string
	MaxChargingVoltage  string
	ChargeCounter       string
	BatteryHealth       string
	QuestPID            string
	QuestCPU            string
	QuestMem            string
	QuestArgs           string
	PCCPUTemp           string
	PCCPUFreq           string
	PCCPULoad           string
	QuestTemp1          string
	QuestTemp2          string
	QuestMD1Temp        string
	QuestIOTemp         string
	LicenseKey          string
	LicenseLabel        string
	LicenseActivationID string
	LicenseSerialMB     string
	LicenseSerialDisk   string
	LicenseSerialHW     string
}

// Build assembles exactly one Record from an observation. Every field is
// sanitized and no field is left empty.
func Build(o Observation) Record {
	r := Record{
		FieldDate:                o.Date,
		FieldTime:                o.Time,
		FieldDeviceCount:         o.DeviceCount,
		FieldSerial:              o.Serial,
		FieldOculusVersion:       o.OculusVersion,
		FieldBatteryLevel:        o.BatteryLevel,
		FieldFastCharging:        o.FastCharging,
		FieldScreenState:         o.ScreenState,
		FieldDeviceState:         o.DeviceState,
		FieldGameClosed:          o.GameClosed,
		FieldRilixBoard:          o.RilixBoard,
		FieldProgrammer:          o.Programmer,
		FieldPort:                o.Port,
		FieldBoardType:           o.BoardType,
		FieldDefaultOutput:       o.DefaultOutput,
		FieldVolume:              o.Volume,
		FieldTeamViewerAssigned:  o.TeamViewerAssigned,
		FieldAnydeskIDState:      o.AnydeskIDState,
		FieldDBTeamViewerID:      o.DBTeamViewerID,
		FieldDBKey:               o.DBKey,
		FieldDBCountry:           o.DBCountry,
		FieldMaxChargingCurrent:  o.MaxChargingCurrent,
		FieldMaxChargingVoltage:  o.MaxChargingVoltage,
		FieldChargeCounter:       o.ChargeCounter,
		FieldBatteryHealth:       o.BatteryHealth,
		FieldQuestPID:            o.QuestPID,
		FieldQuestCPU:            o.QuestCPU,
		FieldQuestMem:            o.QuestMem,
		FieldQuestArgs:           o.QuestArgs,
		FieldPCCPUTemp:           o.PCCPUTemp,
		FieldPCCPUFreq:           o.PCCPUFreq,
		FieldPCCPULoad:           o.PCCPULoad,
		FieldQuestTemp1:          o.QuestTemp1,
		FieldQuestTemp2:          o.QuestTemp2,
		FieldQuestMD1Temp:        o.QuestMD1Temp,
		FieldQuestIOTemp:         o.QuestIOTemp,
		FieldLicenseKey:          o.LicenseKey,
		FieldLicenseLabel:        o.LicenseLabel,
		FieldLicenseActivationID: o.LicenseActivationID,
		FieldLicenseSerialMB:     o.LicenseSerialMB,
		FieldLicenseSerialDisk:   o.LicenseSerialDisk,
		FieldLicenseSerialHW:     o.LicenseSerialHW,
	}

	for i := range r {
		r[i] = SanitizeN(r[i], fieldMaxLen(i))
		if r[i] == "" {
			r[i] = Sentinel
		}
	}

	return r
}

func fieldMaxLen(field int) int {
	switch field {
	case FieldQuestPID:
		return maxPIDLen
	case FieldQuestCPU, FieldQuestMem:
		return maxPercentLen
	case FieldQuestArgs:
		return maxArgsLen
	default:
		return defaultMaxFieldLen
	}
}
