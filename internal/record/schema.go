package record

import (
	"bytes"
	"encoding/json"
)

// Columns is the ordered header of the durable log. The same order is used
// for the delivered JSON payload, so it is a wire invariant: columns are
// never renamed or reordered, schema changes append at the tail.
var Columns = [...]string{
	"Date",
	"Time",
	"NºDevices",
	"Serial",
	"Version Oculus",
	"Battery %",
	"Fast Charging?",
	"Screen State",
	"Device State",
	"Game closed?",
	"Rilix Board",
	"Arduino Programmer",
	"Arduino Port",
	"Arduino Type",
	"Default Output",
	"Volume",
	"TeamViewer Assigned?",
	"AnydeskID state",
	"Database TeamViewer ID",
	"Database KEY",
	"Database Country",
	"Max Charging Current",
	"Max Charging Voltage",
	"Charge Counter",
	"Battery Health %",
	"PID quest",
	"%CPU quest",
	"%MEM quest",
	"ARGS quest",
	"PC CPU Temp",
	"PC CPU Frequency",
	"PC CPU Load",
	"quest CPU Temp 1",
	"quest CPU Temp 2",
	"quest MD1 Temp",
	"quest IO Chip Temp",
	"License Key",
	"License Label",
	"License Activation ID",
	"License Serial MB",
	"License Serial Disk",
	"License Serial HW",
}

// FieldCount is derived from the column list, never hard-coded elsewhere.
const FieldCount = len(Columns)

// Field indices into a Record, in wire order.
const (
	FieldDate = iota
	FieldTime
	FieldDeviceCount
	FieldSerial
	FieldOculusVersion
	FieldBatteryLevel
	FieldFastCharging
	FieldScreenState
	FieldDeviceState
	FieldGameClosed
	FieldRilixBoard
	FieldProgrammer
	FieldPort
	FieldBoardType
	FieldDefaultOutput
	FieldVolume
	FieldTeamViewerAssigned
	FieldAnydeskIDState
	FieldDBTeamViewerID
	FieldDBKey
	FieldDBCountry
	FieldMaxChargingCurrent
	FieldMaxChargingVoltage
	FieldChargeCounter
	FieldBatteryHealth
	FieldQuestPID
	FieldQuestCPU
	FieldQuestMem
	FieldQuestArgs
	FieldPCCPUTemp
	FieldPCCPUFreq
	FieldPCCPULoad
	FieldQuestTemp1
	FieldQuestTemp2
	FieldQuestMD1Temp
	FieldQuestIOTemp
	FieldLicenseKey
	FieldLicenseLabel
	FieldLicenseActivationID
	FieldLicenseSerialMB
	FieldLicenseSerialDisk
	FieldLicenseSerialHW
)

// jsonKeys mirrors Columns position by position for the delivered payload.
var jsonKeys = [FieldCount]string{
	"date",
	"time",
	"device_count",
	"serial",
	"oculus_version",
	"battery_pct",
	"fast_charging",
	"screen_state",
	"device_state",
	"game_closed",
	"rilix_board",
	"arduino_programmer",
	"arduino_port",
	"arduino_type",
	"default_output",
	"volume",
	"teamviewer_assigned",
	"anydesk_id_state",
	"db_teamviewer_id",
	"db_key",
	"db_country",
	"max_charging_current",
	"max_charging_voltage",
	"charge_counter",
	"battery_health_pct",
	"quest_pid",
	"quest_cpu_pct",
	"quest_mem_pct",
	"quest_args",
	"pc_cpu_temp",
	"pc_cpu_freq",
	"pc_cpu_load",
	"quest_cpu_temp_1",
	"quest_cpu_temp_2",
	"quest_md1_temp",
	"quest_io_chip_temp",
	"license_key",
	"license_label",
	"license_activation_id",
	"license_serial_mb",
	"license_serial_disk",
	"license_serial_hw",
}

// Record is one fully populated telemetry observation. It is immutable once
// built and holds exactly one value per column.
type Record [FieldCount]string

// MarshalJSON emits the payload with keys in wire order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i := 0; i < FieldCount; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(jsonKeys[i])
		buf.WriteString(`":`)

		value, err := json.Marshal(r[i])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
