// internal/config/config.go
package config

type Config struct {
	Bridge BridgeConfig `yaml:"bridge"`
}

type BridgeConfig struct {
	LogLevel     string             `yaml:"log_level"`
	HTTP         HTTPConfig         `yaml:"http"`
	StatusMemory StatusMemoryConfig `yaml:"status_memory"`
	Units        []UnitConfig       `yaml:"units"`
}

// ---- HTTP ----

// HTTPConfig enables the button surface. An empty Listen disables it.
type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

// ---- STATUS MEMORY ----

// StatusMemoryConfig locates the status memory. Endpoints take the same
// forms as a source endpoint.
type StatusMemoryConfig struct {
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"`
	BaudRate  int    `yaml:"baud_rate"` // rtu only
}

// ---- UNIT ----

type UnitConfig struct {
	ID          string            `yaml:"id"`
	Remote      RemoteConfig      `yaml:"remote"`
	Transmitter TransmitterConfig `yaml:"transmitter"`

	// Desired-state source (optional, opt-in)
	Source *SourceConfig `yaml:"source"`
	Poll   PollConfig    `yaml:"poll"`

	// Status block (optional, opt-in)
	Status *StatusConfig `yaml:"status"`
}

// ---- REMOTE ----

// RemoteConfig is the initial appliance state. Enumerations are given by
// name ("cool", "high", "2h30m").
type RemoteConfig struct {
	Temperature int    `yaml:"temperature"`
	Mode        string `yaml:"mode"`
	FanSpeed    string `yaml:"fan_speed"`
	TimerOn     string `yaml:"timer_on"`
	TimerOff    string `yaml:"timer_off"`
	Power       bool   `yaml:"power"`
	Pin         int    `yaml:"pin"`
}

// ---- TRANSMITTER ----

const (
	DriverLirc = "lirc"
	DriverGPIO = "gpio"
	DriverDump = "dump"
)

type TransmitterConfig struct {
	Driver    string `yaml:"driver"`     // lirc | gpio | dump
	Device    string `yaml:"device"`     // lirc only
	DutyCycle int    `yaml:"duty_cycle"` // lirc only, percent
	GPIOLine  *int   `yaml:"gpio_line"`  // gpio only, sysfs line number
}

// ---- SOURCE ----

// SourceConfig locates the desired-state register block. Endpoints are
// host:port for Modbus TCP or rtu:///dev/ttyX for Modbus RTU.
type SourceConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	Address   uint16 `yaml:"address"`
	TimeoutMs int    `yaml:"timeout_ms"`
	BaudRate  int    `yaml:"baud_rate"` // rtu only
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- STATUS ----

type StatusConfig struct {
	UnitID     uint8  `yaml:"unit_id"`
	Slot       uint16 `yaml:"slot"`
	DeviceName string `yaml:"device_name"`
}
