package types

// ConverterConfig holds settings for the external conversion process.
type ConverterConfig struct {
	// Command is the converter command line, e.g. "node node-backend/convert.cjs".
	// It is split shell-style; the argument sequence is appended after it.
	Command string `json:"command" yaml:"command" mapstructure:"command"`

	// LockFile, when set, is an advisory lock held for the duration of each
	// converter invocation.
	LockFile string `json:"lock_file,omitempty" yaml:"lock_file,omitempty" mapstructure:"lock_file"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Dir is the directory containing history.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Disabled turns off history recording.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// Config groups all media-shell settings.
type Config struct {
	Converter ConverterConfig `json:"converter" yaml:"converter" mapstructure:"converter"`
	History   HistoryConfig   `json:"history" yaml:"history" mapstructure:"history"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConverterCommand is used when no converter command is configured.
const DefaultConverterCommand = "node node-backend/convert.cjs"
