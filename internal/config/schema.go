package config

type Log struct {
	LogLevel string `mapstructure:"level" json:"level" yaml:"level" validate:"oneof=DEBUG INFO WARN ERROR" jsonschema:"enum=DEBUG,enum=INFO,enum=WARN,enum=ERROR,default=INFO"`
	LogFile  string `mapstructure:"file" json:"file,omitempty" yaml:"file" jsonschema:"description=Log file path. Logs go to stderr when empty"`
}

type History struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled" jsonschema:"default=true"`
	DBPath  string `mapstructure:"dbPath" json:"dbPath,omitempty" yaml:"dbPath" jsonschema:"description=SQLite database for the call history. Defaults to $XDG_DATA_HOME/rendertools/history.db"`
}

type ConfigSchema struct {
	Log     Log     `mapstructure:"log" json:"log" yaml:"log"`
	History History `mapstructure:"history" json:"history" yaml:"history"`

	// Internal fields for printing
	sources map[string][]configSource
}
