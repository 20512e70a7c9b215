package config

// Storage selects the key-value backend that holds the task list.
type Storage struct {
	Backend string `yaml:"backend"`
	// Path is relative to the data directory unless absolute.
	// Empty means the backend's default file name.
	Path string `yaml:"path,omitempty"`
}

// UI holds presentation settings for the terminal UI and list output.
type UI struct {
	Width    int  `yaml:"width"`
	Color    bool `yaml:"color"`
	ShowDate bool `yaml:"date"`
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level"`
}

// Config represents the <dir>/config.yaml file.
type Config struct {
	Storage Storage `yaml:"storage"`
	UI      UI      `yaml:"ui"`
	Log     Log     `yaml:"log"`
}

// Storage backend values.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)
