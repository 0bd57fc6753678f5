package config

import "time"

// Config holds bot configuration values.
type Config struct {
	ServerURL        string        `mapstructure:"server_url" yaml:"server_url"`
	LoginURL         string        `mapstructure:"login_url" yaml:"login_url"`
	Username         string        `mapstructure:"username" yaml:"username"`
	Password         string        `mapstructure:"password" yaml:"password"`
	Rooms            []string      `mapstructure:"rooms" yaml:"rooms"`
	CommandCharacter string        `mapstructure:"command_character" yaml:"command_character"`
	SendThrottle     time.Duration `mapstructure:"send_throttle" yaml:"send_throttle"`
	ReconnectDelay   time.Duration `mapstructure:"reconnect_delay" yaml:"reconnect_delay"`
	LogLevel         string        `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		ServerURL:        "ws://localhost:8000/showdown/websocket",
		LoginURL:         "http://localhost:8000/action.php",
		Username:         "",
		Password:         "",
		Rooms:            []string{"lobby"},
		CommandCharacter: ".",
		SendThrottle:     600 * time.Millisecond,
		ReconnectDelay:   10 * time.Second,
		LogLevel:         "info",
	}
}
