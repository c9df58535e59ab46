package config

import "time"

// DefaultConfig returns a Config populated with sane defaults, ready to
// use as-is or as the base for Load's viper unmarshal.
func DefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			Name:        "SimConnect Client",
			ConfigIndex: 0,
		},
		Generation:       "current",
		AutoClosing:      true,
		DispatchInterval: 10 * time.Millisecond,
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
			Output: "stdout",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "simconnect-client",
			SampleRate:  1.0,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
		Repository: RepositoryConfig{
			Path:  ".",
			Watch: false,
		},
	}
}
