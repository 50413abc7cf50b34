package config

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:  "info",
			QueueSize: 100,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			CommandPath:     "/slack/atlan-setup",
			InteractivePath: "/slack/interactive",
		},
		Slack: SlackConfig{
			SigningSecret: "", // falls back to SLACK_SIGNING_SECRET at startup
		},
		Delivery: DeliveryConfig{
			ChunkLimit: 4000,
			Retries:    1,
		},
		Memory: MemoryConfig{
			Enabled:       true,
			DBPath:        "~/.healthbot/history.db",
			RetentionDays: 365,
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			Endpoint: "/metrics",
		},
	}
}
