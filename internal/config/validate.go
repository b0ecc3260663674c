package config

// ValidateForRun checks everything the service cannot start without.
// The holiday calendar URL is deliberately optional: without it the
// service runs on injected calendars alone.
func ValidateForRun(cfg *Config) error {
	return cfg.Redis.Validate()
}
