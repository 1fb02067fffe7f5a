package sketch

// Config controls how sketches are analyzed and rewritten
type Config struct {
	// DigitalOutputFunc is the primitive whose call sites get instrumented
	DigitalOutputFunc string
	// LogTag is the first argument passed to the diagnostic macro
	LogTag string
	// Placeholder stands in for call arguments that are absent
	Placeholder string
}

func DefaultConfig() *Config {
	return &Config{
		DigitalOutputFunc: "digitalWrite",
		LogTag:            "TAG",
		Placeholder:       "?",
	}
}

// Normalize fills in zero-valued fields with defaults
func (c *Config) Normalize() *Config {
	if c == nil {
		return DefaultConfig()
	}
	defaults := DefaultConfig()
	if c.DigitalOutputFunc == "" {
		c.DigitalOutputFunc = defaults.DigitalOutputFunc
	}
	if c.LogTag == "" {
		c.LogTag = defaults.LogTag
	}
	if c.Placeholder == "" {
		c.Placeholder = defaults.Placeholder
	}
	return c
}
