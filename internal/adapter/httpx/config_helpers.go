package httpx

import "time"

// BuildRetryConfig creates a RetryConfig from the tracker's HTTP settings,
// falling back to DefaultRetryConfig for anything left at the zero value.
func BuildRetryConfig(maxRetries int, initialBackoff, maxBackoff string, multiplier float64) RetryConfig {
	def := DefaultRetryConfig()

	cfg := RetryConfig{
		MaxRetries:     def.MaxRetries,
		InitialBackoff: def.InitialBackoff,
		MaxBackoff:     def.MaxBackoff,
		Multiplier:     def.Multiplier,
	}
	if maxRetries > 0 {
		cfg.MaxRetries = maxRetries
	}
	if d, err := time.ParseDuration(initialBackoff); err == nil && d > 0 {
		cfg.InitialBackoff = d
	}
	if d, err := time.ParseDuration(maxBackoff); err == nil && d > 0 {
		cfg.MaxBackoff = d
	}
	if multiplier > 0 {
		cfg.Multiplier = multiplier
	}
	return cfg
}
