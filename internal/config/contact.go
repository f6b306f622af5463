package config

import "time"

// ValidTransports lists the contact transports the program knows.
var ValidTransports = []string{"simulated", "webhook", "log"}

// ContactConfig configures how contact messages are delivered.
type ContactConfig struct {
	Transport       string          `yaml:"transport"` // simulated, webhook, log
	WebhookURL      string          `yaml:"webhook_url"`
	Timeout         string          `yaml:"timeout"`
	SimulatedDelay  string          `yaml:"simulated_delay"`
	SimulateFailure bool            `yaml:"simulate_failure"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles submissions. An empty interval disables it.
type RateLimitConfig struct {
	Interval string `yaml:"interval"`
	Burst    int    `yaml:"burst"`
}

// GetTimeout returns the delivery timeout as a duration.
func (c ContactConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// GetSimulatedDelay returns the simulated transport delay.
func (c ContactConfig) GetSimulatedDelay() time.Duration {
	d, err := time.ParseDuration(c.SimulatedDelay)
	if err != nil || d < 0 {
		return 1500 * time.Millisecond
	}
	return d
}

// GetSendBudget returns how long one submission may take end to end: the
// delivery timeout plus the simulated delay.
func (c ContactConfig) GetSendBudget() time.Duration {
	return c.GetTimeout() + c.GetSimulatedDelay()
}

// GetInterval returns the minimum spacing between submissions, or 0.
func (r RateLimitConfig) GetInterval() time.Duration {
	if r.Interval == "" {
		return 0
	}
	d, err := time.ParseDuration(r.Interval)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
