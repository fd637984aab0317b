package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.JWTIssuer == "" {
		return fmt.Errorf("auth.jwt_issuer must not be empty")
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if err := c.Timesheet.validate(); err != nil {
		return fmt.Errorf("timesheet: %w", err)
	}

	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	return nil
}

func (t *TimesheetConfig) validate() error {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", t.Timezone, err)
	}
	t.Location = loc

	if t.QueueWarningDays <= 0 {
		return fmt.Errorf("queue_warning_days must be > 0 (got %d)", t.QueueWarningDays)
	}
	if t.QueueCriticalDays <= t.QueueWarningDays {
		return fmt.Errorf("queue_critical_days must be greater than queue_warning_days (%d <= %d)",
			t.QueueCriticalDays, t.QueueWarningDays)
	}
	if t.AnomalyWindow <= 0 {
		return fmt.Errorf("anomaly_window must be > 0 (got %v)", t.AnomalyWindow)
	}
	if t.DraftRetention < 24*time.Hour {
		return fmt.Errorf("draft_retention must be at least 24h (got %v)", t.DraftRetention)
	}
	return nil
}

func (c *CacheConfig) validate() error {
	switch c.Driver {
	case CacheDriverNone:
		return nil
	case CacheDriverMemory:
		if c.Size <= 0 {
			return fmt.Errorf("size must be > 0 (got %d)", c.Size)
		}
	case CacheDriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown driver %q (want memory, redis or none)", c.Driver)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be > 0 (got %v)", c.TTL)
	}
	return nil
}
