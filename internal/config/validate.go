package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRepair(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRepair() error {
	if c.Repair.FrameRate <= 0 {
		return errors.New("repair.frame_rate must be greater than zero")
	}
	if c.Repair.CorruptionThreshold <= 0 {
		return errors.New("repair.corruption_threshold must be greater than zero")
	}
	suffix := strings.TrimSpace(c.Repair.OutputSuffix)
	if suffix == "" {
		return errors.New("repair.output_suffix must be set; writing over the input is not supported")
	}
	if strings.ContainsAny(suffix, `/\`) {
		return fmt.Errorf("repair.output_suffix %q must not contain path separators", suffix)
	}
	c.Repair.OutputSuffix = suffix
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of console, json", c.Logging.Format)
	}
	return nil
}
