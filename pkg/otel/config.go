// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	Metrics *MetricsConfig
	Traces  *TracesConfig
}

type MetricsConfig struct {
	Endpoint           string
	CollectionInterval time.Duration
}

type TracesConfig struct {
	Endpoint    string
	SampleRatio float64
}

const defaultCollectionInterval = 60 * time.Second

var (
	errMissingEndpoint            = errors.New("missing instrumentation endpoint")
	errInvalidSampleRatio         = errors.New("trace sample ratio must be between 0 and 1")
	errNegativeCollectionInterval = errors.New("metrics collection interval must not be negative")
)

func (c *Config) IsEnabled() bool {
	return c.Metrics != nil || c.Traces != nil
}

func (c *Config) Validate() error {
	if c.Metrics != nil {
		if c.Metrics.Endpoint == "" {
			return fmt.Errorf("metrics: %w", errMissingEndpoint)
		}
		if c.Metrics.CollectionInterval < 0 {
			return errNegativeCollectionInterval
		}
	}
	if c.Traces != nil {
		if c.Traces.Endpoint == "" {
			return fmt.Errorf("traces: %w", errMissingEndpoint)
		}
		if c.Traces.SampleRatio < 0 || c.Traces.SampleRatio > 1 {
			return errInvalidSampleRatio
		}
	}
	return nil
}

func (c *MetricsConfig) collectionInterval() time.Duration {
	if c.CollectionInterval != 0 {
		return c.CollectionInterval
	}
	return defaultCollectionInterval
}
