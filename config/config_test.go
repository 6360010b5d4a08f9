package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prodcon/errors"
)

func TestDefaultValidatesAfterParseArgs(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ParseArgs([]string{"5", "10", "3", "2"}))

	assert.Equal(t, 5, cfg.Capacity)
	assert.Equal(t, 10, cfg.ItemsPerWorker)
	assert.Equal(t, 3, cfg.Producers)
	assert.Equal(t, 2, cfg.Consumers)
	assert.Equal(t, 500*time.Millisecond, cfg.ProducerRetryDelay)
	assert.Equal(t, 5000*time.Millisecond, cfg.ConsumerMaxWait)
	assert.Equal(t, "producer-consumer.txt", cfg.LogPath)
}

func TestParseArgsRejectsWrongArity(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"5"},
		{"5", "10"},
		{"5", "10", "3"},
		{"5", "10", "3", "2", "1"},
	} {
		cfg := Default()
		err := cfg.ParseArgs(args)
		require.Error(t, err)
		assert.True(t, errors.IsInvalid(err))
	}
}

func TestParseArgsRejectsNonIntegers(t *testing.T) {
	for _, args := range [][]string{
		{"five", "10", "3", "2"},
		{"5", "10.5", "3", "2"},
		{"5", "10", "", "2"},
		{"5", "10", "3", "dos"},
	} {
		cfg := Default()
		err := cfg.ParseArgs(args)
		require.Error(t, err)
		assert.True(t, errors.IsInvalid(err))
	}
}

func TestParseArgsRejectsNonPositiveValues(t *testing.T) {
	for _, args := range [][]string{
		{"0", "10", "3", "2"},
		{"-1", "10", "3", "2"},
		{"5", "0", "3", "2"},
		{"5", "10", "0", "2"},
		{"5", "10", "3", "-7"},
	} {
		cfg := Default()
		err := cfg.ParseArgs(args)
		require.Error(t, err)
		assert.True(t, errors.IsInvalid(err))
	}
}

func TestValidateTimingAndOutput(t *testing.T) {
	base := Default()
	require.NoError(t, base.ParseArgs([]string{"5", "10", "3", "2"}))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero retry delay", func(c *Config) { c.ProducerRetryDelay = 0 }},
		{"zero max wait", func(c *Config) { c.ConsumerMaxWait = 0 }},
		{"max wait not longer than retry delay", func(c *Config) {
			c.ConsumerMaxWait = c.ProducerRetryDelay
		}},
		{"negative producer pace", func(c *Config) { c.ProducerPace = -time.Second }},
		{"negative consumer pace", func(c *Config) { c.ConsumerPace = -time.Second }},
		{"metrics port out of range", func(c *Config) { c.MetricsPort = 70000 }},
		{"empty log path", func(c *Config) { c.LogPath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestValidateAllowsZeroPacing(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ParseArgs([]string{"2", "3", "1", "1"}))
	cfg.ProducerPace = 0
	cfg.ConsumerPace = 0
	assert.NoError(t, cfg.Validate())
}
