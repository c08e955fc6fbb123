package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsToAppendPolicy(t *testing.T) {
	t.Setenv("LOAD_POLICY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, PolicyAppend, cfg.Loader.Policy)
}

func TestLoadAcceptsKnownPolicies(t *testing.T) {
	for _, policy := range []LoadPolicy{PolicyAppend, PolicyReplace} {
		t.Setenv("LOAD_POLICY", string(policy))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, policy, cfg.Loader.Policy)
	}
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	// A typo must fail loudly, not silently fall back to append.
	t.Setenv("LOAD_POLICY", "replcae")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOAD_POLICY")
}
