package version

import (
	"testing"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckResultsCompatibility(t *testing.T) {
	tests := []struct {
		name           string
		engineVersion  string
		resultsVersion string
		expectError    bool
		errorContains  string
	}{
		{name: "exact match", engineVersion: "1.2.0", resultsVersion: "1.2.0"},
		{name: "engine patch higher", engineVersion: "1.2.1", resultsVersion: "1.2.0"},
		{name: "results patch higher", engineVersion: "1.2.0", resultsVersion: "1.2.5"},
		{name: "v prefix", engineVersion: "v0.4.0", resultsVersion: "0.4.3"},
		{name: "prerelease", engineVersion: "1.2.0-alpha", resultsVersion: "1.2.0"},
		{name: "build metadata", engineVersion: "1.2.0+build123", resultsVersion: "1.2.0"},
		{name: "engine is main", engineVersion: "main", resultsVersion: "1.3.0"},
		{name: "results are main", engineVersion: "1.2.0", resultsVersion: "main"},
		{
			name:           "engine minor higher",
			engineVersion:  "1.3.0",
			resultsVersion: "1.2.0",
			expectError:    true,
			errorContains:  "minor version mismatch",
		},
		{
			name:           "major differs",
			engineVersion:  "2.0.0",
			resultsVersion: "1.2.0",
			expectError:    true,
			errorContains:  "major version mismatch",
		},
		{
			name:           "invalid engine version",
			engineVersion:  "not-a-version",
			resultsVersion: "1.2.0",
			expectError:    true,
			errorContains:  "invalid engine version",
		},
		{
			name:           "unstamped results",
			engineVersion:  "1.2.0",
			resultsVersion: "",
			expectError:    true,
			errorContains:  "invalid results version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckResultsCompatibility(tt.engineVersion, tt.resultsVersion)

			if !tt.expectError {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.True(t, errors.HasCode(err, errors.ErrCodeIncompatibleResults))
		})
	}
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}
