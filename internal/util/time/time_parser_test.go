package time_parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseTimestamp_WithEmptyString_ReturnsZeroTime(t *testing.T) {
	result, err := ParseTimestamp("  ")

	require.NoError(t, err)
	assert.True(t, result.IsZero())
}

func Test_ParseTimestamp_WithValidISOStrings_ParsesCorrectly(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "RFC3339 format",
			input:    "2025-03-14T09:26:53Z",
			expected: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		},
		{
			name:     "RFC3339 with offset",
			input:    "2025-03-14T11:26:53+02:00",
			expected: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		},
		{
			name:     "RFC3339Nano format",
			input:    "2025-03-14T09:26:53.123Z",
			expected: time.Date(2025, 3, 14, 9, 26, 53, 123000000, time.UTC),
		},
		{
			name:     "ISO without timezone",
			input:    "2025-03-14T09:26:53",
			expected: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		},
		{
			name:     "space separated",
			input:    "2025-03-14 09:26:53",
			expected: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		},
		{
			name:     "date only",
			input:    "2025-03-14",
			expected: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTimestamp(tt.input)

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result), "expected %v, got %v", tt.expected, result)
			assert.Equal(t, time.UTC, result.Location())
		})
	}
}

func Test_ParseTimestamp_WithUnixEpochs_DistinguishesSecondsAndMilliseconds(t *testing.T) {
	seconds, err := ParseTimestamp("1741944413")
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1741944413, 0).UTC(), seconds)

	millis, err := ParseTimestamp("1741944413250")
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(1741944413250).UTC(), millis)
}

func Test_ParseTimestamp_WithInvalidInput_ReturnsError(t *testing.T) {
	for _, input := range []string{"yesterday", "-5", "2025-13-45", "14/03/2025"} {
		_, err := ParseTimestamp(input)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, input)
	}
}
