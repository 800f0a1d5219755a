package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"pending", StatusPending},
		{"p", StatusPending},
		{"P", StatusPending},
		{"  Pending ", StatusPending},
		{"completed", StatusCompleted},
		{"complete", StatusCompleted},
		{"done", StatusCompleted},
		{"c", StatusCompleted},
		{"DONE", StatusCompleted},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseStatus(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	_, err := ParseStatus("archived")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "status", parseErr.Field)
	assert.Equal(t, "archived", parseErr.Value)
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
	}{
		{"low", PriorityLow},
		{"l", PriorityLow},
		{"medium", PriorityMedium},
		{"med", PriorityMedium},
		{"m", PriorityMedium},
		{"high", PriorityHigh},
		{"h", PriorityHigh},
		{"HIGH", PriorityHigh},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParsePriority(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePriority_Invalid(t *testing.T) {
	_, err := ParsePriority("urgent")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "priority", parseErr.Field)
}

func TestPriority_Ordering(t *testing.T) {
	assert.True(t, PriorityLow < PriorityMedium)
	assert.True(t, PriorityMedium < PriorityHigh)
}

func TestPriority_TextRoundTrip(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		text, err := p.MarshalText()
		require.NoError(t, err)

		var got Priority
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, p, got)
	}
}

func TestParseDueDate_NormalizesToEndOfDay(t *testing.T) {
	got, err := ParseDueDate("2026-09-01")
	require.NoError(t, err)

	want := time.Date(2026, 9, 1, 23, 59, 59, 0, time.Local)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
}

func TestParseDueDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "2026-13-01", "01/09/2026"} {
		_, err := ParseDueDate(input)
		require.Error(t, err, "input %q", input)
	}
}
