package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
		err  bool
	}{
		{in: "", want: nil},
		{in: "  ", want: nil},
		{in: "2026-03-01", want: ptr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))},
		{in: "2026-03-01T10:30", want: ptr(time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC))},
		{in: "2026-03-01T10:30:15", want: ptr(time.Date(2026, 3, 1, 10, 30, 15, 0, time.UTC))},
		{in: "2026-03-01T10:30:00+10:00", want: ptr(time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC))},
		{in: "2026-03-01T10:30:00.250Z", want: ptr(time.Date(2026, 3, 1, 10, 30, 0, 250e6, time.UTC))},
		{in: "01/03/2026", err: true},
		{in: "tomorrow", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDeadline(tt.in)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestFieldPath(t *testing.T) {
	require.Equal(t, "collaborators.0.email", fieldPath("CreateProjectInput.collaborators[0].email"))
	require.Equal(t, "name", fieldPath("RegisterInput.name"))
	require.Equal(t, "name", fieldPath("name"))
}

func TestFieldMessage(t *testing.T) {
	require.Equal(t, "Required", fieldMessage("required", ""))
	require.Equal(t, "Must contain at least 6 character(s)", fieldMessage("min", "6"))
	require.Equal(t, "Must be one of: researcher, guide", fieldMessage("oneof", "researcher guide"))
	require.Equal(t, "Invalid value", fieldMessage("uri", ""))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "alice@example.com", normalizeEmail("  Alice@Example.COM "))
}
