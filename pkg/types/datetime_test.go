package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTimeString_Parse(t *testing.T) {
	tests := []struct {
		name    string
		input   DateTimeString
		wantErr bool
	}{
		{name: "valid datetime", input: "2025-10-15T14:30"},
		{name: "valid midnight", input: "2025-01-01T00:00"},
		{name: "empty string", input: "", wantErr: true},
		{name: "date only", input: "2025-10-15", wantErr: true},
		{name: "time only", input: "14:30", wantErr: true},
		{name: "with seconds", input: "2025-10-15T14:30:00", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "invalid month", input: "2025-13-15T14:30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.Parse()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input.String(), got.Format(Layout))
		})
	}
}

func TestNewDateTimeString_RoundTrip(t *testing.T) {
	src := time.Date(2025, 10, 15, 9, 5, 0, 0, time.Local)

	s := NewDateTimeString(src)
	assert.Equal(t, "2025-10-15T09:05", s.String())

	parsed, err := s.Parse()
	require.NoError(t, err)
	assert.True(t, parsed.Equal(src))
}
