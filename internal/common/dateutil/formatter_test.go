package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 with zone",
			value: "2024-03-09T14:05:00-06:00",
			want:  time.Date(2024, 3, 9, 20, 5, 0, 0, time.UTC),
		},
		{
			name:  "without zone",
			value: "2024-03-09T14:05:00.123",
			want:  time.Date(2024, 3, 9, 14, 5, 0, 123000000, time.UTC),
		},
		{
			name:  "space separated",
			value: " 2024-03-09 14:05:00 ",
			want:  time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			value: "2024-03-09",
			want:  time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "not a date",
			value:   "09/03/2024",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLayout)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestFormatNullableTime(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

	assert.Equal(t, DefaultDatePlaceholder, FormatNullableTime(nil, ""))
	assert.Equal(t, "2024-03-09T14:05:00Z", FormatNullableTime(&at, ""))
	assert.Equal(t, "09/03/2024", FormatNullableTime(&at, "02/01/2006"))
}
