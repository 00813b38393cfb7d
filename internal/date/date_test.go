package date_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/date"
)

func TestDate_RoundTrip(t *testing.T) {
	d := date.New(2024, time.March, 7)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-07"`, string(data))

	var parsed date.Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Time().Equal(d.Time()))
}

func TestDate_UnmarshalJSON(t *testing.T) {
	type testCase struct {
		name    string
		json    string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "PlainDate", json: `"2024-01-31"`, want: "2024-01-31"},
		{name: "RFC3339", json: `"2024-01-31T15:04:05Z"`, want: "2024-01-31"},
		{name: "Null", json: `null`, want: "0001-01-01"},
		{name: "Empty", json: `""`, want: "0001-01-01"},
		{name: "Garbage", json: `"31/01/2024"`, wantErr: true},
		{name: "Number", json: `20240131`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d date.Date

			err := json.Unmarshal([]byte(tt.json), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_Ordering(t *testing.T) {
	a := date.New(2024, time.January, 1)
	b := date.New(2024, time.February, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(b))
}
