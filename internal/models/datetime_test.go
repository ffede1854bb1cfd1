package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateTime_JSONRoundTrip(t *testing.T) {
	dt := NewDateTime(time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC))

	data, err := json.Marshal(dt)
	assert.NoError(t, err)
	assert.Equal(t, `"2025-06-01 12:30:45.123"`, string(data))

	var got DateTime
	err = json.Unmarshal(data, &got)
	assert.NoError(t, err)
	assert.True(t, got.Time.Equal(dt.Time))
}

func TestDateTime_TruncatesToMilliseconds(t *testing.T) {
	dt := NewDateTime(time.Date(2025, 6, 1, 12, 30, 45, 123999999, time.UTC))
	assert.Equal(t, "2025-06-01 12:30:45.123", dt.String())
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "2025-06-01 12:30:45.123"},
		{name: "no fraction", input: "2025-06-01 12:30:45", wantErr: true},
		{name: "iso format", input: "2025-06-01T12:30:45.123Z", wantErr: true},
		{name: "garbage", input: "not a timestamp", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, err := ParseDateTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input, dt.String())
			}
		})
	}
}

func TestDateTime_Scan(t *testing.T) {
	t.Run("from time.Time", func(t *testing.T) {
		var dt DateTime
		src := time.Date(2025, 6, 1, 12, 30, 45, 123000000, time.UTC)
		err := dt.Scan(src)
		assert.NoError(t, err)
		assert.True(t, dt.Time.Equal(src))
	})

	t.Run("from string", func(t *testing.T) {
		var dt DateTime
		err := dt.Scan("2025-06-01 12:30:45.123")
		assert.NoError(t, err)
		assert.Equal(t, "2025-06-01 12:30:45.123", dt.String())
	})

	t.Run("from nil", func(t *testing.T) {
		var dt DateTime
		err := dt.Scan(nil)
		assert.NoError(t, err)
		assert.True(t, dt.Time.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var dt DateTime
		err := dt.Scan(42)
		assert.Error(t, err)
	})
}

func TestDateTime_Value(t *testing.T) {
	dt := NewDateTime(time.Date(2025, 6, 1, 12, 30, 45, 123000000, time.UTC))
	v, err := dt.Value()
	assert.NoError(t, err)
	assert.Equal(t, dt.Time, v)
}
