package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampAcceptsZonedAndNaiveValues(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2026-03-01T15:00:00Z"`, time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)},
		{`"2026-03-01T15:00:00.123456"`, time.Date(2026, 3, 1, 15, 0, 0, 123456000, time.Local)},
		{`"2026-03-01T15:00"`, time.Date(2026, 3, 1, 15, 0, 0, 0, time.Local)},
		{`"2026-03-01 15:00:00"`, time.Date(2026, 3, 1, 15, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestampEmptyValues(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())

	out, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestKindResource(t *testing.T) {
	r, err := KindSearch.Resource()
	require.NoError(t, err)
	assert.Equal(t, "searches", r)

	_, err = Kind("bogus").Resource()
	assert.Error(t, err)

	assert.True(t, KindNote.Completable())
	assert.False(t, KindChat.Completable())

	k, err := ParseKind("code")
	require.NoError(t, err)
	assert.Equal(t, KindCode, k)
}
