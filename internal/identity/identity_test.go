package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

func TestNewDisplayID(t *testing.T) {
	tests := []struct {
		name     string
		teamCode string
		number   int
		want     string
		wantErr  bool
	}{
		{name: "pads to three digits", teamCode: "A", number: 23, want: "A023"},
		{name: "single digit", teamCode: "B", number: 5, want: "B005"},
		{name: "three digits", teamCode: "H", number: 999, want: "H999"},
		{name: "unknown team code", teamCode: "Z", number: 10, wantErr: true},
		{name: "lowercase team code", teamCode: "a", number: 10, wantErr: true},
		{name: "number zero", teamCode: "A", number: 0, wantErr: true},
		{name: "number too large", teamCode: "A", number: 1000, wantErr: true},
		{name: "negative number", teamCode: "A", number: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDisplayID(tt.teamCode, tt.number)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDisplayIDRoundTrip(t *testing.T) {
	for _, tc := range TeamCodes {
		for _, n := range []int{1, 23, 99, 100, 999} {
			id, err := NewDisplayID(string(tc), n)
			require.NoError(t, err)

			code, number, err := ParseDisplayID(id)
			require.NoError(t, err)
			assert.Equal(t, tc, code)
			assert.Equal(t, n, number)
		}
	}
}

func TestParseDisplayIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "A", "A23", "A0234", "Z023", "Aabc", "A000"} {
		_, _, err := ParseDisplayID(id)
		assert.Error(t, err, "id %q", id)
		assert.True(t, apperrors.IsValidation(err), "id %q", id)
	}
}

func TestSessionIDRoundTrip(t *testing.T) {
	start := time.Date(2025, 10, 28, 19, 0, 0, 0, time.UTC)
	id := NewSessionID(SportFootball, start)
	assert.Equal(t, "Football_2025-10-28_190000", id)

	sport, parsed, err := ParseSessionID(id)
	require.NoError(t, err)
	assert.Equal(t, SportFootball, sport)
	assert.True(t, parsed.Equal(start))
}

func TestParseSessionIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "Football", "Cricket_2025-10-28_190000", "Football_20251028"} {
		_, _, err := ParseSessionID(id)
		assert.Error(t, err, "id %q", id)
	}
}

func TestParseSport(t *testing.T) {
	for _, sp := range Sports {
		got, err := ParseSport(string(sp))
		require.NoError(t, err)
		assert.Equal(t, sp, got)
	}
	_, err := ParseSport("Quidditch")
	assert.True(t, apperrors.IsValidation(err))
}
