package util

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  uint
		ok    bool
	}{
		{"plain", "42", 42, true},
		{"max uint32", "4294967295", 4294967295, true},
		{"zero", "0", 0, false},
		{"negative", "-3", 0, false},
		{"not a number", "abc", 0, false},
		{"empty", "", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseID("attemptId", tc.input)
			if !tc.ok {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "attemptId", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseID_AcceptsIDsBeyond32Bits(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("uint is 32 bits on this platform")
	}
	id, err := ParseID("questionId", "4294967296")
	require.NoError(t, err)
	assert.Equal(t, uint64(4294967296), uint64(id))
}
