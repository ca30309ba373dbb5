package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDuration(t *testing.T) {
	cases := []struct {
		raw           string
		expected      int
		expectedError error
	}{
		{raw: "", expected: 10},
		{raw: "1", expected: 1},
		{raw: "86400", expected: 86400},
		{raw: " 42 ", expected: 42},
		{raw: "+7", expected: 7},
		{raw: "0", expectedError: ErrDurationRange},
		{raw: "86401", expectedError: ErrDurationRange},
		{raw: "-1", expectedError: ErrDurationRange},
		{raw: "18446744073709551616", expectedError: ErrDurationRange},
		{raw: "ten", expectedError: ErrInvalidDuration},
		{raw: "1e3", expectedError: ErrInvalidDuration},
	}

	for _, tt := range cases {
		t.Run(tt.raw, func(t *testing.T) {
			req, err := ParseDuration(tt.raw)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, req.Duration)
			assert.True(t, req.Valid())
		})
	}
}
