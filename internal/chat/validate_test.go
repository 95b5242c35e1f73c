package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameValidator(t *testing.T) {
	tests := []struct {
		name   string
		maxLen int
		raw    string
		want   string
		ok     bool
		zero   bool
	}{
		{"plain", 32, "alice\n", "alice", true, false},
		{"digits", 32, "b0b42\r\n", "b0b42", true, false},
		{"trailing spaces", 32, "carol  \n", "carol", true, false},
		{"punctuation", 32, "bob!\n", "", false, false},
		{"inner space", 32, "bob smith\n", "", false, false},
		{"leading space", 32, " bob\n", "", false, false},
		{"empty", 32, "\n", "", false, false},
		{"whitespace only", 32, "   \n", "", false, false},
		{"non ascii", 32, "zoë\n", "", false, false},
		{"at limit", 5, "abcde\n", "abcde", true, false},
		{"over limit", 5, "abcdef\n", "", false, false},
		{"unbounded", 0, strings.Repeat("x", 500) + "\n", strings.Repeat("x", 500), true, false},
		{"zero value accepts plain", 0, "alice\n", "alice", true, true},
		{"zero value rejects empty", 0, "\n", "", false, true},
		{"zero value rejects punctuation", 0, "bob!\n", "", false, true},
		{"zero value rejects inner space", 0, "a b\n", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewNameValidator(tt.maxLen)
			if tt.zero {
				v = NameValidator{}
			}
			got, err := v.Validate(tt.raw)
			if !tt.ok {
				require.ErrorIs(t, err, ErrNameInvalid)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
