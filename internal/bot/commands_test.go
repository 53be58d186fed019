package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		content  string
		expected Request
		ok       bool
	}{
		{content: "!fotd", expected: Request{Command: "fotd"}, ok: true},
		{content: "?fotd", expected: Request{Command: "fotd", Private: true}, ok: true},
		{content: "!fish-help ", expected: Request{Command: "fish-help"}, ok: true},
		{content: "?", expected: Request{Private: true}, ok: true},
		{content: "", ok: false},
		{content: "fotd", ok: false},
		{content: "/fish", ok: false},
	}

	for _, tc := range testCases {
		req, ok := ParseCommand(tc.content)
		require.Equal(t, tc.ok, ok, tc.content)
		require.Equal(t, tc.expected, req, tc.content)
	}
}
