package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		allowed  []string
		expected []string
	}{
		{
			name:     "separate value kept",
			args:     []string{"-a", "http://localhost:3001/api", "-x", "5"},
			allowed:  []string{"-a"},
			expected: []string{"-a", "http://localhost:3001/api"},
		},
		{
			name:     "joined value kept",
			args:     []string{"--config=conf.json", "-v"},
			allowed:  []string{"--config"},
			expected: []string{"--config=conf.json"},
		},
		{
			name:     "flag without value",
			args:     []string{"-d", "-a", "addr"},
			allowed:  []string{"-d"},
			expected: []string{"-d"},
		},
		{
			name:     "nothing allowed",
			args:     []string{"-a", "addr"},
			allowed:  []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJSONConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "conf.json"}
	assert.Equal(t, "conf.json", JSONConfigFlags())

	os.Args = []string{"cmd", "-config=other.json"}
	assert.Equal(t, "other.json", JSONConfigFlags())

	os.Args = []string{"cmd"}
	assert.Equal(t, "", JSONConfigFlags())
}
