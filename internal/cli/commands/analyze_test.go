package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCommand_FixedSource(t *testing.T) {
	address := fixedAddress(t)
	src, _ := fixedSource()

	out, err := execute(t, newAnalyzeCommand(&AnalyzeOptions{source: src}), testConfig(nil), "--samples", "20", "--position", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "Position 0")
	assert.Contains(t, out, "100.00%")
	assert.Contains(t, out, "Observed symbols: 1 of 32")
	assert.Contains(t, out, string(address[0]))
}

func TestAnalyzeCommand_LastPosition(t *testing.T) {
	out, err := execute(t, NewAnalyzeCommand(), testConfig(nil), "--samples", "400")
	require.NoError(t, err)

	assert.Contains(t, out, "Position 57")
	// The final symbol carries three bits: at most 8 distinct values.
	assert.Contains(t, out, "Never observed:")
	for _, c := range []string{"B", "C", "D", "2", "3"} {
		assert.Contains(t, out, " "+c)
	}
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	_, err := execute(t, NewAnalyzeCommand(), testConfig(nil), "--samples", "0")
	assert.EqualError(t, err, "samples must be positive")

	_, err = execute(t, NewAnalyzeCommand(), testConfig(nil), "--samples", "1", "--position", "58")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside address")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3"), testConfig(nil))
	require.NoError(t, err)
	assert.Contains(t, out, "algohunter v1.2.3")
}
