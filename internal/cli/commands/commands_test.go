package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/algohunter/internal/config"
	"github.com/Amr-9/algohunter/pkg/generator/algorand"
	"github.com/Amr-9/algohunter/pkg/search"
)

// constReader yields the same byte forever, so every generated account is
// identical and its address is known up front.
type constReader byte

func (r constReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r)
	}
	return len(p), nil
}

func fixedSource() (search.Source, error) {
	return algorand.NewSourceFromReader(constReader(7)), nil
}

func fixedAddress(t *testing.T) string {
	t.Helper()
	src, _ := fixedSource()
	cand, err := src.Generate()
	require.NoError(t, err)
	return cand.Address
}

func testConfig(mod func(*config.Config)) *config.Config {
	cfg := &config.Config{
		Count:    10,
		Workers:  2,
		LogLevel: "info",
	}
	if mod != nil {
		mod(cfg)
	}
	return cfg
}

func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	ctx := config.WithConfig(t.Context(), &config.Loaded{Config: cfg})
	err := cmd.ExecuteContext(ctx)
	return plain(buf.String()), err
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// plain strips color codes so assertions read like the rendered text.
func plain(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

func writeTerms(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terms.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func frontTerms(t *testing.T, term string) string {
	t.Helper()
	return writeTerms(t, fmt.Sprintf(`{"search_terms":[{"position":"F","term":%q,"digits":%d}]}`, term, len(term)))
}
