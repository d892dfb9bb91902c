package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/algohunter/internal/config"
)

func TestValidateCommand(t *testing.T) {
	good := writeTerms(t, `{"search_terms":[
		{"position":"F","term":"ALGO","digits":4},
		{"position":"FB","front_term":"AB","front_digits":2,"back_term":"CD","back_digits":2,"exclude_last":true}
	]}`)
	bad := writeTerms(t, `{"search_terms":[{"position":"B","term":"TEST","digits":4}]}`)

	tests := []struct {
		name     string
		args     []string
		patterns string
		wantErr  string
		wantOut  []string
	}{
		{
			name:    "valid file",
			args:    []string{good},
			wantOut: []string{"✓", "ALGO", "AB & CD", "Front & Back (excl. last)"},
		},
		{
			name:     "file from config",
			patterns: good,
			wantOut:  []string{"ALGO"},
		},
		{
			name:    "invalid terminal",
			args:    []string{bad},
			wantErr: "1 of 1 files invalid",
			wantOut: []string{"✗", "4, A, E, I, M, Q, U, Y"},
		},
		{
			name:    "mixed files",
			args:    []string{good, bad},
			wantErr: "1 of 2 files invalid",
			wantOut: []string{"✓", "✗"},
		},
		{
			name:    "no file",
			wantErr: "no search terms file given",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(func(c *config.Config) { c.Patterns = tt.patterns })
			out, err := execute(t, NewValidateCommand(), cfg, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}
