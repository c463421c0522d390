package lint

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfrtheme/themelet/internal/testutil"
)

func rules(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Rule)
	}
	return out
}

func TestLintSource(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		src   string
		rules []string
	}{
		{
			name:  "clean css",
			file:  "a.css",
			src:   ".a { color: red; }\n@media print { .b { display: none; } }\n",
			rules: []string{},
		},
		{
			name:  "empty block",
			file:  "a.css",
			src:   ".a {\n  /* nothing */\n}\n",
			rules: []string{RuleBlockNoEmpty},
		},
		{
			name:  "unclosed block",
			file:  "a.css",
			src:   ".a { color: red;\n",
			rules: []string{RuleBlockNoUnbalanced},
		},
		{
			name:  "stray closing brace",
			file:  "a.css",
			src:   ".a { color: red; } }\n",
			rules: []string{RuleBlockNoUnbalanced},
		},
		{
			name:  "unclosed comment",
			file:  "a.css",
			src:   ".a { color: red; } /* oops\n",
			rules: []string{RuleSyntax},
		},
		{
			name:  "unclosed string",
			file:  "a.css",
			src:   ".a { content: \"x\n; }\n",
			rules: []string{RuleStringNoNewline},
		},
		{
			name:  "nested block is not empty parent",
			file:  "a.scss",
			src:   ".a {\n  .b { color: red; }\n}\n",
			rules: []string{},
		},
		{
			name:  "scss line comments ignored",
			file:  "_custom.scss",
			src:   "// a { unbalanced\n.a {\n  color: red; // trailing }\n}\n",
			rules: []string{},
		},
		{
			name:  "url with scheme kept",
			file:  "_custom.scss",
			src:   ".a { background: url(http://example.com/x.png); }\n",
			rules: []string{},
		},
		{
			name:  "slashes inside block comment",
			file:  "_custom.scss",
			src:   ".a { /* see // note */ color: red; }\n",
			rules: []string{},
		},
		{
			name:  "slashes inside strings",
			file:  "_custom.scss",
			src:   ".a { content: \" //x\"; }\n.b { content: '\\' //y'; }\n",
			rules: []string{},
		},
		{
			name:  "line comment after string",
			file:  "_custom.scss",
			src:   ".a { content: \"x\"; } // .b {\n",
			rules: []string{},
		},
		{
			name:  "unclosed comment still reported in scss",
			file:  "_custom.scss",
			src:   ".a { color: red; } /* // oops\n",
			rules: []string{RuleSyntax},
		},
		{
			name:  "line comments are css syntax errors only in scss",
			file:  "a.css",
			src:   "// a {\n",
			rules: []string{RuleBlockNoUnbalanced},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rules, rules(LintSource(tt.file, tt.src)))
		})
	}
}

func TestLintSource_Position(t *testing.T) {
	findings := LintSource("a.css", ".a { color: red; }\n.b {\n}\n")

	require.Len(t, findings, 1)
	assert.Equal(t, Finding{
		File:    "a.css",
		Line:    2,
		Column:  4,
		Rule:    RuleBlockNoEmpty,
		Message: "Unexpected empty block",
	}, findings[0])
	assert.Equal(t, "a.css:2:4 Unexpected empty block (block-no-empty)", findings[0].String())
}

func TestLintPaths(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "css/_custom.scss", ".a {}\n")
	testutil.WriteFile(t, root, "css/base/ok.css", ".b { color: red; }\n")
	testutil.WriteFile(t, root, "js/main.js", "function() {")

	findings, err := LintPaths(context.Background(), []string{root, filepath.Join(t.TempDir(), "missing")})

	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, filepath.Join(root, "css", "_custom.scss"), findings[0].File)
	assert.Equal(t, RuleBlockNoEmpty, findings[0].Rule)
}

func TestLintPaths_Cancelled(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "a.css", ".a { color: red; }")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LintPaths(ctx, []string{root})
	assert.ErrorIs(t, err, context.Canceled)
}
