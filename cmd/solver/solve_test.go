package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/ai-problem-solver/internal/domain/session"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
)

func TestSolveOfflineCode(t *testing.T) {
	t.Setenv("FALLBACK_DELAY", "1ms")
	t.Setenv("JWT_SECRET", "test-secret")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"solve", "--offline", "--json", "--mode", "code", "--config-dir", t.TempDir(), "Reverse a linked list"})
	require.NoError(t, rootCmd.Execute())

	var s session.Session
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	require.NotNil(t, s.Result)
	assert.Equal(t, solution.CategoryTechnical, s.Result.Category)
	assert.Equal(t, solution.ComplexityIntermediate, s.Result.Complexity)
	assert.Contains(t, s.Result.Solution, "Reverse a linked list")
	assert.Equal(t, session.SourceFallback, s.Source)
	assert.False(t, s.Loading)
	// offline failures are not credit errors
	assert.True(t, s.HasCredits)
}

func TestDemoCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"demo"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Explain machine learning algorithms for beginners")
}
