package basic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocsQuick(t *testing.T) {
	docs := Docs(DocsQuick())
	j := docs.JSON()
	require.Contains(t, j, "version")
	require.Contains(t, j, "topics")

	ref, ok := docs.Data().(docsQuickReference)
	require.True(t, ok)
	require.Contains(t, ref.Statements, "GOSUB")
	require.Contains(t, ref.Functions, "MID$")
}

func TestDocsDefaultIsQuick(t *testing.T) {
	require.Equal(t, Docs(DocsQuick()).JSON(), Docs().JSON())
}

func TestDocsAll(t *testing.T) {
	var full map[string]any
	require.NoError(t, json.Unmarshal([]byte(Docs(DocsAll()).JSON()), &full))
	for _, key := range []string{"basic", "statements", "functions", "errors"} {
		require.Contains(t, full, key)
	}
}

func TestDocsFunctionsHaveNotes(t *testing.T) {
	for _, fn := range docsFunctions() {
		require.NotEmpty(t, fn.Syntax, fn.Name)
		require.NotEmpty(t, fn.Notes, fn.Name)
	}
}

func TestDocsCategories(t *testing.T) {
	for _, cat := range []string{"statements", "functions", "errors"} {
		data, ok := Docs(DocsCategory(cat)).Data().(map[string]any)
		require.True(t, ok)
		require.Equal(t, cat, data["category"])
		require.Contains(t, data, cat)
	}
	data := Docs(DocsCategory("nope")).Data().(map[string]any)
	require.Contains(t, data, "error")
}

func TestDocsTopic(t *testing.T) {
	tests := map[string]string{
		"gosub":       "statement",
		"MID$":        "function",
		"OUT OF DATA": "error",
	}
	for topic, kind := range tests {
		data := Docs(DocsTopic(topic)).Data().(map[string]any)
		require.Equal(t, kind, data["type"], topic)
	}
	data := Docs(DocsTopic("XYZZY")).Data().(map[string]any)
	require.Contains(t, data, "error")
}

func TestDocsErrorsCoverEveryKind(t *testing.T) {
	errs := docsErrors()
	require.Len(t, errs, len(docsErrorCauses))
	for _, e := range errs {
		require.NotEmpty(t, e.Causes, e.Message)
		require.NotEmpty(t, e.Code, e.Message)
		require.Equal(t, "runtime", e.Category, e.Message)
	}
}
