package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlvalidator/yamlvalidator/internal/adapters/outbound/parser"
	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

const duplicateTopLevel = "framework:\n  key: value\n\nframework:\n  other: value"

func collect(t *testing.T, content string, allowDuplicates bool) []domain.DocumentResult {
	t.Helper()
	p := parser.New()
	var results []domain.DocumentResult
	for r := range p.Documents(strings.NewReader(content), allowDuplicates) {
		results = append(results, r)
	}
	return results
}

func TestYAMLParser_EmptyContentHasNoDocuments(t *testing.T) {
	assert.Empty(t, collect(t, "", false))
}

func TestYAMLParser_EmptyStringScalar(t *testing.T) {
	results := collect(t, `""`, false)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
	assert.Equal(t, 1, results[0].Index)
}

func TestYAMLParser_SingleValidDocument(t *testing.T) {
	results := collect(t, "name: app\nports:\n  - 80\n  - 443\n", false)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
}

func TestYAMLParser_MultipleDocuments(t *testing.T) {
	results := collect(t, "a: 1\n---\nb: 2\n---\n- x\n- y\n", false)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i+1, r.Index)
		assert.True(t, r.Valid)
	}
}

func TestYAMLParser_DuplicateTopLevelKeyRejected(t *testing.T) {
	results := collect(t, duplicateTopLevel, false)
	require.Len(t, results, 1)

	r := results[0]
	assert.False(t, r.Valid)
	assert.ErrorIs(t, r.Err, domain.ErrDuplicateKey)

	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, r.Err, &dup)
	assert.Equal(t, "framework", dup.Key)
	assert.Equal(t, 1, dup.Document)
	assert.Equal(t, 4, dup.Line)
	assert.Equal(t, 1, dup.FirstLine)
}

func TestYAMLParser_DuplicateTopLevelKeyAllowed(t *testing.T) {
	results := collect(t, duplicateTopLevel, true)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
}

func TestYAMLParser_NestedDuplicateKey(t *testing.T) {
	results := collect(t, "outer:\n  inner:\n    a: 1\n    a: 2\n", false)
	require.Len(t, results, 1)

	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, results[0].Err, &dup)
	assert.Equal(t, "a", dup.Key)
	assert.Equal(t, 4, dup.Line)
	assert.Equal(t, 3, dup.FirstLine)
}

func TestYAMLParser_DuplicateKeyInsideSequence(t *testing.T) {
	results := collect(t, "- name: a\n  name: b\n", false)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, domain.ErrDuplicateKey)
}

func TestYAMLParser_SameKeyInSiblingMappingsIsValid(t *testing.T) {
	results := collect(t, "- name: a\n- name: b\n", false)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)

	results = collect(t, "first:\n  name: a\nsecond:\n  name: b\n", false)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
}

func TestYAMLParser_AliasesAreNotExpanded(t *testing.T) {
	results := collect(t, "base: &b\n  x: 1\ncopy: *b\n", false)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
}

func TestYAMLParser_SyntaxError(t *testing.T) {
	results := collect(t, "items: [1, 2\n", false)
	require.Len(t, results, 1)

	r := results[0]
	assert.False(t, r.Valid)
	assert.ErrorIs(t, r.Err, domain.ErrSyntax)
	assert.NotContains(t, r.Cause, "yaml: ")
}

func TestYAMLParser_StopsAtFirstInvalidDocument(t *testing.T) {
	results := collect(t, "a: 1\n---\nitems: [1, 2\n---\nc: 3\n", false)
	require.Len(t, results, 2)

	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
	assert.Equal(t, 2, results[1].Index)

	var syn *domain.SyntaxError
	require.ErrorAs(t, results[1].Err, &syn)
	assert.Equal(t, 2, syn.Document)
}

func TestYAMLParser_DuplicateInSecondDocument(t *testing.T) {
	results := collect(t, "a: 1\n---\nb: 1\nb: 2\n", false)
	require.Len(t, results, 2)
	assert.True(t, results[0].Valid)

	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, results[1].Err, &dup)
	assert.Equal(t, 2, dup.Document)
}

func TestYAMLParser_ConsumerCanStopEarly(t *testing.T) {
	p := parser.New()
	count := 0
	for range p.Documents(strings.NewReader("a: 1\n---\nb: 2\n---\nc: 3\n"), false) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestYAMLParser_ErrorAtStartOfNextDocumentIsChargedToIt(t *testing.T) {
	cases := map[string]string{
		"tab":      "a: 1\n---\n\tb: 2\n",
		"at sign":  "a: 1\n---\n@x\n",
		"backtick": "a: 1\n--- `x\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			results := collect(t, content, false)
			require.Len(t, results, 2)
			assert.True(t, results[0].Valid)
			assert.Equal(t, 1, results[0].Index)
			assert.False(t, results[1].Valid)
			assert.Equal(t, 2, results[1].Index)
			assert.ErrorIs(t, results[1].Err, domain.ErrSyntax)
		})
	}
}

func TestYAMLParser_ErrorInThirdDocumentAfterTwoValid(t *testing.T) {
	results := collect(t, "a: 1\n---\nb: 2\n---\n\tc: 3\n", false)
	require.Len(t, results, 3)
	assert.True(t, results[0].Valid)
	assert.True(t, results[1].Valid)
	assert.False(t, results[2].Valid)
	assert.Equal(t, 3, results[2].Index)

	var syn *domain.SyntaxError
	require.ErrorAs(t, results[2].Err, &syn)
	assert.Equal(t, 3, syn.Document)
	assert.Contains(t, syn.Message, "line 5:")
}

func TestYAMLParser_LineNumbersReferToWholeStream(t *testing.T) {
	results := collect(t, "a: 1\n---\n\tb: 2\n", false)
	require.Len(t, results, 2)
	assert.Contains(t, results[1].Cause, "line 3:")

	results = collect(t, "a: 1\nb: 2\n---\nc: 1\nc: 2\n", false)
	require.Len(t, results, 2)
	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, results[1].Err, &dup)
	assert.Equal(t, 5, dup.Line)
	assert.Equal(t, 4, dup.FirstLine)
}

func TestYAMLParser_DocumentEndMarker(t *testing.T) {
	results := collect(t, "a: 1\n...\n---\nb: 2\n...\n", false)
	require.Len(t, results, 2)
	assert.True(t, results[0].Valid)
	assert.True(t, results[1].Valid)
}

func TestYAMLParser_DirectiveAndCommentsStayWithTheirDocument(t *testing.T) {
	results := collect(t, "# leading comment\n%TAG !e! tag:example.com,2000:\n---\na: !e!thing 1\n", false)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
}

func TestYAMLParser_MarkerNeedsColumnZeroAndSeparator(t *testing.T) {
	results := collect(t, "text: |\n  ---\n  body\nkey: ---x\n", false)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
}

type failingReader struct {
	data string
	read bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.read {
		r.read = true
		return copy(p, r.data), nil
	}
	return 0, errors.New("device unplugged")
}

func TestYAMLParser_ReadErrorEndsSequence(t *testing.T) {
	p := parser.New()
	var results []domain.DocumentResult
	for r := range p.Documents(&failingReader{data: "a: 1\n---\nb: 2\n---\nc:"}, false) {
		results = append(results, r)
	}
	require.Len(t, results, 3)
	assert.True(t, results[0].Valid)
	assert.True(t, results[1].Valid)
	assert.False(t, results[2].Valid)
	assert.ErrorIs(t, results[2].Err, domain.ErrRead)
}
