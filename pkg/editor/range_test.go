// pkg/editor/range_test.go

package editor

import (
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		want     int
		trailing bool
	}{
		{"empty", "", 0, false},
		{"single no newline", "a", 1, false},
		{"single with newline", "a\n", 1, true},
		{"two lines", "a\nb\n", 2, true},
		{"two lines no trailing", "a\nb", 2, false},
		{"lone newline", "\n", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, trailing := splitLines(tt.content)
			assert.Len(t, lines, tt.want)
			assert.Equal(t, tt.trailing, trailing)
			assert.Equal(t, tt.want, LineCount(tt.content))
		})
	}
}

func TestReadLineRange(t *testing.T) {
	content := "one\ntwo\nthree\nfour\nfive\n"

	text, err := ReadLineRange(content, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "two\nthree\nfour", text)

	text, err = ReadLineRange(content, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "one", text)

	text, err = ReadLineRange(content, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\nfour\nfive", text)
}

func TestReadLineRangeInvalid(t *testing.T) {
	content := "one\ntwo\nthree\n"
	tests := []struct {
		name       string
		start, end int
	}{
		{"start below one", 0, 2},
		{"end past eof", 1, 4},
		{"start after end", 3, 2},
		{"empty content", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := content
			if tt.name == "empty content" {
				body = ""
			}
			_, err := ReadLineRange(body, tt.start, tt.end)
			require.Error(t, err)
			assert.True(t, cerr.Is(err, ErrInvalidRange))
		})
	}
}

func TestReplaceLineRangeLeavesOtherLinesUntouched(t *testing.T) {
	content := "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10\n"

	out, err := ReplaceLineRange(content, "A\nB", 3, 5)
	require.NoError(t, err)
	assert.Equal(t, "l1\nl2\nA\nB\nl6\nl7\nl8\nl9\nl10\n", out)
}

func TestReplaceLineRangePreservesTrailingNewline(t *testing.T) {
	withNewline := "a\nb\nc\n"
	out, err := ReplaceLineRange(withNewline, "X", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "a\nX\nc\n", out)

	withoutNewline := "a\nb\nc"
	out, err = ReplaceLineRange(withoutNewline, "X", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "a\nX\nc", out)
}

func TestReplaceLineRangeGrowsAndShrinks(t *testing.T) {
	content := "a\nb\nc\n"

	out, err := ReplaceLineRange(content, "x\ny\nz", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "a\nx\ny\nz\nc\n", out)

	out, err = ReplaceLineRange(content, "x", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "x\n", out)
}

func TestReplaceLineRangeRoundTrip(t *testing.T) {
	content := "one\ntwo\nthree\nfour\n"
	selection, err := ReadLineRange(content, 2, 3)
	require.NoError(t, err)

	out, err := ReplaceLineRange(content, selection, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, content, out)
}

func TestFindPatternExact(t *testing.T) {
	content := "\\section{Intro}\ntext here\n\\section{Intro}\n"

	match, err := FindPattern(content, "\\section{Intro}", false)
	require.NoError(t, err)
	assert.Equal(t, 0, match.MatchStart)
	assert.Equal(t, 1, match.StartLine)
	assert.Equal(t, "\\section{Intro}", match.Text)
}

func TestFindPatternRegex(t *testing.T) {
	content := "pre\n\\begin{abstract}\nbody text\n\\end{abstract}\npost\n"

	match, err := FindPattern(content, `\\begin\{abstract\}.*?\\end\{abstract\}`, true)
	require.NoError(t, err)
	assert.Equal(t, 2, match.StartLine)
	assert.Equal(t, 4, match.EndLine)
	assert.Equal(t, "\\begin{abstract}\nbody text\n\\end{abstract}", match.Text)
}

func TestFindPatternNotFound(t *testing.T) {
	_, err := FindPattern("abc", "xyz", false)
	assert.True(t, cerr.Is(err, ErrPatternNotFound))

	_, err = FindPattern("abc", "x.z", true)
	assert.True(t, cerr.Is(err, ErrPatternNotFound))
}

func TestFindPatternInvalidRegex(t *testing.T) {
	_, err := FindPattern("abc", "(", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex pattern")
}

func TestReplacePatternFirstOccurrenceOnly(t *testing.T) {
	content := "foo bar foo bar"

	out, err := ReplacePattern(content, "foo", "baz", false)
	require.NoError(t, err)
	assert.Equal(t, "baz bar foo bar", out)

	out, err = ReplacePattern(content, "fo+", "baz", true)
	require.NoError(t, err)
	assert.Equal(t, "baz bar foo bar", out)
}

func TestReplacePatternLiteralReplacement(t *testing.T) {
	// $1 must be spliced in verbatim, not expanded as a backreference.
	out, err := ReplacePattern("price: 10", `(\d+)`, "$1$1", true)
	require.NoError(t, err)
	assert.Equal(t, "price: $1$1", out)
}
