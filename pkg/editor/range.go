// pkg/editor/range.go

// Package editor locates and replaces regions of text files, either by
// pattern (exact substring or regex, first match only) or by explicit
// 1-indexed inclusive line bounds, and gates mutations behind a sync check.
package editor

import (
	"regexp"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

var (
	// ErrInvalidRange reports line bounds that violate
	// 1 <= start <= end <= lineCount.
	ErrInvalidRange = cerr.New("invalid line range")

	// ErrPatternNotFound reports a pattern with no match in the content.
	ErrPatternNotFound = cerr.New("pattern not found")
)

// Match describes where a pattern matched. Line numbers are 1-indexed and
// derived from the newline count preceding each match boundary; offsets are
// byte positions into the content.
type Match struct {
	Text       string
	StartLine  int
	EndLine    int
	MatchStart int
	MatchEnd   int
}

// splitLines splits content into lines without the trailing newline
// artifact: "a\nb\n" is two lines, "" is zero lines. The second return
// records whether the content ended with a newline so edits can preserve it.
func splitLines(content string) ([]string, bool) {
	if content == "" {
		return nil, false
	}
	trailing := strings.HasSuffix(content, "\n")
	trimmed := strings.TrimSuffix(content, "\n")
	if trimmed == "" {
		return []string{""}, trailing
	}
	return strings.Split(trimmed, "\n"), trailing
}

func joinLines(lines []string, trailing bool) string {
	joined := strings.Join(lines, "\n")
	if trailing && joined != "" {
		joined += "\n"
	}
	return joined
}

// LineCount returns the number of lines in content.
func LineCount(content string) int {
	lines, _ := splitLines(content)
	return len(lines)
}

func lineAt(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}

// compilePattern builds the regex for a pattern search. (?s) lets . span
// newlines and (?m) anchors ^ and $ per line, matching the search semantics
// of the pattern mode throughout this package.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?ms)" + pattern)
	if err != nil {
		return nil, cerr.Wrap(err, "invalid regex pattern")
	}
	return re, nil
}

// FindPattern returns the first match of pattern in content. With useRegex
// false the pattern is an exact substring.
func FindPattern(content, pattern string, useRegex bool) (*Match, error) {
	if useRegex {
		re, err := compilePattern(pattern)
		if err != nil {
			return nil, err
		}
		loc := re.FindStringIndex(content)
		if loc == nil {
			return nil, ErrPatternNotFound
		}
		return &Match{
			Text:       content[loc[0]:loc[1]],
			StartLine:  lineAt(content, loc[0]),
			EndLine:    lineAt(content, loc[1]),
			MatchStart: loc[0],
			MatchEnd:   loc[1],
		}, nil
	}

	start := strings.Index(content, pattern)
	if start < 0 {
		return nil, ErrPatternNotFound
	}
	end := start + len(pattern)
	return &Match{
		Text:       pattern,
		StartLine:  lineAt(content, start),
		EndLine:    lineAt(content, end),
		MatchStart: start,
		MatchEnd:   end,
	}, nil
}

func validateRange(start, end, lineCount int) error {
	if start < 1 || end > lineCount || start > end {
		return cerr.Mark(
			cerr.Newf("invalid line range: %d-%d (file has %d lines)", start, end, lineCount),
			ErrInvalidRange)
	}
	return nil
}

// ReadLineRange returns the inclusive 1-indexed line range of content.
func ReadLineRange(content string, start, end int) (string, error) {
	lines, _ := splitLines(content)
	if err := validateRange(start, end, len(lines)); err != nil {
		return "", err
	}
	return strings.Join(lines[start-1:end], "\n"), nil
}

// ReplacePattern replaces the first occurrence of pattern in content with
// replacement. The replacement text is spliced in literally; regex
// backreferences are not expanded.
func ReplacePattern(content, pattern, replacement string, useRegex bool) (string, error) {
	match, err := FindPattern(content, pattern, useRegex)
	if err != nil {
		return "", err
	}
	return content[:match.MatchStart] + replacement + content[match.MatchEnd:], nil
}

// ReplaceLineRange replaces the inclusive 1-indexed line range of content
// with replacement, leaving every line outside the range untouched. A
// trailing newline on the original content is preserved.
func ReplaceLineRange(content, replacement string, start, end int) (string, error) {
	lines, trailing := splitLines(content)
	if err := validateRange(start, end, len(lines)); err != nil {
		return "", err
	}
	newLines, _ := splitLines(replacement)

	var out []string
	out = append(out, lines[:start-1]...)
	out = append(out, newLines...)
	out = append(out, lines[end:]...)
	return joinLines(out, trailing), nil
}
