// pkg/overleaf/url.go

package overleaf

import (
	"net/url"
	"regexp"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

var projectIDPattern = regexp.MustCompile(`/project/([a-zA-Z0-9]+)`)

// GitURL converts an Overleaf project URL to the canonical git remote
// address. A URL already on the git host passes through unchanged, so the
// conversion is idempotent.
//
//	https://www.overleaf.com/project/1234567 -> https://git.overleaf.com/1234567
//	https://git.overleaf.com/1234567        -> https://git.overleaf.com/1234567
func (c *Config) GitURL(projectURL string) (string, error) {
	if strings.Contains(projectURL, c.GitHost) {
		return projectURL, nil
	}

	if m := projectIDPattern.FindStringSubmatch(projectURL); m != nil {
		return "https://" + c.GitHost + "/" + m[1], nil
	}

	// Last resort: treat the final path segment as the project id.
	trimmed := strings.TrimRight(projectURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 && idx+1 < len(trimmed) {
		return "https://" + c.GitHost + "/" + trimmed[idx+1:], nil
	}

	return "", cerr.Newf("could not extract a project id from URL: %s", projectURL)
}

// ProjectID returns the project identifier embedded in a git remote address.
func ProjectID(gitURL string) string {
	trimmed := strings.TrimRight(gitURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// AuthenticatedURL embeds the Overleaf credential pair into a git remote
// address. Overleaf expects the literal username "git" with the token as
// password.
func AuthenticatedURL(gitURL, token string) (string, error) {
	u, err := url.Parse(gitURL)
	if err != nil {
		return "", cerr.Wrapf(err, "parse git URL")
	}
	u.User = url.UserPassword("git", token)
	return u.String(), nil
}
