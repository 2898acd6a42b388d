// pkg/overleaf/config.go

// Package overleaf knows how Overleaf exposes projects over git: URL shapes,
// credential handling, and the clone-or-update pull flow.
package overleaf

import (
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// ErrNoProjectURL reports that no project URL was given and none is
	// configured.
	ErrNoProjectURL = cerr.New("no project URL provided and OVERLEAF_PROJECT_URL is not set")

	// ErrNoToken reports a clone attempted without a git token. There is
	// deliberately no built-in fallback credential.
	ErrNoToken = cerr.New("no Overleaf git token provided and OVERLEAF_GIT_TOKEN is not set")
)

// Config is the process-wide Overleaf configuration, sourced from the
// environment (optionally via a local .env file).
type Config struct {
	ServerURL     string // base web URL, e.g. https://www.overleaf.com
	GitHost       string // git host, e.g. git.overleaf.com
	ProjectURL    string // default project when a tool call names none
	Token         string // git token; required for cloning
	CloneDir      string // base directory for pulled projects
	DefaultBranch string // optional override for default-branch discovery
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present.
func Load() *Config {
	// Missing or unreadable .env is fine; the environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("OVERLEAF")
	v.AutomaticEnv()

	v.SetDefault("server_url", "https://www.overleaf.com")
	v.SetDefault("git_host", "git.overleaf.com")
	v.SetDefault("clone_dir", defaultCloneDir())

	return &Config{
		ServerURL:     v.GetString("server_url"),
		GitHost:       v.GetString("git_host"),
		ProjectURL:    v.GetString("project_url"),
		Token:         v.GetString("git_token"),
		CloneDir:      v.GetString("clone_dir"),
		DefaultBranch: v.GetString("default_branch"),
	}
}

// ResolveToken returns the explicit token if given, otherwise the configured
// one. Fails when neither exists.
func (c *Config) ResolveToken(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if c.Token != "" {
		return c.Token, nil
	}
	return "", ErrNoToken
}

func defaultCloneDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, "Desktop")
}
