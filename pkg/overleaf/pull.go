// pkg/overleaf/pull.go

package overleaf

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/latexops/overleaf-mcp/pkg/telemetry"
	"github.com/latexops/overleaf-mcp/pkg/vcs"
)

// maxListedFiles caps the file listing returned after a pull.
const maxListedFiles = 50

// PullReport describes a completed clone-or-update.
type PullReport struct {
	LocalPath string
	Files     []string // relative paths, .git excluded, first maxListedFiles
	Cloned    bool     // false when an existing tree was updated
}

// Service ties the Overleaf configuration to the git client.
type Service struct {
	cfg *Config
	git *vcs.Client
}

// NewService builds a Service over the given configuration and git client.
func NewService(cfg *Config, git *vcs.Client) *Service {
	return &Service{cfg: cfg, git: git}
}

// Config exposes the service configuration.
func (s *Service) Config() *Config {
	return s.cfg
}

// Pull clones the project into localPath, or updates it when a working tree
// already exists there. Empty arguments fall back to configuration: the
// default project URL, a path derived from the clone dir and project id, and
// the configured token. The token is only required for a fresh clone.
func (s *Service) Pull(ctx context.Context, projectURL, localPath, token string) (*PullReport, error) {
	ctx, span := telemetry.Start(ctx, "overleaf.Pull")
	defer span.End()
	logger := otelzap.Ctx(ctx)

	if projectURL == "" {
		projectURL = s.cfg.ProjectURL
	}
	if projectURL == "" {
		return nil, ErrNoProjectURL
	}

	gitURL, err := s.cfg.GitURL(projectURL)
	if err != nil {
		return nil, err
	}
	projectID := ProjectID(gitURL)

	if localPath == "" {
		localPath = filepath.Join(s.cfg.CloneDir, "overleaf-"+projectID)
	}
	localPath, err = filepath.Abs(localPath)
	if err != nil {
		return nil, cerr.Wrap(err, "resolve local path")
	}

	if _, statErr := os.Stat(filepath.Join(localPath, ".git")); statErr == nil {
		logger.Info("Updating existing project",
			zap.String("project_id", projectID), zap.String("path", localPath))
		if err := s.git.Pull(ctx, localPath); err != nil {
			return nil, err
		}
		files, err := listProjectFiles(localPath)
		if err != nil {
			return nil, err
		}
		return &PullReport{LocalPath: localPath, Files: files}, nil
	}

	resolvedToken, err := s.cfg.ResolveToken(token)
	if err != nil {
		return nil, err
	}
	authURL, err := AuthenticatedURL(gitURL, resolvedToken)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return nil, cerr.Wrap(err, "create clone parent directory")
	}

	logger.Info("Cloning project",
		zap.String("project_id", projectID), zap.String("path", localPath))
	if err := s.git.Clone(ctx, authURL, localPath); err != nil {
		return nil, err
	}

	files, err := listProjectFiles(localPath)
	if err != nil {
		return nil, err
	}
	return &PullReport{LocalPath: localPath, Files: files, Cloned: true}, nil
}

// listProjectFiles walks the project tree and returns up to maxListedFiles
// relative file paths, skipping the .git metadata directory.
func listProjectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		files = append(files, filepath.ToSlash(rel))
		if len(files) >= maxListedFiles {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, cerr.Wrap(err, "list project files")
	}
	return files, nil
}
