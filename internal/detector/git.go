package detector

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when path is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// ChangedFiles lists supported files under path that are modified, staged or
// untracked in the enclosing git work tree. Deleted files are left out.
func ChangedFiles(path string, reg *languages.LanguageRegistry) ([]string, error) {
	if reg == nil {
		reg = languages.DefaultRegistry
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.Wrapf(ErrNotRepository, "%s", path)
		}
		return nil, errors.Wrapf(err, "open repository at %s", path)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "open worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return nil, errors.Wrap(err, "read worktree status")
	}

	root := wt.Filesystem.Root()
	var files []string
	for name, st := range status {
		if st.Worktree == git.Deleted || st.Staging == git.Deleted {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		full := filepath.Join(root, filepath.FromSlash(name))
		if !within(abs, full) || !reg.Supports(full) {
			continue
		}
		files = append(files, full)
	}
	sort.Strings(files)
	return files, nil
}

func within(dir, file string) bool {
	if dir == file {
		return true
	}
	rel, err := filepath.Rel(dir, file)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
