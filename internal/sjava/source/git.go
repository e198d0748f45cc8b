package source

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"martianoff/sjavac/sjavacerr"
)

// OpenGit loads filePath as it exists at revision in the repository that
// contains repoPath. filePath is relative to the repository root. Any
// revision accepted by git rev-parse for commits works ("HEAD", "HEAD~2",
// a branch or tag name, a hash).
func OpenGit(repoPath, revision, filePath string) (*MemorySource, error) {
	name := fmt.Sprintf("%s@%s", filePath, revision)

	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, sjavacerr.NewIOError(repoPath, "cannot open git repository", err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, sjavacerr.NewIOError(name, "cannot resolve revision", err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, sjavacerr.NewIOError(name, "cannot load commit", err)
	}

	file, err := commit.File(filepath.ToSlash(filePath))
	if err != nil {
		return nil, sjavacerr.NewIOError(name, "file not found at revision", err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, sjavacerr.NewIOError(name, "cannot read file contents", err)
	}
	return FromString(contents), nil
}
