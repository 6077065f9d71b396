// repo_gitignore.go manages the .stash/.gitignore file.
//
// Separated from repo.go to isolate gitignore manipulation. The config file
// (it may hold the auth secret) and SQLite's WAL sidecars are always ignored.
// Attachments under files/ are ignored by default; TrackFiles flips that for
// people who keep their stash in git and want attachments versioned too.
//
// Design: We preserve existing gitignore content and formatting, only adding
// or removing the files/ entry.

package repo

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	gitignoreBase = `# stash - the database is the source of truth
config.yaml
*.db-wal
*.db-shm
`
	filesHeader = "# Attachments (not committed)"
	filesEntry  = FilesDir + "/"
)

// writeGitignore creates the base .gitignore on first init. Existing files
// are left alone so custom entries survive a reinit.
func writeGitignore(dir string) error {
	p := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return os.WriteFile(p, []byte(gitignoreBase), 0644)
	}
	return nil
}

// parseGitignore reads a gitignore file and returns its lines (trimmed).
func parseGitignore(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// IgnoreFiles adds files/ to the gitignore.
func IgnoreFiles(dir string) error {
	gitignore := filepath.Join(dir, ".gitignore")
	lines, err := parseGitignore(gitignore)
	if err != nil {
		return err
	}
	if slices.Contains(lines, filesEntry) {
		return nil
	}

	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}
	s := string(content)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	if !slices.Contains(lines, filesHeader) {
		s += "\n" + filesHeader + "\n"
	}
	s += filesEntry + "\n"
	return os.WriteFile(gitignore, []byte(s), 0644)
}

// TrackFiles removes files/ (and its header) from the gitignore.
func TrackFiles(dir string) error {
	gitignore := filepath.Join(dir, ".gitignore")
	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}

	var out []string
	for _, line := range strings.Split(string(content), "\n") {
		t := strings.TrimSpace(line)
		if t == filesEntry || t == filesHeader {
			continue
		}
		out = append(out, line)
	}
	result := strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
	return os.WriteFile(gitignore, []byte(result), 0644)
}

// FilesIgnored reports whether files/ is in the gitignore.
func FilesIgnored(dir string) (bool, error) {
	lines, err := parseGitignore(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return false, err
	}
	return slices.Contains(lines, filesEntry), nil
}
