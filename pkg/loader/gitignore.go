// Package loader holds filesystem housekeeping for the viewer's local state
// directory. The TUI persists expand/collapse state under .phylomap/; this
// file keeps that directory out of version control.
package loader

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// EnsureStateDirIgnored makes sure .phylomap/ is listed in the project's
// .gitignore so persisted view state never pollutes the repository.
//
// The function is idempotent: it creates .gitignore when missing, appends
// ".phylomap/" when absent, and leaves existing content untouched otherwise.
func EnsureStateDirIgnored(projectDir string) error {
	if projectDir == "" {
		var err error
		projectDir, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	gitignorePath := filepath.Join(projectDir, ".gitignore")

	present, err := stateDirIgnored(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if present {
		return nil
	}
	return appendToGitignore(gitignorePath, ".phylomap/")
}

// stateDirIgnored reports whether .phylomap is already covered by the file.
func stateDirIgnored(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if matchesStatePattern(line) {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// matchesStatePattern checks whether a gitignore line covers .phylomap/.
func matchesStatePattern(line string) bool {
	normalized := strings.TrimPrefix(line, "/")
	switch normalized {
	case ".phylomap", ".phylomap/", ".phylomap/*", ".phylomap/**", ".phylomap/**/*":
		return true
	}
	return false
}

// appendToGitignore appends a pattern, creating the file when missing and
// keeping a clean blank-line separation from existing content.
func appendToGitignore(path, pattern string) error {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	var toWrite string
	if len(content) == 0 {
		toWrite = "# phylomap view state\n" + pattern + "\n"
	} else {
		if content[len(content)-1] != '\n' {
			toWrite = "\n"
		}
		toWrite += "\n# phylomap view state\n" + pattern + "\n"
	}

	_, err = file.WriteString(toWrite)
	return err
}
