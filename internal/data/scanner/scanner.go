// Package scanner locates the spreadsheet when a directory is given.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/util"
)

// FileScanner finds spreadsheets in a directory (not recursive)
type FileScanner struct {
	baseDir    string
	extensions []string
}

func NewFileScanner(baseDir string, extensions []string) *FileScanner {
	return &FileScanner{baseDir: baseDir, extensions: extensions}
}

// Scan returns the supported spreadsheets in the directory. Office lock files
// ("~$name.xlsx") and hidden files are skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read directory", goerr.V("dir", s.baseDir))
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
			continue
		}
		if s.supported(name) {
			files = append(files, filepath.Join(s.baseDir, name))
		}
	}

	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, %d entries, found %d spreadsheets",
		time.Since(start), len(entries), len(files)))
	return files, nil
}

// Latest returns the most recently modified spreadsheet
func (s *FileScanner) Latest() (string, error) {
	files, err := s.Scan()
	if err != nil {
		return "", err
	}

	var latest string
	var latestMod time.Time
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip file (error): %s - %v", f, err))
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest, latestMod = f, info.ModTime()
		}
	}
	if latest == "" {
		return "", goerr.New("no spreadsheet found in directory",
			goerr.T(model.ErrTagDatasetNotFound),
			goerr.V("dir", s.baseDir))
	}
	return latest, nil
}

func (s *FileScanner) supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range s.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Resolve returns path itself for files and the latest spreadsheet for directories
func Resolve(path string, extensions []string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		// Missing files are reported by the loader with the proper tag
		return path, nil
	}
	return NewFileScanner(path, extensions).Latest()
}
