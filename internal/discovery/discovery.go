// Package discovery locates ARB resource files on disk and groups them into
// feature modules. Each directory holding intl_<locale>.arb files is one
// module, named after the directory.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"intlgen/internal/locale"
)

// arbFileRe matches resource file names and captures the locale code.
var arbFileRe = regexp.MustCompile(`^intl_([A-Za-z_]+)\.arb$`)

// moduleNameRe is the naming pattern module directories must satisfy.
var moduleNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// defaultIgnore lists directory names skipped regardless of configuration.
var defaultIgnore = []string{".git", ".dart_tool", "build", "node_modules"}

// File is one discovered locale resource file.
type File struct {
	Path   string
	Locale string
}

// Module is a named group of locale files covering one feature area.
type Module struct {
	Name  string
	Path  string
	Files []File
}

// Scanner walks a project's l10n root and groups resource files by module.
type Scanner struct {
	ignore map[string]bool
}

// NewScanner creates a Scanner. The ignore list extends the built-in one.
func NewScanner(ignore []string) *Scanner {
	set := make(map[string]bool)
	for _, name := range defaultIgnore {
		set[name] = true
	}
	for _, name := range ignore {
		set[name] = true
	}
	return &Scanner{ignore: set}
}

// Scan discovers every module under root. The root directory itself counts
// as a module when it holds resource files directly; its module name is the
// directory base name. Files with malformed locale codes are skipped with a
// warning, and directories whose names violate the module naming pattern are
// skipped entirely.
func (s *Scanner) Scan(root string) ([]Module, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	byDir := make(map[string][]File)
	var dirOrder []string

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if info.IsDir() {
			if path != root && s.ignore[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		m := arbFileRe.FindStringSubmatch(info.Name())
		if m == nil {
			return nil
		}
		code := m[1]
		if !locale.Valid(code) {
			log.Warn().Str("path", path).Str("locale", code).Msg("Skipping file with invalid locale code")
			return nil
		}

		dir := filepath.Dir(path)
		if _, ok := byDir[dir]; !ok {
			dirOrder = append(dirOrder, dir)
		}
		byDir[dir] = append(byDir[dir], File{Path: path, Locale: code})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	var modules []Module
	for _, dir := range dirOrder {
		name := moduleName(root, dir)
		if !moduleNameRe.MatchString(name) {
			log.Warn().Str("dir", dir).Str("module", name).Msg("Skipping directory with invalid module name")
			continue
		}
		modules = append(modules, Module{Name: name, Path: dir, Files: byDir[dir]})
	}

	log.Info().Int("modules", len(modules)).Str("root", root).Msg("Discovered resource files")
	return modules, nil
}

func moduleName(root, dir string) string {
	if dir == root {
		return strings.ToLower(filepath.Base(root))
	}
	return strings.ToLower(filepath.Base(dir))
}
