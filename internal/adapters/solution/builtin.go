// Package solution enumerates the projects referenced by solution files.
package solution

import (
	"bufio"
	"bytes"
	"context"
	"iter"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	headerPrefix = "Microsoft Visual Studio Solution File, Format Version"

	// folderTypeID marks solution folders, which group projects but are not buildable.
	folderTypeID = "2150E333-8FDC-42A3-9474-1A3956D46DE8"
)

var projectLine = regexp.MustCompile(
	`^Project\("\{([0-9A-Fa-f-]+)\}"\)\s*=\s*"([^"]*)"\s*,\s*"([^"]*)"\s*,\s*"\{[0-9A-Fa-f-]+\}"$`,
)

type projectEntry struct {
	typeID string
	name   string
	path   string
}

func (p projectEntry) buildable() bool {
	return !strings.EqualFold(p.typeID, folderTypeID) && !strings.Contains(p.path, "://")
}

// Builtin parses solution files directly. It works wherever the process runs.
type Builtin struct{}

// NewBuiltin creates a new Builtin parser.
func NewBuiltin() *Builtin {
	return &Builtin{}
}

// ProjectFiles implements ports.SolutionParser.
func (b *Builtin) ProjectFiles(_ context.Context, solutionPath string) (iter.Seq[string], error) {
	abs, err := filepath.Abs(solutionPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSolutionParse.Error()), "solution", solutionPath)
	}

	//nolint:gosec // The solution path is chosen by the user.
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSolutionParse.Error()), "solution", solutionPath)
	}

	entries, err := parseSolution(data)
	if err != nil {
		return nil, zerr.With(err, "solution", solutionPath)
	}

	dir := filepath.Dir(abs)
	return func(yield func(string) bool) {
		for _, e := range entries {
			if !e.buildable() {
				continue
			}
			if !yield(resolveProjectPath(dir, e.path)) {
				return
			}
		}
	}, nil
}

func parseSolution(data []byte) ([]projectEntry, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	var (
		entries   []projectEntry
		sawHeader bool
		open      bool
		lineNo    int
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, headerPrefix):
			sawHeader = true
		case strings.HasPrefix(line, "Project("):
			if !sawHeader {
				return nil, malformed(lineNo, "project entry before the solution header")
			}
			if open {
				return nil, malformed(lineNo, "project entry is missing EndProject")
			}
			m := projectLine.FindStringSubmatch(line)
			if m == nil {
				return nil, malformed(lineNo, "unrecognized project entry")
			}
			entries = append(entries, projectEntry{typeID: m[1], name: m[2], path: m[3]})
			open = true
		case line == "EndProject":
			if !open {
				return nil, malformed(lineNo, "EndProject without a project entry")
			}
			open = false
		case line == "Global" && open:
			return nil, malformed(lineNo, "project entry is missing EndProject")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSolutionParse.Error())
	}

	if !sawHeader {
		return nil, malformed(lineNo, "missing solution file header")
	}
	if open {
		return nil, malformed(lineNo, "project entry is missing EndProject")
	}

	return entries, nil
}

func malformed(line int, reason string) error {
	err := zerr.With(domain.ErrSolutionParse, "line", strconv.Itoa(line))
	return zerr.With(err, "reason", reason)
}

// resolveProjectPath turns a solution-relative path with either separator into an absolute path.
func resolveProjectPath(dir, p string) string {
	p = filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return filepath.Clean(p)
}
