// Package headers verifies that the protocol headers checked into the
// include directory match what wayland-scanner currently produces from the
// configured protocol XML documents, and can regenerate them.
package headers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bnema/protocheck/internal/logger"
)

// WaylandProtocols lists the protocol documents taken from the shared
// wayland-protocols collection, relative to its data directory. The order
// here is the order documents are checked and generated in.
var WaylandProtocols = []string{
	"stable/xdg-shell/xdg-shell.xml",
	"unstable/idle-inhibit/idle-inhibit-unstable-v1.xml",
	"unstable/pointer-constraints/pointer-constraints-unstable-v1.xml",
}

// WlrootsProtocols lists the protocol documents shipped in the wlroots
// source tree, relative to its root.
var WlrootsProtocols = []string{
	"protocol/idle.xml",
	"protocol/wlr-output-power-management-unstable-v1.xml",
	"protocol/wlr-layer-shell-unstable-v1.xml",
}

// Document is a protocol XML document resolved to a path on disk.
type Document struct {
	Path string
}

// Stem returns the document filename without its .xml suffix.
func (d Document) Stem() string {
	return strings.TrimSuffix(filepath.Base(d.Path), ".xml")
}

// HeaderName returns the filename of the server header generated from this
// document.
func (d Document) HeaderName() string {
	return d.Stem() + "-protocol.h"
}

// Name returns the document's filename, used in error reporting.
func (d Document) Name() string {
	return filepath.Base(d.Path)
}

// Generator produces a server-side header for a protocol XML document.
// Implemented by scanner.Scanner; tests substitute a fake.
type Generator interface {
	ServerHeader(xmlPath, outPath string) error
}

// ResolveSet resolves the configured protocol documents against the two
// base directories, preserving declared order with no deduplication. It
// returns a *NotFoundError if either base directory or any resolved
// document is missing.
func ResolveSet(waylandDir, wlrootsDir string) ([]Document, error) {
	docs, err := resolve(waylandDir, WaylandProtocols)
	if err != nil {
		return nil, err
	}
	wlroots, err := resolve(wlrootsDir, WlrootsProtocols)
	if err != nil {
		return nil, err
	}
	return append(docs, wlroots...), nil
}

func resolve(base string, rels []string) ([]Document, error) {
	if _, err := os.Stat(base); err != nil {
		return nil, &NotFoundError{Path: base}
	}
	docs := make([]Document, 0, len(rels))
	for _, rel := range rels {
		path := filepath.Join(base, rel)
		if _, err := os.Stat(path); err != nil {
			return nil, &NotFoundError{Path: path}
		}
		docs = append(docs, Document{Path: path})
	}
	return docs, nil
}

// Checker compares checked-in headers against freshly generated ones.
type Checker struct {
	Generator  Generator
	IncludeDir string
}

// Check verifies that the include directory holds exactly the headers
// derived from docs and that each one matches the generator's current
// output line for line. It stops at the first divergence and has no side
// effects on success.
func (c *Checker) Check(docs []Document) error {
	if err := c.checkFilenames(docs); err != nil {
		return err
	}
	for _, doc := range docs {
		logger.Debugf("checking %s", doc.HeaderName())
		if err := c.checkDocument(doc); err != nil {
			return err
		}
	}
	return nil
}

// checkFilenames compares the expected header filename set against what is
// actually present in the include directory.
func (c *Checker) checkFilenames(docs []Document) error {
	expected := make(map[string]bool, len(docs))
	for _, doc := range docs {
		expected[doc.HeaderName()] = true
	}

	entries, err := os.ReadDir(c.IncludeDir)
	if err != nil {
		return fmt.Errorf("failed to read include directory: %w", err)
	}
	actual := make(map[string]bool, len(entries))
	for _, entry := range entries {
		actual[entry.Name()] = true
	}

	var missing, extra []string
	for name := range expected {
		if !actual[name] {
			missing = append(missing, name)
		}
	}
	for name := range actual {
		if !expected[name] {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return &SetMismatchError{Missing: missing, Extra: extra}
	}
	return nil
}

// checkDocument regenerates doc's header into a temporary directory and
// compares it line by line against the checked-in header. The temporary
// directory is removed on every exit path.
func (c *Checker) checkDocument(doc Document) error {
	checkedIn, err := readLines(filepath.Join(c.IncludeDir, doc.HeaderName()))
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "protocheck-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outPath := filepath.Join(tmpDir, doc.HeaderName())
	if err := c.Generator.ServerHeader(doc.Path, outPath); err != nil {
		return err
	}
	generated, err := readLines(outPath)
	if err != nil {
		return err
	}

	if len(generated) != len(checkedIn) {
		return &LineCountMismatchError{
			Doc:      doc.Name(),
			Expected: len(generated),
			Got:      len(checkedIn),
		}
	}
	for i := range generated {
		if generated[i] != checkedIn[i] {
			return &LineMismatchError{
				Doc:      doc.Name(),
				Index:    i,
				Expected: strings.TrimSuffix(generated[i], "\n"),
				Got:      strings.TrimSuffix(checkedIn[i], "\n"),
			}
		}
	}
	return nil
}

// Generate writes fresh headers for every document straight into the
// include directory, overwriting whatever is there. A failure partway
// through leaves the earlier headers updated and the rest untouched.
func (c *Checker) Generate(docs []Document) error {
	for _, doc := range docs {
		outPath := filepath.Join(c.IncludeDir, doc.HeaderName())
		if err := c.Generator.ServerHeader(doc.Path, outPath); err != nil {
			return err
		}
		logger.Debugf("generated %s", outPath)
	}
	return nil
}

// readLines splits a file into newline-retaining lines so that a missing
// trailing newline shows up as a difference.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	lines := strings.SplitAfter(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}
