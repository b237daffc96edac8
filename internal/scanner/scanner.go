// Package scanner wraps the external tools the checker shells out to:
// wayland-scanner for header generation and pkgconf for locating the
// shared wayland-protocols collection.
package scanner

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bnema/protocheck/internal/logger"
)

// DefaultBin is the scanner binary looked up on PATH when no explicit
// path is configured.
const DefaultBin = "wayland-scanner"

// Scanner invokes wayland-scanner to compile protocol XML documents into
// C headers.
type Scanner struct {
	Bin string
}

// New resolves the scanner binary. An empty bin falls back to DefaultBin
// on PATH.
func New(bin string) (*Scanner, error) {
	if bin == "" {
		bin = DefaultBin
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%s not found. Please install wayland: https://wayland.freedesktop.org", bin)
	}
	return &Scanner{Bin: path}, nil
}

// ServerHeader generates the server-side header for xmlPath at outPath.
// The scanner's stdout/stderr are captured, not streamed, and no timeout
// is imposed on the process.
func (s *Scanner) ServerHeader(xmlPath, outPath string) error {
	cmd := exec.Command(s.Bin, "server-header", xmlPath, outPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &GenerationError{Doc: filepath.Base(xmlPath), Output: output, Err: err}
	}
	if len(output) > 0 {
		logger.Debugf("%s output: %s", s.Bin, strings.TrimSpace(string(output)))
	}
	return nil
}

// WaylandProtocolsDir asks pkgconf where wayland-protocols installs its
// data files. It returns "" when pkgconf or the package is unavailable;
// callers treat that as "no default available", not as an error.
func WaylandProtocolsDir() string {
	output, err := exec.Command("pkgconf", "--variable=pkgdatadir", "wayland-protocols").Output()
	if err != nil {
		logger.Debugf("pkgconf lookup failed: %v", err)
		return ""
	}
	return strings.TrimSpace(string(output))
}

// GenerationError reports a wayland-scanner invocation that exited
// non-zero, carrying the captured combined output.
type GenerationError struct {
	Doc    string
	Output []byte
	Err    error
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("wayland-scanner failed for %s: %v", e.Doc, e.Err)
	if out := strings.TrimSpace(string(e.Output)); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
