package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStub drops an executable shell script into dir and returns its path.
func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	return path
}

func TestNew(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		bin := writeStub(t, t.TempDir(), "wayland-scanner", "exit 0\n")

		s, err := New(bin)
		require.NoError(t, err)
		assert.Equal(t, bin, s.Bin)
	})

	t.Run("missing binary", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())

		_, err := New("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wayland-scanner not found")
	})
}

func TestServerHeader(t *testing.T) {
	t.Run("writes the output file", func(t *testing.T) {
		// Stub scanner: copy the input document to the output path.
		bin := writeStub(t, t.TempDir(), "wayland-scanner", `cp "$2" "$3"`+"\n")
		s := &Scanner{Bin: bin}

		dir := t.TempDir()
		xmlPath := filepath.Join(dir, "idle.xml")
		require.NoError(t, os.WriteFile(xmlPath, []byte("<protocol/>"), 0644))
		outPath := filepath.Join(dir, "idle-protocol.h")

		require.NoError(t, s.ServerHeader(xmlPath, outPath))
		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Equal(t, "<protocol/>", string(data))
	})

	t.Run("non-zero exit yields GenerationError with captured output", func(t *testing.T) {
		bin := writeStub(t, t.TempDir(), "wayland-scanner", "echo 'parse error' >&2\nexit 1\n")
		s := &Scanner{Bin: bin}

		err := s.ServerHeader("/tmp/idle.xml", "/tmp/idle-protocol.h")

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "idle.xml", genErr.Doc)
		assert.Contains(t, string(genErr.Output), "parse error")
		assert.Contains(t, genErr.Error(), "parse error")
	})
}

func TestWaylandProtocolsDir(t *testing.T) {
	t.Run("returns trimmed pkgconf output", func(t *testing.T) {
		dir := t.TempDir()
		writeStub(t, dir, "pkgconf", "echo '/usr/share/wayland-protocols'\n")
		t.Setenv("PATH", dir)

		assert.Equal(t, "/usr/share/wayland-protocols", WaylandProtocolsDir())
	})

	t.Run("pkgconf failure means no default", func(t *testing.T) {
		dir := t.TempDir()
		writeStub(t, dir, "pkgconf", "exit 1\n")
		t.Setenv("PATH", dir)

		assert.Equal(t, "", WaylandProtocolsDir())
	})

	t.Run("pkgconf missing means no default", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())

		assert.Equal(t, "", WaylandProtocolsDir())
	})
}
