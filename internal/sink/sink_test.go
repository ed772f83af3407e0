package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSinkCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "php")
	s := NewDirSink(dir)

	require.NoError(t, s.WriteArtifact("ListZonesRequest.php", "<?php"))
	require.NoError(t, s.WriteArtifact("ListZonesRequest.php", "<?php // v2"))

	content, err := os.ReadFile(filepath.Join(dir, "ListZonesRequest.php"))
	require.NoError(t, err)
	assert.Equal(t, "<?php // v2", string(content))
	assert.Equal(t, dir, s.Dir())
}

func TestSinksRejectEscapingNames(t *testing.T) {
	names := []string{"", "../evil.php", "sub/dir.php", ".hidden"}

	dirSink := NewDirSink(t.TempDir())
	memSink := NewMemorySink()
	for _, name := range names {
		assert.Error(t, dirSink.WriteArtifact(name, "x"), name)
		assert.Error(t, memSink.WriteArtifact(name, "x"), name)
	}
	assert.Empty(t, memSink.Artifacts())
}

func TestMemorySinkKeepsOrder(t *testing.T) {
	s := NewMemorySink()
	require.NoError(t, s.WriteArtifact("b.php", "1"))
	require.NoError(t, s.WriteArtifact("a.php", "2"))
	require.NoError(t, s.WriteArtifact("b.php", "3"))

	artifacts := s.Artifacts()
	require.Len(t, artifacts, 3)
	assert.Equal(t, []string{"b.php", "a.php", "b.php"}, []string{artifacts[0].Filename, artifacts[1].Filename, artifacts[2].Filename})

	content, ok := s.Get("b.php")
	assert.True(t, ok)
	assert.Equal(t, "3", content)

	_, ok = s.Get("missing.php")
	assert.False(t, ok)
}
