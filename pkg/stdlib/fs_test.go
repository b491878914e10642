package stdlib_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/iam/pkg/stdlib"
)

func TestFSSandbox(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "hello.iam"), []byte("print \"hi\"\n"), 0644))

	sandbox := stdlib.NewFSSandbox(tempDir, 1024)

	src, err := sandbox.ReadSource("hello.iam")
	require.NoError(t, err)
	assert.Equal(t, "print \"hi\"\n", src)

	_, err = sandbox.ReadSource("missing.iam")
	assert.True(t, os.IsNotExist(err))
}

func TestFSSandboxJail(t *testing.T) {
	sandbox := stdlib.NewFSSandbox(t.TempDir(), 1024)

	_, err := sandbox.Resolve("../../etc/passwd")
	assert.ErrorIs(t, err, stdlib.ErrPathEscape)

	_, err = sandbox.ReadSource("../outside.iam")
	assert.ErrorIs(t, err, stdlib.ErrPathEscape)

	p, err := sandbox.Resolve("sub/../prog.iam")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sandbox.Root, "prog.iam"), p)
}

func TestFSSandboxSizeLimit(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "big.iam"), []byte(strings.Repeat("x", 20)), 0644))

	sandbox := stdlib.NewFSSandbox(tempDir, 10)
	_, err := sandbox.ReadSource("big.iam")
	assert.ErrorIs(t, err, stdlib.ErrFileTooLarge)

	src, err := stdlib.NewFSSandbox("", 0).ReadFrom(strings.NewReader(strings.Repeat("y", 20)))
	require.NoError(t, err)
	assert.Len(t, src, 20)
}

func TestFSSandboxNoRoot(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "a.iam")
	require.NoError(t, os.WriteFile(path, []byte("EXIT"), 0644))

	src, err := stdlib.NewFSSandbox("", 100).ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "EXIT", src)
}
