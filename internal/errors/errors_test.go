package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot access", "/path/to/file", FileAccessDenied, nil)
	assert.Equal(t, "cannot access: /path/to/file", fileErr.Error())
	assert.Equal(t, "/path/to/file", fileErr.Path())
	assert.Equal(t, FileAccessDenied, fileErr.Kind())
	assert.Equal(t, Operation(""), fileErr.Operation())

	origErr := fmt.Errorf("permission denied")
	fileErr = NewFileError("cannot access", "/path/to/file", FileAccessDenied, origErr)
	assert.Equal(t, "cannot access: /path/to/file: permission denied", fileErr.Error())
	assert.Equal(t, origErr, Unwrap(fileErr))

	notFoundErr := NewFileError("file not found", "/missing/file", FileNotFound, nil)
	assert.True(t, IsFileNotFound(notFoundErr))
	assert.False(t, IsFileNotFound(fileErr))
	assert.True(t, IsFileAccessDenied(fileErr))
	assert.False(t, IsFileAccessDenied(notFoundErr))

	var fe *FileError
	assert.True(t, As(fmt.Errorf("outer: %w", fileErr), &fe))
	assert.Equal(t, "/path/to/file", fe.Path())
}

func TestFileErrorOperation(t *testing.T) {
	fileErr := NewFileError("could not walk directory", ".", FileAccessDenied, nil).WithOperation(OpWalk)
	assert.Equal(t, OpWalk, fileErr.Operation())

	var fe *FileError
	require.True(t, As(fmt.Errorf("collect: %w", fileErr), &fe))
	assert.Equal(t, OpWalk, fe.Operation())
}

func TestClassifyFileError(t *testing.T) {
	assert.Nil(t, ClassifyFileError("remove", "x", nil))

	tests := []struct {
		name     string
		err      error
		kind     ErrorKind
		notEmpty bool
	}{
		{"not exist", &fs.PathError{Op: "remove", Path: "a", Err: syscall.ENOENT}, FileNotFound, false},
		{"permission", &fs.PathError{Op: "remove", Path: "a", Err: syscall.EACCES}, FileAccessDenied, false},
		{"not empty", &fs.PathError{Op: "remove", Path: "a", Err: syscall.ENOTEMPTY}, DirectoryNotEmpty, true},
		{"other", errors.New("disk on fire"), FileOperationFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := ClassifyFileError("failed to remove", "a", tt.err)
			require.NotNil(t, fe)
			assert.Equal(t, tt.kind, fe.Kind())
			assert.Equal(t, tt.notEmpty, IsDirectoryNotEmpty(fe))
			assert.Equal(t, "a", fe.Path())
			assert.True(t, Is(fe, tt.err))
		})
	}

	t.Run("real missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.txt")
		_, err := os.Open(missing)
		fe := ClassifyFileError("could not open", missing, err)
		assert.True(t, IsFileNotFound(fe))
	})

	t.Run("real non-empty directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "full")
		require.NoError(t, os.Mkdir(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "x"), []byte("x"), 0644))
		fe := ClassifyFileError("failed to remove", dir, os.Remove(dir))
		assert.True(t, IsDirectoryNotEmpty(fe))
	})
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "source", InvalidConfig, nil)
	assert.Equal(t, "invalid value: source", configErr.Error())
	assert.Equal(t, "source", configErr.Param())
	assert.Equal(t, InvalidConfig, configErr.Kind())

	origErr := fmt.Errorf("must not be empty")
	configErr = NewConfigError("invalid value", "source", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: source: must not be empty", configErr.Error())
	assert.Equal(t, origErr, Unwrap(configErr))

	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(errors.New("some other error")))
}

func TestPatternError(t *testing.T) {
	patternErr := NewPatternError("invalid pattern", "[a-", nil)
	assert.Equal(t, `invalid pattern: "[a-"`, patternErr.Error())
	assert.Equal(t, "[a-", patternErr.Pattern())
	assert.Equal(t, InvalidPattern, patternErr.Kind())

	origErr := fmt.Errorf("unexpected end of input")
	patternErr = NewPatternError("invalid pattern", "[a-", origErr)
	assert.Equal(t, `invalid pattern: "[a-": unexpected end of input`, patternErr.Error())

	assert.True(t, IsInvalidPattern(patternErr))
	assert.True(t, IsInvalidPattern(fmt.Errorf("skipping: %w", patternErr)))
	assert.False(t, IsInvalidPattern(errors.New("some other error")))
}

func TestErrorChains(t *testing.T) {
	baseErr := errors.New("base error")
	fileErr := NewFileError("file error", "/path/to/file", FileNotFound, baseErr)
	configErr := NewConfigError("config error", "source", InvalidConfig, fileErr)

	assert.Equal(t, "config error: source: file error: /path/to/file: base error", configErr.Error())
	assert.True(t, Is(configErr, baseErr))
	assert.True(t, Is(configErr, fileErr))

	var fe *FileError
	assert.True(t, As(configErr, &fe))
	assert.Equal(t, "/path/to/file", fe.Path())

	assert.True(t, IsFileNotFound(configErr))
	assert.True(t, IsInvalidConfig(configErr))
}
