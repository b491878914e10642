package stdlib

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrPathEscape   = errors.New("stdlib/fs: path escape violation")
	ErrFileTooLarge = errors.New("stdlib/fs: file size limit exceeded")
)

// FSSandbox loads program sources. When Root is set, paths are resolved
// relative to it and may not leave it.
type FSSandbox struct {
	Root        string
	MaxFileSize int
}

func NewFSSandbox(root string, maxFileSize int) *FSSandbox {
	if root != "" {
		root, _ = filepath.Abs(root)
	}
	return &FSSandbox{
		Root:        root,
		MaxFileSize: maxFileSize,
	}
}

// Resolve maps path to the file the sandbox will open.
func (s *FSSandbox) Resolve(path string) (string, error) {
	if s.Root == "" {
		return filepath.Clean(path), nil
	}

	// Root jailing
	cleanPath := filepath.Join(s.Root, filepath.Clean(path))
	if cleanPath != s.Root && !strings.HasPrefix(cleanPath, s.Root+string(filepath.Separator)) {
		return "", ErrPathEscape
	}
	return cleanPath, nil
}

// ReadSource returns the contents of a program file.
func (s *FSSandbox) ReadSource(path string) (string, error) {
	cleanPath, err := s.Resolve(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	src, err := s.ReadFrom(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// ReadFrom reads a whole program from r, honouring the size limit.
func (s *FSSandbox) ReadFrom(r io.Reader) (string, error) {
	if s.MaxFileSize > 0 {
		r = io.LimitReader(r, int64(s.MaxFileSize)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.MaxFileSize > 0 && len(data) > s.MaxFileSize {
		return "", ErrFileTooLarge
	}
	return string(data), nil
}
