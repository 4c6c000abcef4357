package state

import (
	"slices"

	"github.com/atomicstack/overlaykit/internal/filebrowser"
)

type DirectoryStore interface {
	Path() string
	Entries() []filebrowser.FileInfo
	// Set records a listing and reports whether it differs from the last.
	Set(path string, entries []filebrowser.FileInfo) bool
	Err() error
	SetErr(error)
}

type directoryStore struct {
	path    string
	entries []filebrowser.FileInfo
	err     error
}

func NewDirectoryStore() DirectoryStore {
	return &directoryStore{}
}

func (s *directoryStore) Path() string {
	return s.path
}

func (s *directoryStore) Entries() []filebrowser.FileInfo {
	return slices.Clone(s.entries)
}

func (s *directoryStore) Set(path string, entries []filebrowser.FileInfo) bool {
	s.err = nil
	if path == s.path && slices.Equal(entries, s.entries) {
		return false
	}
	s.path = path
	s.entries = slices.Clone(entries)
	return true
}

func (s *directoryStore) Err() error {
	return s.err
}

func (s *directoryStore) SetErr(err error) {
	s.err = err
}
