package profiles

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/spf13/afero"
)

// Create makes the profile directory if needed.
func (s *Store) Create(name string) error {
	if err := s.FS.MkdirAll(s.Path(name), 0755); err != nil {
		return fmt.Errorf("creating profile %q: %w", name, err)
	}
	return nil
}

// SaveExtensions writes records as the profile's extension list, replacing
// any existing one.
func (s *Store) SaveExtensions(name string, records []extensions.Record) error {
	data, err := extensions.MarshalList(records)
	if err != nil {
		return err
	}
	if err := s.Create(name); err != nil {
		return err
	}
	path := filepath.Join(s.Path(name), extensions.ListFileName)
	if err := afero.WriteFile(s.FS, path, data, 0644); err != nil {
		return fmt.Errorf("writing extension list: %w", err)
	}
	return nil
}

// CopyFileIn copies src into the profile as fileName. It returns false when
// src does not exist.
func (s *Store) CopyFileIn(src, name, fileName string) (bool, error) {
	info, err := s.FS.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", fileName, err)
	}
	if err := s.Create(name); err != nil {
		return false, err
	}
	if err := copyFile(s.FS, src, filepath.Join(s.Path(name), fileName), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("copying %s: %w", fileName, err)
	}
	return true, nil
}

// CopyDirIn replaces the profile's dirName with a copy of src. It returns
// the number of files copied, or -1 when src is not a directory.
func (s *Store) CopyDirIn(src, name, dirName string) (int, error) {
	ok, err := afero.DirExists(s.FS, src)
	if err != nil || !ok {
		return -1, nil
	}

	dst := filepath.Join(s.Path(name), dirName)
	if err := s.FS.RemoveAll(dst); err != nil {
		return 0, fmt.Errorf("clearing %s: %w", dirName, err)
	}

	count := 0
	err = afero.Walk(s.FS, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return s.FS.MkdirAll(target, 0755)
		}
		count++
		return copyFile(s.FS, path, target, info.Mode().Perm())
	})
	if err != nil {
		return count, fmt.Errorf("copying %s: %w", dirName, err)
	}
	return count, nil
}

func copyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fs, dst, data, mode)
}
