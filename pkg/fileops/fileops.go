// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fileops

import (
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// swapped in tests
var (
	renameFunc  = os.Rename
	chtimesFunc = os.Chtimes
)

// ErrSpecialFile is returned when asked to copy a pipe, socket, device or other non-regular file
var ErrSpecialFile = errors.New("not a regular file")

// 💾 CrossDeviceError marks a rename that failed because src and dst live on different volumes
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return "cross-device rename " + e.Src + " -> " + e.Dst + ": " + e.Err.Error()
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// 🔍 IsCrossDevice reports whether err is a cross-device rename failure
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// 🔄 Rename wraps os.Rename and tags EXDEV style failures as CrossDeviceError
func Rename(src, dst string) error {
	if err := renameFunc(src, dst); err != nil {
		if isCrossDevice(err) {
			return &CrossDeviceError{Src: src, Dst: dst, Err: err}
		}
		return err
	}
	return nil
}

// 📁 MkdirAll creates path and any missing parents
func MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// 📦 CopyFile duplicates src at dst, overwriting dst if it exists.
// Only regular files (or symlinks to them) are copied: pipes, sockets and devices are refused
// before they are opened. Mode bits and modification time are applied once the destination is closed.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("reading source info: %w", err)
	}
	if info.IsDir() {
		return errors.Errorf("source %s is a directory", src)
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("source %s is not a regular file (%s): %w", src, info.Mode().Type(), ErrSpecialFile)
	}

	if err := writeContent(src, dst, info.Mode().Perm()); err != nil {
		return err
	}

	if err := chtimesFunc(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("setting destination times: %w", err)
	}

	return nil
}

// writeContent copies the bytes of src into dst and closes dst before returning
func writeContent(src, dst string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer func() {
		// a failed close on the destination usually means the data never hit the disk
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing destination file: %w", cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Errorf("copying file content: %w", err)
	}

	if err := out.Chmod(perm); err != nil {
		return errors.Errorf("setting destination mode: %w", err)
	}

	return nil
}

// 🚚 MoveFile relocates src to dst.
// A rename is tried first; when the volumes differ the file is copied and the source removed.
func MoveFile(src, dst string) error {
	err := Rename(src, dst)
	if err == nil {
		return nil
	}
	if !IsCrossDevice(err) {
		return errors.Errorf("renaming file: %w", err)
	}

	if err := CopyFile(src, dst); err != nil {
		return errors.Errorf("copying across devices: %w", err)
	}

	if err := os.Remove(src); err != nil {
		return errors.Errorf("removing source after copy: %w", err)
	}

	return nil
}
