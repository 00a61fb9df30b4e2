// Package archive replaces or removes single entries of ZIP-family archives
// (jar, zip) in place. Untouched entries are copied without being
// decompressed, so their bytes stay identical.
package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// zip64ExtraID is the extra field holding 64-bit sizes of the old content.
const zip64ExtraID = 0x0001

// IOError reports a failure reading or writing archive bytes. The original
// archive is left untouched whenever an IOError is returned.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("archive %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

type edit struct {
	remove bool
	data   []byte
}

// ReplaceEntry replaces the content of entry name with data, keeping the
// entry's position, compression method and metadata. It is a no-op when the
// archive has no such entry.
func ReplaceEntry(path, name string, data []byte) error {
	return ReplaceEntries(path, map[string][]byte{name: data})
}

// ReplaceEntries is the batch form of ReplaceEntry. Names missing from the
// archive are ignored.
func ReplaceEntries(path string, replacements map[string][]byte) error {
	edits := make(map[string]edit, len(replacements))
	for name, data := range replacements {
		edits[name] = edit{data: data}
	}

	return rewrite("replace", path, edits)
}

// RemoveEntry removes entry name, preserving the order of every other entry.
// It is a no-op when the archive has no such entry.
func RemoveEntry(path, name string) error {
	return rewrite("remove", path, map[string]edit{name: {remove: true}})
}

// ReadEntry returns the decompressed content of entry name. The boolean is
// false when the archive has no such entry.
func ReadEntry(path, name string) ([]byte, bool, error) {
	unlock := lock(path)
	defer unlock()

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, false, &IOError{Op: "read", Path: path, Err: err}
	}

	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, false, &IOError{Op: "read", Path: path, Err: fmt.Errorf("entry %s: %w", name, err)}
		}

		data, err := io.ReadAll(rc)
		_ = rc.Close()

		if err != nil {
			return nil, false, &IOError{Op: "read", Path: path, Err: fmt.Errorf("entry %s: %w", name, err)}
		}

		return data, true, nil
	}

	return nil, false, nil
}

// ListEntries returns entry names in archive order.
func ListEntries(path string) ([]string, error) {
	unlock := lock(path)
	defer unlock()

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &IOError{Op: "list", Path: path, Err: err}
	}

	defer func() { _ = zr.Close() }()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	return names, nil
}

// rewrite builds a fresh archive next to path applying edits, then renames it
// over the original.
func rewrite(op, path string, edits map[string]edit) error {
	unlock := lock(path)
	defer unlock()

	wrap := func(err error) error {
		return &IOError{Op: op, Path: path, Err: err}
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return wrap(err)
	}

	defer func() { _ = zr.Close() }()

	if !touches(zr.File, edits) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return wrap(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".hendrix-*"+filepath.Ext(path))
	if err != nil {
		return wrap(err)
	}

	tmpName := tmp.Name()
	defer removeTemp(tmpName)

	if err := writeArchive(tmp, zr, edits); err != nil {
		_ = tmp.Close()
		return wrap(err)
	}

	if err := tmp.Close(); err != nil {
		return wrap(err)
	}

	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return wrap(err)
	}

	if err := zr.Close(); err != nil {
		return wrap(err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return wrap(err)
	}

	return nil
}

func touches(files []*zip.File, edits map[string]edit) bool {
	for _, f := range files {
		if _, ok := edits[f.Name]; ok {
			return true
		}
	}

	return false
}

func writeArchive(out io.Writer, zr *zip.ReadCloser, edits map[string]edit) error {
	zw := zip.NewWriter(out)

	for _, f := range zr.File {
		e, ok := edits[f.Name]

		var err error

		switch {
		case !ok:
			err = zw.Copy(f)
		case e.remove:
			continue
		default:
			err = writeReplacement(zw, f, e.data)
		}

		if err != nil {
			return fmt.Errorf("entry %s: %w", f.Name, err)
		}
	}

	if err := zw.SetComment(zr.Comment); err != nil {
		return err
	}

	return zw.Close()
}

// writeReplacement writes data under f's header with the same compression
// method, setting CRC-32 and sizes explicitly for the new content.
func writeReplacement(zw *zip.Writer, f *zip.File, data []byte) error {
	fh := f.FileHeader
	fh.Extra = stripExtra(fh.Extra, zip64ExtraID)
	fh.CRC32 = crc32.ChecksumIEEE(data)
	fh.UncompressedSize64 = uint64(len(data))

	payload := data

	switch fh.Method {
	case zip.Store:
	case zip.Deflate:
		var err error

		payload, err = deflate(data)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported compression method %d", fh.Method)
	}

	fh.CompressedSize64 = uint64(len(payload))

	w, err := zw.CreateRaw(&fh)
	if err != nil {
		return err
	}

	_, err = w.Write(payload)

	return err
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}

	if _, err := fw.Write(data); err != nil {
		_ = fw.Close()
		return nil, err
	}

	if err := fw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// stripExtra drops every extra field block with the given header id.
func stripExtra(extra []byte, id uint16) []byte {
	var out []byte

	for len(extra) >= 4 {
		tag := binary.LittleEndian.Uint16(extra[0:2])
		size := int(binary.LittleEndian.Uint16(extra[2:4]))

		if 4+size > len(extra) {
			break
		}

		if tag != id {
			out = append(out, extra[:4+size]...)
		}

		extra = extra[4+size:]
	}

	return out
}
