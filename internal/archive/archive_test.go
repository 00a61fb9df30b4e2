package archive

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureEntry struct {
	name   string
	method uint16
	data   string
}

var fixture = []fixtureEntry{
	{name: "META-INF/MANIFEST.MF", method: zip.Deflate, data: "Manifest-Version: 1.0\n"},
	{name: "com/example/A.class", method: zip.Deflate, data: "class A bytes"},
	{name: "com/example/B.class", method: zip.Store, data: "class B bytes"},
	{name: "readme.txt", method: zip.Deflate, data: "hello"},
}

func writeFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lib.jar")

	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for _, e := range fixture {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: e.method})
		require.NoError(t, err)
		_, err = w.Write([]byte(e.data))
		require.NoError(t, err)
	}

	require.NoError(t, zw.SetComment("built by tests"))
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	return path
}

type rawEntry struct {
	header zip.FileHeader
	raw    []byte
}

func readRaw(t *testing.T, path string) ([]rawEntry, string) {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)

	defer zr.Close()

	var entries []rawEntry

	for _, f := range zr.File {
		r, err := f.OpenRaw()
		require.NoError(t, err)

		raw, err := io.ReadAll(r)
		require.NoError(t, err)

		entries = append(entries, rawEntry{header: f.FileHeader, raw: raw})
	}

	return entries, zr.Comment
}

func TestReplaceEntry(t *testing.T) {
	t.Run("missing entry leaves archive byte-identical", func(t *testing.T) {
		path := writeFixture(t)
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		require.NoError(t, ReplaceEntry(path, "com/example/Missing.class", []byte("x")))

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	for _, target := range []string{"com/example/A.class", "com/example/B.class"} {
		t.Run("replaces "+target, func(t *testing.T) {
			path := writeFixture(t)
			before, comment := readRaw(t, path)

			replacement := bytes.Repeat([]byte("new content "), 50)
			require.NoError(t, ReplaceEntry(path, target, replacement))

			after, afterComment := readRaw(t, path)
			assert.Equal(t, comment, afterComment)
			require.Len(t, after, len(before))

			for i := range before {
				assert.Equal(t, before[i].header.Name, after[i].header.Name, "entry order must be preserved")
				assert.Equal(t, before[i].header.Method, after[i].header.Method)

				if before[i].header.Name == target {
					continue
				}

				assert.Equal(t, before[i].raw, after[i].raw, "untouched entry %s changed", before[i].header.Name)
				assert.Equal(t, before[i].header.CRC32, after[i].header.CRC32)
			}

			data, ok, err := ReadEntry(path, target)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, replacement, data)
		})
	}

	t.Run("second replace with same bytes round trips", func(t *testing.T) {
		path := writeFixture(t)
		require.NoError(t, ReplaceEntry(path, "com/example/A.class", []byte("v2")))
		require.NoError(t, ReplaceEntry(path, "com/example/A.class", []byte("v3")))

		data, _, err := ReadEntry(path, "com/example/A.class")
		require.NoError(t, err)
		assert.Equal(t, "v3", string(data))
	})

	t.Run("preserves file mode", func(t *testing.T) {
		path := writeFixture(t)
		require.NoError(t, os.Chmod(path, 0o640))

		require.NoError(t, ReplaceEntry(path, "readme.txt", []byte("bye")))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	})

	t.Run("missing archive is an IOError", func(t *testing.T) {
		err := ReplaceEntry(filepath.Join(t.TempDir(), "absent.jar"), "A.class", nil)
		require.Error(t, err)

		var ioErr *IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "replace", ioErr.Op)
	})

	t.Run("corrupt archive is left untouched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.jar")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

		err := ReplaceEntry(path, "A.class", []byte("x"))
		require.Error(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "not a zip", string(data))
	})

	t.Run("no temporary files are left behind", func(t *testing.T) {
		path := writeFixture(t)
		require.NoError(t, ReplaceEntry(path, "readme.txt", []byte("bye")))

		files, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "lib.jar", files[0].Name())
	})
}

func TestReplaceEntries_Concurrent(t *testing.T) {
	path := writeFixture(t)

	var wg sync.WaitGroup

	for _, name := range []string{"com/example/A.class", "com/example/B.class", "readme.txt"} {
		wg.Add(1)

		go func(name string) {
			defer wg.Done()
			assert.NoError(t, ReplaceEntry(path, name, []byte("updated "+name)))
		}(name)
	}

	wg.Wait()

	for _, name := range []string{"com/example/A.class", "com/example/B.class", "readme.txt"} {
		data, ok, err := ReadEntry(path, name)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "updated "+name, string(data))
	}
}

func TestRemoveEntry(t *testing.T) {
	t.Run("removes and preserves order", func(t *testing.T) {
		path := writeFixture(t)

		require.NoError(t, RemoveEntry(path, "com/example/A.class"))

		names, err := ListEntries(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"META-INF/MANIFEST.MF", "com/example/B.class", "readme.txt"}, names)

		_, ok, err := ReadEntry(path, "com/example/A.class")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing entry is a no-op", func(t *testing.T) {
		path := writeFixture(t)
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		require.NoError(t, RemoveEntry(path, "nope"))

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestCleanupPending(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, ".hendrix-stale.jar")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))

	pending.Lock()
	pending.paths = append(pending.paths, stale, filepath.Join(dir, "already-gone"))
	pending.Unlock()

	require.NoError(t, CleanupPending())

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestStripExtra(t *testing.T) {
	extra := []byte{
		0x01, 0x00, 0x02, 0x00, 0xAA, 0xBB, // zip64
		0x55, 0x54, 0x01, 0x00, 0x07, // extended timestamp
	}

	assert.Equal(t, []byte{0x55, 0x54, 0x01, 0x00, 0x07}, stripExtra(extra, zip64ExtraID))
	assert.Nil(t, stripExtra(nil, zip64ExtraID))
}
