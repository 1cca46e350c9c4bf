package publish_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modcache/internal/adapters/publish"
	"go.trai.ch/modcache/internal/core/domain"
)

func newEntry(t *testing.T, root, name string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(path, domain.DirPerm))
	return path
}

func assertLinksTo(t *testing.T, linkPath, want string) {
	t.Helper()

	info, err := os.Lstat(linkPath)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "%s is not a symlink", linkPath)

	got, err := os.Readlink(linkPath)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func assertNoTempLinks(t *testing.T, dir string) {
	t.Helper()

	names, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, n := range names {
		assert.False(t, strings.HasSuffix(n.Name(), ".tmp"), "leftover %s", n.Name())
	}
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, link, old string)
	}{
		{
			name:  "no existing link",
			setup: func(*testing.T, string, string) {},
		},
		{
			name: "replaces symlink",
			setup: func(t *testing.T, link, old string) {
				require.NoError(t, os.Symlink(old, link))
			},
		},
		{
			name: "replaces dangling symlink",
			setup: func(t *testing.T, link, _ string) {
				require.NoError(t, os.Symlink("/nonexistent/entry", link))
			},
		},
		{
			name: "replaces real directory",
			setup: func(t *testing.T, link, _ string) {
				require.NoError(t, os.MkdirAll(filepath.Join(link, "stale", "module"), domain.DirPerm))
			},
		},
		{
			name: "replaces regular file",
			setup: func(t *testing.T, link, _ string) {
				require.NoError(t, os.WriteFile(link, []byte("x"), domain.PrivateFilePerm))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			old := newEntry(t, root, "old")
			entry := newEntry(t, root, "new")
			link := filepath.Join(root, "current")
			tt.setup(t, link, old)

			require.NoError(t, publish.NewPublisher().Publish(entry, link))

			assertLinksTo(t, link, entry)
			assertNoTempLinks(t, root)
		})
	}
}

func TestPublisher_PublishIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	entry := newEntry(t, root, "entry")
	link := filepath.Join(root, "current")
	p := publish.NewPublisher()

	require.NoError(t, p.Publish(entry, link))
	require.NoError(t, p.Publish(entry, link))

	assertLinksTo(t, link, entry)
	assertNoTempLinks(t, root)
}

func TestPublisher_PublishCreatesParent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	entry := newEntry(t, root, "entry")
	link := filepath.Join(root, "etc", "puppet", "modules")

	require.NoError(t, publish.NewPublisher().Publish(entry, link))
	assertLinksTo(t, link, entry)
}

func TestPublisher_Resolve(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	entry := newEntry(t, root, "entry")
	p := publish.NewPublisher()

	t.Run("missing link", func(t *testing.T) {
		got, err := p.Resolve(filepath.Join(root, "absent"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("absolute target", func(t *testing.T) {
		link := filepath.Join(root, "abs")
		require.NoError(t, p.Publish(entry, link))

		got, err := p.Resolve(link)
		require.NoError(t, err)
		assert.Equal(t, entry, got)
	})

	t.Run("relative target", func(t *testing.T) {
		link := filepath.Join(root, "rel")
		require.NoError(t, os.Symlink("entry", link))

		got, err := p.Resolve(link)
		require.NoError(t, err)
		assert.Equal(t, entry, got)
	})

	t.Run("directory publishes nothing", func(t *testing.T) {
		got, err := p.Resolve(entry)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("regular file publishes nothing", func(t *testing.T) {
		file := filepath.Join(root, "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), domain.FilePerm))

		got, err := p.Resolve(file)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unreadable path", func(t *testing.T) {
		file := filepath.Join(root, "parent-file")
		require.NoError(t, os.WriteFile(file, []byte("x"), domain.FilePerm))

		_, err := p.Resolve(filepath.Join(file, "link"))
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrResolveLinkFailed.Error())
	})
}
