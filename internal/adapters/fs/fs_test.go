package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modcache/internal/adapters/fs"
	"go.trai.ch/modcache/internal/core/domain"
)

// buildEntry lays out a small installed module tree.
func buildEntry(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"alpha/metadata.json":            `{"name":"alpha","version":"1.0"}`,
		"alpha/manifests/init.pp":        "class alpha {}\n",
		"beta/metadata.json":             `{"name":"beta","version":"2.0"}`,
		"beta/lib/facter/beta_fact.rb":   "Facter.add(:beta) {}\n",
		"beta/templates/config.conf.erb": "<%= @value %>\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	}
	require.NoError(t, os.Symlink("metadata.json", filepath.Join(root, "alpha", "meta")))
	return root
}

func newHasher() *fs.Hasher {
	return fs.NewHasher(fs.NewWalker())
}

func TestHasher_ComputeTreeHash_Stable(t *testing.T) {
	t.Parallel()

	root := buildEntry(t)
	h := newHasher()

	first, err := h.ComputeTreeHash(root)
	require.NoError(t, err)
	assert.Len(t, first, 16)

	second, err := h.ComputeTreeHash(root)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Identical content in another location hashes the same.
	other, err := h.ComputeTreeHash(buildEntry(t))
	require.NoError(t, err)
	assert.Equal(t, first, other)
}

func TestHasher_ComputeTreeHash_IgnoresBookkeeping(t *testing.T) {
	t.Parallel()

	root := buildEntry(t)
	h := newHasher()

	before, err := h.ComputeTreeHash(root)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, domain.MarkerName), nil, domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".success-stamp.123.tmp"), nil, domain.FilePerm))

	after, err := h.ComputeTreeHash(root)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestHasher_ComputeTreeHash_Sensitivity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(t *testing.T, root string)
	}{
		{
			name: "content change",
			mutate: func(t *testing.T, root string) {
				path := filepath.Join(root, "alpha", "manifests", "init.pp")
				require.NoError(t, os.WriteFile(path, []byte("class alpha { }\n"), domain.FilePerm))
			},
		},
		{
			name: "new file",
			mutate: func(t *testing.T, root string) {
				path := filepath.Join(root, "beta", "README.md")
				require.NoError(t, os.WriteFile(path, []byte("# beta\n"), domain.FilePerm))
			},
		},
		{
			name: "rename",
			mutate: func(t *testing.T, root string) {
				require.NoError(t, os.Rename(
					filepath.Join(root, "beta", "metadata.json"),
					filepath.Join(root, "beta", "metadata.jsn"),
				))
			},
		},
		{
			name: "permission change",
			mutate: func(t *testing.T, root string) {
				require.NoError(t, os.Chmod(filepath.Join(root, "alpha", "metadata.json"), 0o600))
			},
		},
		{
			name: "symlink retarget",
			mutate: func(t *testing.T, root string) {
				link := filepath.Join(root, "alpha", "meta")
				require.NoError(t, os.Remove(link))
				require.NoError(t, os.Symlink("manifests/init.pp", link))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := buildEntry(t)
			h := newHasher()

			before, err := h.ComputeTreeHash(root)
			require.NoError(t, err)

			tt.mutate(t, root)

			after, err := h.ComputeTreeHash(root)
			require.NoError(t, err)
			assert.NotEqual(t, before, after)
		})
	}
}

func TestHasher_ComputeTreeHash_Errors(t *testing.T) {
	t.Parallel()

	h := newHasher()

	_, err := h.ComputeTreeHash(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrChecksumFailed.Error())

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, domain.FilePerm))
	_, err = h.ComputeTreeHash(file)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrChecksumFailed.Error())
}

func TestWalker_WalkFiles(t *testing.T) {
	t.Parallel()

	root := buildEntry(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.MarkerName), nil, domain.FilePerm))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "skip.tmp", "inner"), domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(root, "skip.tmp", "inner", "x"), nil, domain.FilePerm))

	var got []string
	for path, err := range fs.NewWalker().WalkFiles(root, []string{domain.MarkerName, "*.tmp"}) {
		require.NoError(t, err)
		rel, relErr := filepath.Rel(root, path)
		require.NoError(t, relErr)
		got = append(got, filepath.ToSlash(rel))
	}

	assert.Equal(t, []string{
		"alpha/manifests/init.pp",
		"alpha/meta",
		"alpha/metadata.json",
		"beta/lib/facter/beta_fact.rb",
		"beta/metadata.json",
		"beta/templates/config.conf.erb",
	}, got)
}

func TestWalker_WalkFilesMissingRoot(t *testing.T) {
	t.Parallel()

	var errs int
	for _, err := range fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing"), nil) {
		if err != nil {
			errs++
		}
	}
	assert.Equal(t, 1, errs)
}
