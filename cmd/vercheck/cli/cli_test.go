package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-progress"

	"github.com/anchore/vercheck/internal"
	"github.com/anchore/vercheck/vercheck/assertion"
	"github.com/anchore/vercheck/vercheck/vercheckerr"
)

const advisories = `[
  {
    "id": "PYSEC-1",
    "affected": [
      {"package": {"ecosystem": "PyPI", "name": "requests"}, "versions": ["2.0.0", "1.0.0", "1.0.0", "not-a-version!!"]},
      {"package": {"ecosystem": "npm", "name": "left-pad"}, "versions": ["5.0.0", "4.0.0"]}
    ]
  },
  {
    "id": "PYSEC-2",
    "affected": [
      {"package": {"ecosystem": "PyPI", "name": "django"}, "versions": ["3.0", "1.0"]}
    ]
  }
]`

type fakeGetter struct {
	fs      afero.Fs
	content []byte
	err     error
	sources []string
}

func (g *fakeGetter) GetFile(_ context.Context, dst, src string, monitors ...*progress.Manual) error {
	g.sources = append(g.sources, src)
	if g.err != nil {
		_ = afero.WriteFile(g.fs, dst, []byte("partial"), 0644)
		return g.err
	}
	for _, m := range monitors {
		m.Set(int64(len(g.content)))
	}
	return afero.WriteFile(g.fs, dst, g.content, 0644)
}

type harness struct {
	fs     afero.Fs
	getter *fakeGetter
	config string
}

func newHarness(t *testing.T, config string) *harness {
	t.Helper()
	location := filepath.Join(t.TempDir(), "vercheck.yaml")
	require.NoError(t, os.WriteFile(location, []byte(config), 0644))

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/advisories/all.json", []byte(advisories), 0644))
	return &harness{
		fs:     fs,
		getter: &fakeGetter{fs: fs},
		config: location,
	}
}

func (h *harness) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := New(WithFs(h.fs), WithGetter(h.getter), WithOutput(&stdout, &stderr))
	cmd.SetArgs(append(args, "-c", h.config))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (h *harness) read(t *testing.T, path string) string {
	t.Helper()
	contents, err := afero.ReadFile(h.fs, path)
	require.NoError(t, err)
	return string(contents)
}

func TestGenerate(t *testing.T) {
	h := newHarness(t, "")

	stdout, stderr, err := h.run("generate", "--source", "/advisories", "--fixture", "/out/fixture.txt", "--report", "all")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0 < 2.0.0\n4.0.0 < 5.0.0\n1.0 < 3.0\n", h.read(t, "/out/fixture.txt"))
	assert.Equal(t, "T: 1.0.0 < 2.0.0\nT: 4.0.0 < 5.0.0\nT: 1.0 < 3.0\n", stdout)
	assert.Contains(t, stderr, "ASSERTIONS")
	assert.Contains(t, stderr, "not-a-version!!", "skipped versions are logged")
}

func TestGenerate_DefaultReportShowsOnlyFailures(t *testing.T) {
	h := newHarness(t, "")

	stdout, _, err := h.run("generate", "--source", "/advisories", "--fixture", "/fixture.txt")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, "1.0.0 < 2.0.0\n4.0.0 < 5.0.0\n1.0 < 3.0\n", h.read(t, "/fixture.txt"))
}

func TestGenerate_ExcludePackages(t *testing.T) {
	h := newHarness(t, "")

	_, _, err := h.run("generate", "--source", "/advisories", "--fixture", "/fixture.txt", "--exclude-package", "django")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0 < 2.0.0\n4.0.0 < 5.0.0\n", h.read(t, "/fixture.txt"))
}

func TestGenerate_RecordsWithoutEcosystem(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{
			name: "default config",
		},
		{
			name:   "ecosystem filter configured",
			config: "advisories:\n  ecosystem: PyPI\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.config)
			require.NoError(t, afero.WriteFile(h.fs, "/plain.json",
				[]byte(`{"affected":[{"package":{"name":"requests"},"versions":["2.0.0","1.0.0","1.0.0"]}]}`), 0644))

			stdout, _, err := h.run("generate", "--source", "/plain.json", "--fixture", "/fixture.txt", "--report", "all")
			require.NoError(t, err)
			assert.Equal(t, "1.0.0 < 2.0.0\n", h.read(t, "/fixture.txt"))
			assert.Equal(t, "T: 1.0.0 < 2.0.0\n", stdout)
		})
	}
}

func TestGenerate_EcosystemFilter(t *testing.T) {
	h := newHarness(t, "advisories:\n  ecosystem: pypi\n")

	_, _, err := h.run("generate", "--source", "/advisories", "--fixture", "/fixture.txt")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0 < 2.0.0\n1.0 < 3.0\n", h.read(t, "/fixture.txt"), "npm entries are ignored")
}

func TestGenerate_FromConfig(t *testing.T) {
	h := newHarness(t, `
fixture: /configured/fixture.txt
report: successes
exclude-packages: [requests]
advisories:
  source: /advisories
`)

	stdout, _, err := h.run("generate")
	require.NoError(t, err)
	assert.Equal(t, "4.0.0 < 5.0.0\n1.0 < 3.0\n", h.read(t, "/configured/fixture.txt"))
	assert.Equal(t, "T: 4.0.0 < 5.0.0\nT: 1.0 < 3.0\n", stdout)
}

func TestGenerate_NeedsFetchedArchive(t *testing.T) {
	h := newHarness(t, "advisories:\n  cache-dir: /cache\n")

	_, _, err := h.run("generate", "--fixture", "/fixture.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch")
}

func TestGenerate_Check(t *testing.T) {
	h := newHarness(t, "")
	args := []string{"generate", "--source", "/advisories", "--fixture", "/fixture.txt", "--check"}

	_, _, err := h.run(args...)
	assert.ErrorIs(t, err, vercheckerr.ErrFixtureOutOfDate, "a missing fixture is out of date")

	require.NoError(t, afero.WriteFile(h.fs, "/fixture.txt", []byte("0.1 < 0.2\n1.0 < 3.0\n"), 0644))
	_, stderr, err := h.run(args...)
	assert.ErrorIs(t, err, vercheckerr.ErrFixtureOutOfDate)
	var expected vercheckerr.ExpectedErr
	assert.True(t, errors.As(err, &expected))
	assert.Contains(t, stderr, "- 0.1 < 0.2\n")
	assert.Contains(t, stderr, "+ 1.0.0 < 2.0.0\n")
	assert.NotContains(t, stderr, "1.0 < 3.0\n")
	assert.Equal(t, "0.1 < 0.2\n1.0 < 3.0\n", h.read(t, "/fixture.txt"), "check never writes the fixture")

	_, _, err = h.run("generate", "--source", "/advisories", "--fixture", "/fixture.txt")
	require.NoError(t, err)
	_, _, err = h.run(args...)
	assert.NoError(t, err)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name       string
		fixture    string
		report     string
		wantStdout string
		wantErr    func(t *testing.T, err error)
	}{
		{
			name:       "all hold",
			fixture:    "1.0.0 < 2.0.0\n",
			report:     "all",
			wantStdout: "T: 1.0.0 < 2.0.0\n",
		},
		{
			name:       "failures only",
			fixture:    "# header\n1.0.0 < 2.0.0\n2.0.0 < 1.0.0\n\n1.0 = 1.0.0\n",
			report:     "failures",
			wantStdout: "F: 2.0.0 < 1.0.0\n",
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, vercheckerr.ErrAssertionsFailed)
			},
		},
		{
			name:       "successes only still fails",
			fixture:    "1.0.0 < 2.0.0\n2.0.0 < 1.0.0\n",
			report:     "successes",
			wantStdout: "T: 1.0.0 < 2.0.0\n",
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, vercheckerr.ErrAssertionsFailed)
			},
		},
		{
			name:    "malformed line",
			fixture: "1.0.0 < 2.0.0\n1.0.0 <<\n",
			report:  "all",
			wantErr: func(t *testing.T, err error) {
				var formatErr *assertion.FormatError
				require.True(t, errors.As(err, &formatErr))
				assert.Equal(t, 2, formatErr.LineNumber)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			require.NoError(t, afero.WriteFile(h.fs, "/fixture.txt", []byte(tt.fixture), 0644))

			stdout, _, err := h.run("verify", "--fixture", "/fixture.txt", "--report", tt.report)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				tt.wantErr(t, err)
			}
			assert.Equal(t, tt.wantStdout, stdout)
		})
	}
}

func TestVerify_BadReportMode(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, afero.WriteFile(h.fs, "/fixture.txt", []byte("1 < 2\n"), 0644))

	_, _, err := h.run("verify", "--fixture", "/fixture.txt", "--report", "everything")
	assert.Error(t, err)
}

func TestVerify_MissingFixture(t *testing.T) {
	h := newHarness(t, "")

	_, _, err := h.run("verify", "--fixture", "/nope.txt")
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	h := newHarness(t, "")
	h.getter.content = []byte("zip bytes")

	stdout, _, err := h.run("fetch", "--cache-dir", "/cache", "--url", "https://example.com/osv/PyPI/all.zip")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/osv/PyPI/all.zip"}, h.getter.sources)
	assert.Equal(t, "zip bytes", h.read(t, "/cache/all.zip"))
	assert.Contains(t, stdout, "/cache/all.zip")

	exists, err := afero.Exists(h.fs, "/cache/all.zip.partial")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFetch_DefaultURL(t *testing.T) {
	h := newHarness(t, "")

	_, _, err := h.run("fetch", "--cache-dir", "/cache")
	require.NoError(t, err)
	assert.Equal(t, []string{internal.DefaultAdvisoryURL}, h.getter.sources)
}

func TestFetch_Failure(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, afero.WriteFile(h.fs, "/cache/all.zip", []byte("previous"), 0644))
	h.getter.err = errors.New("connection reset")

	_, _, err := h.run("fetch", "--cache-dir", "/cache")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	assert.Equal(t, "previous", h.read(t, "/cache/all.zip"), "a failed download keeps the previous archive")
	exists, err := afero.Exists(h.fs, "/cache/all.zip.partial")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestVersion(t *testing.T) {
	h := newHarness(t, "")

	stdout, _, err := h.run("version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Application:")
	assert.Contains(t, stdout, internal.ApplicationName)

	stdout, _, err = h.run("version", "-o", "json")
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, internal.ApplicationName, info["application"])

	_, _, err = h.run("version", "-o", "xml")
	assert.Error(t, err)
}

func TestLineDiff(t *testing.T) {
	assert.Empty(t, lineDiff("a < b\n", "a < b\n"))
	assert.Equal(t, "- a < b\n+ a < c\n", lineDiff("a < b\nc < d\n", "a < c\nc < d\n"))
	assert.Equal(t, "+ x < y\n", lineDiff("", "x < y\n"))
}
