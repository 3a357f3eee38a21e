package file

import (
	"bytes"
	"context"
	"crypto/x509"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/mholt/archiver/v3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-progress"
)

func TestGetter_GetFile(t *testing.T) {
	testCases := []struct {
		name          string
		prepareClient func(*http.Client)
		assert        assert.ErrorAssertionFunc
	}{
		{
			name:   "client trusts server's CA",
			assert: assert.NoError,
		},
		{
			name:          "client doesn't trust server's CA",
			prepareClient: removeTrustedCAs,
			assert:        assertUnknownAuthorityError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requestPath := "/foo"

			server := newTestServer(t, withResponseForPath(t, requestPath, testFileContent))
			t.Cleanup(server.Close)

			httpClient := getClient(t, server)
			if tc.prepareClient != nil {
				tc.prepareClient(httpClient)
			}

			getter := NewGetter("vercheck test", httpClient)
			requestURL := createRequestURL(t, server, requestPath)

			tempFile := filepath.Join(t.TempDir(), "some-destination-file")

			err := getter.GetFile(context.Background(), tempFile, requestURL)
			tc.assert(t, err)
			if err != nil {
				return
			}
			contents, err := os.ReadFile(tempFile)
			require.NoError(t, err)
			assert.Equal(t, testFileContent, contents)
		})
	}
}

func TestGetter_GetFile_KeepsArchivesPacked(t *testing.T) {
	source := filepath.Join(t.TempDir(), "advisory.json")
	require.NoError(t, os.WriteFile(source, testFileContent, 0644))
	archivePath := filepath.Join(t.TempDir(), "all.zip")
	require.NoError(t, archiver.Archive([]string{source}, archivePath))
	archive, err := os.ReadFile(archivePath)
	require.NoError(t, err)

	requestPath := "/PyPI/all.zip"
	server := newTestServer(t, withResponseForPath(t, requestPath, archive))
	t.Cleanup(server.Close)

	monitor := progress.NewManual(-1)
	dst := filepath.Join(t.TempDir(), "all.zip")
	err = NewGetter("", getClient(t, server)).GetFile(context.Background(), dst, createRequestURL(t, server, requestPath), monitor)
	require.NoError(t, err)

	contents, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(archive, contents), "the archive should be stored byte for byte")
	assert.Equal(t, int64(len(archive)), monitor.Current())
	assert.True(t, Exists(afero.NewOsFs(), dst))
}

func TestGetter_GetFile_MultipleMonitors(t *testing.T) {
	err := NewGetter("", nil).GetFile(context.Background(), filepath.Join(t.TempDir(), "x"), "http://localhost/x", progress.NewManual(1), progress.NewManual(1))
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/dir", 0755))
	require.NoError(t, afero.WriteFile(fs, "/dir/file.txt", []byte("x"), 0644))

	assert.True(t, Exists(fs, "/dir/file.txt"))
	assert.False(t, Exists(fs, "/dir"))
	assert.False(t, Exists(fs, "/missing.txt"))
}

func assertUnknownAuthorityError(t assert.TestingT, err error, _ ...interface{}) bool {
	return assert.ErrorAs(t, err, &x509.UnknownAuthorityError{})
}

func removeTrustedCAs(client *http.Client) {
	client.Transport.(*http.Transport).TLSClientConfig.RootCAs = nil
}

type muxOption func(mux *http.ServeMux)

func withResponseForPath(t *testing.T, path string, response []byte) muxOption {
	t.Helper()

	return func(mux *http.ServeMux) {
		mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
			t.Logf("server handling request: %s %s", req.Method, req.URL)

			_, err := w.Write(response)
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}

func newTestServer(t *testing.T, muxOptions ...muxOption) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for _, option := range muxOptions {
		option(mux)
	}

	server := httptest.NewTLSServer(mux)
	t.Logf("new TLS server listening at %s", getHost(t, server))

	return server
}

func createRequestURL(t *testing.T, server *httptest.Server, path string) string {
	t.Helper()

	// the name httptest's certificate is issued for
	const testServerCertificateName = "example.com"

	serverURL, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	// Set URL hostname to value from TLS certificate
	serverURL.Host = fmt.Sprintf("%s:%s", testServerCertificateName, serverURL.Port())

	serverURL.Path = path

	return serverURL.String()
}

// getClient returns an http.Client that can be used to contact the test TLS server.
func getClient(t *testing.T, server *httptest.Server) *http.Client {
	t.Helper()

	httpClient := server.Client()
	transport := httpClient.Transport.(*http.Transport)

	serverHost := getHost(t, server)

	transport.DialContext = func(_ context.Context, _, addr string) (net.Conn, error) {
		t.Logf("client dialing %q for host %q", serverHost, addr)

		// Ensure the client dials our test server
		return net.Dial("tcp", serverHost)
	}

	return httpClient
}

// getHost extracts the host value from a server URL string.
// e.g. given a server with URL "http://1.2.3.4:5000/foo", getHost returns "1.2.3.4:5000"
func getHost(t *testing.T, server *httptest.Server) string {
	t.Helper()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	return u.Hostname() + ":" + u.Port()
}

var testFileContent = []byte(`{"id": "PYSEC-0000-0", "affected": []}`)
