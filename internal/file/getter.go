package file

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-getter"
	"github.com/wagoodman/go-progress"
)

type Getter interface {
	// GetFile downloads the given URL into the given path. The URL must reference a single file, which is stored
	// as-is (archives are not unpacked).
	GetFile(ctx context.Context, dst, src string, monitor ...*progress.Manual) error
}

type HashiGoGetter struct {
	httpGetter getter.HttpGetter
}

// NewGetter creates and returns a new Getter. Providing an http.Client is optional; a pooled client from
// go-cleanhttp is used otherwise.
func NewGetter(userAgent string, httpClient *http.Client) *HashiGoGetter {
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}
	header := http.Header{}
	if userAgent != "" {
		header.Set("User-Agent", userAgent)
	}
	return &HashiGoGetter{
		httpGetter: getter.HttpGetter{
			Client: httpClient,
			Header: header,
		},
	}
}

func (g HashiGoGetter) GetFile(ctx context.Context, dst, src string, monitors ...*progress.Manual) error {
	if len(monitors) > 1 {
		return fmt.Errorf("multiple monitors provided, which is not allowed")
	}

	return getterClient(ctx, dst, src, g.httpGetter, monitors).Get()
}

func getterClient(ctx context.Context, dst, src string, httpGetter getter.HttpGetter, monitors []*progress.Manual) *getter.Client {
	return &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Mode: getter.ClientModeFile,
		Getters: map[string]getter.Getter{
			"http":  &httpGetter,
			"https": &httpGetter,
			"file":  new(getter.FileGetter),
		},
		Options: mapToGetterClientOptions(monitors),
	}
}

func mapToGetterClientOptions(monitors []*progress.Manual) []getter.ClientOption {
	var result []getter.ClientOption

	for _, monitor := range monitors {
		result = append(result, getter.WithProgress(&progressAdapter{monitor: monitor}))
	}

	// advisory archives are read in place, never unpacked
	result = append(result, getter.WithDecompressors(map[string]getter.Decompressor{}))

	return result
}

type readCloser struct {
	*progress.Reader
	stream io.Closer
}

func (c *readCloser) Close() error { return c.stream.Close() }

type progressAdapter struct {
	monitor *progress.Manual
}

func (a *progressAdapter) TrackProgress(_ string, currentSize, totalSize int64, stream io.ReadCloser) io.ReadCloser {
	a.monitor.Set(currentSize)
	a.monitor.SetTotal(totalSize)
	return &readCloser{
		Reader: progress.NewProxyReader(stream, a.monitor),
		stream: stream,
	}
}
