package install

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/conn-castle/hinstaller/internal/messages"
)

const (
	defaultDownloadTimeout = 5 * time.Minute
	defaultMaxBytes        = int64(512 << 20)
	userAgent              = "hinstaller"
)

// HTTPClient is the subset of *http.Client the downloader needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// statusError reports a non-200 download response.
type statusError struct {
	url        string
	statusCode int
	status     string
}

func (e *statusError) Error() string {
	return fmt.Sprintf(messages.DownloadStatusFmt, e.url, e.status)
}

// ChecksumError reports a downloaded file whose sha256 does not match the manifest.
type ChecksumError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf(messages.DownloadChecksumMismatch, e.Path, e.Expected, e.Actual)
}

// IsChecksumError reports whether err is a checksum mismatch.
func IsChecksumError(err error) bool {
	var ce *ChecksumError
	return errors.As(err, &ce)
}

// Downloader fetches files over HTTP into place with retries.
type Downloader struct {
	sys        System
	httpClient HTTPClient
	newBackOff func() backoff.BackOff
	maxBytes   int64
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h HTTPClient) DownloaderOption {
	return func(d *Downloader) {
		if h != nil {
			d.httpClient = h
		}
	}
}

// WithBackOff replaces the retry policy factory.
func WithBackOff(newBackOff func() backoff.BackOff) DownloaderOption {
	return func(d *Downloader) {
		if newBackOff != nil {
			d.newBackOff = newBackOff
		}
	}
}

// WithMaxBytes caps the size of a single download.
func WithMaxBytes(n int64) DownloaderOption {
	return func(d *Downloader) {
		if n > 0 {
			d.maxBytes = n
		}
	}
}

// WithSystem replaces the filesystem.
func WithSystem(sys System) DownloaderOption {
	return func(d *Downloader) {
		if sys != nil {
			d.sys = sys
		}
	}
}

// NewDownloader returns a Downloader with the given options applied.
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		sys:        RealSystem{},
		httpClient: &http.Client{Timeout: defaultDownloadTimeout},
		newBackOff: defaultBackOff,
		maxBytes:   defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second
	return b
}

// Download writes the body served at url to dest. The file appears only once complete.
func (d *Downloader) Download(ctx context.Context, url string, dest string) error {
	if strings.TrimSpace(url) == "" {
		return errors.New(messages.DownloadURLRequired)
	}
	tmp, err := d.sys.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.DownloadCreateTempFmt, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = d.sys.Remove(tmpName)
		}
	}()

	operation := func() error {
		err := d.downloadOnce(ctx, url, tmp)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(operation, backoff.WithContext(d.newBackOff(), ctx)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.DownloadFailedFmt, url, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.DownloadSyncTempFmt, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.DownloadCloseTempFmt, err)
	}
	if err := d.sys.Rename(tmpName, dest); err != nil {
		return fmt.Errorf(messages.DownloadMoveFmt, dest, err)
	}
	committed = true
	return nil
}

func (d *Downloader) downloadOnce(ctx context.Context, url string, dest *os.File) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return &statusError{url: url, statusCode: resp.StatusCode, status: resp.Status}
	}

	if err := dest.Truncate(0); err != nil {
		return err
	}
	if _, err := dest.Seek(0, io.SeekStart); err != nil {
		return err
	}
	n, err := io.Copy(dest, io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return err
	}
	if n > d.maxBytes {
		return fmt.Errorf(messages.DownloadTooLargeFmt, url, d.maxBytes)
	}
	return nil
}

// retryable reports whether a download failure is worth another attempt.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.statusCode >= 500 && se.statusCode <= 599
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// VerifyChecksum computes the SHA-256 of path and compares it to expected.
func VerifyChecksum(sys System, path string, expected string) error {
	file, err := sys.Open(path)
	if err != nil {
		return fmt.Errorf(messages.DownloadOpenFileFmt, path, err)
	}
	defer func() { _ = file.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return fmt.Errorf(messages.DownloadHashFileFmt, path, err)
	}
	actual := fmt.Sprintf("%x", hasher.Sum(nil))
	if !strings.EqualFold(actual, strings.TrimSpace(expected)) {
		return &ChecksumError{Path: path, Expected: expected, Actual: actual}
	}
	return nil
}
