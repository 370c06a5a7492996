package smoke

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevein/atbox/config"
)

type fakeBrowser struct {
	status      int64
	navErr      error
	selectorErr error
	png         []byte

	navigated string
	waitedFor string
	closed    bool
}

func (f *fakeBrowser) Navigate(_ context.Context, url string) (int64, error) {
	f.navigated = url
	return f.status, f.navErr
}

func (f *fakeBrowser) WaitVisible(ctx context.Context, selector string) error {
	f.waitedFor = selector
	if f.selectorErr != nil {
		return f.selectorErr
	}
	if f.png == nil {
		// Never appears: block until the step times out.
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeBrowser) FullScreenshot(context.Context) ([]byte, error) {
	return f.png, nil
}

func (f *fakeBrowser) Close() error {
	f.closed = true
	return nil
}

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		URL:            "http://localhost:8080/",
		ScreenshotPath: filepath.Join(t.TempDir(), "shots", "home.png"),
		WaitSelector:   "#search-box-input",
		WaitAfter:      time.Millisecond,
		Timeout:        50 * time.Millisecond,
	}
}

func TestRun_SavesScreenshot(t *testing.T) {
	b := &fakeBrowser{status: 200, png: []byte("\x89PNG fake")}
	opts := testOptions(t)

	require.NoError(t, Run(context.Background(), b, opts))

	assert.Equal(t, opts.URL, b.navigated)
	assert.Equal(t, "#search-box-input", b.waitedFor)
	got, err := os.ReadFile(opts.ScreenshotPath)
	require.NoError(t, err)
	assert.Equal(t, b.png, got)
}

func TestRun_LandingPageFailures(t *testing.T) {
	tests := []struct {
		name    string
		browser *fakeBrowser
		wantMsg string
	}{
		{"server error", &fakeBrowser{status: 502, png: []byte("x")}, "(502)"},
		{"not found", &fakeBrowser{status: 404, png: []byte("x")}, "(404)"},
		{"no response", &fakeBrowser{navErr: ErrNoResponse, png: []byte("x")}, "(no-response)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t)
			err := Run(context.Background(), tt.browser, opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrLandingPage)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.NoFileExists(t, opts.ScreenshotPath)
		})
	}
}

func TestRun_NavigationError(t *testing.T) {
	boom := errors.New("net::ERR_CONNECTION_REFUSED")
	err := Run(context.Background(), &fakeBrowser{navErr: boom}, testOptions(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrLandingPage)
}

func TestRun_SelectorTimesOut(t *testing.T) {
	opts := testOptions(t)
	err := Run(context.Background(), &fakeBrowser{status: 200}, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), `"#search-box-input"`)
	assert.NoFileExists(t, opts.ScreenshotPath)
}

func TestRun_InvalidOptions(t *testing.T) {
	opts := testOptions(t)
	opts.URL = "not a url"
	assert.Error(t, Run(context.Background(), &fakeBrowser{status: 200}, opts))

	opts = testOptions(t)
	opts.Timeout = 0
	assert.Error(t, Run(context.Background(), &fakeBrowser{status: 200}, opts))
}

func TestOptionsFromEnv(t *testing.T) {
	opts := OptionsFromEnv(config.SmokeEnv{
		URL:            "http://atom/",
		ScreenshotPath: "/out/home.png",
		WaitSelector:   "#main",
		WaitAfterMs:    1000,
		TimeoutMs:      20000,
	})
	assert.Equal(t, time.Second, opts.WaitAfter)
	assert.Equal(t, 20*time.Second, opts.Timeout)
	assert.Equal(t, "#main", opts.WaitSelector)
}
