// Package smoke loads a page in a browser, waits for it to render and saves
// a full-page screenshot. It is used to check a freshly started deployment.
package smoke

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sevein/atbox/config"
	"github.com/sevein/atbox/lib/utils"
)

var (
	// ErrLandingPage is returned when navigation gets no response or a
	// non-2xx status.
	ErrLandingPage = errors.New("landing page request failed")
	// ErrNoResponse is returned by a Browser when navigation produced no
	// document response.
	ErrNoResponse = errors.New("no response")
)

// Browser drives a single page.
type Browser interface {
	Navigate(ctx context.Context, url string) (status int64, err error)
	WaitVisible(ctx context.Context, selector string) error
	FullScreenshot(ctx context.Context) ([]byte, error)
	Close() error
}

type Options struct {
	URL            string        `validate:"required,url"`
	ScreenshotPath string        `validate:"required"`
	WaitSelector   string        `validate:"required"`
	WaitAfter      time.Duration `validate:"min=0"`
	Timeout        time.Duration `validate:"gt=0"`
	Logger         *zap.Logger   `validate:"-"`
}

var validate = validator.New()

// OptionsFromEnv converts the millisecond values read from the environment.
func OptionsFromEnv(env config.SmokeEnv) Options {
	return Options{
		URL:            env.URL,
		ScreenshotPath: env.ScreenshotPath,
		WaitSelector:   env.WaitSelector,
		WaitAfter:      time.Duration(env.WaitAfterMs) * time.Millisecond,
		Timeout:        time.Duration(env.TimeoutMs) * time.Millisecond,
	}
}

// Run navigates to opts.URL, waits for opts.WaitSelector, lets the page
// settle for opts.WaitAfter and writes a PNG screenshot.
func Run(ctx context.Context, b Browser, opts Options) error {
	if err := validate.Struct(opts); err != nil {
		return errors.Wrap(err, "invalid smoke options")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("smoke").With(zap.String("url", opts.URL))

	navCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	status, err := b.Navigate(navCtx, opts.URL)
	cancel()
	switch {
	case errors.Is(err, ErrNoResponse):
		return errors.Wrapf(ErrLandingPage, "loading %s (no-response)", opts.URL)
	case err != nil:
		return errors.Wrapf(err, "navigating to %s", opts.URL)
	case status < 200 || status > 299:
		return errors.Wrapf(ErrLandingPage, "loading %s (%d)", opts.URL, status)
	}
	logger.Debug("Page loaded", zap.Int64("status", status))

	waitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	err = b.WaitVisible(waitCtx, opts.WaitSelector)
	cancel()
	if err != nil {
		return errors.Wrapf(err, "waiting for selector %q", opts.WaitSelector)
	}

	select {
	case <-time.After(opts.WaitAfter):
	case <-ctx.Done():
		return ctx.Err()
	}

	png, err := b.FullScreenshot(ctx)
	if err != nil {
		return errors.Wrap(err, "taking screenshot")
	}
	if err := utils.WriteFile(opts.ScreenshotPath, png); err != nil {
		return err
	}
	logger.Debug("Screenshot written", zap.String("path", opts.ScreenshotPath), zap.Int("bytes", len(png)))
	return nil
}
