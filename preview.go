package mdconv

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdconv/internal/fileutil"
	"github.com/alnah/go-mdconv/internal/process"
)

// previewer renders an HTML document to a PNG screenshot.
type previewer interface {
	Capture(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// pageRenderer screenshots a local HTML file. Split from previewer so the
// temp file handling can be tested without a browser.
type pageRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
}

// rodRenderer implements pageRenderer using go-rod.
// Rod downloads Chromium on first use if no browser is found.
type rodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	settings PreviewSettings
}

func newRodRenderer(timeout time.Duration, settings PreviewSettings) *rodRenderer {
	return &rodRenderer{timeout: timeout, settings: settings}
}

// ensureBrowser starts the browser on first use and returns it.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Pre-installed browser for containers
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	r.launcher = l
	return browser, nil
}

// Close shuts the browser down. The launcher's process group is killed
// afterwards so renderer children do not outlive the CLI.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and captures it
// as PNG using the configured viewport.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             r.settings.Width,
		Height:            r.settings.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	png, err := page.Screenshot(r.settings.FullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreviewCapture, err)
	}
	if len(png) == 0 {
		return nil, fmt.Errorf("%w: empty screenshot", ErrPreviewCapture)
	}

	return png, nil
}

// rodPreviewer writes documents to a temp file and hands them to a
// pageRenderer. Loading from file:// lets absolute local image paths load.
type rodPreviewer struct {
	renderer pageRenderer
}

func newRodPreviewer(timeout time.Duration, settings PreviewSettings) *rodPreviewer {
	return &rodPreviewer{renderer: newRodRenderer(timeout, settings)}
}

// Capture renders htmlContent to PNG bytes.
func (p *rodPreviewer) Capture(ctx context.Context, htmlContent string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempPage(htmlContent)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return p.renderer.RenderFromFile(ctx, tmpPath)
}

// Close releases the renderer if it holds resources.
func (p *rodPreviewer) Close() error {
	if c, ok := p.renderer.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing browser: %w", err)
		}
	}
	return nil
}
