package yallakora

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	crerr "github.com/cockroachdb/errors"
)

var chromePaths = []string{
	"/headless-shell/headless-shell",
	"/usr/bin/chromium-browser",
	"/usr/bin/chromium",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
}

// Assets the parser never reads; img src attributes survive the block.
var blockedAssetURLs = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.ico",
	"*.mp4", "*.webm",
	"*.woff", "*.woff2", "*.ttf", "*.otf",
	"*google-analytics*", "*googletagmanager*", "*doubleclick*",
}

type BrowserFetcherConfig struct {
	Timeout      time.Duration
	UserAgent    string
	WaitSelector string
	MaxBodyBytes int
}

// BrowserFetcher renders the page in headless Chrome and captures the final
// markup, for listings that fill their cards client-side.
type BrowserFetcher struct {
	allocatorOpts []chromedp.ExecAllocatorOption
	timeout       time.Duration
	waitSelector  string
	maxBodyBytes  int
}

func NewBrowserFetcher(cfg BrowserFetcherConfig) *BrowserFetcher {
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	waitSelector := strings.TrimSpace(cfg.WaitSelector)
	if waitSelector == "" {
		waitSelector = "body"
	}
	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	return &BrowserFetcher{
		allocatorOpts: allocatorOptions(userAgent),
		timeout:       timeout,
		waitSelector:  waitSelector,
		maxBodyBytes:  maxBodyBytes,
	}
}

func allocatorOptions(userAgent string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("window-size", "1366,900"),
		chromedp.UserAgent(userAgent),
	)
	for _, p := range chromePaths {
		if _, err := os.Stat(p); err == nil {
			opts = append(opts, chromedp.ExecPath(p))
			break
		}
	}
	return opts
}

func (f *BrowserFetcher) FetchDocument(ctx context.Context, pageURL string, w io.Writer) error {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, f.allocatorOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, f.timeout)
	defer cancelTimeout()

	var html string
	tasks := chromedp.Tasks{
		network.Enable(),
		network.SetBlockedURLs(blockedAssetURLs),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(f.waitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	}
	if err := chromedp.Run(timeoutCtx, tasks); err != nil {
		return crerr.Mark(crerr.Wrap(err, "render page"), errTransient)
	}
	if len(html) > f.maxBodyBytes {
		return crerr.Wrapf(errBodyTooLarge, "limit=%d bytes", f.maxBodyBytes)
	}

	if _, err := io.WriteString(w, html); err != nil {
		return crerr.Wrap(err, "copy rendered page")
	}
	return nil
}
