package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	logs_core "extlog/internal/features/logs/core"

	"golang.org/x/net/html"
)

type ScannerService struct {
	logStore *logs_core.LogStore
	logger   *slog.Logger
}

func NewScannerService(logStore *logs_core.LogStore, logger *slog.Logger) *ScannerService {
	return &ScannerService{
		logStore: logStore,
		logger:   logger,
	}
}

// ScanPage looks for job cards and captcha challenges in the page markup and
// records its progress in the log store under the page's origin.
func (s *ScannerService) ScanPage(ctx context.Context, pageURL string, markup string) (*ScanResult, error) {
	store := s.logStore
	if pageURL != "" {
		store = store.WithEnvironment(logs_core.Environment{
			Origin:    pageURL,
			AgentInfo: s.logStore.Environment().AgentInfo,
		})
	}

	store.ScrapingProgress(ctx, "page scan started", map[string]any{"url": pageURL})

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = nil
	}

	document, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		store.Error(ctx, "Failed to parse page markup", map[string]any{"url": pageURL, "error": err.Error()})
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	result := Scan(document, parsedURL)
	result.PageURL = pageURL

	store.ScrapingProgress(ctx, "job cards found", map[string]any{"count": len(result.JobCards)})

	if result.CaptchaDetected {
		store.Log(ctx, logs_core.LogLevelWarn, "Captcha detected", map[string]any{
			"url":     pageURL,
			"signals": result.CaptchaSignals,
		}, logs_core.ContextScraping)

		s.logger.Warn("captcha detected on scanned page", "url", pageURL, "signals", result.CaptchaSignals)
	}

	return result, nil
}

// Scan walks the visible part of document. Hidden subtrees are skipped
// entirely and cards nested inside other cards are not reported twice.
func Scan(document *html.Node, pageURL *url.URL) *ScanResult {
	result := &ScanResult{
		JobCards:       []*JobCard{},
		CaptchaSignals: []string{},
	}
	seenSignals := map[string]struct{}{}

	addSignal := func(signal string) {
		if _, ok := seenSignals[signal]; ok {
			return
		}
		seenSignals[signal] = struct{}{}
		result.CaptchaSignals = append(result.CaptchaSignals, signal)
	}

	var walk func(*html.Node, bool)
	walk = func(node *html.Node, insideCard bool) {
		if isHidden(node) {
			return
		}

		if signal, ok := captchaSignal(node); ok {
			addSignal(signal)
		}

		if !insideCard && isJobCard(node) {
			result.JobCards = append(result.JobCards, extractJobCard(node, pageURL))
			insideCard = true
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child, insideCard)
		}
	}
	walk(document, false)

	if signal, ok := captchaTextSignal(visibleText(document)); ok {
		addSignal(signal)
	}

	result.CaptchaDetected = len(result.CaptchaSignals) > 0

	return result
}

// WithLogStore returns a scanner that records progress into logStore.
func (s *ScannerService) WithLogStore(logStore *logs_core.LogStore) *ScannerService {
	return &ScannerService{
		logStore: logStore,
		logger:   s.logger,
	}
}
