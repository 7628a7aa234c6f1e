package services

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultScraperTimeout is the hard cap on one scraper run. The script
// drives a headless browser and can hang on slow pages; the process is
// killed when the deadline passes.
const DefaultScraperTimeout = 30 * time.Second

// referenceSports maps internal sport keys to the reference site's sport
// argument. Only historical basketball and baseball are scraped.
var referenceSports = map[string]string{
	"nba": "basketball",
	"mcb": "basketball",
	"mlb": "baseball",
}

// ReferenceScraper shells out to a Python scraper for historical stats the
// live provider does not carry.
type ReferenceScraper struct {
	scriptPath string
	timeout    time.Duration
	logger     *logrus.Logger
}

func NewReferenceScraper(scriptPath string, timeout time.Duration, logger *logrus.Logger) *ReferenceScraper {
	if timeout <= 0 {
		timeout = DefaultScraperTimeout
	}
	return &ReferenceScraper{
		scriptPath: scriptPath,
		timeout:    timeout,
		logger:     logger,
	}
}

// Enabled reports whether a scraper script is configured.
func (s *ReferenceScraper) Enabled() bool {
	return s.scriptPath != ""
}

// FetchHistorical runs the scraper for one sport, season year, and stat
// type, returning its plain-text output. The subprocess is killed at the
// timeout; stderr is folded into the returned error.
func (s *ReferenceScraper) FetchHistorical(ctx context.Context, sport string, year int, statType string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("reference scraper not configured")
	}
	refSport, ok := referenceSports[strings.ToLower(sport)]
	if !ok {
		return "", fmt.Errorf("no historical coverage for sport %q", sport)
	}
	if year < 1900 || year > time.Now().Year()+1 {
		return "", fmt.Errorf("invalid season year %d", year)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "python3", s.scriptPath,
		"--sport", refSport,
		"--year", strconv.Itoa(year),
		"--stat-type", statType,
		"--qwen-format",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	s.logger.WithFields(logrus.Fields{
		"sport":     refSport,
		"year":      year,
		"stat_type": statType,
		"elapsed":   time.Since(start).String(),
	}).Debug("Reference scraper finished")

	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("scraper timed out after %s", s.timeout)
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("scraper failed: %s", msg)
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", fmt.Errorf("scraper produced no output")
	}
	return out, nil
}
