package services

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestScraperDisabledWithoutScript(t *testing.T) {
	s := NewReferenceScraper("", 0, testLogger())
	assert.False(t, s.Enabled())

	_, err := s.FetchHistorical(context.Background(), "nba", 1998, "per_game")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestScraperRejectsUnknownSport(t *testing.T) {
	s := NewReferenceScraper("/opt/scraper/fetch.py", 0, testLogger())
	assert.True(t, s.Enabled())

	_, err := s.FetchHistorical(context.Background(), "nfl", 1998, "per_game")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no historical coverage")
}

func TestScraperRejectsBadYear(t *testing.T) {
	s := NewReferenceScraper("/opt/scraper/fetch.py", 0, testLogger())

	_, err := s.FetchHistorical(context.Background(), "nba", 1850, "per_game")
	assert.Error(t, err)

	_, err = s.FetchHistorical(context.Background(), "mlb", time.Now().Year()+5, "batting")
	assert.Error(t, err)
}

func TestScraperKillsSlowScript(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}

	script := filepath.Join(t.TempDir(), "slow.py")
	require.NoError(t, os.WriteFile(script, []byte("import time\ntime.sleep(30)\n"), 0o755))

	s := NewReferenceScraper(script, 200*time.Millisecond, testLogger())

	start := time.Now()
	_, err := s.FetchHistorical(context.Background(), "nba", 1998, "per_game")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, elapsed, 10*time.Second)
}

func TestScraperDefaultTimeout(t *testing.T) {
	s := NewReferenceScraper("/opt/scraper/fetch.py", 0, testLogger())
	assert.Equal(t, DefaultScraperTimeout, s.timeout)

	s = NewReferenceScraper("/opt/scraper/fetch.py", 5*time.Second, testLogger())
	assert.Equal(t, 5*time.Second, s.timeout)
}
