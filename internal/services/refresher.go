package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/providers"
	"github.com/fanalytics/sportsbot/internal/sports"
)

// ScoreboardRefresher polls the live provider on a schedule and pushes
// fresh games through the hub. Sports with no subscribers are skipped to
// keep upstream traffic proportional to demand.
type ScoreboardRefresher struct {
	espn     *providers.ESPNClient
	hub      *ScoresHub
	logger   *logrus.Logger
	cron     *cron.Cron
	sports   []sports.SportKey
	schedule string
}

// NewScoreboardRefresher builds a refresher for the given sports. schedule
// is a cron expression; empty means every minute.
func NewScoreboardRefresher(espn *providers.ESPNClient, hub *ScoresHub, logger *logrus.Logger, keys []sports.SportKey, schedule string) *ScoreboardRefresher {
	if schedule == "" {
		schedule = "@every 1m"
	}
	return &ScoreboardRefresher{
		espn:     espn,
		hub:      hub,
		logger:   logger,
		cron:     cron.New(),
		sports:   keys,
		schedule: schedule,
	}
}

// Start schedules the refresh job and begins polling.
func (r *ScoreboardRefresher) Start() error {
	if _, err := r.cron.AddFunc(r.schedule, r.refreshAll); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.WithField("schedule", r.schedule).Info("Scoreboard refresher started")
	return nil
}

// Stop halts polling and waits for a running refresh to finish.
func (r *ScoreboardRefresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("Scoreboard refresher stopped")
}

func (r *ScoreboardRefresher) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	for _, sport := range r.sports {
		if r.hub.SubscriberCount(sport) == 0 {
			continue
		}
		games, err := r.espn.GetScoreboard(ctx, sport, "")
		if err != nil {
			r.logger.WithError(err).WithField("sport", sport).Warn("Scoreboard refresh failed")
			continue
		}
		r.hub.Broadcast(sport, games)
	}
}
