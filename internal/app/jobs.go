package app

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Yacsu77/tortamaria-go/internal/session"
)

// initJobs starts the background scheduler. The bag badge count is
// refreshed once a minute so it stays correct even when another device
// changes the open section.
func (a *Application) initJobs() {
	a.sched = cron.New()
	_, err := a.sched.AddFunc("@every 1m", a.refreshBagCount)
	if err != nil {
		zap.S().Errorf("scheduler job error: %s", err)
		return
	}
	a.sched.Start()
}

func (a *Application) refreshBagCount() {
	section, err := a.sessions.CurrentSection()
	if err != nil {
		if !errors.Is(err, session.ErrNoSection) {
			zap.S().Errorf("bag count job: %s", err)
		}
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.appConfig.Backend.Timeout.Std())
	defer cancel()
	a.bagSvc.RefreshCount(ctx, section.ID)
}
