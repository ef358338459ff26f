package jobs

import (
	"context"
	"log"
	"time"

	"FleetPlanOffice/internal/config"
	"FleetPlanOffice/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

var statisticsCron *cron.Cron

// RunStatisticsRefresher schedules the periodic rebuild of the
// per-planning statistics snapshots.
func RunStatisticsRefresher(schedule string, pool *pgxpool.Pool) error {
	loc, err := time.LoadLocation(config.DefaultTimeZone)
	if err != nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(schedule, func() {
		if err := RefreshPlanningStatistics(context.Background(), pool); err != nil {
			log.Printf("[ERROR] statistics refresh failed: %v", err)
		}
	}); err != nil {
		return err
	}
	c.Start()
	statisticsCron = c
	return nil
}

func stopStatisticsRefresher() {
	if statisticsCron != nil {
		statisticsCron.Stop()
	}
}

// RefreshPlanningStatistics rebuilds entry counts and amount totals for
// every planning in one upsert.
func RefreshPlanningStatistics(ctx context.Context, pool *pgxpool.Pool) error {
	started := time.Now()
	tag, err := pool.Exec(ctx, `
		INSERT INTO planning_statistics (planning_id, entry_count, total_amount, refreshed_at)
		SELECT p.planning_id,
		       COUNT(e.entry_id),
		       COALESCE(SUM(e.amount), 0),
		       now()
		FROM plannings p
		LEFT JOIN planning_entries e ON e.planning_id = p.planning_id
		GROUP BY p.planning_id
		ON CONFLICT (planning_id) DO UPDATE SET
			entry_count  = EXCLUDED.entry_count,
			total_amount = EXCLUDED.total_amount,
			refreshed_at = EXCLUDED.refreshed_at`)
	if err != nil {
		return err
	}
	logger.Audit(time.Since(started).Truncate(time.Millisecond).String() +
		" statistics refresh, " + tag.String())
	return nil
}
