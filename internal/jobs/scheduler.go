package jobs

import (
	"fmt"
	"log"

	"FleetPlanOffice/internal/config"
	"FleetPlanOffice/internal/logger"
	"FleetPlanOffice/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CronService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewCronService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		pool:   pool,
	}
}

func (s *CronService) Name() string {
	return "jobs"
}

func (s *CronService) Start() error {
	schedule := config.DefaultStatisticsSchedule
	if s.config != nil {
		if sched, ok := s.config["statistics_schedule"].(string); ok && sched != "" {
			schedule = sched
		}
	}

	if err := RunStatisticsRefresher(schedule, s.pool); err != nil {
		return fmt.Errorf("failed to start statistics refresher: %w", err)
	}

	logger.Audit("Cron service started with statistics refresher")
	log.Println("Cron service started, statistics refresher scheduled")

	return nil
}

func (s *CronService) Stop() error {
	stopStatisticsRefresher()
	return nil
}
