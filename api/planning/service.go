package planning

import (
	"FleetPlanOffice/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PlanningService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewPlanningService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &PlanningService{config: cfg, pool: pool}
}

func (s *PlanningService) Name() string {
	return "planning"
}

func (s *PlanningService) Start() error {
	port := "7143"
	if p, ok := s.config["port"].(string); ok && p != "" {
		port = p
	}
	go StartPlanningService(s.pool, port)
	return nil
}

func (s *PlanningService) Stop() error {
	return nil
}
