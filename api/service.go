package api

import "FleetPlanOffice/internal/serviceiface"

type GatewayService struct {
	config map[string]interface{}
}

func NewGatewayService(cfg map[string]interface{}) serviceiface.Service {
	return &GatewayService{config: cfg}
}

func (s *GatewayService) Name() string {
	return "gateway"
}

func (s *GatewayService) Start() error {
	port := "8081"
	if p, ok := s.config["port"].(string); ok && p != "" {
		port = p
	}
	target := "http://localhost:7143"
	if t, ok := s.config["planning_target"].(string); ok && t != "" {
		target = t
	}
	go StartGateway(port, target)
	return nil
}

func (s *GatewayService) Stop() error {
	return nil
}
