package service

import (
	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/store"
)

type Services struct {
	AuthService    AuthService
	DeltaService   DeltaService
	AppInfoService AppInfoService
}

func NewServices(repo store.LayerRepository, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.Version, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(cfg, logger),
		DeltaService:   NewDeltaService(repo, logger),
		AppInfoService: appInfo,
	}, nil
}
