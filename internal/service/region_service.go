package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/raywall/apigw-report/internal/repository"
	"github.com/raywall/apigw-report/internal/reporterr"
)

// RegionLister é o colaborador do EC2.
type RegionLister interface {
	ListRegions(ctx context.Context) ([]string, error)
}

// RegionService valida nomes de região contra as regiões habilitadas na conta.
type RegionService struct {
	Regions RegionLister
	Logger  *slog.Logger
}

// Validate retorna um ConfigurationError com as regiões válidas quando region
// não está entre elas. Se a identidade não puder listar regiões, a checagem é
// pulada com um aviso.
func (s *RegionService) Validate(ctx context.Context, region string) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	regions, err := s.Regions.ListRegions(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrRegionListingDenied) {
			logger.Warn("skipping region validation", "region", region, "error", err)
			return nil
		}
		return fmt.Errorf("validating region: %w", err)
	}
	for _, r := range regions {
		if r == region {
			return nil
		}
	}
	return &reporterr.ConfigurationError{Field: "region", Value: region, Valid: regions}
}
