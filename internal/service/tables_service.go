package service

import (
	"context"

	"portfolioAPI/internal/apierror"
	"portfolioAPI/internal/repository"
)

// TablesService reports how many tables the schema has, for health checks.
type TablesService interface {
	CountTables(ctx context.Context) (int, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) CountTables(ctx context.Context) (int, error) {
	countTables, err := t.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return 0, apierror.Internal("could not count tables", err)
	}

	return countTables, nil
}
