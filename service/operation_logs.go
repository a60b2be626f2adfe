package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
)

// OperationLogService audit trail of mutating API calls
type OperationLogService struct {
	logs repository.Repository[models.OperationLog]
}

func NewOperationLogService(s *repository.Stores) *OperationLogService {
	return &OperationLogService{logs: s.OperationLogs}
}

// OperationLogFilters list query
type OperationLogFilters struct {
	Operator string `form:"operator"`
	Method   string `form:"method"`
	Path     string `form:"path"`
	Success  *bool  `form:"success"`
	Limit    int    `form:"limit"`
}

func (s *OperationLogService) Record(ctx context.Context, log models.OperationLog) error {
	if log.ID == "" {
		log.ID = newID("log")
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return fmt.Errorf("save operation log: %w", err)
	}
	return nil
}

// List newest first, capped at Limit (default 100)
func (s *OperationLogService) List(ctx context.Context, f OperationLogFilters) ([]models.OperationLog, error) {
	all, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list operation logs: %w", err)
	}
	out := Filter(all,
		func(l models.OperationLog) bool { return f.Operator == "" || strings.EqualFold(l.OperatorName, f.Operator) },
		func(l models.OperationLog) bool { return f.Method == "" || strings.EqualFold(l.Method, f.Method) },
		func(l models.OperationLog) bool { return f.Path == "" || strings.Contains(l.Path, f.Path) },
		func(l models.OperationLog) bool { return f.Success == nil || l.Success == *f.Success },
	)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OperationTime.After(out[j].OperationTime) })

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
