package api

import (
	"context"
	"time"

	"realtydesk/internal/estate/domain/entities"
)

// SalaryPeriod задает границы периода расчета зарплат, включительно.
type SalaryPeriod struct {
	Start time.Time
	End   time.Time
}

// ReportUseCase определяет порт отчетных запросов.
type ReportUseCase interface {
	Salary(ctx context.Context, period SalaryPeriod) (*entities.SalaryReport, error)
}
