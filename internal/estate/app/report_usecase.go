package app

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/ports/api"
	"realtydesk/internal/estate/ports/repositories"
	"realtydesk/pkg/logger"
)

const (
	methodSalaryReport = "Salary"

	msgBuildingReport = "building salary report"
	msgEmptyPeriod    = "no deal contracts in period"
	msgReportBuilt    = "salary report built successfully"

	msgErrCountingContracts  = "failed to count contracts"
	msgErrFindingEmployments = "failed to find employments"

	errCtxCountingContracts  = "counting contracts"
	errCtxFindingEmployments = "finding employments"
)

// ReportUseCaseImpl реализует интерфейс ReportUseCase.
type ReportUseCaseImpl struct {
	contracts repositories.ContractRepository
}

// NewReportUseCase создает новый экземпляр построителя отчетов.
func NewReportUseCase(contracts repositories.ContractRepository) api.ReportUseCase {
	return &ReportUseCaseImpl{contracts: contracts}
}

// Salary строит отчет о зарплатах за период. Зарплата сотрудника равна
// базовой зарплате из трудового контракта плюс бонус, пропорциональный
// доле сделок сотрудника среди всех сделок за период. Сотрудники без
// действующего трудового контракта в отчет не попадают.
func (r *ReportUseCaseImpl) Salary(ctx context.Context, period api.SalaryPeriod) (*entities.SalaryReport, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodSalaryReport),
		zap.Time("start", period.Start),
		zap.Time("end", period.End),
	)
	log.Debug(ctx, msgBuildingReport)

	total, err := r.contracts.CountInPeriod(ctx, period.Start, period.End)
	if err != nil {
		log.Error(ctx, msgErrCountingContracts, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCountingContracts, err)
	}
	if total == 0 {
		log.Info(ctx, msgEmptyPeriod)
		return &entities.SalaryReport{TotalContracts: 0, Rows: []entities.SalaryReportRow{}}, nil
	}

	perEmployer, err := r.contracts.CountByEmployerInPeriod(ctx, period.Start, period.End)
	if err != nil {
		log.Error(ctx, msgErrCountingContracts, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCountingContracts, err)
	}

	userIDs := make([]uuid.UUID, 0, len(perEmployer))
	for id := range perEmployer {
		userIDs = append(userIDs, id)
	}

	employments, err := r.contracts.FindActiveEmployments(ctx, userIDs)
	if err != nil {
		log.Error(ctx, msgErrFindingEmployments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingEmployments, err)
	}

	totalDec := decimal.NewFromInt32(total)
	rows := make([]entities.SalaryReportRow, 0, len(perEmployer))
	for userID, count := range perEmployer {
		employment, ok := employments[userID]
		if !ok {
			continue
		}
		base, ok := employment.BaseSalary()
		if !ok {
			continue
		}

		share := decimal.NewFromInt32(count).Div(totalDec)
		amount := base.Amount.Add(base.Amount.Mul(share))
		rows = append(rows, entities.SalaryReportRow{
			UserID:    userID,
			Contracts: count,
			Salary:    entities.Money{Amount: amount, Currency: base.Currency},
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return bytes.Compare(rows[i].UserID[:], rows[j].UserID[:]) < 0
	})

	log.Info(ctx, msgReportBuilt, zap.Int32("contracts", total), zap.Int("rows", len(rows)))
	return &entities.SalaryReport{TotalContracts: total, Rows: rows}, nil
}
