package entities

import "github.com/google/uuid"

// SalaryReport содержит расчет зарплат сотрудников за период.
type SalaryReport struct {
	TotalContracts int32
	Rows           []SalaryReportRow
}

// SalaryReportRow - расчет зарплаты одного сотрудника:
// базовая зарплата плюс бонус, пропорциональный доле контрактов
// сотрудника среди заключенных за период.
type SalaryReportRow struct {
	UserID    uuid.UUID
	Contracts int32
	Salary    Money
}
