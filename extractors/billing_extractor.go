package extractors

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/go-sql-driver/mysql"
)

// Код ошибки MySQL "таблица не существует"
const mysqlErrNoSuchTable = 1146

// Запрос объединяет три исходных отношения:
// billing ⋈ billing_detail (по BILLING_ID) ⋈ prices (по PRODUCT_ID).
// Даты выбираются как строки: их разбор выполняется на фазе Transform
const billingQuery = `
	SELECT
		b.BILLING_ID,
		b.REGION,
		b.BRANCH_ID,
		CAST(b.DATE AS CHAR),
		b.CUSTOMER_ID,
		b.EMPLOYEE_ID,
		bd.PRODUCT_ID,
		bd.QUANTITY,
		CAST(p.DATE AS CHAR),
		p.PRICE
	FROM billing b
	JOIN billing_detail bd ON b.BILLING_ID = bd.BILLING_ID
	JOIN prices p ON bd.PRODUCT_ID = p.PRODUCT_ID
`

// BillingExtractor извлекает объединённые данные биллинга из исходной БД
type BillingExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewBillingExtractor создает новый экземпляр BillingExtractor
func NewBillingExtractor(db *sql.DB, logger *utils.ETLLogger) *BillingExtractor {
	return &BillingExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractBilling выполняет объединённый запрос к таблицам
// billing, billing_detail и prices и возвращает строки результата.
// Отсутствие любой из таблиц фатально для всего запуска
func (e *BillingExtractor) ExtractBilling() ([]models.BillingRow, error) {
	e.logger.Debug("Начало извлечения данных биллинга")

	rows, err := e.db.Query(billingQuery)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrNoSuchTable {
			return nil, &models.SourceNotFoundError{Source: "billing/billing_detail/prices", Err: err}
		}
		return nil, fmt.Errorf("ошибка запроса данных биллинга: %w", err)
	}
	defer rows.Close()

	var billing []models.BillingRow
	for rows.Next() {
		var row models.BillingRow
		var date, priceDate sql.NullString

		if err := rows.Scan(
			&row.BillingID,
			&row.Region,
			&row.BranchID,
			&date,
			&row.CustomerID,
			&row.EmployeeID,
			&row.ProductID,
			&row.Quantity,
			&priceDate,
			&row.Price,
		); err != nil {
			e.logger.Error("Ошибка при обработке строки биллинга: %v", err)
			return nil, fmt.Errorf("ошибка обработки строки биллинга: %w", err)
		}

		row.Date = date.String
		row.PriceDate = priceDate.String
		billing = append(billing, row)
	}

	// Проверяем ошибки после итерации по результатам
	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по строкам биллинга: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по строкам биллинга: %w", err)
	}

	e.logger.Debug("Извлечено %d строк биллинга", len(billing))
	return billing, nil
}
