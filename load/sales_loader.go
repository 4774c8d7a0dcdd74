package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// SalesLoader отвечает за загрузку таблицы фактов продаж
type SalesLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewSalesLoader создает новый экземпляр SalesLoader
func NewSalesLoader(db *sql.DB, logger *utils.ETLLogger) *SalesLoader {
	return &SalesLoader{
		db:     db,
		logger: logger,
	}
}

// Load загружает факты продаж в хранилище.
// Суррогатный ключ sale_id присваивается базой данных
func (l *SalesLoader) Load(facts []models.SalesFact) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки фактов продаж (всего: %d)", len(facts))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO fact_sales
		(time_id, customer_id, employee_id, product_id, quantity, price)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, fact := range facts {
		_, err := stmt.Exec(
			fact.TimeID,
			fact.CustomerID,
			fact.EmployeeID,
			fact.ProductID,
			fact.Quantity,
			fact.Price,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка вставки факта продажи (время %d, клиент %d): %w",
				fact.TimeID, fact.CustomerID, err)
		}

		processed++

		// Логируем прогресс каждые 1000 фактов
		if processed%1000 == 0 {
			l.logger.Debug("Загружено %d из %d фактов...", processed, len(facts))
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Info("Загрузка фактов продаж завершена. Загружено записей: %d. Длительность: %v",
		processed, time.Since(startTime))
	return nil
}
