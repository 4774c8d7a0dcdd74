package transform

import (
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// SalesProcessor отвечает за построение таблицы фактов продаж
type SalesProcessor struct {
	logger *utils.ETLLogger
}

// NewSalesProcessor создает новый экземпляр SalesProcessor
func NewSalesProcessor(logger *utils.ETLLogger) *SalesProcessor {
	return &SalesProcessor{logger: logger}
}

// ProcessSalesFacts формирует факты продаж: по одной строке на каждую
// строку объединённого биллинга без агрегации. Дата транзакции заменяется
// суррогатным ключом временного измерения; строки, чья дата не попала
// в измерение (нераспознанная дата), отбрасываются — факт не может
// ссылаться на несуществующую запись времени
func (p *SalesProcessor) ProcessSalesFacts(billing []models.BillingRow, dateIDs map[string]int) ([]models.SalesFact, int) {
	p.logger.Debug("Построение фактов продаж...")

	facts := make([]models.SalesFact, 0, len(billing))
	dropped := 0

	for _, row := range billing {
		date, err := parseDate(row.Date)
		if err != nil {
			dropped++
			continue
		}

		timeID, ok := dateIDs[dateKey(date)]
		if !ok {
			dropped++
			continue
		}

		facts = append(facts, models.SalesFact{
			TimeID:     timeID,
			CustomerID: row.CustomerID,
			EmployeeID: row.EmployeeID,
			ProductID:  row.ProductID,
			Quantity:   row.Quantity,
			Price:      row.Price,
		})
	}

	if dropped > 0 {
		p.logger.Warn("Отброшено %d строк биллинга без корректной даты", dropped)
	}

	p.logger.Debug("Сформировано %d фактов продаж", len(facts))
	return facts, dropped
}
