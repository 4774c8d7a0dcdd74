package transform

import (
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// TimeProcessor отвечает за построение временного измерения
type TimeProcessor struct {
	logger *utils.ETLLogger
}

// NewTimeProcessor создает новый экземпляр TimeProcessor
func NewTimeProcessor(logger *utils.ETLLogger) *TimeProcessor {
	return &TimeProcessor{logger: logger}
}

// ProcessTimeDimension строит временное измерение по датам транзакций:
// одна запись на каждую различную корректную дату в порядке первого
// появления, суррогатные ключи присваиваются последовательно с 1.
// Возвращает измерение и соответствие дата → id_времени
func (p *TimeProcessor) ProcessTimeDimension(billing []models.BillingRow) ([]models.TimeDimension, map[string]int) {
	p.logger.Debug("Построение временного измерения...")

	dimension := make([]models.TimeDimension, 0)
	dateIDs := make(map[string]int)
	invalid := 0

	for _, row := range billing {
		date, err := parseDate(row.Date)
		if err != nil {
			// Строки с нераспознанной датой не попадают во временное
			// измерение: они отбрасываются и при построении фактов
			invalid++
			continue
		}

		key := dateKey(date)
		if _, exists := dateIDs[key]; exists {
			continue
		}

		id := len(dimension) + 1
		dateIDs[key] = id

		month := int(date.Month())
		dimension = append(dimension, models.TimeDimension{
			ID:      id,
			Date:    date,
			Day:     date.Day(),
			Month:   month,
			Quarter: (month-1)/3 + 1,
			Year:    date.Year(),
		})
	}

	if invalid > 0 {
		p.logger.Warn("Пропущено %d строк биллинга с нераспознанной датой", invalid)
	}

	p.logger.Debug("Временное измерение содержит %d записей", len(dimension))
	return dimension, dateIDs
}
