package transform

import (
	"strconv"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Возрастные диапазоны клиентов
const (
	AgeBracketUnder20 = "under 20"
	AgeBracket20to40  = "20 to 40"
	AgeBracket40to60  = "40 to 60"
	AgeBracketOver60  = "over 60"
	AgeBracketUnknown = "unknown"
)

// CustomerProcessor отвечает за конформацию измерения клиентов
type CustomerProcessor struct {
	logger *utils.ETLLogger
	now    time.Time
}

// NewCustomerProcessor создает новый экземпляр CustomerProcessor.
// Текущая дата передается явно, чтобы возрастные диапазоны
// были чистой функцией от (даты рождения, текущей даты)
func NewCustomerProcessor(logger *utils.ETLLogger, now time.Time) *CustomerProcessor {
	return &CustomerProcessor{
		logger: logger,
		now:    now,
	}
}

// ProcessCustomerDimension объединяет розничных и оптовых клиентов в одно
// измерение, обогащая каждую запись регионом и возрастным диапазоном
func (p *CustomerProcessor) ProcessCustomerDimension(
	retail, wholesale []models.CustomerRecord,
	regions *RegionLookup,
) []models.CustomerDimension {
	p.logger.Debug("Обработка измерения клиентов...")

	customers := make([]models.CustomerDimension, 0, len(retail)+len(wholesale))

	for _, record := range retail {
		customers = append(customers, p.conformCustomer(record, models.CustomerTypeRetail, regions))
	}
	for _, record := range wholesale {
		customers = append(customers, p.conformCustomer(record, models.CustomerTypeWholesale, regions))
	}

	// Промахи поиска региона не фатальны, но фиксируются в логе
	for _, miss := range regions.Misses() {
		p.logger.Warn("Не найден регион для города %q и штата %q", miss.City, miss.State)
	}

	p.validateCustomers(customers)

	p.logger.Debug("Сформировано %d записей измерения клиентов", len(customers))
	return customers
}

// conformCustomer преобразует одну запись источника в запись измерения.
// Функция чистая по отношению к строке: результат зависит только от
// входной записи, типа клиента, справочника регионов и текущей даты
func (p *CustomerProcessor) conformCustomer(
	record models.CustomerRecord,
	customerType string,
	regions *RegionLookup,
) models.CustomerDimension {
	city := normalize(record.City)
	state := normalize(record.State)

	region, _ := regions.Resolve(record.City, record.State)

	id, err := strconv.Atoi(normalize(record.CustomerID))
	if err != nil {
		p.logger.Warn("Нечисловой идентификатор клиента %q", record.CustomerID)
	}

	bracket := AgeBracketUnknown
	if birthDate, err := parseDate(record.BirthDate); err == nil {
		bracket = ageBracket(calculateAge(birthDate, p.now))
	} else {
		p.logger.Warn("Нераспознанная дата рождения клиента %q: %v", record.CustomerID, err)
	}

	return models.CustomerDimension{
		ID:           id,
		Name:         record.FullName,
		City:         city,
		Province:     state,
		Region:       region,
		CustomerType: customerType,
		AgeBracket:   bracket,
	}
}

// calculateAge вычисляет полный возраст на дату now:
// разница лет уменьшается на единицу, если день рождения ещё не наступил
func calculateAge(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// ageBracket классифицирует возраст по диапазонам
func ageBracket(age int) string {
	switch {
	case age < 20:
		return AgeBracketUnder20
	case age < 40:
		return AgeBracket20to40
	case age < 60:
		return AgeBracket40to60
	default:
		return AgeBracketOver60
	}
}

// validateCustomers проверяет записи измерения на пустые значения
// по всем колонкам и логирует найденные (не фатально)
func (p *CustomerProcessor) validateCustomers(customers []models.CustomerDimension) {
	nulls := 0
	for _, c := range customers {
		if c.ID == 0 || c.Name == "" || c.City == "" || c.Province == "" || c.Region == "" {
			nulls++
		}
	}

	if nulls > 0 {
		p.logger.Warn("Обнаружено %d записей клиентов с пустыми значениями", nulls)
	} else {
		p.logger.Info("Пустых значений в измерении клиентов не обнаружено")
	}
}
