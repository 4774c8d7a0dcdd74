package transform

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Зоны стажа сотрудников
const (
	TenureZoneNew    = "new"
	TenureZoneMid    = "mid"
	TenureZoneSenior = "senior"
)

// Явная таблица нормализации обозначений пола.
// Нераспознанные коды проходят без изменений
var genderMap = map[string]string{
	"M": "male",
	"F": "female",
}

// EmployeeProcessor отвечает за конформацию измерения сотрудников
type EmployeeProcessor struct {
	logger *utils.ETLLogger
	now    time.Time
}

// NewEmployeeProcessor создает новый экземпляр EmployeeProcessor
func NewEmployeeProcessor(logger *utils.ETLLogger, now time.Time) *EmployeeProcessor {
	return &EmployeeProcessor{
		logger: logger,
		now:    now,
	}
}

// ProcessEmployeeDimension преобразует реестр сотрудников в измерение
func (p *EmployeeProcessor) ProcessEmployeeDimension(records []models.EmployeeRecord) []models.EmployeeDimension {
	p.logger.Debug("Обработка измерения сотрудников...")

	employees := make([]models.EmployeeDimension, 0, len(records))
	for _, record := range records {
		employees = append(employees, p.conformEmployee(record))
	}

	p.validateEmployees(employees)

	p.logger.Debug("Сформировано %d записей измерения сотрудников", len(employees))
	return employees
}

// conformEmployee преобразует одну строку реестра в запись измерения
func (p *EmployeeProcessor) conformEmployee(record models.EmployeeRecord) models.EmployeeDimension {
	id, err := strconv.Atoi(normalize(record.EmployeeID))
	if err != nil {
		p.logger.Warn("Нечисловой идентификатор сотрудника %q", record.EmployeeID)
	}

	employee := models.EmployeeDimension{
		ID:     id,
		Name:   record.FullName,
		Gender: normalizeGender(record.Gender),
	}

	if birthDate, err := parseDate(record.BirthDate); err == nil {
		employee.BirthDate = sql.NullTime{Time: birthDate, Valid: true}
	} else {
		p.logger.Warn("Нераспознанная дата рождения сотрудника %q: %v", record.EmployeeID, err)
	}

	if hireDate, err := parseDate(record.EmploymentDate); err == nil {
		years := tenureYears(hireDate, p.now)
		employee.TenureYears = sql.NullInt64{Int64: int64(years), Valid: true}
		employee.TenureZone = tenureZone(years)
	} else {
		// Нераспознанная дата найма оставляет стаж неопределённым
		p.logger.Warn("Нераспознанная дата найма сотрудника %q: %v", record.EmployeeID, err)
	}

	return employee
}

// tenureYears вычисляет стаж в полных годах как floor(дней / 365).
// Упрощение без поправки на високосные годы сохранено намеренно
// ради воспроизводимости результата
func tenureYears(hireDate, now time.Time) int {
	days := int(now.Sub(hireDate).Hours() / 24)
	return days / 365
}

// tenureZone классифицирует стаж по зонам
func tenureZone(years int) string {
	switch {
	case years < 1:
		return TenureZoneNew
	case years < 5:
		return TenureZoneMid
	default:
		return TenureZoneSenior
	}
}

// normalizeGender нормализует обозначение пола по явной таблице
func normalizeGender(gender string) string {
	if mapped, ok := genderMap[gender]; ok {
		return mapped
	}
	return gender
}

// validateEmployees проверяет обязательную колонку стажа на пустые значения:
// пустой стаж означает нераспознанную дату найма
func (p *EmployeeProcessor) validateEmployees(employees []models.EmployeeDimension) {
	for _, e := range employees {
		if !e.TenureYears.Valid {
			p.logger.Warn("Сотрудник %d (%s): стаж не определён", e.ID, e.Name)
		}
	}
}
