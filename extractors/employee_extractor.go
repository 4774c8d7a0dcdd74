package extractors

import (
	"os"
	"path/filepath"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/xuri/excelize/v2"
)

// Обязательные колонки реестра сотрудников
var employeeColumns = []string{"EMPLOYEE_ID", "FULL_NAME", "GENDER", "EMPLOYMENT_DATE", "BIRTH_DATE"}

// EmployeeExtractor извлекает реестр сотрудников из файла Excel
type EmployeeExtractor struct {
	dataDir string
	logger  *utils.ETLLogger
}

// NewEmployeeExtractor создает новый экземпляр EmployeeExtractor
func NewEmployeeExtractor(dataDir string, logger *utils.ETLLogger) *EmployeeExtractor {
	return &EmployeeExtractor{
		dataDir: dataDir,
		logger:  logger,
	}
}

// ExtractEmployees читает Employee.xlsx и возвращает строки реестра сотрудников
func (e *EmployeeExtractor) ExtractEmployees() ([]models.EmployeeRecord, error) {
	sourcePath := filepath.Join(e.dataDir, "Employee.xlsx")
	e.logger.Debug("Начало извлечения сотрудников из %s", sourcePath)

	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		return nil, &models.SourceNotFoundError{Source: sourcePath, Err: err}
	}

	file, err := excelize.OpenFile(sourcePath)
	if err != nil {
		return nil, &models.ParseError{Source: sourcePath, Err: err}
	}
	defer file.Close()

	// Данные находятся на первом листе книги
	sheet := file.GetSheetName(0)
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, &models.ParseError{Source: sourcePath, Err: err}
	}

	if len(rows) == 0 {
		e.logger.Warn("Файл %s пуст", sourcePath)
		return nil, nil
	}

	// Первая строка содержит заголовок: строим карту колонок
	columns, err := e.mapColumns(sourcePath, rows[0])
	if err != nil {
		return nil, err
	}

	employees := make([]models.EmployeeRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		employees = append(employees, models.EmployeeRecord{
			EmployeeID:     cellValue(row, columns["EMPLOYEE_ID"]),
			FullName:       cellValue(row, columns["FULL_NAME"]),
			Gender:         cellValue(row, columns["GENDER"]),
			EmploymentDate: cellValue(row, columns["EMPLOYMENT_DATE"]),
			BirthDate:      cellValue(row, columns["BIRTH_DATE"]),
		})
	}

	e.logger.Debug("Извлечено %d сотрудников", len(employees))
	return employees, nil
}

// mapColumns сопоставляет имена обязательных колонок с их индексами в заголовке
func (e *EmployeeExtractor) mapColumns(source string, header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	for _, required := range employeeColumns {
		if _, ok := columns[required]; !ok {
			e.logger.Error("В источнике %s отсутствует колонка %s", source, required)
			return nil, &models.SchemaError{Source: source, Column: required}
		}
	}

	return columns, nil
}

// cellValue безопасно возвращает значение ячейки строки.
// Excel опускает пустые ячейки в конце строки
func cellValue(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
