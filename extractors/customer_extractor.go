package extractors

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CustomerExtractor извлекает данные о клиентах из XML-источников
type CustomerExtractor struct {
	dataDir string
	logger  *utils.ETLLogger
}

// NewCustomerExtractor создает новый экземпляр CustomerExtractor
func NewCustomerExtractor(dataDir string, logger *utils.ETLLogger) *CustomerExtractor {
	return &CustomerExtractor{
		dataDir: dataDir,
		logger:  logger,
	}
}

// customerDocument описывает корневой элемент XML-файла клиентов.
// Имя элемента-строки не фиксируется: собираются все дочерние элементы
type customerDocument struct {
	Rows []models.CustomerRecord `xml:",any"`
}

// ExtractRetail извлекает клиентов розничного источника (Customer_R.xml)
func (e *CustomerExtractor) ExtractRetail() ([]models.CustomerRecord, error) {
	return e.extractFile("Customer_R.xml")
}

// ExtractWholesale извлекает клиентов оптового источника (Customer_W.xml)
func (e *CustomerExtractor) ExtractWholesale() ([]models.CustomerRecord, error) {
	return e.extractFile("Customer_W.xml")
}

// extractFile читает и разбирает один XML-файл клиентов
func (e *CustomerExtractor) extractFile(name string) ([]models.CustomerRecord, error) {
	sourcePath := filepath.Join(e.dataDir, name)
	e.logger.Debug("Начало извлечения клиентов из %s", sourcePath)

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &models.SourceNotFoundError{Source: sourcePath, Err: err}
		}
		return nil, fmt.Errorf("ошибка чтения файла клиентов: %w", err)
	}

	var doc customerDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &models.ParseError{Source: sourcePath, Err: err}
	}

	if err := e.checkRequiredColumns(sourcePath, doc.Rows); err != nil {
		return nil, err
	}

	e.logger.Debug("Извлечено %d клиентов из %s", len(doc.Rows), name)
	return doc.Rows, nil
}

// checkRequiredColumns проверяет наличие обязательных колонок.
// Колонка считается отсутствующей, если она пуста во всех записях файла
func (e *CustomerExtractor) checkRequiredColumns(source string, rows []models.CustomerRecord) error {
	if len(rows) == 0 {
		return nil
	}

	required := map[string]func(models.CustomerRecord) string{
		"CUSTOMER_ID": func(r models.CustomerRecord) string { return r.CustomerID },
		"FULL_NAME":   func(r models.CustomerRecord) string { return r.FullName },
		"CITY":        func(r models.CustomerRecord) string { return r.City },
		"STATE":       func(r models.CustomerRecord) string { return r.State },
		"BIRTH_DATE":  func(r models.CustomerRecord) string { return r.BirthDate },
	}

	for column, get := range required {
		present := false
		for _, row := range rows {
			if get(row) != "" {
				present = true
				break
			}
		}
		if !present {
			e.logger.Error("В источнике %s отсутствует колонка %s", source, column)
			return &models.SchemaError{Source: source, Column: column}
		}
	}

	return nil
}
