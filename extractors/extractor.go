package extractors

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Extractor координирует процесс извлечения данных из всех источников
type Extractor struct {
	logger            *utils.ETLLogger
	regionExtractor   *RegionExtractor
	customerExtractor *CustomerExtractor
	employeeExtractor *EmployeeExtractor
	productExtractor  *ProductExtractor
	billingExtractor  *BillingExtractor
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(sourceDB *sql.DB, dataDir string, logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		logger:            logger,
		regionExtractor:   NewRegionExtractor(dataDir, logger),
		customerExtractor: NewCustomerExtractor(dataDir, logger),
		employeeExtractor: NewEmployeeExtractor(dataDir, logger),
		productExtractor:  NewProductExtractor(dataDir, logger),
		billingExtractor:  NewBillingExtractor(sourceDB, logger),
	}
}

// Extract выполняет извлечение данных из всех источников ETL-процесса.
// Структурные проблемы (отсутствующий файл, таблица или колонка)
// прерывают извлечение
func (e *Extractor) Extract() (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.LogExtractStart()

	var extractedData models.ExtractedData
	var err error

	// Извлекаем справочник регионов
	extractedData.Regions, err = e.regionExtractor.ExtractRegions()
	if err != nil {
		e.logger.Error("Ошибка при извлечении справочника регионов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения регионов: %w", err)
	}

	// Извлекаем розничных клиентов
	extractedData.RetailCustomers, err = e.customerExtractor.ExtractRetail()
	if err != nil {
		e.logger.Error("Ошибка при извлечении розничных клиентов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения розничных клиентов: %w", err)
	}

	// Извлекаем оптовых клиентов
	extractedData.WholesaleCustomers, err = e.customerExtractor.ExtractWholesale()
	if err != nil {
		e.logger.Error("Ошибка при извлечении оптовых клиентов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения оптовых клиентов: %w", err)
	}

	// Извлекаем сотрудников
	extractedData.Employees, err = e.employeeExtractor.ExtractEmployees()
	if err != nil {
		e.logger.Error("Ошибка при извлечении сотрудников: %v", err)
		return nil, fmt.Errorf("ошибка извлечения сотрудников: %w", err)
	}

	// Извлекаем каталог продуктов
	extractedData.Products, err = e.productExtractor.ExtractProducts()
	if err != nil {
		e.logger.Error("Ошибка при извлечении продуктов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения продуктов: %w", err)
	}

	// Извлекаем объединённые данные биллинга
	extractedData.Billing, err = e.billingExtractor.ExtractBilling()
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных биллинга: %v", err)
		return nil, fmt.Errorf("ошибка извлечения данных биллинга: %w", err)
	}

	// Выводим информацию о завершении
	e.logger.LogExtractComplete(
		len(extractedData.Regions),
		len(extractedData.RetailCustomers)+len(extractedData.WholesaleCustomers),
		len(extractedData.Employees),
		len(extractedData.Products),
		len(extractedData.Billing),
		time.Since(startTime),
	)

	return &extractedData, nil
}
