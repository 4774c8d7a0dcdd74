package transform

import (
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Transformer координирует процесс преобразования исходных данных
// в звёздную схему хранилища
type Transformer struct {
	logger            *utils.ETLLogger
	customerProcessor *CustomerProcessor
	employeeProcessor *EmployeeProcessor
	productProcessor  *ProductProcessor
	timeProcessor     *TimeProcessor
	salesProcessor    *SalesProcessor
}

// NewTransformer создает новый экземпляр Transformer.
// Момент запуска now фиксируется один раз, чтобы все производные
// возрастов и стажа считались от одной и той же даты
func NewTransformer(logger *utils.ETLLogger, now time.Time) *Transformer {
	return &Transformer{
		logger:            logger,
		customerProcessor: NewCustomerProcessor(logger, now),
		employeeProcessor: NewEmployeeProcessor(logger, now),
		productProcessor:  NewProductProcessor(logger),
		timeProcessor:     NewTimeProcessor(logger),
		salesProcessor:    NewSalesProcessor(logger),
	}
}

// Transform выполняет полный процесс преобразования извлечённых данных
// в звёздную схему. Справочник регионов используется только измерением
// клиентов и передаётся явно, без разделяемого состояния между этапами
func (t *Transformer) Transform(extractedData *models.ExtractedData) (*models.StarSchema, error) {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform (Преобразование данных)")

	// Создаем структуру для хранения трансформированных данных
	star := &models.StarSchema{}

	// 1. Строим таблицу поиска регионов
	t.logger.Info("Построение таблицы поиска регионов...")
	regions := NewRegionLookup(extractedData.Regions)

	// 2. Конформация измерения клиентов (розница + опт)
	t.logger.Info("Преобразование данных клиентов...")
	star.Customers = t.customerProcessor.ProcessCustomerDimension(
		extractedData.RetailCustomers,
		extractedData.WholesaleCustomers,
		regions,
	)

	// 3. Конформация измерения сотрудников
	t.logger.Info("Преобразование данных сотрудников...")
	star.Employees = t.employeeProcessor.ProcessEmployeeDimension(extractedData.Employees)

	// 4. Конформация измерения продуктов
	t.logger.Info("Преобразование данных продуктов...")
	star.Products = t.productProcessor.ProcessProductDimension(extractedData.Products)

	// 5. Построение временного измерения по датам транзакций
	t.logger.Info("Построение временного измерения...")
	timeDimension, dateIDs := t.timeProcessor.ProcessTimeDimension(extractedData.Billing)
	star.Time = timeDimension

	// 6. Построение фактов продаж
	t.logger.Info("Построение фактов продаж...")
	facts, dropped := t.salesProcessor.ProcessSalesFacts(extractedData.Billing, dateIDs)
	star.Sales = facts

	// Заполняем метаданные запуска
	star.Metadata = models.ETLMetadata{
		RunTimestamp:    time.Now(),
		RegionMisses:    len(regions.Misses()),
		DroppedFactRows: dropped,
	}

	duration := time.Since(startTime)
	t.logger.Info("Фаза Transform завершена. Длительность: %v", duration)

	return star, nil
}
