package load

import (
	"database/sql"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Loader интерфейс для загрузки таблиц звёздной схемы в хранилище
type Loader interface {
	// LoadCustomerDimension загружает измерение клиентов
	LoadCustomerDimension(customers []models.CustomerDimension) error

	// LoadEmployeeDimension загружает измерение сотрудников
	LoadEmployeeDimension(employees []models.EmployeeDimension) error

	// LoadProductDimension загружает измерение продуктов
	LoadProductDimension(products []models.ProductDimension) error

	// LoadTimeDimension загружает временное измерение
	LoadTimeDimension(timeRows []models.TimeDimension) error

	// LoadSalesFacts загружает таблицу фактов продаж
	LoadSalesFacts(facts []models.SalesFact) error
}

// DWHLoader реализация Loader для хранилища данных
type DWHLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger

	// Загрузчики для отдельных таблиц
	dimensionLoader *DimensionLoader
	salesLoader     *SalesLoader
}

// NewDWHLoader создает новый экземпляр DWHLoader
func NewDWHLoader(db *sql.DB, logger *utils.ETLLogger) *DWHLoader {
	return &DWHLoader{
		db:              db,
		logger:          logger,
		dimensionLoader: NewDimensionLoader(db, logger),
		salesLoader:     NewSalesLoader(db, logger),
	}
}

// LoadCustomerDimension загружает измерение клиентов
func (l *DWHLoader) LoadCustomerDimension(customers []models.CustomerDimension) error {
	return l.dimensionLoader.LoadCustomers(customers)
}

// LoadEmployeeDimension загружает измерение сотрудников
func (l *DWHLoader) LoadEmployeeDimension(employees []models.EmployeeDimension) error {
	return l.dimensionLoader.LoadEmployees(employees)
}

// LoadProductDimension загружает измерение продуктов
func (l *DWHLoader) LoadProductDimension(products []models.ProductDimension) error {
	return l.dimensionLoader.LoadProducts(products)
}

// LoadTimeDimension загружает временное измерение
func (l *DWHLoader) LoadTimeDimension(timeRows []models.TimeDimension) error {
	return l.dimensionLoader.LoadTime(timeRows)
}

// LoadSalesFacts загружает таблицу фактов продаж
func (l *DWHLoader) LoadSalesFacts(facts []models.SalesFact) error {
	return l.salesLoader.Load(facts)
}
