package load

import (
	"testing"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLoader запоминает переданные ему строки вместо вставки в базу
type recordingLoader struct {
	customers []models.CustomerDimension
	employees []models.EmployeeDimension
	products  []models.ProductDimension
	timeRows  []models.TimeDimension
	facts     []models.SalesFact

	calls []string
}

func (l *recordingLoader) LoadCustomerDimension(customers []models.CustomerDimension) error {
	l.customers = customers
	l.calls = append(l.calls, "customers")
	return nil
}

func (l *recordingLoader) LoadEmployeeDimension(employees []models.EmployeeDimension) error {
	l.employees = employees
	l.calls = append(l.calls, "employees")
	return nil
}

func (l *recordingLoader) LoadProductDimension(products []models.ProductDimension) error {
	l.products = products
	l.calls = append(l.calls, "products")
	return nil
}

func (l *recordingLoader) LoadTimeDimension(timeRows []models.TimeDimension) error {
	l.timeRows = timeRows
	l.calls = append(l.calls, "time")
	return nil
}

func (l *recordingLoader) LoadSalesFacts(facts []models.SalesFact) error {
	l.facts = facts
	l.calls = append(l.calls, "sales")
	return nil
}

func TestDedupFirst(t *testing.T) {
	rows := []models.CustomerDimension{
		{ID: 1, Name: "первый"},
		{ID: 2, Name: "второй"},
		{ID: 1, Name: "дубликат"},
		{ID: 3, Name: "третий"},
	}

	result := dedupFirst(rows, func(c models.CustomerDimension) int { return c.ID })

	require.Len(t, result, 3)
	// Сохраняется первое вхождение каждого ключа
	assert.Equal(t, "первый", result[0].Name)
	assert.Equal(t, "второй", result[1].Name)
	assert.Equal(t, "третий", result[2].Name)
}

func TestManagerLoadDeduplicates(t *testing.T) {
	loader := &recordingLoader{}
	manager := &Manager{logger: utils.NewDiscardLogger(), loader: loader}

	date := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	star := &models.StarSchema{
		Customers: []models.CustomerDimension{
			{ID: 101, Name: "John Doe"},
			{ID: 101, Name: "John Doe (дубликат)"},
		},
		Employees: []models.EmployeeDimension{
			{ID: 7, Name: "Ivan Petrov"},
		},
		Products: []models.ProductDimension{
			{ID: 1, Description: "Diet Cola"},
			{ID: 1, Description: "Diet Cola (дубликат)"},
		},
		Time: []models.TimeDimension{
			{ID: 1, Date: date},
		},
		Sales: []models.SalesFact{
			{TimeID: 1, CustomerID: 101, Quantity: 3},
			{TimeID: 1, CustomerID: 102, Quantity: 5},
			{TimeID: 2, CustomerID: 101, Quantity: 1},
		},
	}

	require.NoError(t, manager.Load(star))

	assert.Len(t, loader.customers, 1)
	assert.Equal(t, "John Doe", loader.customers[0].Name)
	assert.Len(t, loader.employees, 1)
	assert.Len(t, loader.products, 1)
	assert.Len(t, loader.timeRows, 1)

	// Факты очищаются от дубликатов по первой ключевой колонке — id_времени
	require.Len(t, loader.facts, 2)
	assert.Equal(t, 101, loader.facts[0].CustomerID)
	assert.Equal(t, 2, loader.facts[1].TimeID)

	// Таблицы загружаются в порядке: измерения, затем факты
	assert.Equal(t, []string{"customers", "employees", "products", "time", "sales"}, loader.calls)
}

func TestManagerLoadSkipsEmptyTables(t *testing.T) {
	loader := &recordingLoader{}
	manager := &Manager{logger: utils.NewDiscardLogger(), loader: loader}

	star := &models.StarSchema{
		Products: []models.ProductDimension{{ID: 1, Description: "Root Beer"}},
	}

	require.NoError(t, manager.Load(star))

	// Пустые таблицы пропускаются без обращения к загрузчику
	assert.Equal(t, []string{"products"}, loader.calls)
}
