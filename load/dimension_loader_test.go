package load

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockLoader(t *testing.T) (*DimensionLoader, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDimensionLoader(db, utils.NewDiscardLogger()), mock
}

func TestLoadCustomers(t *testing.T) {
	loader, mock := newMockLoader(t)

	mock.ExpectBegin()
	prepare := mock.ExpectPrepare("INSERT INTO dimension_customers")
	prepare.ExpectExec().
		WithArgs(101, "John Doe", "la", "ca", "north", models.CustomerTypeRetail, "20 to 40").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prepare.ExpectExec().
		WithArgs(205, "Jane Roe", "miami", "fl", nil, models.CustomerTypeWholesale, "unknown").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	customers := []models.CustomerDimension{
		{ID: 101, Name: "John Doe", City: "la", Province: "ca", Region: "north",
			CustomerType: models.CustomerTypeRetail, AgeBracket: "20 to 40"},
		// Неразрешённый регион вставляется как NULL
		{ID: 205, Name: "Jane Roe", City: "miami", Province: "fl", Region: "",
			CustomerType: models.CustomerTypeWholesale, AgeBracket: "unknown"},
	}

	require.NoError(t, loader.LoadCustomers(customers))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadEmployeesNullableFields(t *testing.T) {
	loader, mock := newMockLoader(t)

	mock.ExpectBegin()
	prepare := mock.ExpectPrepare("INSERT INTO dimension_employees")
	// У сотрудника с нераспознанной датой приёма стаж и зона стажа — NULL
	prepare.ExpectExec().
		WithArgs(7, "Ivan Petrov", "male", nil, "1990-01-31", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	employees := []models.EmployeeDimension{
		{
			ID:        7,
			Name:      "Ivan Petrov",
			Gender:    "male",
			BirthDate: sql.NullTime{Time: time.Date(1990, 1, 31, 0, 0, 0, 0, time.UTC), Valid: true},
		},
	}

	require.NoError(t, loader.LoadEmployees(employees))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTimeFormatsDate(t *testing.T) {
	loader, mock := newMockLoader(t)

	mock.ExpectBegin()
	prepare := mock.ExpectPrepare("INSERT INTO dimension_time")
	prepare.ExpectExec().
		WithArgs(1, "2025-11-03", 3, 11, 4, 2025).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	timeRows := []models.TimeDimension{
		{ID: 1, Date: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), Day: 3, Month: 11, Quarter: 4, Year: 2025},
	}

	require.NoError(t, loader.LoadTime(timeRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadProductsRollbackOnError(t *testing.T) {
	loader, mock := newMockLoader(t)

	mock.ExpectBegin()
	prepare := mock.ExpectPrepare("INSERT INTO dimension_products")
	prepare.ExpectExec().
		WithArgs(1, "Diet Cola", "Can", 0.355, "diet").
		WillReturnError(errors.New("таблица недоступна"))
	mock.ExpectRollback()

	products := []models.ProductDimension{
		{ID: 1, Description: "Diet Cola", Container: "Can",
			VolumeLiters: sql.NullFloat64{Float64: 0.355, Valid: true}, BeverageType: "diet"},
	}

	err := loader.LoadProducts(products)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalesLoaderLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prepare := mock.ExpectPrepare("INSERT INTO fact_sales")
	prepare.ExpectExec().
		WithArgs(1, 101, 7, 1, 3, 1.5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	prepare.ExpectExec().
		WithArgs(2, 102, 8, 2, 1, 2.0).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	facts := []models.SalesFact{
		{TimeID: 1, CustomerID: 101, EmployeeID: 7, ProductID: 1, Quantity: 3, Price: 1.5},
		{TimeID: 2, CustomerID: 102, EmployeeID: 8, ProductID: 2, Quantity: 1, Price: 2.0},
	}

	loader := NewSalesLoader(db, utils.NewDiscardLogger())
	require.NoError(t, loader.Load(facts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNullableHelpers(t *testing.T) {
	assert.False(t, nullableString("").Valid)
	assert.Equal(t, sql.NullString{String: "north", Valid: true}, nullableString("north"))

	assert.False(t, nullableDate(sql.NullTime{}).Valid)
	d := sql.NullTime{Time: time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), Valid: true}
	assert.Equal(t, sql.NullString{String: "2025-02-14", Valid: true}, nullableDate(d))
}
