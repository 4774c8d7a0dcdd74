package extractors

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var billingColumns = []string{
	"BILLING_ID", "REGION", "BRANCH_ID", "CAST(b.DATE AS CHAR)",
	"CUSTOMER_ID", "EMPLOYEE_ID", "PRODUCT_ID", "QUANTITY",
	"CAST(p.DATE AS CHAR)", "PRICE",
}

func TestExtractBilling(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	result := sqlmock.NewRows(billingColumns).
		AddRow(1, "north", 10, "2025-11-03", 101, 7, 1, 3, "2025-01-01", 1.5).
		AddRow(2, "south", 11, "2025-02-14", 102, 8, 2, 1, "2025-01-01", 2.0)
	mock.ExpectQuery("FROM billing b").WillReturnRows(result)

	extractor := NewBillingExtractor(db, utils.NewDiscardLogger())
	billing, err := extractor.ExtractBilling()
	require.NoError(t, err)

	require.Len(t, billing, 2)
	assert.Equal(t, models.BillingRow{
		BillingID:  1,
		Region:     "north",
		BranchID:   10,
		Date:       "2025-11-03",
		CustomerID: 101,
		EmployeeID: 7,
		ProductID:  1,
		Quantity:   3,
		PriceDate:  "2025-01-01",
		Price:      1.5,
	}, billing[0])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExtractBillingNullDates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	result := sqlmock.NewRows(billingColumns).
		AddRow(1, "north", 10, nil, 101, 7, 1, 3, nil, 1.5)
	mock.ExpectQuery("FROM billing b").WillReturnRows(result)

	extractor := NewBillingExtractor(db, utils.NewDiscardLogger())
	billing, err := extractor.ExtractBilling()
	require.NoError(t, err)

	// NULL-даты превращаются в пустые строки и отбрасываются
	// позже, при построении временного измерения
	require.Len(t, billing, 1)
	assert.Empty(t, billing[0].Date)
	assert.Empty(t, billing[0].PriceDate)
}

func TestExtractBillingMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM billing b").
		WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table 'beverage_sales.billing' doesn't exist"})

	extractor := NewBillingExtractor(db, utils.NewDiscardLogger())

	_, err = extractor.ExtractBilling()
	var notFound *models.SourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "billing/billing_detail/prices", notFound.Source)
}
