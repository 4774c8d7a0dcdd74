package extractors

import (
	"path/filepath"
	"testing"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeEmployeeWorkbook создает Employee.xlsx с заданными строками
// (первая строка — заголовок)
func writeEmployeeWorkbook(t *testing.T, dir string, rows [][]interface{}) {
	t.Helper()

	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheet, cell, &row))
	}

	require.NoError(t, workbook.SaveAs(filepath.Join(dir, "Employee.xlsx")))
}

func TestExtractEmployees(t *testing.T) {
	dataDir := t.TempDir()
	writeEmployeeWorkbook(t, dataDir, [][]interface{}{
		{"EMPLOYEE_ID", "FULL_NAME", "GENDER", "EMPLOYMENT_DATE", "BIRTH_DATE"},
		{"7", "Ivan Petrov", "M", "2019-06-15", "1990-01-31"},
		{"8", "Anna Smith", "F", "2024-01-10", "1995-07-04"},
	})

	extractor := NewEmployeeExtractor(dataDir, utils.NewDiscardLogger())
	employees, err := extractor.ExtractEmployees()
	require.NoError(t, err)

	require.Len(t, employees, 2)
	assert.Equal(t, models.EmployeeRecord{
		EmployeeID:     "7",
		FullName:       "Ivan Petrov",
		Gender:         "M",
		EmploymentDate: "2019-06-15",
		BirthDate:      "1990-01-31",
	}, employees[0])
	assert.Equal(t, "F", employees[1].Gender)
}

func TestExtractEmployeesColumnOrderIndependent(t *testing.T) {
	dataDir := t.TempDir()
	// Колонки переставлены относительно обычного порядка
	writeEmployeeWorkbook(t, dataDir, [][]interface{}{
		{"FULL_NAME", "EMPLOYEE_ID", "BIRTH_DATE", "GENDER", "EMPLOYMENT_DATE"},
		{"Ivan Petrov", "7", "1990-01-31", "M", "2019-06-15"},
	})

	extractor := NewEmployeeExtractor(dataDir, utils.NewDiscardLogger())
	employees, err := extractor.ExtractEmployees()
	require.NoError(t, err)

	require.Len(t, employees, 1)
	assert.Equal(t, "7", employees[0].EmployeeID)
	assert.Equal(t, "2019-06-15", employees[0].EmploymentDate)
}

func TestExtractEmployeesMissingColumn(t *testing.T) {
	dataDir := t.TempDir()
	writeEmployeeWorkbook(t, dataDir, [][]interface{}{
		{"EMPLOYEE_ID", "FULL_NAME", "GENDER", "EMPLOYMENT_DATE"},
		{"7", "Ivan Petrov", "M", "2019-06-15"},
	})

	extractor := NewEmployeeExtractor(dataDir, utils.NewDiscardLogger())

	_, err := extractor.ExtractEmployees()
	var schemaErr *models.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "BIRTH_DATE", schemaErr.Column)
}

func TestExtractEmployeesMissingFile(t *testing.T) {
	extractor := NewEmployeeExtractor(t.TempDir(), utils.NewDiscardLogger())

	_, err := extractor.ExtractEmployees()
	var notFound *models.SourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Source, "Employee.xlsx")
}
