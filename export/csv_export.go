// Package export отвечает за выгрузку таблиц звёздной схемы в CSV-файлы
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Exporter выгружает таблицы звёздной схемы в CSV-файлы
type Exporter struct {
	outputDir string
	logger    *utils.ETLLogger
}

// NewExporter создает новый экземпляр Exporter
func NewExporter(outputDir string, logger *utils.ETLLogger) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		logger:    logger,
	}
}

// ExportAll выгружает все пять таблиц звёздной схемы
func (e *Exporter) ExportAll(star *models.StarSchema) error {
	if err := e.exportCustomers(star.Customers); err != nil {
		return err
	}
	if err := e.exportEmployees(star.Employees); err != nil {
		return err
	}
	if err := e.exportProducts(star.Products); err != nil {
		return err
	}
	if err := e.exportTime(star.Time); err != nil {
		return err
	}
	if err := e.exportSales(star.Sales); err != nil {
		return err
	}

	e.logger.Info("Выгрузка CSV-файлов завершена")
	return nil
}

func (e *Exporter) exportCustomers(customers []models.CustomerDimension) error {
	header := []string{"customer_id", "name", "city", "province", "region", "customer_type", "age_bracket"}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.Itoa(c.ID), c.Name, c.City, c.Province, c.Region, c.CustomerType, c.AgeBracket,
		})
	}
	return e.writeCSV("dimension_customers.csv", header, rows)
}

func (e *Exporter) exportEmployees(employees []models.EmployeeDimension) error {
	header := []string{"employee_id", "name", "gender", "tenure_years", "birth_date", "tenure_zone"}
	rows := make([][]string, 0, len(employees))
	for _, emp := range employees {
		tenure := ""
		if emp.TenureYears.Valid {
			tenure = strconv.FormatInt(emp.TenureYears.Int64, 10)
		}
		birthDate := ""
		if emp.BirthDate.Valid {
			birthDate = emp.BirthDate.Time.Format("2006-01-02")
		}
		rows = append(rows, []string{
			strconv.Itoa(emp.ID), emp.Name, emp.Gender, tenure, birthDate, emp.TenureZone,
		})
	}
	return e.writeCSV("dimension_employees.csv", header, rows)
}

func (e *Exporter) exportProducts(products []models.ProductDimension) error {
	header := []string{"product_id", "description", "container_type", "volume_liters", "beverage_type"}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		volume := ""
		if p.VolumeLiters.Valid {
			volume = strconv.FormatFloat(p.VolumeLiters.Float64, 'f', -1, 64)
		}
		rows = append(rows, []string{
			strconv.Itoa(p.ID), p.Description, p.Container, volume, p.BeverageType,
		})
	}
	return e.writeCSV("dimension_products.csv", header, rows)
}

func (e *Exporter) exportTime(timeRows []models.TimeDimension) error {
	header := []string{"time_id", "full_date", "day", "month", "quarter", "year"}
	rows := make([][]string, 0, len(timeRows))
	for _, t := range timeRows {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			t.Date.Format("2006-01-02"),
			strconv.Itoa(t.Day),
			strconv.Itoa(t.Month),
			strconv.Itoa(t.Quarter),
			strconv.Itoa(t.Year),
		})
	}
	return e.writeCSV("dimension_time.csv", header, rows)
}

func (e *Exporter) exportSales(facts []models.SalesFact) error {
	header := []string{"time_id", "customer_id", "employee_id", "product_id", "quantity", "price"}
	rows := make([][]string, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, []string{
			strconv.Itoa(f.TimeID),
			strconv.Itoa(f.CustomerID),
			strconv.Itoa(f.EmployeeID),
			strconv.Itoa(f.ProductID),
			strconv.Itoa(f.Quantity),
			strconv.FormatFloat(f.Price, 'f', -1, 64),
		})
	}
	return e.writeCSV("fact_sales.csv", header, rows)
}

// writeCSV записывает таблицу в CSV-файл. Если файл уже существует,
// данные сохраняются под именем с отметкой времени, старый файл
// не перезаписывается
func (e *Exporter) writeCSV(filename string, header []string, rows [][]string) error {
	path := filepath.Join(e.outputDir, filename)

	if _, err := os.Stat(path); err == nil {
		timestamp := time.Now().Format("20060102_150405")
		ext := filepath.Ext(filename)
		base := filename[:len(filename)-len(ext)]
		newName := fmt.Sprintf("%s_%s%s", base, timestamp, ext)
		e.logger.Info("Файл %s уже существует. Данные будут сохранены в %s", filename, newName)
		path = filepath.Join(e.outputDir, newName)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания файла %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("ошибка записи заголовка в %s: %w", path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("ошибка записи строки в %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}

	e.logger.Debug("Таблица выгружена в %s (%d строк)", path, len(rows))
	return nil
}
