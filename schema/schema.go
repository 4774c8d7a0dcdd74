// Package schema отвечает за создание схемы хранилища данных:
// пересоздание целевой базы, таблицы измерений и фактов, выгрузка DDL
package schema

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/LilVoxy/coursework_dwh/config"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// DDL таблиц звёздной схемы. Ключи измерений не автоинкрементные:
// они приходят из источников или присваиваются при трансформации.
// Суррогатный ключ фактов присваивает база данных
var tableDDL = []struct {
	Name string
	DDL  string
}{
	{
		Name: "dimension_customers",
		DDL: `CREATE TABLE dimension_customers (
	customer_id INTEGER NOT NULL,
	name VARCHAR(255),
	city VARCHAR(100),
	province VARCHAR(100),
	region VARCHAR(100),
	customer_type VARCHAR(100),
	age_bracket VARCHAR(50),
	PRIMARY KEY (customer_id)
)`,
	},
	{
		Name: "dimension_employees",
		DDL: `CREATE TABLE dimension_employees (
	employee_id INTEGER NOT NULL,
	name VARCHAR(255),
	gender VARCHAR(50),
	tenure_years INTEGER,
	birth_date DATE,
	tenure_zone VARCHAR(55),
	PRIMARY KEY (employee_id)
)`,
	},
	{
		Name: "dimension_products",
		DDL: `CREATE TABLE dimension_products (
	product_id INTEGER NOT NULL,
	description VARCHAR(255),
	container_type VARCHAR(50),
	volume_liters FLOAT,
	beverage_type VARCHAR(50),
	PRIMARY KEY (product_id)
)`,
	},
	{
		Name: "dimension_time",
		DDL: `CREATE TABLE dimension_time (
	time_id INTEGER NOT NULL,
	full_date DATE,
	day INTEGER,
	month INTEGER,
	quarter INTEGER,
	year INTEGER,
	PRIMARY KEY (time_id)
)`,
	},
	{
		Name: "fact_sales",
		DDL: `CREATE TABLE fact_sales (
	sale_id INTEGER NOT NULL AUTO_INCREMENT,
	time_id INTEGER,
	customer_id INTEGER,
	employee_id INTEGER,
	product_id INTEGER,
	quantity INTEGER,
	price FLOAT,
	PRIMARY KEY (sale_id),
	FOREIGN KEY (time_id) REFERENCES dimension_time (time_id),
	FOREIGN KEY (customer_id) REFERENCES dimension_customers (customer_id),
	FOREIGN KEY (employee_id) REFERENCES dimension_employees (employee_id),
	FOREIGN KEY (product_id) REFERENCES dimension_products (product_id)
)`,
	},
}

// EnsureDatabase создает целевую базу данных хранилища, если она
// не существует. Очистку содержимого перед загрузкой выполняет
// пересоздание таблиц (DropTables + CreateTables)
func EnsureDatabase(cfg config.ETLConfig, logger *utils.ETLLogger) error {
	db, err := sql.Open(cfg.DWHConfig.Driver, cfg.DWHConfig.ServerDSN())
	if err != nil {
		return fmt.Errorf("ошибка подключения к серверу баз данных: %w", err)
	}
	defer db.Close()

	name := cfg.DWHConfig.DBName

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", name)); err != nil {
		return fmt.Errorf("ошибка создания базы данных %s: %w", name, err)
	}
	logger.Info("База данных %q готова", name)

	return nil
}

// DropTables удаляет таблицы звёздной схемы, если они существуют.
// Таблица фактов удаляется первой из-за внешних ключей на измерения
func DropTables(db *sql.DB, logger *utils.ETLLogger) error {
	for i := len(tableDDL) - 1; i >= 0; i-- {
		name := tableDDL[i].Name
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", name)); err != nil {
			return fmt.Errorf("ошибка удаления таблицы %s: %w", name, err)
		}
		logger.Debug("Таблица %s удалена, если существовала", name)
	}
	return nil
}

// CreateTables создает таблицы звёздной схемы в хранилище
func CreateTables(db *sql.DB, logger *utils.ETLLogger) error {
	for _, table := range tableDDL {
		if _, err := db.Exec(table.DDL); err != nil {
			return fmt.Errorf("ошибка создания таблицы %s: %w", table.Name, err)
		}
		logger.Debug("Таблица %s создана", table.Name)
	}

	logger.Info("Таблицы звёздной схемы созданы в хранилище")
	return nil
}

// WriteDDLFile записывает сгенерированный DDL схемы в файл
func WriteDDLFile(path string, logger *utils.ETLLogger) error {
	var builder strings.Builder
	for _, table := range tableDDL {
		builder.WriteString(table.DDL)
		builder.WriteString(";\n\n")
	}

	if err := os.WriteFile(path, []byte(builder.String()), 0666); err != nil {
		return fmt.Errorf("ошибка записи файла схемы %s: %w", path, err)
	}

	logger.Info("DDL схемы сохранён в %s", path)
	return nil
}
