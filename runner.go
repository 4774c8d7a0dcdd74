package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/LilVoxy/coursework_dwh/config"
	"github.com/LilVoxy/coursework_dwh/dump"
	"github.com/LilVoxy/coursework_dwh/export"
	"github.com/LilVoxy/coursework_dwh/extractors"
	"github.com/LilVoxy/coursework_dwh/load"
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/schema"
	"github.com/LilVoxy/coursework_dwh/transform"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/fatih/color"
	"github.com/go-co-op/gocron"
	"github.com/olekukonko/tablewriter"
)

// ETLRunner связывает фазы ETL-процесса: извлечение, преобразование,
// выгрузку CSV и загрузку в хранилище
type ETLRunner struct {
	config        config.ETLConfig
	dbConnections *config.DBConnections
	logger        *utils.ETLLogger
	extractor     *extractors.Extractor
	loadManager   *load.Manager
}

// NewETLRunner создает новый экземпляр ETLRunner
func NewETLRunner(etlConfig config.ETLConfig) (*ETLRunner, error) {
	// Инициализируем логгер
	logger := utils.NewETLLogger(etlConfig.EnableDetailedLogging)
	logger.Info("Инициализация ETL Runner")

	// Создаем целевую базу данных хранилища, если её ещё нет
	if err := schema.EnsureDatabase(etlConfig, logger); err != nil {
		return nil, fmt.Errorf("ошибка создания базы данных хранилища: %w", err)
	}

	// Подключаемся к базам данных
	connections, err := config.ConnectDatabases(etlConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базам данных: %w", err)
	}

	return &ETLRunner{
		config:        etlConfig,
		dbConnections: connections,
		logger:        logger,
		extractor:     extractors.NewExtractor(connections.SourceDB, etlConfig.DataDir, logger),
		loadManager:   load.NewManager(connections.DWHDB, logger),
	}, nil
}

// Close закрывает соединения с базами данных
func (r *ETLRunner) Close() {
	r.logger.Info("Завершение работы ETL Runner")
	config.CloseDatabases(r.dbConnections)
}

// ExecuteETL выполняет полный ETL-процесс: создание схемы хранилища,
// извлечение, преобразование, выгрузку CSV и загрузку.
// Каждый запуск — полная перезагрузка хранилища
func (r *ETLRunner) ExecuteETL() error {
	r.logger.LogETLStart()
	startTime := time.Now()

	// 1. Пересоздаем таблицы звёздной схемы и сохраняем DDL.
	// Загрузка строго добавляющая, поэтому перед ней таблицы
	// должны быть пустыми
	if err := schema.DropTables(r.dbConnections.DWHDB, r.logger); err != nil {
		r.logger.Error("Ошибка при удалении таблиц хранилища: %v", err)
		return fmt.Errorf("ошибка удаления таблиц хранилища: %w", err)
	}
	if err := schema.CreateTables(r.dbConnections.DWHDB, r.logger); err != nil {
		r.logger.Error("Ошибка при создании схемы хранилища: %v", err)
		return fmt.Errorf("ошибка создания схемы хранилища: %w", err)
	}
	if err := schema.WriteDDLFile(r.config.SchemaFile, r.logger); err != nil {
		r.logger.Error("Ошибка при сохранении DDL: %v", err)
		return fmt.Errorf("ошибка сохранения DDL: %w", err)
	}

	// 2. Фаза извлечения данных (Extract)
	extractedData, err := r.extractor.Extract()
	if err != nil {
		r.logger.Error("Ошибка в фазе Extract: %v", err)
		return fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	// 3. Фаза преобразования данных (Transform)
	transformer := transform.NewTransformer(r.logger, time.Now())
	star, err := transformer.Transform(extractedData)
	if err != nil {
		r.logger.Error("Ошибка в фазе Transform: %v", err)
		return fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	// 4. Выгружаем таблицы в CSV
	exporter := export.NewExporter(r.config.OutputDir, r.logger)
	if err := exporter.ExportAll(star); err != nil {
		r.logger.Error("Ошибка при выгрузке CSV: %v", err)
		return fmt.Errorf("ошибка при выгрузке CSV: %w", err)
	}

	// 5. Фаза загрузки данных (Load)
	if err := r.loadManager.Load(star); err != nil {
		r.logger.Error("Ошибка в фазе Load: %v", err)
		return fmt.Errorf("ошибка в фазе Load: %w", err)
	}

	r.logger.LogETLComplete(startTime,
		len(star.Customers), len(star.Employees), len(star.Products),
		len(star.Time), len(star.Sales))

	r.printSummary(star, time.Since(startTime))
	return nil
}

// printSummary выводит итоговую сводку запуска в терминал
func (r *ETLRunner) printSummary(star *models.StarSchema, duration time.Duration) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Таблица", "Строк"})
	table.Append([]string{"dimension_customers", strconv.Itoa(len(star.Customers))})
	table.Append([]string{"dimension_employees", strconv.Itoa(len(star.Employees))})
	table.Append([]string{"dimension_products", strconv.Itoa(len(star.Products))})
	table.Append([]string{"dimension_time", strconv.Itoa(len(star.Time))})
	table.Append([]string{"fact_sales", strconv.Itoa(len(star.Sales))})
	table.Render()

	if star.Metadata.RegionMisses > 0 {
		color.Yellow("Регион не найден для %d клиентов", star.Metadata.RegionMisses)
	}
	if star.Metadata.DroppedFactRows > 0 {
		color.Yellow("Отброшено строк биллинга без корректной даты: %d", star.Metadata.DroppedFactRows)
	}
	color.Green("ETL-процесс завершён за %v", duration)
}

// CreateDump снимает дамп хранилища внешней утилитой mysqldump
func (r *ETLRunner) CreateDump() error {
	return dump.CreateDump(r.config.DWHConfig, r.config.DumpFile, r.logger)
}

// StartScheduler запускает планировщик для регулярного выполнения ETL
func (r *ETLRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика ETL с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск ETL процесса")
		if err := r.ExecuteETL(); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного ETL: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик ETL остановлен")
}
