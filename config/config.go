package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ETLConfig содержит конфигурацию для ETL-процесса
type ETLConfig struct {
	// Конфигурация для подключения к исходной БД (биллинг)
	SourceConfig DatabaseConfig `yaml:"source_db"`

	// Конфигурация для подключения к целевой БД (хранилище)
	DWHConfig DatabaseConfig `yaml:"dwh_db"`

	// Каталог с файловыми источниками (Regions.txt, Customer_R.xml и т.д.)
	DataDir string `yaml:"data_dir"`

	// Каталог для выгрузки CSV-файлов измерений и фактов
	OutputDir string `yaml:"output_dir"`

	// Файл, в который записывается сгенерированный DDL хранилища
	SchemaFile string `yaml:"schema_file"`

	// Файл, в который записывается дамп хранилища (mysqldump)
	DumpFile string `yaml:"dump_file"`

	// Интервал запуска ETL в режиме scheduled
	RunInterval time.Duration `yaml:"run_interval"`

	// Включение/отключение детального логирования
	EnableDetailedLogging bool `yaml:"enable_detailed_logging"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// Значения конфигурации по умолчанию
var (
	DefaultSourceConfig = DatabaseConfig{
		Driver: "mysql",
		Host:   "localhost",
		Port:   3306,
		User:   "root",
		DBName: "beverage_sales",
	}

	DefaultDWHConfig = DatabaseConfig{
		Driver: "mysql",
		Host:   "localhost",
		Port:   3306,
		User:   "root",
		DBName: "sales_dwh",
	}

	DefaultETLConfig = ETLConfig{
		SourceConfig:          DefaultSourceConfig,
		DWHConfig:             DefaultDWHConfig,
		DataDir:               "data",
		OutputDir:             ".",
		SchemaFile:            "schema.sql",
		DumpFile:              "etl_dump.sql",
		RunInterval:           24 * time.Hour,
		EnableDetailedLogging: true,
	}
)

// GetConfig возвращает конфигурацию ETL.
// Значения по умолчанию переопределяются переменными окружения
// (в том числе из файла .env, если он присутствует)
func GetConfig() ETLConfig {
	config := DefaultETLConfig

	// .env не обязателен, его отсутствие не является ошибкой
	_ = godotenv.Load()

	applyEnvOverrides(&config)

	return config
}

// LoadConfigFile загружает конфигурацию из YAML-файла поверх значений
// по умолчанию; переменные окружения имеют приоритет над файлом
func LoadConfigFile(path string) (ETLConfig, error) {
	config := DefaultETLConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("ошибка чтения файла конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("ошибка разбора файла конфигурации %s: %w", path, err)
	}

	_ = godotenv.Load()
	applyEnvOverrides(&config)

	return config, nil
}

// applyEnvOverrides переопределяет настройки подключения переменными окружения
func applyEnvOverrides(config *ETLConfig) {
	if v := os.Getenv("DB_USER"); v != "" {
		config.SourceConfig.User = v
		config.DWHConfig.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		config.SourceConfig.Password = v
		config.DWHConfig.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		config.SourceConfig.Host = v
		config.DWHConfig.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.SourceConfig.Port = port
			config.DWHConfig.Port = port
		}
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		config.SourceConfig.DBName = v
	}
	if v := os.Getenv("DWH_NAME"); v != "" {
		config.DWHConfig.DBName = v
	}
}
