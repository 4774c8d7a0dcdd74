package config

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// DBConnections содержит подключения к базам данных
type DBConnections struct {
	SourceDB *sql.DB
	DWHDB    *sql.DB
}

// DSN возвращает строку подключения для базы данных
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// ServerDSN возвращает строку подключения к серверу без указания базы данных.
// Используется для пересоздания целевой базы
func (c DatabaseConfig) ServerDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/", c.User, c.Password, c.Host, c.Port)
}

// ConnectDatabases устанавливает подключения к исходной базе и к хранилищу
func ConnectDatabases(config ETLConfig) (*DBConnections, error) {
	var connections DBConnections
	var err error

	// Подключение к исходной базе данных (биллинг)
	connections.SourceDB, err = sql.Open(config.SourceConfig.Driver, config.SourceConfig.DSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к исходной базе данных: %w", err)
	}

	// Настройка параметров подключения к исходной базе
	connections.SourceDB.SetMaxOpenConns(10)
	connections.SourceDB.SetMaxIdleConns(5)
	connections.SourceDB.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения к исходной базе
	if err := connections.SourceDB.Ping(); err != nil {
		return nil, fmt.Errorf("не удалось установить соединение с исходной базой данных: %w", err)
	}

	// Подключение к хранилищу (целевая база)
	connections.DWHDB, err = sql.Open(config.DWHConfig.Driver, config.DWHConfig.DSN())
	if err != nil {
		// Закрываем первое подключение при ошибке
		connections.SourceDB.Close()
		return nil, fmt.Errorf("ошибка подключения к хранилищу: %w", err)
	}

	// Настройка параметров подключения к хранилищу
	connections.DWHDB.SetMaxOpenConns(10)
	connections.DWHDB.SetMaxIdleConns(5)
	connections.DWHDB.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения к хранилищу
	if err := connections.DWHDB.Ping(); err != nil {
		// Закрываем оба подключения при ошибке
		connections.SourceDB.Close()
		connections.DWHDB.Close()
		return nil, fmt.Errorf("не удалось установить соединение с хранилищем: %w", err)
	}

	log.Println("Успешное подключение к исходной базе данных и хранилищу")
	return &connections, nil
}

// CloseDatabases закрывает подключения к базам данных
func CloseDatabases(connections *DBConnections) {
	if connections.SourceDB != nil {
		if err := connections.SourceDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии соединения с исходной базой данных: %v", err)
		}
	}

	if connections.DWHDB != nil {
		if err := connections.DWHDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии соединения с хранилищем: %v", err)
		}
	}

	log.Println("Соединения с базами данных закрыты")
}
