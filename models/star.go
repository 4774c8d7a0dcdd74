package models

import (
	"database/sql"
	"time"
)

// Типы клиентов
const (
	CustomerTypeRetail    = "retail"
	CustomerTypeWholesale = "wholesale"
)

// CustomerDimension представляет измерение клиентов в хранилище
type CustomerDimension struct {
	ID           int
	Name         string
	City         string
	Province     string
	Region       string // пустая строка, если регион не удалось определить
	CustomerType string // "retail" или "wholesale"
	AgeBracket   string // "under 20", "20 to 40", "40 to 60", "over 60", "unknown"
}

// EmployeeDimension представляет измерение сотрудников в хранилище
type EmployeeDimension struct {
	ID          int
	Name        string
	Gender      string
	TenureYears sql.NullInt64 // NULL, если дату найма не удалось разобрать
	BirthDate   sql.NullTime
	TenureZone  string // "new", "mid", "senior"
}

// ProductDimension представляет измерение продуктов в хранилище
type ProductDimension struct {
	ID           int
	Description  string
	Container    string // "Can" или "Bottle"
	VolumeLiters sql.NullFloat64 // NULL, если единица объёма не распознана
	BeverageType string
}

// TimeDimension представляет временное измерение в хранилище
// Суррогатный ключ ID присваивается последовательно с 1 в рамках одного запуска
type TimeDimension struct {
	ID      int
	Date    time.Time
	Day     int
	Month   int
	Quarter int
	Year    int
}

// SalesFact представляет факт продажи в хранилище
type SalesFact struct {
	TimeID     int
	CustomerID int
	EmployeeID int
	ProductID  int
	Quantity   int
	Price      float64
}

// ETLMetadata содержит метаданные о запуске ETL
type ETLMetadata struct {
	RunTimestamp    time.Time
	RegionMisses    int
	NullWarnings    int
	DroppedFactRows int
}

// StarSchema содержит полный набор трансформированных таблиц для загрузки
type StarSchema struct {
	Customers []CustomerDimension
	Employees []EmployeeDimension
	Products  []ProductDimension
	Time      []TimeDimension
	Sales     []SalesFact

	Metadata ETLMetadata
}
