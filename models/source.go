package models

// RegionRecord представляет строку справочника регионов (Regions.txt)
// Значения STATE и CITY на этом этапе ещё не нормализованы
type RegionRecord struct {
	Region  string
	State   string
	City    string
	Zipcode string
}

// CustomerRecord представляет запись о клиенте из XML-источника
type CustomerRecord struct {
	CustomerID string `xml:"CUSTOMER_ID"`
	FullName   string `xml:"FULL_NAME"`
	City       string `xml:"CITY"`
	State      string `xml:"STATE"`
	BirthDate  string `xml:"BIRTH_DATE"`
}

// EmployeeRecord представляет строку из реестра сотрудников (Employee.xlsx)
type EmployeeRecord struct {
	EmployeeID     string
	FullName       string
	Gender         string
	EmploymentDate string
	BirthDate      string
}

// ProductRecord представляет строку каталога продуктов (Products.txt)
// Package хранит исходный дескриптор упаковки вида "<число> <единица>"
type ProductRecord struct {
	ProductID   string
	Description string
	Package     string
}

// BillingRow представляет строку объединённого запроса
// billing ⋈ billing_detail ⋈ prices из исходной базы данных
type BillingRow struct {
	BillingID  int
	Region     string
	BranchID   int
	Date       string
	CustomerID int
	EmployeeID int
	ProductID  int
	Quantity   int
	PriceDate  string
	Price      float64
}

// ExtractedData содержит данные, извлечённые из всех источников
type ExtractedData struct {
	Regions            []RegionRecord
	RetailCustomers    []CustomerRecord
	WholesaleCustomers []CustomerRecord
	Employees          []EmployeeRecord
	Products           []ProductRecord
	Billing            []BillingRow
}
