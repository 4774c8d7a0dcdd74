package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// DimensionLoader отвечает за загрузку таблиц измерений в хранилище.
// Загрузка строго добавляющая: предполагается, что целевые таблицы
// только что созданы и пусты
type DimensionLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewDimensionLoader создает новый экземпляр DimensionLoader
func NewDimensionLoader(db *sql.DB, logger *utils.ETLLogger) *DimensionLoader {
	return &DimensionLoader{
		db:     db,
		logger: logger,
	}
}

// LoadCustomers загружает измерение клиентов
func (l *DimensionLoader) LoadCustomers(customers []models.CustomerDimension) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения клиентов (всего: %d)", len(customers))

	query := `
		INSERT INTO dimension_customers
		(customer_id, name, city, province, region, customer_type, age_bracket)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	err := l.withTransaction(query, len(customers), func(stmt *sql.Stmt) error {
		for _, customer := range customers {
			_, err := stmt.Exec(
				customer.ID,
				customer.Name,
				customer.City,
				customer.Province,
				nullableString(customer.Region),
				customer.CustomerType,
				customer.AgeBracket,
			)
			if err != nil {
				return fmt.Errorf("клиент %d: %w", customer.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ошибка загрузки измерения клиентов: %w", err)
	}

	l.logger.Info("Загрузка измерения клиентов завершена. Длительность: %v", time.Since(startTime))
	return nil
}

// LoadEmployees загружает измерение сотрудников
func (l *DimensionLoader) LoadEmployees(employees []models.EmployeeDimension) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения сотрудников (всего: %d)", len(employees))

	query := `
		INSERT INTO dimension_employees
		(employee_id, name, gender, tenure_years, birth_date, tenure_zone)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	err := l.withTransaction(query, len(employees), func(stmt *sql.Stmt) error {
		for _, employee := range employees {
			_, err := stmt.Exec(
				employee.ID,
				employee.Name,
				employee.Gender,
				employee.TenureYears,
				nullableDate(employee.BirthDate),
				nullableString(employee.TenureZone),
			)
			if err != nil {
				return fmt.Errorf("сотрудник %d: %w", employee.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ошибка загрузки измерения сотрудников: %w", err)
	}

	l.logger.Info("Загрузка измерения сотрудников завершена. Длительность: %v", time.Since(startTime))
	return nil
}

// LoadProducts загружает измерение продуктов
func (l *DimensionLoader) LoadProducts(products []models.ProductDimension) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения продуктов (всего: %d)", len(products))

	query := `
		INSERT INTO dimension_products
		(product_id, description, container_type, volume_liters, beverage_type)
		VALUES (?, ?, ?, ?, ?)
	`

	err := l.withTransaction(query, len(products), func(stmt *sql.Stmt) error {
		for _, product := range products {
			_, err := stmt.Exec(
				product.ID,
				product.Description,
				product.Container,
				product.VolumeLiters,
				product.BeverageType,
			)
			if err != nil {
				return fmt.Errorf("продукт %d: %w", product.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ошибка загрузки измерения продуктов: %w", err)
	}

	l.logger.Info("Загрузка измерения продуктов завершена. Длительность: %v", time.Since(startTime))
	return nil
}

// LoadTime загружает временное измерение
func (l *DimensionLoader) LoadTime(timeRows []models.TimeDimension) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки временного измерения (всего: %d)", len(timeRows))

	query := `
		INSERT INTO dimension_time
		(time_id, full_date, day, month, quarter, year)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	err := l.withTransaction(query, len(timeRows), func(stmt *sql.Stmt) error {
		for _, row := range timeRows {
			_, err := stmt.Exec(
				row.ID,
				row.Date.Format("2006-01-02"),
				row.Day,
				row.Month,
				row.Quarter,
				row.Year,
			)
			if err != nil {
				return fmt.Errorf("запись времени %d: %w", row.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ошибка загрузки временного измерения: %w", err)
	}

	l.logger.Info("Загрузка временного измерения завершена. Длительность: %v", time.Since(startTime))
	return nil
}

// withTransaction выполняет вставку строк в транзакции
// через подготовленный запрос
func (l *DimensionLoader) withTransaction(query string, total int, insert func(*sql.Stmt) error) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	stmt, err := tx.Prepare(query)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	if err := insert(stmt); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Debug("Вставлено %d строк", total)
	return nil
}

// nullableString преобразует пустую строку в NULL при вставке
func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

// nullableDate форматирует дату в канонический вид YYYY-MM-DD,
// сохраняя NULL для неопределённых дат
func nullableDate(value sql.NullTime) sql.NullString {
	if !value.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: value.Time.Format("2006-01-02"), Valid: true}
}
