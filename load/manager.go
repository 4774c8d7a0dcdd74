package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Manager отвечает за управление процессом загрузки звёздной схемы.
// Перед вставкой каждая таблица очищается от дубликатов по первому
// (естественному или суррогатному) ключу; пустые таблицы пропускаются
type Manager struct {
	db     *sql.DB
	logger *utils.ETLLogger
	loader Loader
}

// NewManager создает новый экземпляр Manager
func NewManager(db *sql.DB, logger *utils.ETLLogger) *Manager {
	return &Manager{
		db:     db,
		logger: logger,
		loader: NewDWHLoader(db, logger),
	}
}

// Load выполняет фазу загрузки данных ETL-процесса.
// Принимает звёздную схему, построенную на фазе Transform
func (m *Manager) Load(star *models.StarSchema) error {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Загрузка данных)")

	// 1. Загружаем измерение клиентов
	customers := dedupFirst(star.Customers, func(c models.CustomerDimension) int { return c.ID })
	if len(customers) > 0 {
		m.logger.Info("Загрузка измерения клиентов...")
		if err := m.loader.LoadCustomerDimension(customers); err != nil {
			m.logger.Error("Ошибка при загрузке измерения клиентов: %v", err)
			return fmt.Errorf("ошибка при загрузке измерения клиентов: %w", err)
		}
	} else {
		m.logger.Info("Измерение клиентов пусто, загрузка пропущена")
	}

	// 2. Загружаем измерение сотрудников
	employees := dedupFirst(star.Employees, func(e models.EmployeeDimension) int { return e.ID })
	if len(employees) > 0 {
		m.logger.Info("Загрузка измерения сотрудников...")
		if err := m.loader.LoadEmployeeDimension(employees); err != nil {
			m.logger.Error("Ошибка при загрузке измерения сотрудников: %v", err)
			return fmt.Errorf("ошибка при загрузке измерения сотрудников: %w", err)
		}
	} else {
		m.logger.Info("Измерение сотрудников пусто, загрузка пропущена")
	}

	// 3. Загружаем измерение продуктов
	products := dedupFirst(star.Products, func(p models.ProductDimension) int { return p.ID })
	if len(products) > 0 {
		m.logger.Info("Загрузка измерения продуктов...")
		if err := m.loader.LoadProductDimension(products); err != nil {
			m.logger.Error("Ошибка при загрузке измерения продуктов: %v", err)
			return fmt.Errorf("ошибка при загрузке измерения продуктов: %w", err)
		}
	} else {
		m.logger.Info("Измерение продуктов пусто, загрузка пропущена")
	}

	// 4. Загружаем временное измерение
	timeRows := dedupFirst(star.Time, func(t models.TimeDimension) int { return t.ID })
	if len(timeRows) > 0 {
		m.logger.Info("Загрузка временного измерения...")
		if err := m.loader.LoadTimeDimension(timeRows); err != nil {
			m.logger.Error("Ошибка при загрузке временного измерения: %v", err)
			return fmt.Errorf("ошибка при загрузке временного измерения: %w", err)
		}
	} else {
		m.logger.Info("Временное измерение пусто, загрузка пропущена")
	}

	// 5. Загружаем факты продаж. Как и для измерений, дубликаты
	// отбрасываются по первой ключевой колонке таблицы — id_времени
	facts := dedupFirst(star.Sales, func(f models.SalesFact) int { return f.TimeID })
	if len(facts) > 0 {
		m.logger.Info("Загрузка фактов продаж...")
		if err := m.loader.LoadSalesFacts(facts); err != nil {
			m.logger.Error("Ошибка при загрузке фактов продаж: %v", err)
			return fmt.Errorf("ошибка при загрузке фактов продаж: %w", err)
		}
	} else {
		m.logger.Info("Таблица фактов пуста, загрузка пропущена")
	}

	duration := time.Since(startTime)
	m.logger.Info("Фаза Load завершена. Длительность: %v", duration)

	return nil
}

// dedupFirst удаляет дубликаты по ключевой колонке,
// сохраняя первое вхождение каждой строки
func dedupFirst[T any](rows []T, key func(T) int) []T {
	seen := make(map[int]bool, len(rows))
	result := make([]T, 0, len(rows))

	for _, row := range rows {
		k := key(row)
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, row)
	}

	return result
}
