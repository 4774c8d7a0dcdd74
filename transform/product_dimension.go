package transform

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Типы тары
const (
	ContainerCan    = "Can"
	ContainerBottle = "Bottle"
)

// beverageRule связывает ключевое слово описания с категорией напитка
type beverageRule struct {
	keyword  string
	category string
}

// Упорядоченный список правил классификации напитков.
// Порядок значим: описание может содержать несколько ключевых слов
// (например, "Diet Soda" должно классифицироваться как "diet"),
// выигрывает первое совпавшее правило
var beverageRules = []beverageRule{
	{"diet", "diet"},
	{"caffeine", "caffeinated"},
	{"energy", "energy"},
	{"kool", "kool"},
	{"root", "root"},
	{"juice", "juice"},
	{"soda", "soda"},
}

// Категория по умолчанию, когда ни одно правило не совпало
const beverageOther = "other"

// ProductProcessor отвечает за конформацию измерения продуктов
type ProductProcessor struct {
	logger *utils.ETLLogger
}

// NewProductProcessor создает новый экземпляр ProductProcessor
func NewProductProcessor(logger *utils.ETLLogger) *ProductProcessor {
	return &ProductProcessor{logger: logger}
}

// ProcessProductDimension преобразует каталог продуктов в измерение
func (p *ProductProcessor) ProcessProductDimension(records []models.ProductRecord) []models.ProductDimension {
	p.logger.Debug("Обработка измерения продуктов...")

	products := make([]models.ProductDimension, 0, len(records))
	for _, record := range records {
		products = append(products, p.conformProduct(record))
	}

	p.logger.Debug("Сформировано %d записей измерения продуктов", len(products))
	return products
}

// conformProduct преобразует одну строку каталога в запись измерения
func (p *ProductProcessor) conformProduct(record models.ProductRecord) models.ProductDimension {
	id, err := strconv.Atoi(strings.TrimSpace(record.ProductID))
	if err != nil {
		p.logger.Warn("Нечисловой идентификатор продукта %q", record.ProductID)
	}

	volume := parseVolume(record.Package)
	if !volume.Valid {
		p.logger.Warn("Не удалось определить объём продукта %q по дескриптору %q",
			record.ProductID, record.Package)
	}

	return models.ProductDimension{
		ID:           id,
		Description:  strings.TrimSpace(record.Description),
		Container:    containerType(record.Package),
		VolumeLiters: volume,
		BeverageType: classifyBeverage(record.Description),
	}
}

// containerType определяет тип тары по дескриптору упаковки:
// подстрока "can" без учёта регистра означает банку, иначе бутылка
func containerType(pkg string) string {
	if strings.Contains(strings.ToLower(pkg), "can") {
		return ContainerCan
	}
	return ContainerBottle
}

// parseVolume разбирает дескриптор вида "<число> <единица>" и нормализует
// объём в литры: "Liter" берётся как есть, "cm3" делится на 1000,
// прочие единицы оставляют объём неопределённым (это не ошибка)
func parseVolume(pkg string) sql.NullFloat64 {
	fields := strings.Fields(strings.TrimSpace(pkg))
	if len(fields) < 2 {
		return sql.NullFloat64{}
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return sql.NullFloat64{}
	}

	switch fields[1] {
	case "Liter":
		return sql.NullFloat64{Float64: value, Valid: true}
	case "cm3":
		return sql.NullFloat64{Float64: value / 1000, Valid: true}
	}

	return sql.NullFloat64{}
}

// classifyBeverage классифицирует напиток по упорядоченному списку правил:
// сверху вниз, выигрывает первое совпадение, без совпадений — "other"
func classifyBeverage(description string) string {
	description = strings.ToLower(description)
	for _, rule := range beverageRules {
		if strings.Contains(description, rule.keyword) {
			return rule.category
		}
	}
	return beverageOther
}
