package extractors

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ProductExtractor извлекает каталог продуктов из pipe-разделённого файла
type ProductExtractor struct {
	dataDir string
	logger  *utils.ETLLogger
}

// NewProductExtractor создает новый экземпляр ProductExtractor
func NewProductExtractor(dataDir string, logger *utils.ETLLogger) *ProductExtractor {
	return &ProductExtractor{
		dataDir: dataDir,
		logger:  logger,
	}
}

// ExtractProducts читает Products.txt (без заголовка, колонки:
// id|описание|дескриптор упаковки) и возвращает строки каталога
func (e *ProductExtractor) ExtractProducts() ([]models.ProductRecord, error) {
	sourcePath := filepath.Join(e.dataDir, "Products.txt")
	e.logger.Debug("Начало извлечения каталога продуктов из %s", sourcePath)

	file, err := os.Open(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &models.SourceNotFoundError{Source: sourcePath, Err: err}
		}
		return nil, fmt.Errorf("ошибка открытия каталога продуктов: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '|'
	reader.FieldsPerRecord = 3

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &models.ParseError{Source: sourcePath, Err: err}
	}

	products := make([]models.ProductRecord, 0, len(rows))
	for _, row := range rows {
		products = append(products, models.ProductRecord{
			ProductID:   row[0],
			Description: row[1],
			Package:     row[2],
		})
	}

	e.logger.Debug("Извлечено %d продуктов", len(products))
	return products, nil
}
