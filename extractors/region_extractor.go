package extractors

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Синтетический заголовок для Regions.txt (файл поставляется без заголовка)
var regionHeader = []string{"REGION", "STATE", "CITY", "ZIPCODE"}

// RegionExtractor извлекает справочник регионов из pipe-разделённого файла
type RegionExtractor struct {
	dataDir string
	logger  *utils.ETLLogger
}

// NewRegionExtractor создает новый экземпляр RegionExtractor
func NewRegionExtractor(dataDir string, logger *utils.ETLLogger) *RegionExtractor {
	return &RegionExtractor{
		dataDir: dataDir,
		logger:  logger,
	}
}

// ExtractRegions читает Regions.txt, разбирает его с синтетическим заголовком
// и сохраняет промежуточный артефакт Regions.csv (через запятую)
// для повторного использования при обработке клиентов
func (e *RegionExtractor) ExtractRegions() ([]models.RegionRecord, error) {
	sourcePath := filepath.Join(e.dataDir, "Regions.txt")
	e.logger.Debug("Начало извлечения справочника регионов из %s", sourcePath)

	file, err := os.Open(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &models.SourceNotFoundError{Source: sourcePath, Err: err}
		}
		return nil, fmt.Errorf("ошибка открытия файла регионов: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '|'

	// Количество полей фиксируется по заголовку: строки с другим
	// количеством полей считаются ошибкой разбора
	reader.FieldsPerRecord = len(regionHeader)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &models.ParseError{Source: sourcePath, Err: err}
	}

	regions := make([]models.RegionRecord, 0, len(rows))
	for _, row := range rows {
		regions = append(regions, models.RegionRecord{
			Region:  row[0],
			State:   row[1],
			City:    row[2],
			Zipcode: row[3],
		})
	}

	// Сохраняем артефакт Regions.csv с заголовком
	if err := e.writeCSVArtifact(regions); err != nil {
		return nil, err
	}

	e.logger.Debug("Извлечено %d записей справочника регионов", len(regions))
	return regions, nil
}

// writeCSVArtifact записывает разобранный справочник в Regions.csv
func (e *RegionExtractor) writeCSVArtifact(regions []models.RegionRecord) error {
	targetPath := filepath.Join(e.dataDir, "Regions.csv")

	file, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("ошибка создания файла %s: %w", targetPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(regionHeader); err != nil {
		return fmt.Errorf("ошибка записи заголовка в %s: %w", targetPath, err)
	}

	for _, region := range regions {
		row := []string{region.Region, region.State, region.City, region.Zipcode}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("ошибка записи строки в %s: %w", targetPath, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", targetPath, err)
	}

	e.logger.Info("Конвертация Regions.txt в Regions.csv завершена")
	return nil
}
