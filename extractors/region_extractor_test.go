package extractors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSourceFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestExtractRegions(t *testing.T) {
	dataDir := t.TempDir()
	writeSourceFile(t, dataDir, "Regions.txt",
		"north|CA|Los Angeles|90001\nsouth|FL|Miami|33101\n")

	extractor := NewRegionExtractor(dataDir, utils.NewDiscardLogger())
	regions, err := extractor.ExtractRegions()
	require.NoError(t, err)

	require.Len(t, regions, 2)
	assert.Equal(t, models.RegionRecord{
		Region: "north", State: "CA", City: "Los Angeles", Zipcode: "90001",
	}, regions[0])

	// Промежуточный артефакт Regions.csv содержит синтетический заголовок
	artifact, err := os.ReadFile(filepath.Join(dataDir, "Regions.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"REGION,STATE,CITY,ZIPCODE\nnorth,CA,Los Angeles,90001\nsouth,FL,Miami,33101\n",
		string(artifact))
}

func TestExtractRegionsMissingFile(t *testing.T) {
	extractor := NewRegionExtractor(t.TempDir(), utils.NewDiscardLogger())

	_, err := extractor.ExtractRegions()
	var notFound *models.SourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Source, "Regions.txt")
}

func TestExtractRegionsMalformedRow(t *testing.T) {
	dataDir := t.TempDir()
	// Вторая строка содержит три поля вместо четырёх
	writeSourceFile(t, dataDir, "Regions.txt",
		"north|CA|Los Angeles|90001\nsouth|FL|Miami\n")

	extractor := NewRegionExtractor(dataDir, utils.NewDiscardLogger())

	_, err := extractor.ExtractRegions()
	var parseErr *models.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Source, "Regions.txt")
}

func TestExtractProducts(t *testing.T) {
	dataDir := t.TempDir()
	writeSourceFile(t, dataDir, "Products.txt",
		"1|Diet Cola|355 cm3 Can\n2|Root Beer|2 Liter\n")

	extractor := NewProductExtractor(dataDir, utils.NewDiscardLogger())
	products, err := extractor.ExtractProducts()
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, models.ProductRecord{
		ProductID: "1", Description: "Diet Cola", Package: "355 cm3 Can",
	}, products[0])
	assert.Equal(t, "2 Liter", products[1].Package)
}

func TestExtractProductsMalformedRow(t *testing.T) {
	dataDir := t.TempDir()
	writeSourceFile(t, dataDir, "Products.txt", "1|Diet Cola\n")

	extractor := NewProductExtractor(dataDir, utils.NewDiscardLogger())

	_, err := extractor.ExtractProducts()
	var parseErr *models.ParseError
	require.ErrorAs(t, err, &parseErr)
}
