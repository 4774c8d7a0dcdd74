package transform

import (
	"testing"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVolume(t *testing.T) {
	tests := []struct {
		pkg   string
		want  float64
		valid bool
	}{
		{"2 Liter", 2.0, true},
		{"500 cm3", 0.5, true},
		{"1 Gallon", 0, false},
		{"12 oz Can", 0, false},
		{"Liter", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			volume := parseVolume(tt.pkg)
			assert.Equal(t, tt.valid, volume.Valid)
			if tt.valid {
				assert.InDelta(t, tt.want, volume.Float64, 1e-9)
			}
		})
	}
}

func TestContainerType(t *testing.T) {
	assert.Equal(t, ContainerCan, containerType("12 oz Can"))
	assert.Equal(t, ContainerCan, containerType("330 cm3 CAN"))
	assert.Equal(t, ContainerBottle, containerType("2 Liter"))
	assert.Equal(t, ContainerBottle, containerType(""))
}

func TestClassifyBeverageRuleOrder(t *testing.T) {
	// Порядок правил значим: первое совпавшее правило выигрывает
	assert.Equal(t, "diet", classifyBeverage("Diet Soda"))
	assert.Equal(t, "energy", classifyBeverage("Energy Juice"))
	assert.Equal(t, "caffeinated", classifyBeverage("Caffeine Free Root Beer"))

	assert.Equal(t, "soda", classifyBeverage("Club Soda"))
	assert.Equal(t, "juice", classifyBeverage("Apple Juice"))
	assert.Equal(t, "root", classifyBeverage("Root Beer"))
	assert.Equal(t, "kool", classifyBeverage("Kool Drink"))
	assert.Equal(t, "other", classifyBeverage("Mineral Water"))
}

func TestProcessProductDimension(t *testing.T) {
	processor := NewProductProcessor(utils.NewDiscardLogger())

	records := []models.ProductRecord{
		{ProductID: " 1 ", Description: "Diet Cola ", Package: "355 cm3 Can"},
		{ProductID: "2", Description: "Spring Water", Package: "1 Gallon"},
	}

	products := processor.ProcessProductDimension(records)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Diet Cola", first.Description)
	assert.Equal(t, ContainerCan, first.Container)
	require.True(t, first.VolumeLiters.Valid)
	assert.InDelta(t, 0.355, first.VolumeLiters.Float64, 1e-9)
	assert.Equal(t, "diet", first.BeverageType)

	// Нераспознанная единица объёма оставляет объём неопределённым
	second := products[1]
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, ContainerBottle, second.Container)
	assert.False(t, second.VolumeLiters.Valid)
	assert.Equal(t, "other", second.BeverageType)
}
