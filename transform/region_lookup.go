package transform

import (
	"strings"

	"github.com/LilVoxy/coursework_dwh/models"
)

// RegionMiss описывает пару (город, штат), для которой регион не найден
type RegionMiss struct {
	City  string
	State string
}

// RegionLookup предоставляет поиск региона по нормализованной паре
// (город, штат). Нормализация (нижний регистр, обрезка пробелов)
// критична для корректности соединения: она применяется и к справочнику,
// и к ключам поиска
type RegionLookup struct {
	regions map[string]string
	misses  []RegionMiss
}

// NewRegionLookup строит таблицу поиска по справочнику регионов.
// При дублировании пары (город, штат) выигрывает первое вхождение
func NewRegionLookup(records []models.RegionRecord) *RegionLookup {
	regions := make(map[string]string, len(records))
	for _, record := range records {
		key := lookupKey(record.City, record.State)
		if _, exists := regions[key]; !exists {
			regions[key] = strings.TrimSpace(record.Region)
		}
	}

	return &RegionLookup{regions: regions}
}

// Resolve возвращает регион для пары (город, штат).
// Промах не является ошибкой: он фиксируется для диагностики,
// а регион остаётся неопределённым
func (l *RegionLookup) Resolve(city, state string) (string, bool) {
	region, ok := l.regions[lookupKey(city, state)]
	if !ok {
		l.misses = append(l.misses, RegionMiss{
			City:  normalize(city),
			State: normalize(state),
		})
		return "", false
	}
	return region, true
}

// Misses возвращает зафиксированные промахи поиска региона
func (l *RegionLookup) Misses() []RegionMiss {
	return l.misses
}

// lookupKey строит нормализованный ключ поиска
func lookupKey(city, state string) string {
	return normalize(city) + "|" + normalize(state)
}

// normalize приводит значение к нижнему регистру и обрезает пробелы
func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
