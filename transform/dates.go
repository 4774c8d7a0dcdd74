package transform

import (
	"fmt"
	"strings"
	"time"
)

// Форматы дат, встречающиеся в источниках
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
}

// parseDate пытается разобрать дату в одном из известных форматов
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("пустое значение даты")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("нераспознанный формат даты: %q", value)
}

// dateKey возвращает каноническое строковое представление даты,
// используемое как ключ соответствия дата → id_времени
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
