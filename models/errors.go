package models

import "fmt"

// SchemaError означает отсутствие обязательной колонки во входных данных.
// Ошибка фатальна для этапа, который её обнаружил
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("источник %q: отсутствует обязательная колонка %q", e.Source, e.Column)
}

// SourceNotFoundError означает, что файл или таблица-источник не найдены
type SourceNotFoundError struct {
	Source string
	Err    error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("источник %q не найден: %v", e.Source, e.Err)
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}

// ParseError означает, что источник имеет неразбираемую структуру
// (например, строки с разным количеством полей)
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ошибка разбора источника %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
