// Пакет store реализует хранилище заказов поверх xlsx-книги.
// Одна строка листа — один заказ; колонки фиксированы (constants.SheetHeaders).
package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"jokibot/internal/constants"
)

// OrderStore — интерфейс хранилища заказов, который видят обработчики.
type OrderStore interface {
	// Upsert обновляет строку с данным OrderId (перезаписывая только
	// присутствующие в rec колонки) либо вставляет новую.
	Upsert(orderID string, rec map[string]string) error
}

// SheetStore — реализация OrderStore на excelize. Доступ к файлу
// сериализуется мьютексом: книга перечитывается и сохраняется целиком.
type SheetStore struct {
	path  string
	sheet string
	mu    sync.Mutex
}

// NewSheetStore открывает (или создает) книгу заказов и гарантирует,
// что лист существует и первая строка содержит заголовок.
func NewSheetStore(path, sheet string) (*SheetStore, error) {
	s := &SheetStore{path: path, sheet: sheet}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureFile создает каталог, книгу и строку заголовка, если их еще нет.
func (s *SheetStore) ensureFile() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("не удалось создать каталог для книги заказов: %w", err)
	}

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return fmt.Errorf("не удалось прочитать лист '%s': %w", s.sheet, err)
	}
	if len(rows) > 0 {
		return nil
	}

	for i, header := range constants.SheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(s.sheet, cell, header); err != nil {
			return fmt.Errorf("не удалось записать заголовок '%s': %w", header, err)
		}
	}
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("не удалось сохранить книгу заказов: %w", err)
	}
	log.Printf("SheetStore: создана книга заказов %s (лист '%s').", s.path, s.sheet)
	return nil
}

// open открывает существующую книгу или готовит новую с нужным листом.
func (s *SheetStore) open() (*excelize.File, error) {
	if _, err := os.Stat(s.path); err == nil {
		f, errOpen := excelize.OpenFile(s.path)
		if errOpen != nil {
			return nil, fmt.Errorf("не удалось открыть книгу заказов %s: %w", s.path, errOpen)
		}
		if idx, _ := f.GetSheetIndex(s.sheet); idx < 0 {
			if _, errNew := f.NewSheet(s.sheet); errNew != nil {
				f.Close()
				return nil, fmt.Errorf("не удалось создать лист '%s': %w", s.sheet, errNew)
			}
		}
		return f, nil
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(s.sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("не удалось создать лист '%s': %w", s.sheet, err)
	}
	f.SetActiveSheet(index)
	// Лист по умолчанию не нужен, если он не совпадает с рабочим.
	if s.sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}
	return f, nil
}

// FindRowByOrderID возвращает номер строки (1-based) с данным OrderId
// или 0, если такой строки нет. Сравнение — по обрезанному значению.
func (s *SheetStore) FindRowByOrderID(orderID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.open()
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return s.findRow(f, orderID)
}

func (s *SheetStore) findRow(f *excelize.File, orderID string) (int, error) {
	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return 0, fmt.Errorf("не удалось прочитать лист '%s': %w", s.sheet, err)
	}
	col := headerIndex("OrderId")
	for i := 1; i < len(rows); i++ { // Строка 0 — заголовок
		if col < len(rows[i]) && strings.TrimSpace(rows[i][col]) == strings.TrimSpace(orderID) {
			return i + 1, nil
		}
	}
	return 0, nil
}

// Upsert реализует семантику анкеты: существующая строка обновляется
// только по присутствующим в rec колонкам, отсутствующая — вставляется.
func (s *SheetStore) Upsert(orderID string, rec map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	row, err := s.findRow(f, orderID)
	if err != nil {
		return err
	}
	if row == 0 {
		rows, errRows := f.GetRows(s.sheet)
		if errRows != nil {
			return fmt.Errorf("не удалось прочитать лист '%s': %w", s.sheet, errRows)
		}
		row = len(rows) + 1
		log.Printf("SheetStore.Upsert: заказ %s не найден, вставка в строку %d.", orderID, row)
	} else {
		log.Printf("SheetStore.Upsert: заказ %s найден в строке %d, обновление.", orderID, row)
	}

	for i, header := range constants.SheetHeaders {
		value, ok := rec[header]
		if !ok {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(s.sheet, cell, value); err != nil {
			return fmt.Errorf("не удалось записать колонку '%s' заказа %s: %w", header, orderID, err)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("не удалось сохранить книгу заказов: %w", err)
	}
	return nil
}

// GetRow возвращает строку заказа в виде карты "колонка -> значение".
// Вторая величина — признак, что строка найдена.
func (s *SheetStore) GetRow(orderID string) (map[string]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	row, err := s.findRow(f, orderID)
	if err != nil || row == 0 {
		return nil, false, err
	}

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, false, fmt.Errorf("не удалось прочитать лист '%s': %w", s.sheet, err)
	}
	values := rows[row-1]
	rec := make(map[string]string)
	for i, header := range constants.SheetHeaders {
		if i < len(values) {
			rec[header] = values[i]
		}
	}
	return rec, true, nil
}

func headerIndex(name string) int {
	for i, h := range constants.SheetHeaders {
		if h == name {
			return i
		}
	}
	return -1
}
