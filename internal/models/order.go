package models

import "strconv"

// Order — черновик заказа, который собирается по одному полю за шаг диалога,
// а затем записывается строкой в таблицу заказов. Имена полей совпадают с
// колонками листа.
type Order struct {
	OrderID        string
	Nama           string
	Username       string
	Pembuatan      string
	Keperluan      string
	Teknologi      string
	Fitur          string
	Mockup         string
	Deadline       string
	AkunTiktok     string
	Status         string
	BuktiDP        string
	BuktiPelunasan string
	TelegramID     int64
}

// Record возвращает заказ в виде карты "колонка -> значение" для записи в
// таблицу. Пустые поля не включаются: при обновлении существующей строки
// перезаписываются только присутствующие в карте колонки.
func (o Order) Record() map[string]string {
	rec := make(map[string]string)
	put := func(key, value string) {
		if value != "" {
			rec[key] = value
		}
	}
	put("Nama", o.Nama)
	put("Username", o.Username)
	put("Pembuatan", o.Pembuatan)
	put("Keperluan", o.Keperluan)
	put("Teknologi", o.Teknologi)
	put("Fitur", o.Fitur)
	put("Mockup", o.Mockup)
	put("Deadline", o.Deadline)
	put("AkunTiktok", o.AkunTiktok)
	put("OrderId", o.OrderID)
	put("Status", o.Status)
	put("BuktiDP", o.BuktiDP)
	put("BuktiPelunasan", o.BuktiPelunasan)
	if o.TelegramID != 0 {
		rec["TelegramID"] = strconv.FormatInt(o.TelegramID, 10)
	}
	return rec
}
