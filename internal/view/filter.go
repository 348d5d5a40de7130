package view

import (
	"strings"
	"time"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

// Значения фильтров «все».
const (
	FilterAll = "all"

	DateToday     = "today"
	DateYesterday = "yesterday"
	DateCustom    = "custom"
)

// LaundryFilter содержит фильтры экрана приёмок.
type LaundryFilter struct {
	Search     string
	Status     string
	Payment    string
	Date       string
	CustomDate string
}

// Active сообщает, выбран ли хотя бы один фильтр.
func (f LaundryFilter) Active() bool {
	return f.Search != "" || !isAll(f.Status) || !isAll(f.Payment) || !isAll(f.Date)
}

func isAll(v string) bool {
	return v == "" || v == FilterAll
}

func contains(field, term string) bool {
	return strings.Contains(strings.ToLower(field), term)
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// FilterLaundryItems отбирает приёмки по поиску (код, клиент, услуга), стадии,
// оплате и дате создания. Даты сравниваются в часовом поясе loc.
func FilterLaundryItems(items []model.LaundryItem, f LaundryFilter, now time.Time, loc *time.Location) []model.LaundryItem {
	if loc == nil {
		loc = time.Local
	}
	term := normalize(f.Search)
	today := now.In(loc).Format(time.DateOnly)
	yesterday := now.In(loc).AddDate(0, 0, -1).Format(time.DateOnly)

	out := make([]model.LaundryItem, 0, len(items))
	for _, item := range items {
		if term != "" && !contains(item.Code, term) && !contains(item.CustomerName, term) && !contains(item.Service, term) {
			continue
		}
		if !isAll(f.Status) && string(item.ProcessStatus) != f.Status {
			continue
		}
		if !isAll(f.Payment) && string(item.PaymentStatus) != f.Payment {
			continue
		}

		created := item.CreatedAt.In(loc).Format(time.DateOnly)
		switch f.Date {
		case DateToday:
			if created != today {
				continue
			}
		case DateYesterday:
			if created != yesterday {
				continue
			}
		case DateCustom:
			if f.CustomDate != "" && created != f.CustomDate {
				continue
			}
		}

		out = append(out, item)
	}
	return out
}

// SearchProducts ищет услуги по названию и типу.
func SearchProducts(products []model.Product, search string) []model.Product {
	term := normalize(search)
	if term == "" {
		return products
	}
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if contains(p.Name, term) || contains(string(p.Type), term) {
			out = append(out, p)
		}
	}
	return out
}

// SearchOutlets ищет филиалы по названию и адресу.
func SearchOutlets(outlets []model.Outlet, search string) []model.Outlet {
	term := normalize(search)
	if term == "" {
		return outlets
	}
	out := make([]model.Outlet, 0, len(outlets))
	for _, o := range outlets {
		if contains(o.Name, term) || contains(o.Address, term) {
			out = append(out, o)
		}
	}
	return out
}

// SearchUsers ищет пользователей по имени, логину и роли.
func SearchUsers(users []model.User, search string) []model.User {
	term := normalize(search)
	if term == "" {
		return users
	}
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if contains(u.Name, term) || contains(u.Username, term) || contains(string(u.Role), term) {
			out = append(out, u)
		}
	}
	return out
}

// SearchTransactions ищет платежи по коду приёмки и имени клиента.
func SearchTransactions(txs []model.Transaction, search string) []model.Transaction {
	term := normalize(search)
	if term == "" {
		return txs
	}
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.LaundryItem == nil {
			continue
		}
		if contains(tx.LaundryItem.Code, term) || contains(tx.LaundryItem.CustomerName, term) {
			out = append(out, tx)
		}
	}
	return out
}

// DashboardStats содержит сводку главного экрана.
type DashboardStats struct {
	TotalItems     int
	TotalRevenue   float64
	PendingItems   int
	CompletedItems int
}

// Summarize считает сводку по приёмкам: в ожидании считаются очередь и обработка.
func Summarize(items []model.LaundryItem) DashboardStats {
	var s DashboardStats
	s.TotalItems = len(items)
	for _, item := range items {
		s.TotalRevenue += item.TotalPrice
		switch item.ProcessStatus {
		case model.ProcessQueued, model.ProcessProcessing:
			s.PendingItems++
		case model.ProcessCompleted:
			s.CompletedItems++
		}
	}
	return s
}
