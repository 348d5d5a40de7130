package handler

import (
	"strings"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

type menuItem struct {
	Label  string
	Path   string
	Active bool
}

var (
	itemDashboard    = menuItem{Label: "Dashboard", Path: "/"}
	itemUsers        = menuItem{Label: "Users", Path: "/users"}
	itemOutlets      = menuItem{Label: "Outlets", Path: "/outlets"}
	itemProducts     = menuItem{Label: "Products", Path: "/products"}
	itemLaundry      = menuItem{Label: "Laundry Items", Path: "/laundry-items"}
	itemTransactions = menuItem{Label: "Transactions", Path: "/transactions"}
	itemReports      = menuItem{Label: "Reports", Path: "/reports"}
)

var menus = map[model.Role][]menuItem{
	model.RoleAdmin:   {itemDashboard, itemUsers, itemOutlets, itemProducts, itemLaundry, itemTransactions, itemReports},
	model.RolePetugas: {itemDashboard, itemLaundry, itemTransactions, itemProducts},
	model.RoleOwner:   {itemDashboard, itemReports, itemOutlets},
}

// menuFor возвращает меню роли с отмеченным текущим разделом.
// Неизвестной роли доступен только главный экран.
func menuFor(role model.Role, current string) []menuItem {
	base, ok := menus[role]
	if !ok {
		base = []menuItem{itemDashboard}
	}

	out := make([]menuItem, len(base))
	for i, item := range base {
		item.Active = current == item.Path || (item.Path != "/" && strings.HasPrefix(current, item.Path+"/"))
		out[i] = item
	}
	return out
}
