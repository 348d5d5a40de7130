package model

import "time"

// PaymentMethod описывает способ оплаты.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
	MethodQRIS     PaymentMethod = "qris"
	MethodOther    PaymentMethod = "lainnya"
)

// PaymentMethods перечисляет способы оплаты в порядке показа в форме.
var PaymentMethods = []PaymentMethod{MethodCash, MethodTransfer, MethodQRIS, MethodOther}

// Valid сообщает, известен ли способ оплаты.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodQRIS, MethodOther:
		return true
	}
	return false
}

// Label возвращает подпись способа оплаты.
func (m PaymentMethod) Label() string {
	switch m {
	case MethodCash:
		return "Cash"
	case MethodTransfer:
		return "Transfer"
	case MethodQRIS:
		return "QRIS"
	case MethodOther:
		return "Other"
	default:
		return string(m)
	}
}

// OutletRef ссылается на филиал внутри вложенных записей.
type OutletRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TransactionItem содержит сведения о приёмке, вложенные в платёж.
type TransactionItem struct {
	ID           int64      `json:"id"`
	Code         string     `json:"code"`
	CustomerName string     `json:"customer_name"`
	TotalPrice   float64    `json:"total_price"`
	Outlet       *OutletRef `json:"outlet,omitempty"`
}

// Transaction описывает один платёж по приёмке.
type Transaction struct {
	ID            int64            `json:"id"`
	LaundryItemID int64            `json:"laundry_item_id"`
	Amount        float64          `json:"amount"`
	Method        PaymentMethod    `json:"method"`
	PaidAt        time.Time        `json:"paid_at"`
	LaundryItem   *TransactionItem `json:"laundry_item,omitempty"`
}

// TransactionInput содержит данные формы платежа.
type TransactionInput struct {
	LaundryItemID int64         `json:"laundry_item_id"`
	Method        PaymentMethod `json:"method"`
	Amount        float64       `json:"amount"`
	PaidAt        time.Time     `json:"paid_at"`
}

// ReportType задаёт период отчёта.
type ReportType string

const (
	ReportDaily   ReportType = "daily"
	ReportMonthly ReportType = "monthly"
	ReportYearly  ReportType = "yearly"
)

// ReportTypes перечисляет периоды отчёта.
var ReportTypes = []ReportType{ReportDaily, ReportMonthly, ReportYearly}

// Valid сообщает, известен ли период.
func (t ReportType) Valid() bool {
	switch t {
	case ReportDaily, ReportMonthly, ReportYearly:
		return true
	}
	return false
}

// ReportQuery описывает запрос отчёта. OutletID пустой или "all" означает все филиалы.
type ReportQuery struct {
	Type     ReportType
	Date     string
	OutletID string
}

// ReportStatistics содержит агрегаты отчёта, посчитанные API.
type ReportStatistics struct {
	TotalItems   int     `json:"total_items"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalPaid    float64 `json:"total_paid"`
	Outstanding  float64 `json:"outstanding"`
}

// ReportItem описывает строку отчёта.
type ReportItem struct {
	Code         string  `json:"code"`
	CustomerName string  `json:"customer_name"`
	Service      string  `json:"service"`
	TotalPrice   float64 `json:"total_price"`
	PaidAmount   float64 `json:"paid_amount"`
}

// Report описывает отчёт за период.
type Report struct {
	Period     string           `json:"period"`
	Date       string           `json:"date"`
	Statistics ReportStatistics `json:"statistics"`
	Items      []ReportItem     `json:"items"`
}
