package model

import "time"

// PricingType описывает способ тарификации услуги.
type PricingType string

const (
	PricingKiloan PricingType = "kiloan"
	PricingSatuan PricingType = "satuan"
)

// Label возвращает подпись типа тарификации для интерфейса.
func (t PricingType) Label() string {
	switch t {
	case PricingKiloan:
		return "Per Kg"
	case PricingSatuan:
		return "Per Item"
	default:
		return string(t)
	}
}

// Product описывает услугу прачечной с ценой, привязанная к филиалу.
type Product struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Type      PricingType `json:"type"`
	Price     float64     `json:"price"`
	OutletID  int64       `json:"outlet_id"`
	Outlet    string      `json:"outlet"`
	CreatedAt time.Time   `json:"created_at"`
}

// ProductInput содержит данные формы услуги.
type ProductInput struct {
	Name     string      `json:"name"`
	Type     PricingType `json:"type"`
	Price    float64     `json:"price"`
	OutletID int64       `json:"outlet_id"`
}

// ProcessStatus описывает стадию обработки вещей.
type ProcessStatus string

const (
	ProcessQueued     ProcessStatus = "antri"
	ProcessProcessing ProcessStatus = "proses"
	ProcessCompleted  ProcessStatus = "selesai"
)

// ProcessStatuses перечисляет стадии в порядке прохождения.
var ProcessStatuses = []ProcessStatus{ProcessQueued, ProcessProcessing, ProcessCompleted}

// Valid сообщает, известна ли стадия.
func (s ProcessStatus) Valid() bool {
	switch s {
	case ProcessQueued, ProcessProcessing, ProcessCompleted:
		return true
	}
	return false
}

// Label возвращает подпись стадии.
func (s ProcessStatus) Label() string {
	switch s {
	case ProcessQueued:
		return "Queue"
	case ProcessProcessing:
		return "Processing"
	case ProcessCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Description возвращает пояснение для публичной страницы проверки статуса.
func (s ProcessStatus) Description() string {
	switch s {
	case ProcessQueued:
		return "Your item is waiting to be processed"
	case ProcessProcessing:
		return "Your item is currently being processed"
	case ProcessCompleted:
		return "Your item is ready for pickup"
	default:
		return "Status unknown"
	}
}

// PaymentStatus описывает состояние оплаты.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "belum_bayar"
	PaymentPartial PaymentStatus = "dp"
	PaymentPaid    PaymentStatus = "lunas"
)

// PaymentStatuses перечисляет состояния оплаты.
var PaymentStatuses = []PaymentStatus{PaymentUnpaid, PaymentPartial, PaymentPaid}

// Label возвращает подпись состояния оплаты.
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentUnpaid:
		return "Unpaid"
	case PaymentPartial:
		return "Partial"
	case PaymentPaid:
		return "Paid"
	default:
		return string(s)
	}
}

// Description возвращает пояснение для публичной страницы проверки статуса.
func (s PaymentStatus) Description() string {
	switch s {
	case PaymentUnpaid:
		return "Payment is required"
	case PaymentPartial:
		return "Partial payment received"
	case PaymentPaid:
		return "Payment completed"
	default:
		return "Payment status unknown"
	}
}

// LaundryItem описывает одну приёмку вещей клиента.
type LaundryItem struct {
	ID            int64         `json:"id"`
	Code          string        `json:"code"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	ServiceID     int64         `json:"service_id"`
	Service       string        `json:"service"`
	Quantity      float64       `json:"quantity"`
	TotalPrice    float64       `json:"total_price"`
	ProcessStatus ProcessStatus `json:"process_status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
}

// LaundryItemInput содержит данные формы приёмки. Цену и код считает API.
type LaundryItemInput struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	ServiceID     int64   `json:"service_id"`
	Quantity      float64 `json:"quantity"`
	Notes         string  `json:"notes"`
}
