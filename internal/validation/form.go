// Package validation содержит проверки форм до отправки запроса в API.
package validation

import (
	"strings"
	"unicode"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

// FieldError описывает ошибку одного поля формы.
type FieldError struct {
	Field   string
	Message string
}

// Errors собирает ошибки формы. Пустой набор не является ошибкой.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Field возвращает сообщение для поля или пустую строку.
func (e Errors) Field(name string) string {
	for _, fe := range e {
		if fe.Field == name {
			return fe.Message
		}
	}
	return ""
}

type checker struct {
	errs Errors
}

func (c *checker) add(field, msg string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: msg})
}

func (c *checker) required(field, label, value string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, label+" is required")
	}
}

func (c *checker) positive(field, label string, value float64) {
	if value <= 0 {
		c.add(field, label+" must be greater than zero")
	}
}

func (c *checker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

// IsPhone проверяет номер телефона: цифры, пробелы, дефисы и ведущий плюс.
func IsPhone(phone string) bool {
	digits := 0
	for i, ch := range phone {
		switch {
		case unicode.IsDigit(ch):
			digits++
		case ch == ' ' || ch == '-':
		case ch == '+' && i == 0:
		default:
			return false
		}
	}
	return digits >= 6
}

// Credentials проверяет форму входа.
func Credentials(in model.Credentials) error {
	var c checker
	c.required("username", "Username", in.Username)
	c.required("password", "Password", in.Password)
	return c.err()
}

// LaundryItem проверяет форму приёмки.
func LaundryItem(in model.LaundryItemInput) error {
	var c checker
	c.required("customer_name", "Customer name", in.CustomerName)
	c.required("customer_phone", "Customer phone", in.CustomerPhone)
	if in.CustomerPhone != "" && !IsPhone(in.CustomerPhone) {
		c.add("customer_phone", "Customer phone is not a valid phone number")
	}
	if in.ServiceID <= 0 {
		c.add("service_id", "Service is required")
	}
	c.positive("quantity", "Quantity", in.Quantity)
	return c.err()
}

// Transaction проверяет форму платежа.
func Transaction(in model.TransactionInput) error {
	var c checker
	if in.LaundryItemID <= 0 {
		c.add("laundry_item_id", "Laundry item is required")
	}
	if !in.Method.Valid() {
		c.add("method", "Payment method is required")
	}
	c.positive("amount", "Amount", in.Amount)
	if in.PaidAt.IsZero() {
		c.add("paid_at", "Payment date is required")
	}
	return c.err()
}

// Product проверяет форму услуги.
func Product(in model.ProductInput) error {
	var c checker
	c.required("name", "Name", in.Name)
	if in.Type != model.PricingKiloan && in.Type != model.PricingSatuan {
		c.add("type", "Pricing type is required")
	}
	c.positive("price", "Price", in.Price)
	if in.OutletID <= 0 {
		c.add("outlet_id", "Outlet is required")
	}
	return c.err()
}

// Outlet проверяет форму филиала.
func Outlet(in model.OutletInput) error {
	var c checker
	c.required("name", "Name", in.Name)
	c.required("address", "Address", in.Address)
	if in.Phone != "" && !IsPhone(in.Phone) {
		c.add("phone", "Phone is not a valid phone number")
	}
	return c.err()
}

// User проверяет форму пользователя. Пароль обязателен только при создании.
func User(in model.UserInput, creating bool) error {
	var c checker
	c.required("name", "Name", in.Name)
	c.required("username", "Username", in.Username)
	if creating {
		c.required("password", "Password", in.Password)
	}
	if !in.Role.In(model.Roles...) {
		c.add("role", "Role is required")
	}
	return c.err()
}
