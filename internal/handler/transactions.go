package handler

import (
	"net/http"
	"time"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
	"github.com/doctordoom101/laundryapp-dashboard/internal/validation"
	"github.com/doctordoom101/laundryapp-dashboard/internal/view"
)

const (
	paidAtLayout = "2006-01-02T15:04"
	// formItemsLimit ограничивает список приёмок в форме платежа.
	formItemsLimit = 1000
)

// Transactions показывает платежи с поиском по коду приёмки и имени клиента.
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	items, err := scopeFrom(r).svc.Transactions.List(r.Context(), model.ListParams{})

	p := page{Title: "Transactions"}
	if err != nil {
		p.Error = h.failure(err, msgLoadFailed)
	}
	p.Data = listData[model.Transaction]{Items: view.SearchTransactions(items, search), Search: search}
	h.render(w, r, "transaction_list", http.StatusOK, p)
}

type transactionFormData struct {
	Input    model.TransactionInput
	PaidAt   string
	PaidFull bool
	Items    []model.LaundryItem
}

func (h *Handler) renderTransactionForm(w http.ResponseWriter, r *http.Request, status int, data transactionFormData, errMsg string) {
	items, err := scopeFrom(r).svc.Laundry.List(r.Context(), model.ListParams{PerPage: formItemsLimit})
	if err != nil && errMsg == "" {
		errMsg = h.failure(err, msgLoadFailed)
	}
	for _, it := range items {
		if it.PaymentStatus != model.PaymentPaid || it.ID == data.Input.LaundryItemID {
			data.Items = append(data.Items, it)
		}
	}

	h.render(w, r, "transaction_form", status, page{Title: "New Transaction", Error: errMsg, Data: data})
}

// NewTransaction показывает форму платежа по неоплаченным приёмкам.
func (h *Handler) NewTransaction(w http.ResponseWriter, r *http.Request) {
	data := transactionFormData{
		Input:  model.TransactionInput{Method: model.MethodCash, LaundryItemID: queryInt(r, "laundry_item_id")},
		PaidAt: h.now().In(h.location).Format(paidAtLayout),
	}
	h.renderTransactionForm(w, r, http.StatusOK, data, "")
}

// CreateTransaction записывает платёж. При отметке «оплачено полностью»
// сумма берётся из итоговой цены приёмки.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sc := scopeFrom(r)

	data := transactionFormData{
		Input: model.TransactionInput{
			LaundryItemID: formInt(r, "laundry_item_id"),
			Method:        model.PaymentMethod(r.PostFormValue("method")),
			Amount:        formFloat(r, "amount"),
		},
		PaidAt:   r.PostFormValue("paid_at"),
		PaidFull: r.PostFormValue("paid_full") != "",
	}
	if t, err := time.ParseInLocation(paidAtLayout, data.PaidAt, h.location); err == nil {
		data.Input.PaidAt = t
	}

	if data.PaidFull && data.Input.LaundryItemID > 0 {
		item, err := sc.svc.Laundry.Get(r.Context(), data.Input.LaundryItemID)
		if err != nil {
			h.renderTransactionForm(w, r, formStatus(err), data, h.failure(err, msgLoadFailed))
			return
		}
		data.Input.Amount = item.TotalPrice
	}

	if err := validation.Transaction(data.Input); err != nil {
		h.renderTransactionForm(w, r, formStatus(err), data, err.Error())
		return
	}

	if err := sc.svc.Transactions.Create(r.Context(), data.Input); err != nil {
		h.renderTransactionForm(w, r, formStatus(err), data, h.failure(err, msgSaveFailed))
		return
	}
	h.redirect(w, r, "/transactions")
}
