package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/doctordoom101/laundryapp-dashboard/internal/api"
	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

type checkStatusData struct {
	Code string
	Item *model.LaundryItem
}

// CheckStatus показывает публичную страницу проверки статуса по коду приёмки. Вход не нужен.
func (h *Handler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	p := page{Title: "Check Status", Data: checkStatusData{Code: code}}
	if code == "" {
		h.render(w, r, "check_status", http.StatusOK, p)
		return
	}

	item, err := h.public.Laundry.CheckStatus(r.Context(), code)
	if err != nil {
		status := http.StatusBadGateway
		p.Error = h.failure(err, "Failed to check status. Please try again.", zap.String("code", code))
		if errors.Is(err, api.ErrNotFound) {
			status, p.Error = http.StatusNotFound, msgNotFound
		}
		h.render(w, r, "check_status", status, p)
		return
	}

	p.Data = checkStatusData{Code: code, Item: item}
	h.render(w, r, "check_status", http.StatusOK, p)
}

type checkStatusResponse struct {
	Code          string  `json:"code"`
	CustomerName  string  `json:"customer_name"`
	Service       string  `json:"service"`
	ProcessStatus string  `json:"process_status"`
	ProcessLabel  string  `json:"process_label"`
	PaymentStatus string  `json:"payment_status"`
	PaymentLabel  string  `json:"payment_label"`
	TotalPrice    float64 `json:"total_price"`
	CreatedAt     string  `json:"created_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// CheckStatusJSON отдаёт статус приёмки для публичного сайта.
func (h *Handler) CheckStatusJSON(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "code is required"})
		return
	}

	item, err := h.public.Laundry.CheckStatus(r.Context(), code)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse{Message: msgNotFound})
			return
		}
		h.logger.Error("check status error", zap.Error(err), zap.String("code", code))
		writeJSON(w, http.StatusBadGateway, messageResponse{Message: http.StatusText(http.StatusBadGateway)})
		return
	}

	writeJSON(w, http.StatusOK, checkStatusResponse{
		Code:          item.Code,
		CustomerName:  item.CustomerName,
		Service:       item.Service,
		ProcessStatus: string(item.ProcessStatus),
		ProcessLabel:  item.ProcessStatus.Label(),
		PaymentStatus: string(item.PaymentStatus),
		PaymentLabel:  item.PaymentStatus.Label(),
		TotalPrice:    item.TotalPrice,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
	})
}
