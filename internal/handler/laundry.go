package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/doctordoom101/laundryapp-dashboard/internal/api"
	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
	"github.com/doctordoom101/laundryapp-dashboard/internal/tracking"
	"github.com/doctordoom101/laundryapp-dashboard/internal/validation"
	"github.com/doctordoom101/laundryapp-dashboard/internal/view"
)

type laundryListData struct {
	Items  []model.LaundryItem
	Total  int
	Filter view.LaundryFilter
}

// LaundryItems показывает приёмки с поиском и фильтрами по стадии, оплате и дате.
func (h *Handler) LaundryItems(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r)
	q := r.URL.Query()
	filter := view.LaundryFilter{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Payment:    q.Get("payment"),
		Date:       q.Get("date"),
		CustomDate: q.Get("custom_date"),
	}

	items, err := sc.svc.Laundry.List(r.Context(), model.ListParams{})

	p := page{Title: "Laundry Items"}
	if err != nil {
		p.Error = h.failure(err, msgLoadFailed)
	}
	p.Data = laundryListData{
		Items:  view.FilterLaundryItems(items, filter, h.now(), h.location),
		Total:  len(items),
		Filter: filter,
	}
	h.render(w, r, "laundry_list", http.StatusOK, p)
}

type laundryFormData struct {
	Input    model.LaundryItemInput
	Products []model.Product
}

func (h *Handler) renderLaundryForm(w http.ResponseWriter, r *http.Request, status int, in model.LaundryItemInput, errMsg string) {
	sc := scopeFrom(r)
	products, err := sc.svc.Products.List(r.Context(), model.ListParams{})
	if err != nil && errMsg == "" {
		errMsg = h.failure(err, msgLoadFailed)
	}
	h.render(w, r, "laundry_form", status, page{
		Title: "New Laundry Item",
		Error: errMsg,
		Data:  laundryFormData{Input: in, Products: products},
	})
}

// NewLaundryItem показывает форму приёмки. Приёмку можно только создать:
// API не поддерживает её изменение, кроме смены стадии.
func (h *Handler) NewLaundryItem(w http.ResponseWriter, r *http.Request) {
	h.renderLaundryForm(w, r, http.StatusOK, model.LaundryItemInput{Quantity: 1}, "")
}

// CreateLaundryItem создаёт приёмку. Цену и код рассчитывает API.
func (h *Handler) CreateLaundryItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	in := model.LaundryItemInput{
		CustomerName:  strings.TrimSpace(r.PostFormValue("customer_name")),
		CustomerPhone: strings.TrimSpace(r.PostFormValue("customer_phone")),
		ServiceID:     formInt(r, "service_id"),
		Quantity:      formFloat(r, "quantity"),
		Notes:         strings.TrimSpace(r.PostFormValue("notes")),
	}

	if err := validation.LaundryItem(in); err != nil {
		h.renderLaundryForm(w, r, formStatus(err), in, err.Error())
		return
	}

	if err := scopeFrom(r).svc.Laundry.Create(r.Context(), in); err != nil {
		h.renderLaundryForm(w, r, formStatus(err), in, h.failure(err, msgSaveFailed))
		return
	}

	h.redirect(w, r, "/laundry-items")
}

type laundryDetailData struct {
	Item      *model.LaundryItem
	TrackURL  string
	Statuses  []model.ProcessStatus
	CanUpdate bool
}

func (h *Handler) renderLaundryDetail(w http.ResponseWriter, r *http.Request, id int64, errMsg string) {
	sc := scopeFrom(r)

	item, err := sc.svc.Laundry.Get(r.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		msg := h.failure(err, msgLoadFailed)
		if errors.Is(err, api.ErrNotFound) {
			status, msg = http.StatusNotFound, msgNotFound
		}
		h.render(w, r, "laundry_detail", status, page{Title: "Laundry Item", Error: msg, Data: laundryDetailData{}})
		return
	}

	h.render(w, r, "laundry_detail", http.StatusOK, page{
		Title: "Laundry Item " + item.Code,
		Error: errMsg,
		Data: laundryDetailData{
			Item:      item,
			TrackURL:  h.qr.URL(item.Code),
			Statuses:  model.ProcessStatuses,
			CanUpdate: sc.store.HasAnyRole(model.RoleAdmin, model.RolePetugas),
		},
	})
}

// LaundryItem показывает приёмку, ссылку отслеживания и смену стадии.
func (h *Handler) LaundryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.renderLaundryDetail(w, r, id, "")
}

// UpdateLaundryStatus меняет стадию обработки и заново загружает приёмку.
func (h *Handler) UpdateLaundryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	status := model.ProcessStatus(r.PostFormValue("process_status"))
	if !status.Valid() {
		h.renderLaundryDetail(w, r, id, "Unknown process status")
		return
	}

	if err := scopeFrom(r).svc.Laundry.UpdateStatus(r.Context(), id, status); err != nil {
		h.renderLaundryDetail(w, r, id, h.failure(err, msgSaveFailed, zap.Int64("itemID", id)))
		return
	}

	h.redirect(w, r, "/laundry-items/"+strconv.FormatInt(id, 10))
}

// LaundryQR отдаёт PNG с QR-кодом ссылки на проверку статуса.
func (h *Handler) LaundryQR(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	item, err := scopeFrom(r).svc.Laundry.Get(r.Context(), id)
	if err != nil {
		if h.followNavigation(w, r) {
			return
		}
		if errors.Is(err, api.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("load laundry item for qr", zap.Error(err), zap.Int64("itemID", id))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	png, err := h.qr.PNG(item.Code, tracking.DefaultSize)
	if err != nil {
		h.logger.Error("encode qr code", zap.Error(err), zap.String("code", item.Code))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	_, _ = w.Write(png)
}
