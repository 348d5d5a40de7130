package handler

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/doctordoom101/laundryapp-dashboard/internal/export"
	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

type reportData struct {
	Query   model.ReportQuery
	Report  *model.Report
	Outlets []model.Outlet
}

// reportQuery читает фильтры отчёта. По умолчанию берётся дневной отчёт за сегодня по всем филиалам.
func (h *Handler) reportQuery(r *http.Request) model.ReportQuery {
	q := r.URL.Query()

	rq := model.ReportQuery{
		Type:     model.ReportType(q.Get("type")),
		Date:     q.Get("date"),
		OutletID: q.Get("outlet_id"),
	}
	if !rq.Type.Valid() {
		rq.Type = model.ReportDaily
	}
	if _, err := time.Parse(time.DateOnly, rq.Date); err != nil {
		rq.Date = h.now().In(h.location).Format(time.DateOnly)
	}
	if rq.OutletID == "" {
		rq.OutletID = "all"
	}
	return rq
}

func outletName(outlets []model.Outlet, id string) string {
	for _, o := range outlets {
		if strconv.FormatInt(o.ID, 10) == id {
			return o.Name
		}
	}
	return ""
}

// Reports показывает итоги и строки отчёта за выбранный период.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r)
	rq := h.reportQuery(r)

	outlets, err := sc.svc.Outlets.List(r.Context(), model.ListParams{})
	if err != nil {
		h.logger.Warn("load outlets for report filter", zap.Error(err))
	}

	report, err := sc.svc.Reports.Get(r.Context(), rq)

	p := page{Title: "Reports"}
	if err != nil {
		p.Error = h.failure(err, msgLoadFailed)
	}
	p.Data = reportData{Query: rq, Report: report, Outlets: outlets}
	h.render(w, r, "report", http.StatusOK, p)
}

// ExportReport отдаёт отчёт с теми же фильтрами в виде PDF.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r)
	rq := h.reportQuery(r)

	report, err := sc.svc.Reports.Get(r.Context(), rq)
	if err != nil {
		if h.followNavigation(w, r) {
			return
		}
		h.logger.Error("load report for export", zap.Error(err))
		http.Error(w, msgLoadFailed, http.StatusBadGateway)
		return
	}

	var outlet string
	if rq.OutletID != "all" {
		if outlets, err := sc.svc.Outlets.List(r.Context(), model.ListParams{}); err == nil {
			outlet = outletName(outlets, rq.OutletID)
		}
	}

	data, err := export.ReportPDF(report, outlet)
	if err != nil {
		h.logger.Error("export report", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(report))
	_, _ = w.Write(data)
}
