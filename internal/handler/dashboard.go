package handler

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
	"github.com/doctordoom101/laundryapp-dashboard/internal/view"
)

const (
	recentItemsLimit = 5
	statsItemsLimit  = 1000
)

type dashboardData struct {
	Stats  view.DashboardStats
	Recent []model.LaundryItem
}

// Dashboard показывает последние приёмки и сводку. Оба запроса идут параллельно.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r)

	recent := view.NewLoader[[]model.LaundryItem]()
	all := view.NewLoader[[]model.LaundryItem]()

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		return recent.Load(ctx, func(ctx context.Context) ([]model.LaundryItem, error) {
			return sc.svc.Laundry.List(ctx, model.ListParams{Page: 1, PerPage: recentItemsLimit})
		}).Err
	})
	g.Go(func() error {
		return all.Load(ctx, func(ctx context.Context) ([]model.LaundryItem, error) {
			return sc.svc.Laundry.List(ctx, model.ListParams{Page: 1, PerPage: statsItemsLimit})
		}).Err
	})

	p := page{Title: "Dashboard"}
	if err := g.Wait(); err != nil {
		p.Error = h.failure(err, msgLoadFailed)
	}

	items := recent.State().Data
	if len(items) > recentItemsLimit {
		items = items[:recentItemsLimit]
	}
	p.Data = dashboardData{
		Stats:  view.Summarize(all.State().Data),
		Recent: items,
	}
	h.render(w, r, "dashboard", http.StatusOK, p)
}
