package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

func TestLoader_DiscardsStaleResponse(t *testing.T) {
	l := NewLoader[[]string]()

	first := l.Begin()
	second := l.Begin()

	assert.True(t, l.Commit(second, []string{"fresh"}, nil))
	assert.False(t, l.Commit(first, []string{"stale"}, nil))

	st := l.State()
	assert.Equal(t, []string{"fresh"}, st.Data)
	assert.False(t, st.Loading)
	assert.Equal(t, uint64(2), st.Generation)
}

func TestLoader_KeepsDataOnError(t *testing.T) {
	l := NewLoader[int]()
	boom := errors.New("boom")

	st := l.Load(context.Background(), func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, st.Err)
	assert.Equal(t, 7, st.Data)

	st = l.Load(context.Background(), func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, st.Err, boom)
	assert.Equal(t, 7, st.Data)
	assert.False(t, st.Loading)
}

func TestLoader_LoadingUntilCommit(t *testing.T) {
	l := NewLoader[int]()
	ticket := l.Begin()
	assert.True(t, l.State().Loading)

	l.Commit(ticket, 1, nil)
	assert.False(t, l.State().Loading)
}

func laundryFixture() []model.LaundryItem {
	loc := time.UTC
	return []model.LaundryItem{
		{Code: "LDR-001", CustomerName: "Budi", Service: "Cuci Kering", ProcessStatus: model.ProcessCompleted, PaymentStatus: model.PaymentPaid, TotalPrice: 50000, CreatedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, loc)},
		{Code: "LDR-002", CustomerName: "Sari", Service: "Setrika", ProcessStatus: model.ProcessCompleted, PaymentStatus: model.PaymentUnpaid, TotalPrice: 40000, CreatedAt: time.Date(2025, 1, 14, 9, 0, 0, 0, loc)},
		{Code: "LDR-003", CustomerName: "Andi", Service: "Cuci Kering", ProcessStatus: model.ProcessQueued, PaymentStatus: model.PaymentPartial, TotalPrice: 25000, CreatedAt: time.Date(2025, 1, 15, 11, 0, 0, 0, loc)},
		{Code: "LDR-004", CustomerName: "Dewi", Service: "Bed Cover", ProcessStatus: model.ProcessProcessing, PaymentStatus: model.PaymentPaid, TotalPrice: 35000, CreatedAt: time.Date(2025, 1, 10, 9, 0, 0, 0, loc)},
		{Code: "LDR-005", CustomerName: "Rina", Service: "Setrika", ProcessStatus: model.ProcessCompleted, PaymentStatus: model.PaymentPaid, TotalPrice: 60000, CreatedAt: time.Date(2025, 1, 15, 15, 0, 0, 0, loc)},
	}
}

func codes(items []model.LaundryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Code)
	}
	return out
}

func TestFilterLaundryItems(t *testing.T) {
	now := time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter LaundryFilter
		want   []string
	}{
		{name: "no filter", filter: LaundryFilter{Status: FilterAll}, want: []string{"LDR-001", "LDR-002", "LDR-003", "LDR-004", "LDR-005"}},
		{name: "completed only", filter: LaundryFilter{Status: "selesai"}, want: []string{"LDR-001", "LDR-002", "LDR-005"}},
		{name: "search by customer case insensitive", filter: LaundryFilter{Search: "  sARI "}, want: []string{"LDR-002"}},
		{name: "search by service", filter: LaundryFilter{Search: "cuci"}, want: []string{"LDR-001", "LDR-003"}},
		{name: "payment", filter: LaundryFilter{Payment: "dp"}, want: []string{"LDR-003"}},
		{name: "today", filter: LaundryFilter{Date: DateToday}, want: []string{"LDR-001", "LDR-003", "LDR-005"}},
		{name: "yesterday", filter: LaundryFilter{Date: DateYesterday}, want: []string{"LDR-002"}},
		{name: "custom date", filter: LaundryFilter{Date: DateCustom, CustomDate: "2025-01-10"}, want: []string{"LDR-004"}},
		{name: "combined", filter: LaundryFilter{Status: "selesai", Payment: "lunas", Date: DateToday}, want: []string{"LDR-001", "LDR-005"}},
		{name: "nothing matches", filter: LaundryFilter{Search: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterLaundryItems(laundryFixture(), tt.filter, now, time.UTC)
			assert.Equal(t, tt.want, codes(got))
		})
	}
}

func TestLaundryFilter_Active(t *testing.T) {
	assert.False(t, LaundryFilter{}.Active())
	assert.False(t, LaundryFilter{Status: FilterAll, Payment: FilterAll, Date: FilterAll}.Active())
	assert.True(t, LaundryFilter{Search: "x"}.Active())
	assert.True(t, LaundryFilter{Payment: "lunas"}.Active())
}

func TestSummarize(t *testing.T) {
	s := Summarize(laundryFixture())

	assert.Equal(t, 5, s.TotalItems)
	assert.Equal(t, 210000.0, s.TotalRevenue)
	assert.Equal(t, 2, s.PendingItems)
	assert.Equal(t, 3, s.CompletedItems)
}

func TestSearchHelpers(t *testing.T) {
	products := []model.Product{{Name: "Cuci Kering", Type: model.PricingKiloan}, {Name: "Bed Cover", Type: model.PricingSatuan}}
	assert.Len(t, SearchProducts(products, "satuan"), 1)
	assert.Len(t, SearchProducts(products, ""), 2)

	outlets := []model.Outlet{{Name: "Pusat", Address: "Jl. Merdeka 1"}, {Name: "Cabang", Address: "Jl. Sudirman"}}
	assert.Equal(t, "Cabang", SearchOutlets(outlets, "sudirman")[0].Name)

	users := []model.User{{Name: "Admin", Username: "admin", Role: model.RoleAdmin}, {Name: "Sari", Username: "sari", Role: model.RolePetugas}}
	assert.Len(t, SearchUsers(users, "petugas"), 1)

	txs := []model.Transaction{
		{ID: 1, LaundryItem: &model.TransactionItem{Code: "LDR-001", CustomerName: "Budi"}},
		{ID: 2},
	}
	assert.Len(t, SearchTransactions(txs, "budi"), 1)
	assert.Len(t, SearchTransactions(txs, ""), 2)
}

func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp 150.000", Rupiah(150000))
	assert.Equal(t, "Rp 0", Rupiah(0))
	assert.Equal(t, "Rp 1.250.000", Rupiah(1250000))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "", Date(time.Time{}))
	assert.Equal(t, "2025-01-15", Date(time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-15 09:30", DateTime(time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)))
}
