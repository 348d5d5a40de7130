package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

func TestReportPDF(t *testing.T) {
	r := &model.Report{
		Period: "daily",
		Date:   "2025-01-15",
		Statistics: model.ReportStatistics{
			TotalItems:   3,
			TotalRevenue: 150000,
			TotalPaid:    100000,
			Outstanding:  50000,
		},
		Items: []model.ReportItem{
			{Code: "LDR-001", CustomerName: "Budi", Service: "Cuci Kering", TotalPrice: 50000, PaidAmount: 50000},
		},
	}

	data, err := ReportPDF(r, "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, "report-daily-2025-01-15.pdf", Filename(r))
}

func TestReportPDF_EmptyItems(t *testing.T) {
	data, err := ReportPDF(&model.Report{Period: "monthly", Date: "2025-01-01"}, "Pusat")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestReportPDF_Nil(t *testing.T) {
	_, err := ReportPDF(nil, "")
	assert.ErrorIs(t, err, ErrNoReport)
}
