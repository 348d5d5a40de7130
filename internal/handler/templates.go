package handler

import (
	"embed"
	"html/template"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
	"github.com/doctordoom101/laundryapp-dashboard/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"rupiah":          view.Rupiah,
	"number":          view.Number,
	"date":            view.Date,
	"datetime":        view.DateTime,
	"processStatuses": func() []model.ProcessStatus { return model.ProcessStatuses },
	"paymentStatuses": func() []model.PaymentStatus { return model.PaymentStatuses },
	"paymentMethods":  func() []model.PaymentMethod { return model.PaymentMethods },
	"reportTypes":     func() []model.ReportType { return model.ReportTypes },
	"roles":           func() []model.Role { return model.Roles },
	"pricingTypes":    func() []model.PricingType { return []model.PricingType{model.PricingKiloan, model.PricingSatuan} },
}

var pageFiles = map[string]string{
	"login":            "login.html",
	"unauthorized":     "unauthorized.html",
	"dashboard":        "dashboard.html",
	"laundry_list":     "laundry_list.html",
	"laundry_form":     "laundry_form.html",
	"laundry_detail":   "laundry_detail.html",
	"product_list":     "product_list.html",
	"product_form":     "product_form.html",
	"outlet_list":      "outlet_list.html",
	"outlet_form":      "outlet_form.html",
	"user_list":        "user_list.html",
	"user_form":        "user_form.html",
	"transaction_list": "transaction_list.html",
	"transaction_form": "transaction_form.html",
	"report":           "report.html",
	"check_status":     "check_status.html",
}

var pages = parsePages()

func parsePages() map[string]*template.Template {
	out := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		out[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+file))
	}
	return out
}
