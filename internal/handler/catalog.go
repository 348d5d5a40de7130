package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/doctordoom101/laundryapp-dashboard/internal/api"
	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
	"github.com/doctordoom101/laundryapp-dashboard/internal/validation"
	"github.com/doctordoom101/laundryapp-dashboard/internal/view"
)

type listData[T any] struct {
	Items  []T
	Search string
}

// formData хранит данные формы создания или изменения. ID == 0 означает создание.
type formData[T any] struct {
	ID      int64
	Input   T
	Outlets []model.Outlet
}

// Products показывает услуги. Изменять их может только администратор.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	items, err := scopeFrom(r).svc.Products.List(r.Context(), model.ListParams{})

	p := page{Title: "Products"}
	if err != nil {
		p.Error = h.failure(err, msgLoadFailed)
	}
	p.Data = listData[model.Product]{Items: view.SearchProducts(items, search), Search: search}
	h.render(w, r, "product_list", http.StatusOK, p)
}

func (h *Handler) renderProductForm(w http.ResponseWriter, r *http.Request, status int, id int64, in model.ProductInput, errMsg string) {
	outlets, err := scopeFrom(r).svc.Outlets.List(r.Context(), model.ListParams{})
	if err != nil && errMsg == "" {
		errMsg = h.failure(err, msgLoadFailed)
	}
	title := "New Product"
	if id > 0 {
		title = "Edit Product"
	}
	h.render(w, r, "product_form", status, page{
		Title: title,
		Error: errMsg,
		Data:  formData[model.ProductInput]{ID: id, Input: in, Outlets: outlets},
	})
}

func productInput(r *http.Request) model.ProductInput {
	return model.ProductInput{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Type:     model.PricingType(r.PostFormValue("type")),
		Price:    formFloat(r, "price"),
		OutletID: formInt(r, "outlet_id"),
	}
}

// NewProduct показывает пустую форму услуги.
func (h *Handler) NewProduct(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, http.StatusOK, 0, model.ProductInput{Type: model.PricingKiloan}, "")
}

// EditProduct показывает форму с текущими данными услуги.
func (h *Handler) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	p, err := scopeFrom(r).svc.Products.Get(r.Context(), id)
	if err != nil {
		h.renderMissing(w, r, "product_form", err)
		return
	}
	h.renderProductForm(w, r, http.StatusOK, id, model.ProductInput{Name: p.Name, Type: p.Type, Price: p.Price, OutletID: p.OutletID}, "")
}

// SaveProduct создаёт услугу или изменяет существующую.
func (h *Handler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id, _ := idParam(r)
	in := productInput(r)

	if err := validation.Product(in); err != nil {
		h.renderProductForm(w, r, formStatus(err), id, in, err.Error())
		return
	}

	svc := scopeFrom(r).svc.Products
	var err error
	if id > 0 {
		err = svc.Update(r.Context(), id, in)
	} else {
		err = svc.Create(r.Context(), in)
	}
	if err != nil {
		h.renderProductForm(w, r, formStatus(err), id, in, h.failure(err, msgSaveFailed))
		return
	}
	h.redirect(w, r, "/products")
}

// DeleteProduct удаляет услугу.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := scopeFrom(r).svc.Products.Delete(r.Context(), id); err != nil {
		h.logDeleteFailure(err, "product", id)
	}
	h.redirect(w, r, "/products")
}

// Outlets показывает филиалы.
func (h *Handler) Outlets(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	items, err := scopeFrom(r).svc.Outlets.List(r.Context(), model.ListParams{})

	p := page{Title: "Outlets"}
	if err != nil {
		p.Error = h.failure(err, msgLoadFailed)
	}
	p.Data = listData[model.Outlet]{Items: view.SearchOutlets(items, search), Search: search}
	h.render(w, r, "outlet_list", http.StatusOK, p)
}

func (h *Handler) renderOutletForm(w http.ResponseWriter, r *http.Request, status int, id int64, in model.OutletInput, errMsg string) {
	title := "New Outlet"
	if id > 0 {
		title = "Edit Outlet"
	}
	h.render(w, r, "outlet_form", status, page{
		Title: title,
		Error: errMsg,
		Data:  formData[model.OutletInput]{ID: id, Input: in},
	})
}

// NewOutlet показывает пустую форму филиала.
func (h *Handler) NewOutlet(w http.ResponseWriter, r *http.Request) {
	h.renderOutletForm(w, r, http.StatusOK, 0, model.OutletInput{}, "")
}

// EditOutlet показывает форму с текущими данными филиала.
func (h *Handler) EditOutlet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	o, err := scopeFrom(r).svc.Outlets.Get(r.Context(), id)
	if err != nil {
		h.renderMissing(w, r, "outlet_form", err)
		return
	}
	h.renderOutletForm(w, r, http.StatusOK, id, model.OutletInput{Name: o.Name, Address: o.Address, Phone: o.Phone}, "")
}

// SaveOutlet создаёт филиал или изменяет существующий.
func (h *Handler) SaveOutlet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id, _ := idParam(r)
	in := model.OutletInput{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Address: strings.TrimSpace(r.PostFormValue("address")),
		Phone:   strings.TrimSpace(r.PostFormValue("phone")),
	}

	if err := validation.Outlet(in); err != nil {
		h.renderOutletForm(w, r, formStatus(err), id, in, err.Error())
		return
	}

	svc := scopeFrom(r).svc.Outlets
	var err error
	if id > 0 {
		err = svc.Update(r.Context(), id, in)
	} else {
		err = svc.Create(r.Context(), in)
	}
	if err != nil {
		h.renderOutletForm(w, r, formStatus(err), id, in, h.failure(err, msgSaveFailed))
		return
	}
	h.redirect(w, r, "/outlets")
}

// DeleteOutlet удаляет филиал.
func (h *Handler) DeleteOutlet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := scopeFrom(r).svc.Outlets.Delete(r.Context(), id); err != nil {
		h.logDeleteFailure(err, "outlet", id)
	}
	h.redirect(w, r, "/outlets")
}

// Users показывает учётные записи сотрудников.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	items, err := scopeFrom(r).svc.Users.List(r.Context(), model.ListParams{})

	p := page{Title: "Users"}
	if err != nil {
		p.Error = h.failure(err, msgLoadFailed)
	}
	p.Data = listData[model.User]{Items: view.SearchUsers(items, search), Search: search}
	h.render(w, r, "user_list", http.StatusOK, p)
}

func (h *Handler) renderUserForm(w http.ResponseWriter, r *http.Request, status int, id int64, in model.UserInput, errMsg string) {
	title := "New User"
	if id > 0 {
		title = "Edit User"
	}
	in.Password = ""
	h.render(w, r, "user_form", status, page{
		Title: title,
		Error: errMsg,
		Data:  formData[model.UserInput]{ID: id, Input: in},
	})
}

// NewUser показывает пустую форму пользователя.
func (h *Handler) NewUser(w http.ResponseWriter, r *http.Request) {
	h.renderUserForm(w, r, http.StatusOK, 0, model.UserInput{Role: model.RolePetugas}, "")
}

// EditUser показывает форму с текущими данными пользователя. Пароль не показывается.
func (h *Handler) EditUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	u, err := scopeFrom(r).svc.Users.Get(r.Context(), id)
	if err != nil {
		h.renderMissing(w, r, "user_form", err)
		return
	}
	h.renderUserForm(w, r, http.StatusOK, id, model.UserInput{Name: u.Name, Username: u.Username, Role: u.Role}, "")
}

// SaveUser создаёт пользователя или изменяет существующего.
// Пустой пароль при изменении не отправляется.
func (h *Handler) SaveUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id, _ := idParam(r)
	in := model.UserInput{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		Role:     model.Role(r.PostFormValue("role")),
	}

	if err := validation.User(in, id == 0); err != nil {
		h.renderUserForm(w, r, formStatus(err), id, in, err.Error())
		return
	}

	svc := scopeFrom(r).svc.Users
	var err error
	if id > 0 {
		err = svc.Update(r.Context(), id, in)
	} else {
		err = svc.Create(r.Context(), in)
	}
	if err != nil {
		h.renderUserForm(w, r, formStatus(err), id, in, h.failure(err, msgSaveFailed))
		return
	}
	h.redirect(w, r, "/users")
}

// DeleteUser удаляет пользователя.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := scopeFrom(r).svc.Users.Delete(r.Context(), id); err != nil {
		h.logDeleteFailure(err, "user", id)
	}
	h.redirect(w, r, "/users")
}

func (h *Handler) renderMissing(w http.ResponseWriter, r *http.Request, name string, err error) {
	status, msg := http.StatusBadGateway, h.failure(err, msgLoadFailed)
	if errors.Is(err, api.ErrNotFound) {
		status, msg = http.StatusNotFound, msgNotFound
	}
	h.render(w, r, name, status, page{Title: "Not found", Error: msg, Data: nil})
}

func (h *Handler) logDeleteFailure(err error, resource string, id int64) {
	if errors.Is(err, api.ErrUnauthorized) {
		return
	}
	h.logger.Warn("delete failed", zap.Error(err), zap.String("resource", resource), zap.Int64("id", id))
}
