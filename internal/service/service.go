// Package service сопоставляет операции над ресурсами прачечной вызовам удалённого API.
// Ошибки API не интерпретируются и возвращаются вызывающему как есть.
package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/doctordoom101/laundryapp-dashboard/internal/api"
	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

// Services объединяет сервисы всех ресурсов поверх одного клиента API.
type Services struct {
	Auth         *AuthService
	Users        *UserService
	Outlets      *OutletService
	Products     *ProductService
	Laundry      *LaundryService
	Transactions *TransactionService
	Reports      *ReportService
}

// New создаёт сервисы поверх клиента API.
func New(c *api.Client) *Services {
	return &Services{
		Auth:         &AuthService{client: c},
		Users:        &UserService{client: c},
		Outlets:      &OutletService{client: c},
		Products:     &ProductService{client: c},
		Laundry:      &LaundryService{client: c},
		Transactions: &TransactionService{client: c},
		Reports:      &ReportService{client: c},
	}
}

func listQuery(p model.ListParams) url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	for k, v := range p.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

func idPath(resource string, id int64) string {
	return "/" + resource + "/" + strconv.FormatInt(id, 10)
}

// AuthService отвечает за вход, выход и профиль.
type AuthService struct {
	client *api.Client
}

// Login отправляет учётные данные.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	var res model.LoginResult
	if err := s.client.Post(ctx, "/login", creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout завершает сессию на стороне API.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Post(ctx, "/logout", nil, nil)
}

// Profile возвращает текущего пользователя.
func (s *AuthService) Profile(ctx context.Context) (*model.UserSummary, error) {
	var u model.UserSummary
	if err := s.client.Get(ctx, "/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserService управляет учётными записями сотрудников.
type UserService struct {
	client *api.Client
}

func (s *UserService) List(ctx context.Context, p model.ListParams) ([]model.User, error) {
	var users []model.User
	if err := s.client.Get(ctx, "/users", listQuery(p), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, in model.UserInput) error {
	return s.client.Post(ctx, "/users", in, nil)
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := s.client.Get(ctx, idPath("users", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in model.UserInput) error {
	return s.client.Put(ctx, idPath("users", id), in, nil)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, idPath("users", id))
}

// OutletService управляет филиалами.
type OutletService struct {
	client *api.Client
}

func (s *OutletService) List(ctx context.Context, p model.ListParams) ([]model.Outlet, error) {
	var outlets []model.Outlet
	if err := s.client.Get(ctx, "/outlets", listQuery(p), &outlets); err != nil {
		return nil, err
	}
	return outlets, nil
}

func (s *OutletService) Create(ctx context.Context, in model.OutletInput) error {
	return s.client.Post(ctx, "/outlets", in, nil)
}

func (s *OutletService) Get(ctx context.Context, id int64) (*model.Outlet, error) {
	var o model.Outlet
	if err := s.client.Get(ctx, idPath("outlets", id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OutletService) Update(ctx context.Context, id int64, in model.OutletInput) error {
	return s.client.Put(ctx, idPath("outlets", id), in, nil)
}

func (s *OutletService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, idPath("outlets", id))
}

// ProductService управляет услугами и ценами.
type ProductService struct {
	client *api.Client
}

func (s *ProductService) List(ctx context.Context, p model.ListParams) ([]model.Product, error) {
	var products []model.Product
	if err := s.client.Get(ctx, "/products", listQuery(p), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Create(ctx context.Context, in model.ProductInput) error {
	return s.client.Post(ctx, "/products", in, nil)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := s.client.Get(ctx, idPath("products", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in model.ProductInput) error {
	return s.client.Put(ctx, idPath("products", id), in, nil)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, idPath("products", id))
}

// LaundryService работает с приёмками вещей. Изменение приёмки API не поддерживает,
// доступна только смена стадии обработки.
type LaundryService struct {
	client *api.Client
}

func (s *LaundryService) List(ctx context.Context, p model.ListParams) ([]model.LaundryItem, error) {
	var items []model.LaundryItem
	if err := s.client.Get(ctx, "/laundry-items", listQuery(p), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *LaundryService) Create(ctx context.Context, in model.LaundryItemInput) error {
	return s.client.Post(ctx, "/laundry-items", in, nil)
}

func (s *LaundryService) Get(ctx context.Context, id int64) (*model.LaundryItem, error) {
	var item model.LaundryItem
	if err := s.client.Get(ctx, idPath("laundry-items", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateStatus меняет стадию обработки приёмки.
func (s *LaundryService) UpdateStatus(ctx context.Context, id int64, status model.ProcessStatus) error {
	body := struct {
		ProcessStatus model.ProcessStatus `json:"process_status"`
	}{ProcessStatus: status}
	return s.client.Patch(ctx, idPath("laundry-items", id)+"/status", body, nil)
}

// CheckStatus ищет приёмку по коду отслеживания. Вход не требуется.
func (s *LaundryService) CheckStatus(ctx context.Context, code string) (*model.LaundryItem, error) {
	var item model.LaundryItem
	if err := s.client.Get(ctx, "/laundry-items/check/"+url.PathEscape(code), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// TransactionService работает с платежами.
type TransactionService struct {
	client *api.Client
}

func (s *TransactionService) List(ctx context.Context, p model.ListParams) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := s.client.Get(ctx, "/transactions", listQuery(p), &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *TransactionService) Create(ctx context.Context, in model.TransactionInput) error {
	return s.client.Post(ctx, "/transactions", in, nil)
}

// ReportService запрашивает отчёты.
type ReportService struct {
	client *api.Client
}

// Get запрашивает отчёт за период. Фильтр филиала не передаётся, если он пуст или равен "all".
func (s *ReportService) Get(ctx context.Context, q model.ReportQuery) (*model.Report, error) {
	values := url.Values{}
	values.Set("type", string(q.Type))
	values.Set("date", q.Date)
	if q.OutletID != "" && q.OutletID != "all" {
		values.Set("outlet_id", q.OutletID)
	}

	var r model.Report
	if err := s.client.Get(ctx, "/reports", values, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
