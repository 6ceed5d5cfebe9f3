// Package memory is an in-memory implementation of the repository interfaces,
// used by service tests in place of Postgres. It mirrors the transactional
// semantics of the GORM implementations: multi-step writes are all-or-nothing
// under one mutex.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-hpp-dashboard/internal/apperr"
	"go-hpp-dashboard/internal/engine"
	"go-hpp-dashboard/internal/model"
	"go-hpp-dashboard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*model.User
	businesses map[uuid.UUID]*model.Business
	products   map[uuid.UUID]*model.Product
	items      map[uuid.UUID]*model.InventoryItem
	sales      []*model.Sale
	budgets    map[string]*model.CategoryBudget // userID|category
}

func New() *Store {
	return &Store{
		users:      make(map[uuid.UUID]*model.User),
		businesses: make(map[uuid.UUID]*model.Business),
		products:   make(map[uuid.UUID]*model.Product),
		items:      make(map[uuid.UUID]*model.InventoryItem),
		budgets:    make(map[string]*model.CategoryBudget),
	}
}

func budgetKey(userID uuid.UUID, category string) string {
	return userID.String() + "|" + category
}

func stamp(base *model.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	now := time.Now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

// ---- UserRepository ----

func (s *Store) GetOrCreateByEmail(_ context.Context, email, name string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	user := &model.User{Email: email, Name: name}
	stamp(&user.BaseModel)
	s.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (s *Store) GetOrCreateBusiness(_ context.Context, userID uuid.UUID, name string) (*model.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.businesses {
		if b.UserID == userID {
			copied := *b
			return &copied, nil
		}
	}
	business := &model.Business{Name: name, UserID: userID}
	stamp(&business.BaseModel)
	s.businesses[business.ID] = business
	copied := *business
	return &copied, nil
}

// ---- ProductRepository ----

func (s *Store) userOwnsProduct(p *model.Product, userID uuid.UUID) bool {
	b, ok := s.businesses[p.BusinessID]
	return ok && b.UserID == userID
}

func (s *Store) FindAllByUser(_ context.Context, userID uuid.UUID) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []model.Product
	for _, p := range s.products {
		if s.userOwnsProduct(p, userID) {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (s *Store) FindAllByUserWithActivity(_ context.Context, userID uuid.UUID, since time.Time) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []model.Product
	for _, p := range s.products {
		if !s.userOwnsProduct(p, userID) {
			continue
		}
		copied := *p
		for _, item := range s.items {
			if item.ProductID == p.ID {
				itemCopy := *item
				copied.InventoryItem = &itemCopy
				break
			}
		}
		for _, sale := range s.sales {
			if sale.ProductID == p.ID && !sale.Date.Before(since) {
				copied.Sales = append(copied.Sales, *sale)
			}
		}
		products = append(products, copied)
	}
	return products, nil
}

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *Store) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.SKU != nil && *p.SKU == sku {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) FindRecent(_ context.Context, userID uuid.UUID, limit int) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []model.Product
	for _, p := range s.products {
		if s.userOwnsProduct(p, userID) {
			products = append(products, *p)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (s *Store) CategoryUsage(_ context.Context, userID uuid.UUID, category string, excludeID uuid.UUID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var usage float64
	for _, p := range s.products {
		if p.ID == excludeID || p.Category != category || !s.userOwnsProduct(p, userID) {
			continue
		}
		usage += engine.ProductionSpend(p.ProductionCost, p.UnitProduction)
	}
	return usage, nil
}

func (s *Store) Save(_ context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&product.BaseModel)
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *Store) UpsertBySKU(_ context.Context, product *model.Product) (bool, error) {
	if product.SKU == nil || *product.SKU == "" {
		return false, gorm.ErrInvalidData
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.products {
		if existing.SKU != nil && *existing.SKU == *product.SKU {
			existing.Name = product.Name
			existing.Description = product.Description
			existing.Category = product.Category
			existing.HPP = product.HPP
			existing.TargetMargin = product.TargetMargin
			existing.CurrentPrice = product.CurrentPrice
			existing.ProductionCost = product.ProductionCost
			existing.LaborCost = product.LaborCost
			existing.OverheadCost = product.OverheadCost
			existing.WasteFactor = product.WasteFactor
			existing.UnitProduction = product.UnitProduction
			existing.UpdatedAt = time.Now()
			*product = *existing
			return false, nil
		}
	}

	stamp(&product.BaseModel)
	copied := *product
	s.products[product.ID] = &copied
	return true, nil
}

// ---- InventoryRepository ----

func (s *Store) FindAllInventoryByUser(_ context.Context, userID uuid.UUID) ([]model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []model.InventoryItem
	for _, item := range s.items {
		if item.UserID != userID {
			continue
		}
		copied := *item
		if p, ok := s.products[item.ProductID]; ok {
			productCopy := *p
			copied.Product = &productCopy
		}
		items = append(items, copied)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items, nil
}

func (s *Store) FindItemByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound("inventory item")
	}
	copied := *item
	if p, ok := s.products[item.ProductID]; ok {
		productCopy := *p
		copied.Product = &productCopy
	}
	return &copied, nil
}

func (s *Store) CreateWithProduct(_ context.Context, product *model.Product, item *model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&product.BaseModel)
	productCopy := *product
	s.products[product.ID] = &productCopy

	item.ProductID = product.ID
	item.ItemName = product.Name
	item.RecomputeReorderAlert()
	stamp(&item.BaseModel)
	itemCopy := *item
	s.items[item.ID] = &itemCopy
	return nil
}

func (s *Store) UpdateWithProduct(_ context.Context, item *model.InventoryItem, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.RecomputeReorderAlert()
	item.UpdatedAt = time.Now()
	itemCopy := *item
	itemCopy.Product = nil
	s.items[item.ID] = &itemCopy

	if product != nil {
		product.UpdatedAt = time.Now()
		productCopy := *product
		s.products[product.ID] = &productCopy
	}
	return nil
}

// ---- SaleRepository ----

func (s *Store) RecordSale(_ context.Context, productID uuid.UUID, quantity int) (*model.Sale, error) {
	if quantity <= 0 {
		return nil, apperr.Invalid("quantity must be greater than zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, apperr.NotFound("product")
	}

	var item *model.InventoryItem
	for _, candidate := range s.items {
		if candidate.ProductID == productID {
			item = candidate
			break
		}
	}
	if item == nil {
		return nil, apperr.NotFound("inventory item")
	}

	if item.CurrentStock < quantity {
		return nil, apperr.InsufficientStock(item.CurrentStock, quantity)
	}

	unitPrice := engine.SalePrice(product.HPP, product.TargetMargin)
	sale := &model.Sale{
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: unitPrice * float64(quantity),
		Date:       time.Now(),
	}
	stamp(&sale.BaseModel)
	s.sales = append(s.sales, sale)

	item.CurrentStock -= quantity
	item.RecomputeReorderAlert()
	item.UpdatedAt = time.Now()

	copied := *sale
	return &copied, nil
}

func (s *Store) FindRecentByUser(_ context.Context, userID uuid.UUID, limit int) ([]model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sales []model.Sale
	for _, sale := range s.sales {
		p, ok := s.products[sale.ProductID]
		if !ok || !s.userOwnsProduct(p, userID) {
			continue
		}
		copied := *sale
		productCopy := *p
		copied.Product = &productCopy
		sales = append(sales, copied)
	}
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].Date.After(sales[j].Date)
	})
	if limit > 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

func (s *Store) RevenueSince(_ context.Context, userID uuid.UUID, since time.Time) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var revenue float64
	for _, sale := range s.sales {
		p, ok := s.products[sale.ProductID]
		if !ok || !s.userOwnsProduct(p, userID) {
			continue
		}
		if !sale.Date.Before(since) {
			revenue += sale.TotalPrice
		}
	}
	return revenue, nil
}

// SaleCount reports ledger length, for asserting no partial effects in tests.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

// ---- BudgetRepository ----

func (s *Store) FindAllBudgetsByUser(_ context.Context, userID uuid.UUID) ([]model.CategoryBudget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var budgets []model.CategoryBudget
	for _, b := range s.budgets {
		if b.UserID == userID {
			budgets = append(budgets, *b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].Category < budgets[j].Category
	})
	return budgets, nil
}

func (s *Store) FindByCategory(_ context.Context, userID uuid.UUID, category string) (*model.CategoryBudget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[budgetKey(userID, category)]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (s *Store) Upsert(_ context.Context, userID uuid.UUID, category string, amount float64, mode string) (*model.CategoryBudget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := budgetKey(userID, category)
	if existing, ok := s.budgets[key]; ok {
		if mode == model.BudgetModeAdd {
			existing.Amount += amount
		} else {
			existing.Amount = amount
		}
		existing.UpdatedAt = time.Now()
		copied := *existing
		return &copied, nil
	}

	budget := &model.CategoryBudget{UserID: userID, Category: category, Amount: amount}
	stamp(&budget.BaseModel)
	s.budgets[key] = budget
	copied := *budget
	return &copied, nil
}

// ---- repository interface views ----
//
// A single Store backs every repository; these adapters resolve the method
// name collisions between interfaces (FindAllByUser etc).

type inventoryStore struct{ *Store }

func (s inventoryStore) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error) {
	return s.Store.FindAllInventoryByUser(ctx, userID)
}

func (s inventoryStore) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	return s.Store.FindItemByID(ctx, id)
}

type budgetStore struct{ *Store }

func (s budgetStore) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.CategoryBudget, error) {
	return s.Store.FindAllBudgetsByUser(ctx, userID)
}

// Users views the store as a repository.UserRepository.
func (s *Store) Users() repository.UserRepository { return s }

// Products views the store as a repository.ProductRepository.
func (s *Store) Products() repository.ProductRepository { return s }

// Inventories views the store as a repository.InventoryRepository.
func (s *Store) Inventories() repository.InventoryRepository { return inventoryStore{s} }

// Sales views the store as a repository.SaleRepository.
func (s *Store) Sales() repository.SaleRepository { return s }

// Budgets views the store as a repository.BudgetRepository.
func (s *Store) Budgets() repository.BudgetRepository { return budgetStore{s} }
