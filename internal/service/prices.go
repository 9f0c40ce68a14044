package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"aurora/web/internal/models"
	"aurora/web/internal/store"
)

const pricesKey = "aurora:prices"

var ErrPriceNotFound = errors.New("price item not found")

type PriceService struct {
	store  store.RecordStore
	mu     sync.Mutex
	seeded bool
}

func NewPriceService(recordStore store.RecordStore) *PriceService {
	return &PriceService{store: recordStore}
}

func seedPrices() []models.PriceItem {
	return []models.PriceItem{
		{ID: "price-1", Name: "VIP", Category: models.PriceRanks, Price: "$5.99", Description: "Basic VIP rank"},
		{ID: "price-2", Name: "VIP+", Category: models.PriceRanks, Price: "$9.99", Description: "Enhanced VIP rank"},
		{ID: "price-3", Name: "MVP", Category: models.PriceRanks, Price: "$19.99", Description: "MVP rank with perks"},
		{ID: "price-4", Name: "MVP+", Category: models.PriceRanks, Price: "$29.99", Description: "Ultimate MVP rank"},
		{ID: "price-5", Name: "1,000 Coins", Category: models.PriceCoins, Price: "$2.99", Description: "Aurora Coins"},
		{ID: "price-6", Name: "5,000 Coins", Category: models.PriceCoins, Price: "$12.99", Description: "Aurora Coins + bonus"},
		{ID: "price-7", Name: "Starter Kit", Category: models.PriceItems, Price: "$3.99", Description: "Perfect for new players"},
		{ID: "price-8", Name: "Ultimate Package", Category: models.PriceItems, Price: "$24.99", Description: "Complete experience"},
	}
}

func (s *PriceService) ensureSeeded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return nil
	}
	if _, err := s.store.Get(ctx, pricesKey); err == nil {
		s.seeded = true
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if err := s.save(ctx, models.PriceCollection{Items: seedPrices()}); err != nil {
		return err
	}
	s.seeded = true
	return nil
}

func (s *PriceService) load(ctx context.Context) (models.PriceCollection, error) {
	raw, err := s.store.Get(ctx, pricesKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PriceCollection{SchemaVersion: 1}, nil
		}
		return models.PriceCollection{}, err
	}

	var col models.PriceCollection
	if err := json.Unmarshal(raw, &col); err != nil {
		return models.PriceCollection{SchemaVersion: 1}, nil
	}
	return col, nil
}

func (s *PriceService) save(ctx context.Context, col models.PriceCollection) error {
	col.SchemaVersion = 1
	raw, err := json.Marshal(col)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, pricesKey, raw)
}

func (s *PriceService) List(ctx context.Context) ([]models.PriceItem, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	col, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return col.Items, nil
}

// UpdatePrice changes the display price of one catalog entry. Only
// the price field is editable after seeding.
func (s *PriceService) UpdatePrice(ctx context.Context, id string, price string) (models.PriceItem, error) {
	price = strings.TrimSpace(price)
	if price == "" {
		return models.PriceItem{}, errors.New("price required")
	}
	if err := s.ensureSeeded(ctx); err != nil {
		return models.PriceItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.load(ctx)
	if err != nil {
		return models.PriceItem{}, err
	}
	for i := range col.Items {
		if col.Items[i].ID == id {
			col.Items[i].Price = price
			if err := s.save(ctx, col); err != nil {
				return models.PriceItem{}, err
			}
			return col.Items[i], nil
		}
	}
	return models.PriceItem{}, ErrPriceNotFound
}
