package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"aurora/web/internal/ids"
	"aurora/web/internal/models"
	"aurora/web/internal/store"
)

const newsKey = "aurora:news"

var ErrNewsNotFound = errors.New("news item not found")

type NewsService struct {
	store  store.RecordStore
	mu     sync.Mutex
	seeded bool
}

func NewNewsService(recordStore store.RecordStore) *NewsService {
	return &NewsService{store: recordStore}
}

func seedNews() []models.NewsItem {
	return []models.NewsItem{
		{
			ID:        "seed-news-1",
			Title:     "Winter Event Now Live!",
			Content:   "Join our winter celebration with special rewards, snow-themed builds, and limited-time items. Event runs until January 31st!",
			Category:  "Event",
			Date:      "2024-01-15",
			Published: true,
		},
		{
			ID:        "seed-news-2",
			Title:     "Server Update 1.20.4",
			Content:   "Updated to Minecraft 1.20.4 with performance improvements, new features, and bug fixes. Check out the new content!",
			Category:  "Update",
			Date:      "2024-01-10",
			Published: true,
		},
	}
}

func (s *NewsService) ensureSeeded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return nil
	}
	if _, err := s.store.Get(ctx, newsKey); err == nil {
		s.seeded = true
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if err := s.save(ctx, models.NewsCollection{Items: seedNews()}); err != nil {
		return err
	}
	s.seeded = true
	return nil
}

func (s *NewsService) load(ctx context.Context) (models.NewsCollection, error) {
	raw, err := s.store.Get(ctx, newsKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.NewsCollection{SchemaVersion: 1}, nil
		}
		return models.NewsCollection{}, err
	}

	var col models.NewsCollection
	if err := json.Unmarshal(raw, &col); err != nil {
		return models.NewsCollection{SchemaVersion: 1}, nil
	}
	return col, nil
}

func (s *NewsService) save(ctx context.Context, col models.NewsCollection) error {
	col.SchemaVersion = 1
	raw, err := json.Marshal(col)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, newsKey, raw)
}

// List returns all news items in insertion order. Public callers
// filter on publishedOnly.
func (s *NewsService) List(ctx context.Context, publishedOnly bool) ([]models.NewsItem, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	col, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !publishedOnly {
		return col.Items, nil
	}

	published := make([]models.NewsItem, 0, len(col.Items))
	for _, item := range col.Items {
		if item.Published {
			published = append(published, item)
		}
	}
	return published, nil
}

type NewsInput struct {
	Title    string
	Content  string
	Category string
	Date     string
}

func (s *NewsService) Create(ctx context.Context, input NewsInput) (models.NewsItem, error) {
	if input.Title == "" || input.Content == "" {
		return models.NewsItem{}, errors.New("title and content are required")
	}
	if err := s.ensureSeeded(ctx); err != nil {
		return models.NewsItem{}, err
	}

	item := models.NewsItem{
		ID:        ids.New(),
		Title:     input.Title,
		Content:   input.Content,
		Category:  input.Category,
		Date:      input.Date,
		Published: true,
	}
	if item.Date == "" {
		item.Date = time.Now().UTC().Format("2006-01-02")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.load(ctx)
	if err != nil {
		return models.NewsItem{}, err
	}
	col.Items = append(col.Items, item)
	if err := s.save(ctx, col); err != nil {
		return models.NewsItem{}, err
	}
	return item, nil
}

func (s *NewsService) Update(ctx context.Context, id string, input NewsInput, published *bool) (models.NewsItem, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return models.NewsItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.load(ctx)
	if err != nil {
		return models.NewsItem{}, err
	}
	for i := range col.Items {
		if col.Items[i].ID != id {
			continue
		}
		if input.Title != "" {
			col.Items[i].Title = input.Title
		}
		if input.Content != "" {
			col.Items[i].Content = input.Content
		}
		if input.Category != "" {
			col.Items[i].Category = input.Category
		}
		if input.Date != "" {
			col.Items[i].Date = input.Date
		}
		if published != nil {
			col.Items[i].Published = *published
		}
		if err := s.save(ctx, col); err != nil {
			return models.NewsItem{}, err
		}
		return col.Items[i], nil
	}
	return models.NewsItem{}, ErrNewsNotFound
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	if err := s.ensureSeeded(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range col.Items {
		if col.Items[i].ID == id {
			col.Items = append(col.Items[:i], col.Items[i+1:]...)
			return s.save(ctx, col)
		}
	}
	return ErrNewsNotFound
}
