package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nutriswap/backend/internal/domain"
	"go.uber.org/zap"
)

// MockFavoriteStore is an in-memory implementation of domain.FavoriteStore
type MockFavoriteStore struct {
	mu       sync.Mutex
	pairings []domain.FavoritePairing
}

func NewMockFavoriteStore() *MockFavoriteStore {
	return &MockFavoriteStore{}
}

func (m *MockFavoriteStore) AllForUser(ctx context.Context, userID string) ([]domain.FavoritePairing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.FavoritePairing
	for _, p := range m.pairings {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockFavoriteStore) InsertIfAbsent(ctx context.Context, pairing domain.FavoritePairing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pairings {
		if p == pairing {
			return nil
		}
	}
	m.pairings = append(m.pairings, pairing)
	return nil
}

func (m *MockFavoriteStore) Delete(ctx context.Context, pairing domain.FavoritePairing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.pairings {
		if p == pairing {
			m.pairings = append(m.pairings[:i], m.pairings[i+1:]...)
			return nil
		}
	}
	return domain.ErrFavoriteNotFound
}

func (m *MockFavoriteStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pairings)
}

func newFavoriteService(products *MockProductStore, favorites *MockFavoriteStore) *FavoriteService {
	return NewFavoriteService(products, favorites, zap.NewNop())
}

func TestFavoriteAdd(t *testing.T) {
	t.Run("stores a pairing for existing products", func(t *testing.T) {
		products := NewMockProductStore()
		products.Seed("123", storedProduct("123", "Original"))
		products.Seed("456", storedProduct("456", "Substitute"))
		favorites := NewMockFavoriteStore()

		svc := newFavoriteService(products, favorites)

		if err := svc.Add(context.Background(), "alice", "123", "456"); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
		if favorites.Len() != 1 {
			t.Errorf("stored pairings = %d, want 1", favorites.Len())
		}
	})

	t.Run("duplicate add is a no-op", func(t *testing.T) {
		products := NewMockProductStore()
		products.Seed("123", storedProduct("123", "Original"))
		products.Seed("456", storedProduct("456", "Substitute"))
		favorites := NewMockFavoriteStore()

		svc := newFavoriteService(products, favorites)

		for i := 0; i < 2; i++ {
			if err := svc.Add(context.Background(), "alice", "123", "456"); err != nil {
				t.Fatalf("Add returned error: %v", err)
			}
		}
		if favorites.Len() != 1 {
			t.Errorf("stored pairings = %d, want exactly 1", favorites.Len())
		}
	})

	t.Run("rejects unknown product codes", func(t *testing.T) {
		products := NewMockProductStore()
		products.Seed("123", storedProduct("123", "Original"))
		favorites := NewMockFavoriteStore()

		svc := newFavoriteService(products, favorites)

		err := svc.Add(context.Background(), "alice", "123", "456")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("error = %v, want ErrProductNotFound", err)
		}
		if favorites.Len() != 0 {
			t.Error("no pairing must be stored when a code is unknown")
		}
	})

	t.Run("rejects blank arguments", func(t *testing.T) {
		svc := newFavoriteService(NewMockProductStore(), NewMockFavoriteStore())

		err := svc.Add(context.Background(), "", "123", "456")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})
}

func TestFavoriteRemove(t *testing.T) {
	t.Run("removes an exact match", func(t *testing.T) {
		products := NewMockProductStore()
		favorites := NewMockFavoriteStore()
		favorites.pairings = []domain.FavoritePairing{
			{UserID: "alice", ProductCode: "123", SubstituteCode: "456"},
		}

		svc := newFavoriteService(products, favorites)

		if err := svc.Remove(context.Background(), "alice", "123", "456"); err != nil {
			t.Fatalf("Remove returned error: %v", err)
		}
		if favorites.Len() != 0 {
			t.Error("pairing was not removed")
		}
	})

	t.Run("unknown user mutates nothing", func(t *testing.T) {
		products := NewMockProductStore()
		favorites := NewMockFavoriteStore()
		favorites.pairings = []domain.FavoritePairing{
			{UserID: "alice", ProductCode: "123", SubstituteCode: "456"},
		}

		svc := newFavoriteService(products, favorites)

		err := svc.Remove(context.Background(), "mallory", "123", "456")
		if !errors.Is(err, domain.ErrFavoriteNotFound) {
			t.Errorf("error = %v, want ErrFavoriteNotFound", err)
		}
		if favorites.Len() != 1 {
			t.Error("store must be untouched for an unknown user")
		}
	})
}

func TestFavoriteList(t *testing.T) {
	t.Run("resolves both records per pairing", func(t *testing.T) {
		products := NewMockProductStore()
		products.Seed("123", storedProduct("123", "Original"))
		products.Seed("456", storedProduct("456", "Substitute"))
		products.Seed("789", storedProduct("789", "Other"))
		favorites := NewMockFavoriteStore()
		favorites.pairings = []domain.FavoritePairing{
			{UserID: "alice", ProductCode: "123", SubstituteCode: "456"},
			{UserID: "alice", ProductCode: "123", SubstituteCode: "789"},
			{UserID: "bob", ProductCode: "456", SubstituteCode: "789"},
		}

		svc := newFavoriteService(products, favorites)

		entries, err := svc.List(context.Background(), "alice")
		if err != nil {
			t.Fatalf("List returned error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		if entries[0].Product.Name != "Original" || entries[0].Substitute.Name != "Substitute" {
			t.Errorf("entry 0 = %+v, want resolved records", entries[0])
		}
		if entries[1].Substitute.Name != "Other" {
			t.Errorf("entry 1 substitute = %q, want Other", entries[1].Substitute.Name)
		}
	})

	t.Run("skips pairings with vanished products", func(t *testing.T) {
		products := NewMockProductStore()
		products.Seed("123", storedProduct("123", "Original"))
		favorites := NewMockFavoriteStore()
		favorites.pairings = []domain.FavoritePairing{
			{UserID: "alice", ProductCode: "123", SubstituteCode: "gone"},
		}

		svc := newFavoriteService(products, favorites)

		entries, err := svc.List(context.Background(), "alice")
		if err != nil {
			t.Fatalf("List returned error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("got %d entries, want 0", len(entries))
		}
	})
}
