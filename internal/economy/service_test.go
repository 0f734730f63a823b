package economy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/state"
	"github.com/osse101/IdleTracker_Go/internal/testing/fixtures"
)

func setup(t *testing.T, coins int64, choppingLevel int) (Service, *state.Store, *MockAccruer) {
	t.Helper()
	cat := fixtures.Catalog()
	st := state.NewDefault(cat)
	st.Coins = coins
	st.Skills[fixtures.SkillChopping].Level = choppingLevel

	store := state.NewStore(st, nil)
	acc := &MockAccruer{}
	acc.On("Accrue", mock.Anything).Return(nil, nil).Maybe()
	return NewService(store, cat, acc, nil), store, acc
}

func TestBuyTitle_Success(t *testing.T) {
	svc, store, acc := setup(t, 150, 2)

	title, err := svc.BuyTitle(context.Background(), fixtures.TitleBadge)
	require.NoError(t, err)
	assert.Equal(t, fixtures.TitleBadge, title.ID)

	st := store.Snapshot()
	assert.Equal(t, int64(50), st.Coins)
	assert.Contains(t, st.PurchasedTitles, fixtures.TitleBadge)
	assert.Equal(t, domain.TitleNone, st.EquippedTitle, "buying does not equip")
	acc.AssertCalled(t, "Accrue", mock.Anything)
}

func TestBuyTitle_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		coins   int64
		level   int
		title   string
		wantErr error
	}{
		{"insufficient funds", 99, 2, fixtures.TitleBadge, domain.ErrInsufficientFunds},
		{"requirement not met", 500, 1, fixtures.TitleBadge, domain.ErrRequirementNotMet},
		{"free title", 500, 2, domain.TitleNovice, domain.ErrTitleAlreadyOwned},
		{"unknown title", 500, 2, "emperor", domain.ErrTitleNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := setup(t, tt.coins, tt.level)

			_, err := svc.BuyTitle(context.Background(), tt.title)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.coins, store.Snapshot().Coins, "a rejected purchase leaves the balance untouched")
			assert.Equal(t, uint64(0), store.Revision())
		})
	}
}

func TestBuyTitle_AlreadyOwned(t *testing.T) {
	svc, store, _ := setup(t, 300, 2)

	_, err := svc.BuyTitle(context.Background(), fixtures.TitleBadge)
	require.NoError(t, err)
	_, err = svc.BuyTitle(context.Background(), fixtures.TitleBadge)
	assert.ErrorIs(t, err, domain.ErrTitleAlreadyOwned)
	assert.Equal(t, int64(200), store.Snapshot().Coins)
}

func TestBuyTitle_FlushFailure(t *testing.T) {
	cat := fixtures.Catalog()
	store := state.NewStore(state.NewDefault(cat), nil)
	acc := &MockAccruer{}
	acc.On("Accrue", mock.Anything).Return(nil, errors.New("store closed"))

	_, err := NewService(store, cat, acc, nil).BuyTitle(context.Background(), fixtures.TitleBadge)
	assert.ErrorContains(t, err, "store closed")
}

func TestBuyTitle_ConcurrentPurchasesDebitOnce(t *testing.T) {
	svc, store, _ := setup(t, 100, 2)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.BuyTitle(context.Background(), fixtures.TitleBadge); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(0), store.Snapshot().Coins)
}

func TestEquipTitle(t *testing.T) {
	svc, store, _ := setup(t, 100, 2)

	_, err := svc.EquipTitle(context.Background(), fixtures.TitleBadge)
	assert.ErrorIs(t, err, domain.ErrTitleNotOwned)

	_, err = svc.EquipTitle(context.Background(), domain.TitleNovice)
	require.NoError(t, err)
	assert.Equal(t, domain.TitleNovice, store.Snapshot().EquippedTitle)

	_, err = svc.BuyTitle(context.Background(), fixtures.TitleBadge)
	require.NoError(t, err)
	_, err = svc.EquipTitle(context.Background(), fixtures.TitleBadge)
	require.NoError(t, err)
	assert.Equal(t, fixtures.TitleBadge, store.Snapshot().EquippedTitle)
}

func TestListTitles(t *testing.T) {
	svc, _, _ := setup(t, 120, 1)

	listings, err := svc.ListTitles(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 3)

	byID := map[string]TitleListing{}
	for _, l := range listings {
		byID[l.ID] = l
	}
	assert.True(t, byID[domain.TitleNone].Owned)
	assert.True(t, byID[domain.TitleNone].Equipped)
	assert.True(t, byID[domain.TitleNovice].Owned)

	badge := byID[fixtures.TitleBadge]
	assert.False(t, badge.Owned)
	assert.True(t, badge.Affordable)
	assert.False(t, badge.RequirementMet)
}

func TestPurchasePublishesEvent(t *testing.T) {
	cat := fixtures.Catalog()
	st := state.NewDefault(cat)
	st.Coins = 100
	st.Skills[fixtures.SkillChopping].Level = 3
	bus := event.NewMemoryBus()

	var got []event.Type
	event.SubscribeAll(bus, func(_ context.Context, evt event.Event) error {
		got = append(got, evt.Type)
		return nil
	})

	svc := NewService(state.NewStore(st, nil), cat, nil, bus)
	_, err := svc.BuyTitle(context.Background(), fixtures.TitleBadge)
	require.NoError(t, err)
	_, err = svc.EquipTitle(context.Background(), fixtures.TitleBadge)
	require.NoError(t, err)

	assert.Equal(t, []event.Type{event.TitlePurchased, event.TitleEquipped}, got)
}

func TestBalance(t *testing.T) {
	svc, _, _ := setup(t, 42, 1)
	coins, err := svc.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), coins)
}
