package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mercadopago/sdk-go/pkg/customer"
	"github.com/mercadopago/sdk-go/pkg/customercard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----- Fakes -----

type fakeCustomerClient struct {
	profile *customer.Response
	getErr  error
}

func (f *fakeCustomerClient) Create(_ context.Context, _ customer.Request) (*customer.Response, error) {
	return nil, errors.New("not used")
}

func (f *fakeCustomerClient) Search(_ context.Context, _ customer.SearchRequest) (*customer.SearchResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeCustomerClient) Get(_ context.Context, _ string) (*customer.Response, error) {
	return f.profile, f.getErr
}

func (f *fakeCustomerClient) Update(_ context.Context, _ string, _ customer.Request) (*customer.Response, error) {
	return nil, errors.New("not used")
}

type fakeCardClient struct {
	cards []customercard.Response
}

func (f *fakeCardClient) Create(_ context.Context, _ string, _ customercard.Request) (*customercard.Response, error) {
	return nil, errors.New("not used")
}

func (f *fakeCardClient) Get(_ context.Context, _, _ string) (*customercard.Response, error) {
	return nil, errors.New("not used")
}

func (f *fakeCardClient) Update(_ context.Context, _, _ string, _ customercard.Request) (*customercard.Response, error) {
	return nil, errors.New("not used")
}

func (f *fakeCardClient) Delete(_ context.Context, _, _ string) (*customercard.Response, error) {
	return nil, errors.New("not used")
}

func (f *fakeCardClient) List(_ context.Context, _ string) ([]customercard.Response, error) {
	return f.cards, nil
}

// ----- Tests -----

func storedCards(now time.Time) []customercard.Response {
	return []customercard.Response{
		{
			ID:              "card_1",
			LastFourDigits:  "1111",
			ExpirationMonth: 12,
			ExpirationYear:  now.Year() + 1,
			DateCreated:     now.Add(-time.Hour),
			PaymentMethod:   customercard.PaymentMethodResponse{Name: "visa"},
		},
		{
			ID:              "card_2",
			LastFourDigits:  "2222",
			ExpirationMonth: 12,
			ExpirationYear:  now.Year() + 2,
			DateCreated:     now,
			PaymentMethod:   customercard.PaymentMethodResponse{Name: "master"},
		},
	}
}

func TestMercadoPago_ListCardsMarksCustomerDefault(t *testing.T) {
	now := time.Now()
	mp := &MercadoPago{
		customers: &fakeCustomerClient{profile: &customer.Response{DefaultCard: "card_2"}},
		cards:     &fakeCardClient{cards: storedCards(now)},
	}

	cards, err := mp.ListCards(context.Background(), "prof_9")
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.False(t, cards[0].Default)
	assert.Equal(t, "visa", cards[0].Brand)
	assert.Equal(t, "1111", cards[0].Last4)

	assert.True(t, cards[1].Default)
	assert.Equal(t, "master", cards[1].Brand)
}

func TestMercadoPago_ListCardsSurvivesProfileLookupFailure(t *testing.T) {
	now := time.Now()
	mp := &MercadoPago{
		customers: &fakeCustomerClient{getErr: errors.New("processor down")},
		cards:     &fakeCardClient{cards: storedCards(now)},
	}

	cards, err := mp.ListCards(context.Background(), "prof_9")
	require.NoError(t, err)
	require.Len(t, cards, 2)

	// No default information, but the listing still comes through.
	for _, c := range cards {
		assert.False(t, c.Default)
	}
}
