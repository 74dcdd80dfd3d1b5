package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestOfferProvider_Interface(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var _ OfferProvider = NewMockOfferProvider(ctrl)
}

func TestMockOfferProvider_SearchAirports(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("returns airports", func(t *testing.T) {
		mock := NewMockOfferProvider(ctrl)
		mock.EXPECT().SearchAirports(gomock.Any(), "lon").Return([]Airport{
			{IATACode: "LHR", Name: "Heathrow", City: "London"},
		}, nil)

		airports, err := mock.SearchAirports(context.Background(), "lon")

		assert.NoError(t, err)
		assert.Len(t, airports, 1)
	})

	t.Run("returns error when provider fails", func(t *testing.T) {
		mock := NewMockOfferProvider(ctrl)
		mock.EXPECT().SearchAirports(gomock.Any(), gomock.Any()).Return(nil, ErrProviderTimeout)

		airports, err := mock.SearchAirports(context.Background(), "lon")

		assert.ErrorIs(t, err, ErrProviderTimeout)
		assert.Nil(t, airports)
	})
}
