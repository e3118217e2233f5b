package geocoding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGeocoder(t *testing.T) {
	m := NewMockGeocoder([]MockPlace{
		{Query: "Napoli", Name: "Napoli", Country: "Italia", Lat: 40.85, Lon: 14.27},
		{Query: "Napoli", Name: "Napoli (FL)", Country: "US", Lat: 26.14, Lon: -81.79},
	})
	m.Fail("Atlantis", &Error{Kind: KindProvider, Provider: ProviderMock, Query: "Atlantis", Err: errors.New("down")})

	ctx := context.Background()

	got, err := m.Geocode(ctx, "  napoli ", "it")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Napoli", got[0].DisplayName)

	got, err = m.Geocode(ctx, "Atlantis", "it")
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrProvider)

	got, err = m.Geocode(ctx, "Nowhere", "it")
	assert.NoError(t, err)
	assert.Empty(t, got)

	got, err = m.Geocode(ctx, " ", "it")
	assert.NoError(t, err)
	assert.Empty(t, got)

	assert.Equal(t, 3, m.Calls())
}

func TestMockGeocoderDelayHonorsContext(t *testing.T) {
	m := NewMockGeocoder([]MockPlace{{Query: "Roma", Lat: 41.9, Lon: 12.5}}).Delay("Roma", time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	got, err := m.Geocode(ctx, "Roma", "it")
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
