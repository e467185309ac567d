package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainarb/arbscan/internal/domain"
)

func TestReplaceAndResolve(t *testing.T) {
	s := NewStore()

	_, err := s.Resolve("missing")
	assert.ErrorIs(t, err, domain.ErrStaleOpportunity)

	s.Replace([]domain.Opportunity{
		{ID: "a", EstProfitUSD: 10},
		{ID: "b", EstProfitUSD: 5},
	})
	assert.Equal(t, 2, s.Len())

	o, err := s.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, 10.0, o.EstProfitUSD)
}

func TestReplaceInvalidatesPreviousSnapshot(t *testing.T) {
	s := NewStore()
	s.Replace([]domain.Opportunity{{ID: "old"}})

	s.Replace([]domain.Opportunity{{ID: "new"}})

	_, err := s.Resolve("old")
	assert.ErrorIs(t, err, domain.ErrStaleOpportunity)

	_, err = s.Resolve("new")
	assert.NoError(t, err)
}

func TestListReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Replace([]domain.Opportunity{{ID: "a"}, {ID: "b"}})

	list := s.List()
	list[0].ID = "mutated"

	fresh := s.List()
	assert.Equal(t, "a", fresh[0].ID)
}
