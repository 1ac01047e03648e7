package genetics

import (
	"encoding/json"
	"testing"

	"heredity/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesAreValid(t *testing.T) {
	tables := DefaultTables()
	require.NoError(t, tables.Validate())

	assert.Equal(t, 0.96, tables.GenePrior(ZeroCopies))
	assert.Equal(t, 0.03, tables.GenePrior(OneCopy))
	assert.Equal(t, 0.01, tables.GenePrior(TwoCopies))
	assert.Equal(t, 0.65, tables.TraitProbability(TwoCopies, HasTrait))
	assert.Equal(t, 0.44, tables.TraitProbability(OneCopy, NoTrait))
	assert.Equal(t, 0.01, tables.TraitProbability(ZeroCopies, HasTrait))
}

func TestTablesValidateRejectsBadRows(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tables)
	}{
		{"gene prior does not sum to one", func(t *Tables) { t.Gene[TwoCopies] = 0.5 }},
		{"negative trait probability", func(t *Tables) { t.Trait[OneCopy] = [2]float64{1.5, -0.5} }},
		{"mutation above one", func(t *Tables) { t.Mutation = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := DefaultTables()
			tt.mutate(&tables)
			assert.ErrorIs(t, tables.Validate(), core.ErrInvalidTables)
		})
	}
}

func TestTransmissionProbability(t *testing.T) {
	tables := DefaultTables()
	assert.Equal(t, 0.01, tables.TransmissionProbability(ZeroCopies))
	assert.Equal(t, 0.5, tables.TransmissionProbability(OneCopy))
	assert.Equal(t, 0.99, tables.TransmissionProbability(TwoCopies))
}

func TestPosteriorJSON(t *testing.T) {
	p := Posterior{
		Person: "Lily",
		Gene:   GeneDistribution{0.5, 0.25, 0.25},
		Trait:  TraitDistribution{NoTrait: 0, HasTrait: 1},
	}

	encoded, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"person":"Lily","gene":{"0":0.5,"1":0.25,"2":0.25},"trait":{"true":1,"false":0}}`, string(encoded))

	var decoded Posterior
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, p, decoded)
	assert.InDelta(t, 0.75, decoded.Gene.Expected(), 1e-12)
}
