package families

import (
	"testing"

	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/datasets/datasetstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) *Service {
	return NewFamiliesService(datasetstest.Table(t, datasets.Families,
		"CODGEO;ANNEE;C_MEN;C_COUPAENF;C_FAMMONO;C_HMONO;C_FMONO;C_COUPSENF",
		"59350;2015;80;30;10;2;8;20",
		"59350;2020;100;40;12;3;9;25",
		"59009;2020;200;60;20;5;15;50",
	))
}

func TestService_Aggregate_EPCI(t *testing.T) {
	res := fixture(t).Aggregate([]string{"59350", "59009"}, nil)
	require.Contains(t, res, 2020)

	rec := res[2020]
	assert.Equal(t, 300.0, rec.TotalHouseholds)
	assert.Equal(t, 100.0, rec.CouplesWithChildren)
	assert.Equal(t, 33.3, rec.Percentages.CouplesWithChildren)
	assert.Equal(t, 10.7, rec.Percentages.SingleParents)
	assert.Equal(t, 25.0, rec.Percentages.CouplesWithoutChildren)
}

func TestEvolution(t *testing.T) {
	res := fixture(t).Aggregate([]string{"59350"}, nil)

	evo := Evolution(res)
	require.Contains(t, evo, "total_households")

	hh := evo["total_households"]
	assert.Equal(t, 80.0, hh.StartValue)
	assert.Equal(t, 100.0, hh.EndValue)
	assert.Equal(t, 25.0, hh.EvolutionPercentage)
	assert.Equal(t, "2015-2020", hh.Period)
}

func TestEvolution_SingleYear(t *testing.T) {
	res := fixture(t).Aggregate([]string{"59009"}, nil)

	assert.Nil(t, Evolution(res))
}

func TestEvolution_ZeroStart(t *testing.T) {
	s := NewFamiliesService(datasetstest.Table(t, datasets.Families,
		"CODGEO;ANNEE;C_MEN;C_COUPAENF;C_FAMMONO;C_HMONO;C_FMONO;C_COUPSENF",
		"59350;2015;0;0;0;0;0;0",
		"59350;2020;10;4;1;0;1;5",
	))

	evo := Evolution(s.Aggregate([]string{"59350"}, nil))
	assert.Equal(t, 0.0, evo["total_households"].EvolutionPercentage)
}
