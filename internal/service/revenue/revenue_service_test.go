package revenue

import (
	"testing"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/datasets/datasetstest"
	"github.com/ougirez/territory-stats/internal/pkg/table"
	"github.com/stretchr/testify/assert"
)

func fixture(t *testing.T) *Service {
	return NewRevenueService(map[domain.Level]*table.Table{
		domain.LevelCommune: datasetstest.Table(t, datasets.RevenueCommune,
			"CODGEO;ANNEE;MED;D1;D9;TP60",
			"59350;2020;19850;8000;40000;25,9",
			"59350;2020;1;1;1;1",
			"59350;2021;20300;8200;41000;25.1",
		),
		domain.LevelDepartment: datasetstest.Table(t, datasets.RevenueDepartment,
			"CODGEO;ANNEE;MED;D1;D9;TP60",
			"1;2020;23000;11000;42000;10.2",
		),
		domain.LevelCountry: datasetstest.Table(t, datasets.RevenueFrance,
			"ANNEE;MED;D1;D9;TP60",
			"2020;22400;11300;39800;14.6",
		),
	})
}

func TestService_Read(t *testing.T) {
	s := fixture(t)

	res := s.Read(domain.LevelCommune, "59350", nil)
	assert.Len(t, res, 2)
	assert.Equal(t, domain.RevenueRecord{
		MedianIncome: 19850, FirstDecile: 8000, NinthDecile: 40000, PovertyRate: 25.9,
	}, res[2020], "first row wins")

	res = s.Read(domain.LevelCommune, "59350", &domain.YearRange{Start: 2021, End: 2021})
	assert.Len(t, res, 1)
	assert.Equal(t, 20300.0, res[2021].MedianIncome)
}

func TestService_Read_Levels(t *testing.T) {
	s := fixture(t)

	assert.Equal(t, 23000.0, s.Read(domain.LevelDepartment, "01", nil)[2020].MedianIncome)
	assert.Equal(t, 22400.0, s.Read(domain.LevelCountry, "FR", nil)[2020].MedianIncome)

	assert.False(t, s.Available(domain.LevelRegion))
	assert.Empty(t, s.Read(domain.LevelRegion, "32", nil))
}
