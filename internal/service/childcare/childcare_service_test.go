package childcare

import (
	"testing"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/datasets/datasetstest"
	"github.com/ougirez/territory-stats/internal/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) *Service {
	primary := datasetstest.Table(t, datasets.ChildcareCommune,
		"CODGEO;ANNEE;TAUX_GLOBAL;TAUX_EAJE;TAUX_AM;TAUX_PRESCO;TAUX_GARDE_DOM",
		"59350;2021;60.5;30.1;20.2;5.1;5.1",
	)
	history := datasetstest.Table(t, datasets.ChildcareHistory,
		"NUM_COM;ANNEE;TAUX_COUV_GLOBAL;TAUX_COUV_EAJE;TAUX_COUV_AM;TAUX_COUV_PRESCO;TAUX_COUV_GARDE_DOM",
		"59350;2019;55;28;19;4;4",
		"59009;2019;48;20;22;3;3",
		"59009;2020;50;21;23;3;3",
	)
	region := datasetstest.Table(t, datasets.ChildcareRegion,
		"CODGEO;ANNEE;TAUX_GLOBAL;TAUX_EAJE;TAUX_AM;TAUX_PRESCO;TAUX_GARDE_DOM",
		"32;2021;58;25;26;4;3",
	)

	return NewChildcareService(map[domain.Level]*table.Table{
		domain.LevelCommune: primary,
		domain.LevelRegion:  region,
	}, history)
}

func TestService_Read_Primary(t *testing.T) {
	res := fixture(t).Read(domain.LevelCommune, "59350", nil)

	// The commune is in the primary table, so its history rows are not mixed in.
	require.Len(t, res, 1)
	assert.Equal(t, 60.5, res[2021].GlobalRate)
	assert.Equal(t, domain.ChildcareSourcePrimary, res[2021].Source)
}

func TestService_Read_HistoryFallback(t *testing.T) {
	res := fixture(t).Read(domain.LevelCommune, "59009", &domain.YearRange{Start: 2020, End: 2022})

	require.Len(t, res, 1)
	assert.Equal(t, 50.0, res[2020].GlobalRate)
	assert.Equal(t, 21.0, res[2020].CollectiveRate)
	assert.Equal(t, domain.ChildcareSourceHistory, res[2020].Source)
}

func TestService_Read_UpperLevel(t *testing.T) {
	s := fixture(t)

	assert.Equal(t, 58.0, s.Read(domain.LevelRegion, "32", nil)[2021].GlobalRate)
	assert.True(t, s.Available(domain.LevelRegion))
	assert.False(t, s.Available(domain.LevelDepartment))
	assert.Empty(t, s.Read(domain.LevelDepartment, "59", nil))
}

func TestService_Available_HistoryOnly(t *testing.T) {
	s := NewChildcareService(nil, datasetstest.Table(t, datasets.ChildcareHistory,
		"NUM_COM;ANNEE;TAUX_COUV_GLOBAL;TAUX_COUV_EAJE;TAUX_COUV_AM;TAUX_COUV_PRESCO;TAUX_COUV_GARDE_DOM",
		"59009;2019;48;20;22;3;3",
	))

	assert.True(t, s.Available(domain.LevelCommune))
	assert.Equal(t, 48.0, s.Read(domain.LevelCommune, "59009", nil)[2019].GlobalRate)
}
