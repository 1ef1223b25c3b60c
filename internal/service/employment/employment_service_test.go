package employment

import (
	"testing"

	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/datasets/datasetstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Aggregate(t *testing.T) {
	activity := datasetstest.Table(t, datasets.EmploymentActivity,
		"CODGEO;ANNEE;P_POP1564;P_ACT1564;P_ACTOCC1564;P_CHOM1564",
		"59350;2020;1000;700;600;100",
		"59009;2020;500;300;270;30",
		"59350;2019;900;600;500;100",
	)
	characteristics := datasetstest.Table(t, datasets.EmploymentCharacteristics,
		"CODGEO;ANNEE;P_F2554;P_F2554_ACT",
		"59350;2020;300;240",
		"59009;2020;100;80",
		"59350;2021;310;250",
	)

	res := NewEmploymentService(activity, characteristics).Aggregate([]string{"59350", "59009"}, nil)
	require.Len(t, res, 3, "years of both tables are kept")

	rec := res[2020]
	assert.Equal(t, 1500.0, rec.Population1564)
	assert.Equal(t, 66.7, rec.ActivityRate)
	assert.Equal(t, 58.0, rec.EmploymentRate)
	assert.Equal(t, 13.0, rec.UnemploymentRate)
	assert.Equal(t, 80.0, rec.WomenActivityRate)

	assert.Equal(t, 0.0, res[2019].WomenActivityRate)
	assert.Equal(t, 0.0, res[2021].ActivityRate)
	assert.Equal(t, 80.6, res[2021].WomenActivityRate)
}

func TestService_Available(t *testing.T) {
	activity := datasetstest.Table(t, datasets.EmploymentActivity,
		"CODGEO;ANNEE;P_POP1564;P_ACT1564;P_ACTOCC1564;P_CHOM1564",
		"59350;2020;1000;700;600;100",
	)
	characteristics := datasetstest.Table(t, datasets.EmploymentCharacteristics,
		"CODGEO;ANNEE;P_F2554;P_F2554_ACT",
		"59350;2020;300;240",
	)

	assert.False(t, NewEmploymentService(nil, nil).Available())
	assert.True(t, NewEmploymentService(activity, characteristics).Available())

	for name, s := range map[string]*Service{
		"activity missing":        NewEmploymentService(nil, characteristics),
		"characteristics missing": NewEmploymentService(activity, nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, s.Available())
			assert.Empty(t, s.Aggregate([]string{"59350"}, nil), "no zeros for a table that was never loaded")
		})
	}
}
