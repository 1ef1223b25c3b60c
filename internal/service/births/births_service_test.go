package births

import (
	"testing"

	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/datasets/datasetstest"
	"github.com/stretchr/testify/assert"
)

func TestService_Aggregate(t *testing.T) {
	s := NewBirthsService(datasetstest.Table(t, datasets.Births,
		"GEO;GEO_OBJECT;TIME_PERIOD;OBS_VALUE",
		"59350;COM;2021;2500",
		"59009;COM;2021;700",
		"59350;COM;2022;2400",
		"59;DEP;2021;30000",
		"59009;ARR;2021;9999",
	))

	res := s.Aggregate([]string{"59350", "59009"}, nil)

	assert.Equal(t, 3200.0, res[2021].Births)
	assert.Equal(t, 2400.0, res[2022].Births)
	assert.Len(t, res, 2)
}

func TestService_Aggregate_Unavailable(t *testing.T) {
	s := NewBirthsService(nil)

	assert.False(t, s.Available())
	assert.Empty(t, s.Aggregate([]string{"59350"}, nil))
}
