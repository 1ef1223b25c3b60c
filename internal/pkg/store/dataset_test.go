package store

import (
	"testing"

	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/datasets/datasetstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableSQL(t *testing.T) {
	tbl := datasetstest.Table(t, datasets.Births,
		"GEO;GEO_OBJECT;TIME_PERIOD;OBS_VALUE",
		"1001;COM;2021;12",
	)

	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS "births" ("geo" text, "geo_object" text, "time_period" text, "obs_value" double precision)`,
		createTableSQL(tbl.Schema(), tbl.Columns()),
	)
}

func TestCopyRows(t *testing.T) {
	tbl := datasetstest.Table(t, datasets.Births,
		"GEO;GEO_OBJECT;TIME_PERIOD;OBS_VALUE",
		"1001;COM;2021;12,5",
		"59350;COM;2021;n/a",
	)

	rows := copyRows(tbl)
	require.Len(t, rows, 2)
	assert.Equal(t, []any{"01001", "COM", "2021", 12.5}, rows[0])
	assert.Equal(t, []any{"59350", "COM", "2021", 0.0}, rows[1])
}

func TestValueText(t *testing.T) {
	assert.Equal(t, "", valueText(nil))
	assert.Equal(t, "59350", valueText("59350"))
	assert.Equal(t, "12.5", valueText(12.5))
	assert.Equal(t, "1000", valueText(float64(1000)))
	assert.Equal(t, "2021", valueText(int64(2021)))
	assert.Equal(t, "true", valueText(true))
}
