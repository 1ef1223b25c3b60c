package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var populationSchema = Schema{
	Name:       "population",
	CodeColumn: "CODGEO",
	CodeWidth:  CommuneCodeWidth,
	YearColumn: "ANNEE",
	Numeric:    []string{"AGED100", "NB"},
}

func TestNormalizeCode(t *testing.T) {
	cases := map[string]struct {
		raw   string
		width int
		want  string
	}{
		"already normalized":   {"59350", 5, "59350"},
		"missing leading zero": {"1001", 5, "01001"},
		"float artefact":       {"1001.0", 5, "01001"},
		"corsica lower case":   {" 2a004 ", 5, "2A004"},
		"department":           {"1", 2, "01"},
		"overseas department":  {"971", 2, "971"},
		"epci siren":           {"200093201", 9, "200093201"},
		"empty":                {"  ", 5, ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := NormalizeCode(tc.raw, tc.width)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, NormalizeCode(got, tc.width), "normalization must be idempotent")
		})
	}
}

func TestParseNumber(t *testing.T) {
	val, ok := ParseNumber("1 234,5")
	assert.True(t, ok)
	assert.Equal(t, 1234.5, val)

	val, ok = ParseNumber("")
	assert.True(t, ok)
	assert.Zero(t, val)

	_, ok = ParseNumber("s")
	assert.False(t, ok)

	_, ok = ParseNumber("NaN")
	assert.False(t, ok)
}

func TestReadCSV(t *testing.T) {
	src := strings.Join([]string{
		"CODGEO;ANNEE;AGED100;SEXE;NB",
		"1001;2020;0;1;10",
		"01001;2020;0;2;5",
		"1001.0;2021;1;1;n/a",
		";2021;1;1;3",
		"59350;20xx;1;1;3",
		"59350;2021;1",
	}, "\n")

	tbl, err := ReadCSV(strings.NewReader(src), populationSchema, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, []int{2020, 2021}, tbl.Years())
	assert.Equal(t, []string{"01001", "59350"}, tbl.Codes())

	anomalies := tbl.Anomalies()
	assert.Equal(t, 1, anomalies.NonNumeric)
	assert.Equal(t, 1, anomalies.MissingKey)
	assert.Equal(t, 1, anomalies.BadYear)
	assert.Equal(t, 1, anomalies.ShortRows)
	assert.Equal(t, 4, anomalies.Total())

	rows := tbl.Select(Query{Codes: []string{"01001"}})
	require.Len(t, rows, 3)
	assert.Equal(t, 15.0, Sum(rows, "NB"), "duplicate keys are summed, garbage counts as zero")
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("CODGEO,ANNEE,NB\n01001,2020,1\n"), populationSchema, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AGED100")
}

func TestTable_Select(t *testing.T) {
	src := strings.Join([]string{
		"CODGEO,ANNEE,AGED100,SEXE,NB",
		"01001,2019,0,1,1",
		"01001,2020,0,1,2",
		"01001,2021,3,2,4",
		"01002,2021,3,1,8",
		"01003,2021,3,1,16",
	}, "\n")

	tbl, err := ReadCSV(strings.NewReader(src), populationSchema, ',')
	require.NoError(t, err)

	t.Run("code set", func(t *testing.T) {
		rows := tbl.Select(Query{Codes: []string{"01002", "01001", "01002"}})
		assert.Equal(t, 15.0, Sum(rows, "NB"))
	})

	t.Run("unknown code", func(t *testing.T) {
		assert.Empty(t, tbl.Select(Query{Codes: []string{"99999"}}))
	})

	t.Run("empty code set selects nothing", func(t *testing.T) {
		assert.Empty(t, tbl.Select(Query{Codes: []string{}}))
	})

	t.Run("nil code set selects everything", func(t *testing.T) {
		assert.Len(t, tbl.Select(Query{}), 5)
	})

	t.Run("year window is inclusive", func(t *testing.T) {
		rows := tbl.Select(Query{MinYear: 2020, MaxYear: 2021})
		assert.Equal(t, 30.0, Sum(rows, "NB"))
	})

	t.Run("exact match filters", func(t *testing.T) {
		rows := tbl.Select(Query{Eq: map[string]string{"SEXE": "1"}, In: map[string][]string{"AGED100": {"3"}}})
		assert.Equal(t, 24.0, Sum(rows, "NB"))
	})

	t.Run("unknown filter column selects nothing", func(t *testing.T) {
		assert.Empty(t, tbl.Select(Query{Eq: map[string]string{"NOPE": "1"}}))
	})

	t.Run("group by year", func(t *testing.T) {
		grouped := ByYear(tbl.Select(Query{}))
		assert.Equal(t, []int{2019, 2020, 2021}, SortedYears(grouped))
		assert.Len(t, grouped[2021], 3)
	})
}

func TestSniffDelimiter(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("CODGEO\tANNEE\tAGED100\tNB\n1001\t2020\t1\t7\n"), populationSchema, 0)
	require.NoError(t, err)
	assert.Equal(t, 7.0, Sum(tbl.Select(Query{Codes: []string{"01001"}}), "NB"))
}
