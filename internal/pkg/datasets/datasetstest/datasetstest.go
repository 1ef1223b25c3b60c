// Package datasetstest builds catalog tables from inline CSV for tests.
package datasetstest

import (
	"strings"
	"testing"

	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/table"
	"github.com/stretchr/testify/require"
)

// Table loads lines (header first, ';' separated) with the catalog schema of name.
func Table(t testing.TB, name string, lines ...string) *table.Table {
	t.Helper()

	d, ok := datasets.ByName(name)
	require.True(t, ok, "unknown dataset %s", name)

	tbl, err := table.ReadCSV(strings.NewReader(strings.Join(lines, "\n")), d.Schema, ';')
	require.NoError(t, err)

	return tbl
}

// Geography is a small hierarchy:
//
//	region 32 (Hauts-de-France)
//	  department 59 (Nord)
//	    EPCI 200093201 (Métropole Européenne de Lille): 59350 Lille, 59009 Villeneuve-d'Ascq
//	    EPCI 200041960: 59183 Dunkerque
//	  department 62 (Pas-de-Calais)
//	    no EPCI: 62001 Ablain-Saint-Nazaire
//	region 84 (Auvergne-Rhône-Alpes)
//	  department 01 (Ain)
//	    EPCI 200029999: 01001 L'Abergement-Clémenciat
func Geography(t testing.TB) *table.Table {
	return Table(t, datasets.Geography,
		"CODGEO;LIBGEO;EPCI;LIBEPCI;DEP;LIBDEP;REG;LIBREG",
		"59350;Lille;200093201;Métropole Européenne de Lille;59;Nord;32;Hauts-de-France",
		"59009;Villeneuve-d'Ascq;200093201;Métropole Européenne de Lille;59;Nord;32;Hauts-de-France",
		"59183;Dunkerque;200041960;CU de Dunkerque;59;Nord;32;Hauts-de-France",
		"62001;Ablain-Saint-Nazaire;ZZZZZZZZZ;;62;Pas-de-Calais;32;Hauts-de-France",
		"1001;L'Abergement-Clémenciat;200029999;CC de la Dombes;1;Ain;84;Auvergne-Rhône-Alpes",
	)
}
