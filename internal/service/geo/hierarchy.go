package geo

import (
	"sort"
	"strings"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/table"
)

// Geography source columns.
const (
	colCommuneName    = "LIBGEO"
	colEPCI           = "EPCI"
	colEPCIName       = "LIBEPCI"
	colDepartment     = "DEP"
	colDepartmentName = "LIBDEP"
	colRegion         = "REG"
	colRegionName     = "LIBREG"
)

// INSEE marks communes outside any EPCI with this placeholder.
const noEPCI = "ZZZZZZZZZ"

// Hierarchy is the immutable commune -> EPCI / department / region mapping.
type Hierarchy struct {
	records map[string]domain.GeoRecord
	members map[domain.Level]map[string][]string
	names   map[domain.Level]map[string]string
	all     []string
	skipped int
}

// NewHierarchy builds the hierarchy from the geography table. A nil table gives an empty
// hierarchy in which every territory is unknown.
func NewHierarchy(tbl *table.Table) *Hierarchy {
	rows := tbl.Select(table.Query{})
	records := make([]domain.GeoRecord, 0, len(rows))
	for _, r := range rows {
		epci := strings.ToUpper(strings.TrimSpace(r.String(colEPCI)))
		if epci == noEPCI {
			epci = ""
		}

		records = append(records, domain.GeoRecord{
			CommuneCode:    r.Code(),
			CommuneName:    r.String(colCommuneName),
			EPCICode:       table.NormalizeCode(epci, table.EPCICodeWidth),
			EPCIName:       r.String(colEPCIName),
			DepartmentCode: table.NormalizeCode(r.String(colDepartment), table.DepartmentCodeWidth),
			DepartmentName: r.String(colDepartmentName),
			RegionCode:     table.NormalizeCode(r.String(colRegion), table.RegionCodeWidth),
			RegionName:     r.String(colRegionName),
		})
	}

	return NewHierarchyFromRecords(records)
}

// NewHierarchyFromRecords expects normalized codes. The first record of a commune wins;
// records without department or region are skipped.
func NewHierarchyFromRecords(records []domain.GeoRecord) *Hierarchy {
	h := &Hierarchy{
		records: make(map[string]domain.GeoRecord, len(records)),
		members: map[domain.Level]map[string][]string{
			domain.LevelEPCI:       {},
			domain.LevelDepartment: {},
			domain.LevelRegion:     {},
		},
		names: map[domain.Level]map[string]string{
			domain.LevelEPCI:       {},
			domain.LevelDepartment: {},
			domain.LevelRegion:     {},
		},
	}

	for _, rec := range records {
		if rec.CommuneCode == "" || rec.DepartmentCode == "" || rec.RegionCode == "" {
			h.skipped++
			continue
		}
		if _, dup := h.records[rec.CommuneCode]; dup {
			h.skipped++
			continue
		}

		h.records[rec.CommuneCode] = rec
		h.all = append(h.all, rec.CommuneCode)

		h.add(domain.LevelEPCI, rec.EPCICode, rec.EPCIName, rec.CommuneCode)
		h.add(domain.LevelDepartment, rec.DepartmentCode, rec.DepartmentName, rec.CommuneCode)
		h.add(domain.LevelRegion, rec.RegionCode, rec.RegionName, rec.CommuneCode)
	}

	sort.Strings(h.all)
	for _, byCode := range h.members {
		for _, communes := range byCode {
			sort.Strings(communes)
		}
	}

	return h
}

func (h *Hierarchy) add(level domain.Level, code, name, commune string) {
	if code == "" {
		return
	}
	h.members[level][code] = append(h.members[level][code], commune)
	if _, ok := h.names[level][code]; !ok || h.names[level][code] == "" {
		h.names[level][code] = name
	}
}

// CommunesIn returns the member communes of a territory. A commune is its own member and
// is returned unchanged without lookup; an unknown code yields an empty set, which means
// "territory not found", never "zero".
func (h *Hierarchy) CommunesIn(level domain.Level, code string) []string {
	switch level {
	case domain.LevelCommune:
		return []string{code}
	case domain.LevelCountry:
		return append([]string{}, h.all...)
	case domain.LevelEPCI, domain.LevelDepartment, domain.LevelRegion:
		return append([]string{}, h.members[level][code]...)
	default:
		return []string{}
	}
}

func (h *Hierarchy) Commune(code string) (domain.GeoRecord, bool) {
	rec, ok := h.records[code]
	return rec, ok
}

// Name returns the display name of a known territory, falling back to its code when the
// source has no label.
func (h *Hierarchy) Name(level domain.Level, code string) (string, bool) {
	switch level {
	case domain.LevelCountry:
		return "France", true
	case domain.LevelCommune:
		rec, ok := h.records[code]
		if !ok {
			return "", false
		}
		return nameOr(rec.CommuneName, code), true
	}

	if _, ok := h.members[level][code]; !ok {
		return "", false
	}
	return nameOr(h.names[level][code], code), true
}

// Len is the number of communes in the hierarchy.
func (h *Hierarchy) Len() int {
	return len(h.all)
}

// Skipped counts geography records rejected while building.
func (h *Hierarchy) Skipped() int {
	return h.skipped
}

func nameOr(name, code string) string {
	if name == "" {
		return code
	}
	return name
}
