package geo

import (
	"github.com/ougirez/territory-stats/internal/domain"
)

const countryCode = "FR"

// Resolver expands a (level, code) pair into the communes to aggregate over and the
// territory metadata shown next to the data.
type Resolver struct {
	h *Hierarchy
}

func NewResolver(h *Hierarchy) *Resolver {
	return &Resolver{h: h}
}

func (r *Resolver) Hierarchy() *Hierarchy {
	return r.h
}

// Resolve normalizes code for level. An unknown territory comes back with a nil name and
// an empty commune set.
func (r *Resolver) Resolve(level domain.Level, code string) (domain.Territory, []string) {
	code = level.NormalizeCode(code)
	if level == domain.LevelCountry {
		code = countryCode
	}

	territory := domain.Territory{Level: level, Code: code, Communes: []string{}}

	name, ok := r.h.Name(level, code)
	if !ok {
		return territory, []string{}
	}
	territory.Name = &name

	communes := r.h.CommunesIn(level, code)
	territory.CommunesCount = len(communes)

	switch level {
	case domain.LevelCommune:
		territory.Communes = communes
		territory.Hierarchy = r.parents(code)
	case domain.LevelCountry:
		territory.Communes = nil
		territory.EPCICount = len(r.h.members[domain.LevelEPCI])
		territory.DepartmentsCount = len(r.h.members[domain.LevelDepartment])
		territory.RegionsCount = len(r.h.members[domain.LevelRegion])
	default:
		territory.Communes = communes
		territory.EPCICount, territory.DepartmentsCount = r.countUpper(level, communes)
	}

	return territory, communes
}

// Parent resolves the enclosing territory of a commune at level.
func (r *Resolver) Parent(commune string, level domain.Level) (domain.Territory, []string, bool) {
	rec, ok := r.h.Commune(commune)
	if !ok {
		return domain.Territory{}, nil, false
	}

	var code string
	switch level {
	case domain.LevelEPCI:
		code = rec.EPCICode
	case domain.LevelDepartment:
		code = rec.DepartmentCode
	case domain.LevelRegion:
		code = rec.RegionCode
	}
	if code == "" {
		return domain.Territory{}, nil, false
	}

	territory, communes := r.Resolve(level, code)
	return territory, communes, territory.Found()
}

func (r *Resolver) parents(commune string) []domain.TerritoryRef {
	rec, ok := r.h.Commune(commune)
	if !ok {
		return nil
	}

	refs := make([]domain.TerritoryRef, 0, 3)
	if rec.EPCICode != "" {
		refs = append(refs, domain.TerritoryRef{Level: domain.LevelEPCI, Code: rec.EPCICode, Name: rec.EPCIName})
	}
	refs = append(refs,
		domain.TerritoryRef{Level: domain.LevelDepartment, Code: rec.DepartmentCode, Name: rec.DepartmentName},
		domain.TerritoryRef{Level: domain.LevelRegion, Code: rec.RegionCode, Name: rec.RegionName},
	)
	return refs
}

// countUpper counts the distinct EPCIs (below region and department levels) and
// departments (for EPCIs and regions) the communes belong to.
func (r *Resolver) countUpper(level domain.Level, communes []string) (epcis, departments int) {
	epciSet := make(map[string]struct{})
	depSet := make(map[string]struct{})
	for _, c := range communes {
		rec := r.h.records[c]
		if rec.EPCICode != "" {
			epciSet[rec.EPCICode] = struct{}{}
		}
		depSet[rec.DepartmentCode] = struct{}{}
	}

	switch level {
	case domain.LevelEPCI:
		return 0, len(depSet)
	case domain.LevelDepartment:
		return len(epciSet), 0
	default:
		return len(epciSet), len(depSet)
	}
}
