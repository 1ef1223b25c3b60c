package stats

import (
	"context"
	"fmt"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/datasets"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/ougirez/territory-stats/internal/pkg/metrics"
	"github.com/ougirez/territory-stats/internal/pkg/table"
	"github.com/ougirez/territory-stats/internal/service/births"
	"github.com/ougirez/territory-stats/internal/service/childcare"
	"github.com/ougirez/territory-stats/internal/service/employment"
	"github.com/ougirez/territory-stats/internal/service/families"
	"github.com/ougirez/territory-stats/internal/service/familyemployment"
	"github.com/ougirez/territory-stats/internal/service/geo"
	"github.com/ougirez/territory-stats/internal/service/history"
	"github.com/ougirez/territory-stats/internal/service/population"
	"github.com/ougirez/territory-stats/internal/service/revenue"
	"github.com/ougirez/territory-stats/internal/service/safety"
	"github.com/ougirez/territory-stats/internal/service/schooling"
)

// Domain names, as used in routes and metrics.
const (
	DomainPopulation       = "population"
	DomainBirths           = "births"
	DomainRevenue          = "revenue"
	DomainChildcare        = "childcare"
	DomainFamilies         = "families"
	DomainFamilyEmployment = "family-employment"
	DomainSchooling        = "schooling"
	DomainEmployment       = "employment"
	DomainPublicSafety     = "public-safety"
	DomainHistory          = "history"
	DomainTerritory        = "territory"
)

// Service is the single entry point of the aggregation engine. It is built once from the
// loaded tables and is safe for concurrent use.
type Service struct {
	resolver *geo.Resolver

	population       *population.Service
	births           *births.Service
	revenue          *revenue.Service
	childcare        *childcare.Service
	families         *families.Service
	familyEmployment *familyemployment.Service
	schooling        *schooling.Service
	employment       *employment.Service
	safety           *safety.Service
	history          *history.Service
}

func NewStatsService(tables *datasets.Tables) *Service {
	byLevel := func(commune, epci, department, region, country string) map[domain.Level]*table.Table {
		m := make(map[domain.Level]*table.Table)
		for level, name := range map[domain.Level]string{
			domain.LevelCommune:    commune,
			domain.LevelEPCI:       epci,
			domain.LevelDepartment: department,
			domain.LevelRegion:     region,
			domain.LevelCountry:    country,
		} {
			if tbl := tables.Get(name); name != "" && tbl != nil {
				m[level] = tbl
			}
		}
		return m
	}

	return &Service{
		resolver:   geo.NewResolver(geo.NewHierarchy(tables.Get(datasets.Geography))),
		population: population.NewPopulationService(tables.Get(datasets.Population)),
		births:     births.NewBirthsService(tables.Get(datasets.Births)),
		revenue: revenue.NewRevenueService(byLevel(
			datasets.RevenueCommune, datasets.RevenueEPCI, datasets.RevenueDepartment,
			datasets.RevenueRegion, datasets.RevenueFrance,
		)),
		childcare: childcare.NewChildcareService(byLevel(
			datasets.ChildcareCommune, datasets.ChildcareEPCI, datasets.ChildcareDepartment,
			datasets.ChildcareRegion, datasets.ChildcareFrance,
		), tables.Get(datasets.ChildcareHistory)),
		families:         families.NewFamiliesService(tables.Get(datasets.Families)),
		familyEmployment: familyemployment.NewFamilyEmploymentService(tables.Get(datasets.FamilyEmployment)),
		schooling:        schooling.NewSchoolingService(tables.Get(datasets.Schooling)),
		employment: employment.NewEmploymentService(
			tables.Get(datasets.EmploymentActivity),
			tables.Get(datasets.EmploymentCharacteristics),
		),
		safety: safety.NewSafetyService(byLevel(
			datasets.SafetyCommune, "", datasets.SafetyDepartment, datasets.SafetyRegion, "",
		)),
		history: history.NewHistoryService(tables.Get(datasets.History)),
	}
}

func (s *Service) Population(ctx context.Context, q domain.Query) (*domain.Result[domain.PopulationRecord], error) {
	return run(ctx, s, byCommunes(DomainPopulation, s.population.Available, s.population.Aggregate), q)
}

func (s *Service) Births(ctx context.Context, q domain.Query) (*domain.Result[domain.BirthsRecord], error) {
	return run(ctx, s, byCommunes(DomainBirths, s.births.Available, s.births.Aggregate), q)
}

// Revenue reads the figures published for the requested level itself.
func (s *Service) Revenue(ctx context.Context, q domain.Query) (*domain.Result[domain.RevenueRecord], error) {
	return run(ctx, s, byCode(DomainRevenue, nil, s.revenue.Available, s.revenue.Read), q)
}

func (s *Service) Childcare(ctx context.Context, q domain.Query) (*domain.Result[domain.ChildcareRecord], error) {
	return run(ctx, s, byCode(DomainChildcare, nil, s.childcare.Available, s.childcare.Read), q)
}

// Families also reports the evolution of every measure between the first and last year of
// the returned series.
func (s *Service) Families(ctx context.Context, q domain.Query) (*domain.Result[domain.FamilyRecord], error) {
	res, err := run(ctx, s, byCommunes(DomainFamilies, s.families.Available, s.families.Aggregate), q)
	if err != nil {
		return nil, err
	}
	res.Evolution = families.Evolution(res.Data)
	return res, nil
}

func (s *Service) FamilyEmployment(ctx context.Context, q domain.Query) (*domain.Result[domain.FamilyEmploymentRecord], error) {
	return run(ctx, s, byCommunes(DomainFamilyEmployment, s.familyEmployment.Available, s.familyEmployment.Aggregate), q)
}

func (s *Service) Schooling(ctx context.Context, q domain.Query) (*domain.Result[domain.SchoolingRecord], error) {
	return run(ctx, s, byCommunes(DomainSchooling, s.schooling.Available, s.schooling.Aggregate), q)
}

func (s *Service) Employment(ctx context.Context, q domain.Query) (*domain.Result[domain.EmploymentRecord], error) {
	return run(ctx, s, byCommunes(DomainEmployment, s.employment.Available, s.employment.Aggregate), q)
}

// PublicSafety answers commune, department and region queries. A commune result carries
// the series of its department and region as parents.
func (s *Service) PublicSafety(ctx context.Context, q domain.Query) (*domain.Result[[]domain.SafetyIndicator], error) {
	res, err := run(ctx, s, byCode(DomainPublicSafety, s.safety.Supports, s.safety.Available, s.safety.Read), q)
	if err != nil {
		return nil, err
	}

	if q.Level != domain.LevelCommune || !res.Territory.Found() {
		return res, nil
	}

	for _, level := range []domain.Level{domain.LevelDepartment, domain.LevelRegion} {
		parent, _, ok := s.resolver.Parent(res.Territory.Code, level)
		if !ok {
			continue
		}
		parent.Communes = nil
		res.Parents = append(res.Parents, domain.Parent[[]domain.SafetyIndicator]{
			Territory: parent,
			Data:      s.safety.Read(level, parent.Code, q.Years),
		})
	}

	return res, nil
}

// History serves the census series of a single commune.
func (s *Service) History(ctx context.Context, q domain.Query) (*domain.Result[domain.HistoryRecord], error) {
	read := func(_ domain.Level, code string, years *domain.YearRange) map[domain.Year]domain.HistoryRecord {
		return s.history.Read(code, years)
	}
	available := func(domain.Level) bool { return s.history.Available() }

	return run(ctx, s, byCode(DomainHistory, s.history.Supports, available, read), q)
}

// Territory resolves a territory without touching any domain table.
func (s *Service) Territory(ctx context.Context, level domain.Level, code string) (domain.Territory, error) {
	if !knownLevel(level) {
		return domain.Territory{}, fmt.Errorf("stats.Territory: %w", constants.ErrUnsupportedLevel)
	}

	territory, _ := s.resolver.Resolve(level, code)

	status := domain.StatusFound
	if !territory.Found() {
		status = domain.StatusNotFound
	}
	metrics.Query(DomainTerritory, string(level), string(status))
	logger.Debug(ctx, "territory resolved", "level", level, "code", territory.Code, "status", status)

	return territory, nil
}

func knownLevel(level domain.Level) bool {
	for _, l := range domain.Levels {
		if l == level {
			return true
		}
	}
	return false
}
