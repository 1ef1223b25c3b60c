package stats

import (
	"context"
	"fmt"

	"github.com/ougirez/territory-stats/internal/domain"
	"github.com/ougirez/territory-stats/internal/pkg/constants"
	"github.com/ougirez/territory-stats/internal/pkg/logger"
	"github.com/ougirez/territory-stats/internal/pkg/metrics"
)

// reader adapts one domain service to the common query flow.
type reader[T any] struct {
	name string
	// supports is nil when every level is served.
	supports func(domain.Level) bool
	// members is set when read sums over the territory's communes: an empty commune set
	// then means the territory cannot be served.
	members   bool
	available func(domain.Level) bool
	read      func(territory domain.Territory, communes []string, years *domain.YearRange) map[domain.Year]T
}

// byCommunes wraps an aggregator that sums over the member communes of the territory.
func byCommunes[T any](
	name string,
	available func() bool,
	aggregate func(communes []string, years *domain.YearRange) map[domain.Year]T,
) reader[T] {
	return reader[T]{
		name:      name,
		members:   true,
		available: func(domain.Level) bool { return available() },
		read: func(_ domain.Territory, communes []string, years *domain.YearRange) map[domain.Year]T {
			return aggregate(communes, years)
		},
	}
}

// byCode wraps a service reading figures published for the territory itself.
func byCode[T any](
	name string,
	supports func(domain.Level) bool,
	available func(domain.Level) bool,
	read func(level domain.Level, code string, years *domain.YearRange) map[domain.Year]T,
) reader[T] {
	return reader[T]{
		name:      name,
		supports:  supports,
		available: available,
		read: func(t domain.Territory, _ []string, years *domain.YearRange) map[domain.Year]T {
			return read(t.Level, t.Code, years)
		},
	}
}

func validate(q domain.Query, supports func(domain.Level) bool) error {
	if !knownLevel(q.Level) || (supports != nil && !supports(q.Level)) {
		return constants.ErrUnsupportedLevel
	}
	if !q.Years.InBounds() || (q.Years.Closed() && q.Years.Start > q.Years.End) {
		return constants.ErrInvalidYearRange
	}
	return nil
}

func run[T any](ctx context.Context, s *Service, r reader[T], q domain.Query) (*domain.Result[T], error) {
	if err := validate(q, r.supports); err != nil {
		return nil, fmt.Errorf("stats.%s: %w", r.name, err)
	}

	territory, communes := s.resolver.Resolve(q.Level, q.Code)
	res := &domain.Result[T]{Territory: territory, Data: make(map[domain.Year]T)}

	switch {
	case !territory.Found(), r.members && len(communes) == 0:
		res.Status = domain.StatusNotFound
	case !r.available(q.Level):
		res.Status = domain.StatusUnavailable
	default:
		res.Data = r.read(territory, communes, q.Years)
		res.MissingYears = missingYears(res.Data, q.Years)
		res.Status = domain.StatusFound
		if len(res.MissingYears) > 0 {
			res.Status = domain.StatusPartial
		}
	}

	metrics.Query(r.name, string(q.Level), string(res.Status))
	logger.Debug(ctx, "query served",
		"domain", r.name,
		"level", q.Level,
		"code", territory.Code,
		"status", res.Status,
		"years", len(res.Data),
	)

	return res, nil
}

// missingYears lists the years of a closed window without data.
func missingYears[T any](data map[domain.Year]T, years *domain.YearRange) []domain.Year {
	if !years.Closed() {
		return nil
	}

	var missing []domain.Year
	for y := years.Start; y <= years.End; y++ {
		if _, ok := data[y]; !ok {
			missing = append(missing, y)
		}
	}
	return missing
}
