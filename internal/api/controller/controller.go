package controller

import (
	"github.com/ougirez/territory-stats/internal/pkg/cache"
	"github.com/ougirez/territory-stats/internal/service/admin"
	"github.com/ougirez/territory-stats/internal/service/auth"
	"github.com/ougirez/territory-stats/internal/service/importer"
	"github.com/ougirez/territory-stats/internal/service/stats"
)

type Controller struct {
	stats    *stats.Service
	admin    *admin.Service
	auth     *auth.Service
	importer *importer.Service
	cache    cache.Cache
}

// NewController wires the handlers. importer may be nil, in which case the import route
// answers 404.
func NewController(
	stats *stats.Service,
	admin *admin.Service,
	auth *auth.Service,
	importer *importer.Service,
	cache cache.Cache,
) *Controller {
	return &Controller{stats: stats, admin: admin, auth: auth, importer: importer, cache: cache}
}
