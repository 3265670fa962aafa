package probe

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonwraymond/canary/health"
)

// SQLPinger is the subset of *sql.DB used by SQLProbe.
type SQLPinger interface {
	PingContext(ctx context.Context) error
}

var _ SQLPinger = (*sql.DB)(nil)

// SQLProbe checks a database connection pool.
type SQLProbe struct {
	described
	db SQLPinger
}

// SQL returns a DATABASE probe that pings db.
func SQL(name string, db SQLPinger, opts ...health.DescriptorOption) *SQLProbe {
	return &SQLProbe{
		described: describe(name, health.KindDatabase, opts),
		db:        db,
	}
}

// Check implements health.Probe.
func (p *SQLProbe) Check(ctx context.Context) (health.Result, error) {
	if err := ctx.Err(); err != nil {
		return health.Result{}, err
	}
	if err := p.db.PingContext(ctx); err != nil {
		return health.Critical(fmt.Sprintf("database ping failed: %v", err)), nil
	}
	return health.Healthy("database reachable"), nil
}
