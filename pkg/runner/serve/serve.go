// Package serve runs the development catalog and reminder service.
package serve

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/mockapi"
)

// Serve runs mockapi on Addr until the context ends.
type Serve struct {
	Addr   string
	Logger *zap.SugaredLogger
}

func (n *Serve) Do(ctx context.Context) error {
	c := clock.Real()
	srv := mockapi.New(mockapi.Seed(c.Now()), c, n.Logger)
	return srv.ListenAndServe(ctx, n.Addr)
}
