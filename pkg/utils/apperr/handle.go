package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
)

// Handle logs an application error with its failure category
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)

	switch {
	case goerr.HasTag(err, model.ErrTagFetch):
		logger.Error("fetch failed, nothing published", "error", err)
	case goerr.HasTag(err, model.ErrTagPublish):
		logger.Error("publish failed", "error", err)
	default:
		logger.Error("application error", "error", err)
	}
}
