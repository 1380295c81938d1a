package apidatasetv1

import (
	"context"
	"errors"

	"github.com/fulldump/telesync/service"
)

type contextKey string

const ContextServicerKey contextKey = "ed0fa170-5593-11ed-9d60-9bdc940af29d"

var ErrBadRequest = errors.New("bad request")

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}
