package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
	"github.com/fulldump/box/boxopenapi"

	"github.com/fulldump/telesync/api/apidatasetv1"
	"github.com/fulldump/telesync/api/apitoolsv1"
	"github.com/fulldump/telesync/service"
)

func Build(s service.Servicer, version string, limits apitoolsv1.Limits) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
	)

	apidatasetv1.BuildV1Dataset(v1, s).
		WithInterceptors(
			injectServicer(s),
		)

	apitoolsv1.BuildV1Tools(v1, limits)

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}))

	spec := boxopenapi.Spec(b)
	spec.Info.Title = "telesync"
	spec.Info.Description = "Detects and repairs trigger misalignment between detector hit streams."
	spec.Info.Version = version
	b.Handle("GET", "/openapi.json", func(r *http.Request) any {

		spec.Servers = []boxopenapi.Server{
			{
				Url: "https://" + r.Host,
			},
			{
				Url: "http://" + r.Host,
			},
		}

		return spec
	})

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apidatasetv1.SetServicer(ctx, s))
		}
	}
}
