package api

import (
	"net/http"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/fulldump/telesync/align"
	"github.com/fulldump/telesync/api/apitoolsv1"
	"github.com/fulldump/telesync/database"
	"github.com/fulldump/telesync/service"
)

func TestAcceptance(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		db := database.NewDatabase(&database.Config{
			Dir: t.TempDir(),
		})

		biff.AssertNil(db.Load())
		biff.AssertEqual(db.GetStatus(), database.StatusOperating)

		s := service.NewService(db, &service.Config{
			Defaults: align.DefaultParams(),
			Workers:  2,
		})

		b := Build(s, "test", apitoolsv1.Limits{MaxBins: 1000, MaxCapacity: 1000})
		b.WithInterceptors(
			RecoverFromPanic,
			PrettyErrorInterceptor,
			InterceptorUnavailable(db),
		)

		api := apitest.NewWithHandler(b)

		a.Alternative("Release", func(a *biff.A) {
			resp := api.Request("GET", "/release").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyJson(), "test")
		})

		a.Alternative("OpenAPI", func(a *biff.A) {
			resp := api.Request("GET", "/openapi.json").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			spec := resp.BodyJson().(map[string]interface{})
			biff.AssertEqual(spec["info"].(map[string]interface{})["title"], "telesync")
		})

		a.Alternative("Unknown resource", func(a *biff.A) {
			resp := api.Request("GET", "/v1/nothing-here").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})

		a.Alternative("Database closing", func(a *biff.A) {
			biff.AssertNil(db.Stop())

			resp := api.Request("GET", "/v1/datasets").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusServiceUnavailable)
		})

		service.Acceptance(a, func(method, path string) *apitest.Request {
			return api.Request(method, "/v1"+path)
		})

	})
}
