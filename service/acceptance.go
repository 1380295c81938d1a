package service

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/fulldump/telesync/align"
)

type JSON = map[string]interface{}

func acceptanceParams() *align.Params {
	return &align.Params{
		Tolerance:    0.5,
		BadTriggers:  3,
		SearchRadius: 10,
		GoodTriggers: 3,
	}
}

// jsonLines decodes a newline separated list of documents.
func jsonLines(body string) []JSON {
	result := []JSON{}
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if line == "" {
			continue
		}
		item := JSON{}
		json.Unmarshal([]byte(line), &item)
		result = append(result, item)
	}
	return result
}

func names(items []JSON) []interface{} {
	result := []interface{}{}
	for _, item := range items {
		result = append(result, item["name"])
	}
	return result
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create dataset", func(a *biff.A) {
		resp := apiRequest("POST", "/datasets").
			WithBodyJson(JSON{
				"name": "telescope",
			}).Do()
		Save(resp, "Create dataset", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"name":    "telescope",
			"total":   0,
			"indexes": 2,
		})

		a.Alternative("Create dataset twice", func(a *biff.A) {
			resp := apiRequest("POST", "/datasets").
				WithBodyJson(JSON{
					"name": "telescope",
				}).Do()
			Save(resp, "Create dataset - conflict", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("List datasets", func(a *biff.A) {
			resp := apiRequest("GET", "/datasets").Do()
			Save(resp, "List datasets", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{
				{"name": "telescope", "total": 0, "indexes": 2},
			})
		})

		a.Alternative("Drop dataset", func(a *biff.A) {
			resp := apiRequest("POST", "/datasets/telescope:dropDataset").Do()
			Save(resp, "Drop dataset", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			a.Alternative("Get dropped dataset", func(a *biff.A) {
				resp := apiRequest("GET", "/datasets/telescope").Do()
				Save(resp, "Get dataset - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Align with invalid params", func(a *biff.A) {
			job := ShiftedJob("dut1", 40, 10)
			job.Params = acceptanceParams()
			job.Params.Tolerance = 0

			resp := apiRequest("POST", "/datasets/telescope:align").
				WithBodyJson(job).Do()
			Save(resp, "Align - invalid params", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Find with bad mode", func(a *biff.A) {
			resp := apiRequest("POST", "/datasets/telescope:find").
				WithBodyJson(JSON{"mode": "telepathy"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Align", func(a *biff.A) {
			job := ShiftedJob("dut1", 40, 10)
			job.Params = acceptanceParams()

			resp := apiRequest("POST", "/datasets/telescope:align").
				WithBodyJson(job).Do()
			Save(resp, "Align", `
				Detects the spurious record at index 10 of the secondary stream and
				shifts everything after it back by one trigger.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			run := resp.BodyJson().(JSON)
			biff.AssertEqual(run["name"], "dut1")
			biff.AssertEqual(run["fixes"], 1.0)
			biff.AssertEqual(run["outcome"], "done")
			biff.AssertEqual(run["n_hits"], 40.0)
			biff.AssertEqual(run["correlated"], 40.0)
			biff.AssertEqualJson(run["fix_log"], []JSON{{"ref": 10, "sec": 11, "offset": 1}})
			runId := run["id"].(string)

			a.Alternative("Get run", func(a *biff.A) {
				resp := apiRequest("GET", "/datasets/telescope/runs/"+runId).Do()
				Save(resp, "Get run", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				run := resp.BodyJson().(JSON)
				secondary := run["secondary"].([]interface{})
				biff.AssertEqual(len(secondary), 40)
				biff.AssertEqualJson(secondary[10], HitPoint(10))
				biff.AssertEqualJson(secondary[39], Point{0, 0})
			})

			a.Alternative("Remove run", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/telescope/runs/"+runId+":removeRun").Do()
				Save(resp, "Remove run", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				a.Alternative("Get removed run", func(a *biff.A) {
					resp := apiRequest("GET", "/datasets/telescope/runs/"+runId).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				})
			})

			a.Alternative("Align another detector", func(a *biff.A) {
				job := ShiftedJob("dut0", 40, 40)
				job.Params = acceptanceParams()

				resp := apiRequest("POST", "/datasets/telescope:align").
					WithBodyJson(job).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)
				biff.AssertEqual(resp.BodyJson().(JSON)["fixes"], 0.0)

				a.Alternative("Find by fixes", func(a *biff.A) {
					resp := apiRequest("POST", "/datasets/telescope:find").
						WithBodyJson(JSON{
							"mode":  "fixes",
							"limit": 10,
						}).Do()
					Save(resp, "Find - by fixes", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqual(names(jsonLines(resp.BodyString())), []interface{}{"dut0", "dut1"})
				})

				a.Alternative("Find by fixes - reverse order", func(a *biff.A) {
					resp := apiRequest("POST", "/datasets/telescope:find").
						WithBodyJson(JSON{
							"mode":    "fixes",
							"limit":   10,
							"reverse": true,
						}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqual(names(jsonLines(resp.BodyString())), []interface{}{"dut1", "dut0"})
				})

				a.Alternative("Find with fullscan", func(a *biff.A) {
					resp := apiRequest("POST", "/datasets/telescope:find").
						WithBodyJson(JSON{
							"mode":  "fullscan",
							"limit": 10,
							"filter": JSON{
								"outcome": "done",
								"fixes":   JSON{"$gt": 0},
							},
						}).Do()
					Save(resp, "Find - fullscan", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqual(names(jsonLines(resp.BodyString())), []interface{}{"dut1"})
				})
			})
		})

		a.Alternative("Align batch", func(a *biff.A) {
			jobs := []*Job{}
			for _, k := range []int{5, 12, 20} {
				job := ShiftedJob("dut", 40, k)
				job.Params = acceptanceParams()
				jobs = append(jobs, job)
			}

			resp := apiRequest("POST", "/datasets/telescope:alignBatch").
				WithBodyJson(JSON{
					"workers": 2,
					"jobs":    jobs,
				}).Do()
			Save(resp, "Align batch", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			runs := resp.BodyJson().([]interface{})
			biff.AssertEqual(len(runs), 3)
			for i, k := range []int{5, 12, 20} {
				biff.AssertEqualJson(runs[i].(JSON)["fix_log"], []JSON{{"ref": k, "sec": k + 1, "offset": 1}})
			}

			a.Alternative("Align batch with a null job", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/telescope:alignBatch").
					WithBodyString(`{"jobs":[null]}`).Do()
				Save(resp, "Align batch - null job", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Align with a null job", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/telescope:align").
					WithBodyString(`null`).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Retrieve dataset", func(a *biff.A) {
				resp := apiRequest("GET", "/datasets/telescope").Do()
				Save(resp, "Retrieve dataset", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"name":    "telescope",
					"total":   3,
					"indexes": 2,
				})
			})
		})
	})

	a.Alternative("Align on not existing dataset", func(a *biff.A) {
		resp := apiRequest("POST", "/datasets/nowhere:align").
			WithBodyJson(ShiftedJob("dut1", 10, 2)).Do()
		Save(resp, "Align - dataset not found", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"error": JSON{
				"message":     "dataset not found",
				"description": "not found",
			},
		})
	})

	a.Alternative("Histogram", func(a *biff.A) {
		resp := apiRequest("POST", "/tools:histogram").
			WithBodyJson(JSON{"nx": 3, "x": []int{0, 1, 2}}).Do()
		Save(resp, "Tools - histogram", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), JSON{"shape": []int{3}, "counts": []int{1, 1, 1}})

		a.Alternative("Histogram with overflowing shape", func(a *biff.A) {
			resp := apiRequest("POST", "/tools:histogram").
				WithBodyString(`{"nx":4611686018427387905,"ny":4,"x":[5],"y":[0]}`).Do()
			Save(resp, "Tools - histogram overflowing shape", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusUnprocessableEntity)
		})

		a.Alternative("Histogram over the bin limit", func(a *biff.A) {
			resp := apiRequest("POST", "/tools:histogram").
				WithBodyJson(JSON{"nx": 1 << 20, "ny": 1 << 20, "x": []int{0}, "y": []int{0}}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusUnprocessableEntity)
		})

		a.Alternative("Histogram out of range", func(a *biff.A) {
			resp := apiRequest("POST", "/tools:histogram").
				WithBodyJson(JSON{"nx": 3, "x": []int{0, 3}}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusUnprocessableEntity)
		})
	})

	a.Alternative("Intersect", func(a *biff.A) {
		resp := apiRequest("POST", "/tools:intersect").
			WithBodyJson(JSON{"a": []int{1, 2, 2, 4}, "b": []int{2, 3, 4, 4}}).Do()
		Save(resp, "Tools - intersect", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), []int{2, 4})
	})

	a.Alternative("Union", func(a *biff.A) {
		resp := apiRequest("POST", "/tools:union").
			WithBodyJson(JSON{"a": []int{1, 1, 2}, "b": []int{1, 3}}).Do()
		Save(resp, "Tools - union", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), []int{1, 1, 2, 3})

		a.Alternative("Union over the capacity limit", func(a *biff.A) {
			resp := apiRequest("POST", "/tools:union").
				WithBodyJson(JSON{"a": []int{1}, "b": []int{2}, "capacity": 1 << 40}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusUnprocessableEntity)
		})

		a.Alternative("Union over capacity", func(a *biff.A) {
			resp := apiRequest("POST", "/tools:union").
				WithBodyJson(JSON{"a": []int{1, 1, 2}, "b": []int{1, 3}, "capacity": 2}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusUnprocessableEntity)
		})
	})

	a.Alternative("Count events", func(a *biff.A) {
		resp := apiRequest("POST", "/tools:countEvents").
			WithBodyJson(JSON{"events": []int{7, 7, 9}}).Do()
		Save(resp, "Tools - count events", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), []JSON{
			{"event": 7, "count": 2},
			{"event": 9, "count": 1},
		})
	})
}
