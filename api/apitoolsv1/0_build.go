package apitoolsv1

import (
	"github.com/fulldump/box"
)

// BuildV1Tools mounts the stateless trigger number and histogram helpers.
func BuildV1Tools(v1 *box.R, limits Limits) *box.R {

	return v1.Resource("/tools").
		WithInterceptors(
			injectLimits(limits),
		).
		WithActions(
			box.ActionPost(histogram),
			box.ActionPost(intersect),
			box.ActionPost(union),
			box.ActionPost(countEvents),
			box.ActionPost(inSorted),
		)
}
