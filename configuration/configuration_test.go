package configuration

import (
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/telesync/align"
)

func TestDefault(t *testing.T) {

	c := Default()

	biff.AssertEqual(c.Params(), align.DefaultParams())
	biff.AssertNil(c.Params().Validate())
	biff.AssertEqual(c.HttpAddr, "127.0.0.1:8080")
	biff.AssertEqual(c.MaxBins, 1<<24)
}
