package collection

import (
	"os"
	"path/filepath"
)

func Environment(f func(filename string)) {
	dir, err := os.MkdirTemp("", "telesync-collection-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	f(filepath.Join(dir, "runs"))
}
