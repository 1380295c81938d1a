package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fulldump/biff"
)

func TestDatabase_Lifecycle(t *testing.T) {

	dir := t.TempDir()

	db := NewDatabase(&Config{Dir: dir})
	biff.AssertEqual(db.GetStatus(), StatusOpening)
	biff.AssertNil(db.Load())
	biff.AssertEqual(db.GetStatus(), StatusOperating)

	col, err := db.CreateCollection("telescope")
	biff.AssertNil(err)
	col.Insert(map[string]any{"id": "r1"})

	_, err = db.CreateCollection("telescope")
	biff.AssertTrue(errors.Is(err, ErrCollectionAlreadyExists))

	_, err = db.CreateCollection("../escape")
	biff.AssertTrue(errors.Is(err, ErrInvalidName))

	db.CreateCollection("beam")
	biff.AssertEqual(db.ListCollections(), []string{"beam", "telescope"})

	biff.AssertNil(db.DropCollection("beam"))
	_, err = os.Stat(filepath.Join(dir, "beam"))
	biff.AssertTrue(os.IsNotExist(err))
	biff.AssertTrue(errors.Is(db.DropCollection("beam"), ErrCollectionNotFound))

	biff.AssertNil(db.Stop())
	biff.AssertEqual(db.GetStatus(), StatusClosing)

	// reopen
	db = NewDatabase(&Config{Dir: dir})
	biff.AssertNil(db.Load())
	col, err = db.GetCollection("telescope")
	biff.AssertNil(err)
	biff.AssertEqual(col.Len(), 1)
	biff.AssertNil(db.Stop())
}
