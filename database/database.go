package database

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fulldump/telesync/collection"
	"github.com/fulldump/telesync/utils"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrCollectionNotFound      = errors.New("collection not found")
	ErrCollectionAlreadyExists = errors.New("collection already exists")
	ErrInvalidName             = errors.New("invalid collection name")
)

type Config struct {
	Dir    string
	Logger *log.Logger
}

type Database struct {
	config      *Config
	logger      *log.Logger
	status      string
	statusMutex sync.RWMutex
	collections map[string]*collection.Collection
	mutex       sync.RWMutex
	exit        chan struct{}
	stopOnce    sync.Once
}

func NewDatabase(config *Config) *Database {

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Database{
		config:      config,
		logger:      logger,
		status:      StatusOpening,
		collections: map[string]*collection.Collection{},
		exit:        make(chan struct{}),
	}
}

func (db *Database) GetStatus() string {
	db.statusMutex.RLock()
	defer db.statusMutex.RUnlock()
	return db.status
}

func (db *Database) setStatus(status string) {
	db.statusMutex.Lock()
	db.status = status
	db.statusMutex.Unlock()
}

func (db *Database) filename(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	}
	return filepath.Join(db.config.Dir, name), nil
}

func (db *Database) CreateCollection(name string) (*collection.Collection, error) {

	filename, err := db.filename(name)
	if err != nil {
		return nil, err
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.collections[name]; exists {
		return nil, fmt.Errorf("'%s': %w", name, ErrCollectionAlreadyExists)
	}

	col, err := collection.OpenCollection(filename)
	if err != nil {
		return nil, err
	}

	db.collections[name] = col
	db.logger.Printf("collection '%s' created", name)

	return col, nil
}

func (db *Database) GetCollection(name string) (*collection.Collection, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	col, exists := db.collections[name]
	if !exists {
		return nil, fmt.Errorf("'%s': %w", name, ErrCollectionNotFound)
	}
	return col, nil
}

// ListCollections returns collection names in lexical order.
func (db *Database) ListCollections() []string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return utils.GetKeys(db.collections)
}

func (db *Database) DropCollection(name string) error {

	db.mutex.Lock()
	defer db.mutex.Unlock()

	col, exists := db.collections[name]
	if !exists {
		return fmt.Errorf("'%s': %w", name, ErrCollectionNotFound)
	}

	err := col.Drop()
	if err != nil {
		return fmt.Errorf("drop '%s': %w", name, err)
	}

	delete(db.collections, name)
	db.logger.Printf("collection '%s' dropped", name)

	return nil
}

func (db *Database) Load() error {

	dir := db.config.Dir
	db.logger.Printf("loading database %s...", dir)

	err := os.MkdirAll(dir, 0755)
	if err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	err = filepath.WalkDir(dir, func(filename string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if filename != dir {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()

		t0 := time.Now()
		col, err := collection.OpenCollection(filename)
		if err != nil {
			db.logger.Printf("ERROR: open collection '%s': %s", filename, err.Error())
			return err
		}
		db.logger.Println(name, col.Len(), time.Since(t0))

		db.mutex.Lock()
		db.collections[name] = col
		db.mutex.Unlock()

		return nil
	})

	if err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	db.setStatus(StatusOperating)

	return nil
}

// Start loads every collection and blocks until Stop is called.
func (db *Database) Start() error {

	err := db.Load()
	if err != nil {
		return err
	}

	<-db.exit

	return nil
}

func (db *Database) Stop() error {

	var lastErr error
	db.stopOnce.Do(func() {
		defer close(db.exit)

		db.setStatus(StatusClosing)

		db.mutex.Lock()
		defer db.mutex.Unlock()

		for name, col := range db.collections {
			db.logger.Printf("closing '%s'...", name)
			err := col.Close()
			if err != nil {
				db.logger.Printf("ERROR: close(%s): %s", name, err.Error())
				lastErr = err
			}
		}
	})

	return lastErr
}
