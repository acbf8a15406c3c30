/*
Package vgacat is a library for maintaining canned animations for the VGA1
display controller: decoding bundles, keeping a local library of them, and
driving a controller with the result.
*/
package vgacat

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/retrobus/vgacat/anim"
)

// Library wraps an animation database together with a logger.
type Library struct {
	db     *AnimDB
	logger *log.Logger
}

// New opens the animation database at file, creating it if necessary.
func New(file string, logger *log.Logger) (*Library, error) {
	db, err := NewAnimDB(file)
	if err != nil {
		return nil, err
	}
	return &Library{
		db:     db,
		logger: logger,
	}, nil
}

// Close releases the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Import reads an animation bundle from file and stores it under its
// basename, returning the database id. Importing a bundle whose payload
// is already stored returns the existing id.
func (l *Library) Import(file string) (int64, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return 0, err
	}

	a := new(anim.Animation)
	if err := a.UnmarshalBinary(b); err != nil {
		return 0, err
	}

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	id, err := l.db.Add(name, a)
	if err != nil {
		return 0, err
	}
	l.logger.Printf("imported \"%s\" as #%d with CRC \"%s\"\n", name, id, PayloadCRC(a))

	return id, nil
}

// Get returns the named animation, or nil if the library does not have it.
func (l *Library) Get(name string) (*anim.Animation, error) {
	return l.db.Get(name)
}

// List returns the library contents ordered by name.
func (l *Library) List() ([]Entry, error) {
	return l.db.List()
}
