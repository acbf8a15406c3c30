package vgacat

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"

	"github.com/retrobus/vgacat/anim"
)

// AnimDB stores animation bundles in a SQLite database. Payloads are kept
// zstd compressed at rest along with a packed first frame for previews.
type AnimDB struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewAnimDB(file string) (*AnimDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS anim (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, crc TEXT NOT NULL UNIQUE, bits INTEGER NOT NULL, palette BLOB NOT NULL, codes BLOB NOT NULL, payload BLOB NOT NULL, preview BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}

	return &AnimDB{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Add stores the animation under name and returns its id. Animations are
// deduplicated by payload CRC; adding one that is already stored returns
// the existing id.
func (db *AnimDB) Add(name string, a *anim.Animation) (int64, error) {
	crc := PayloadCRC(a)

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM anim WHERE crc = ?", crc).Scan(&id); err {
	case sql.ErrNoRows:
		frames, _ := a.DecodeFrames()
		result, err := db.db.Exec("INSERT INTO anim (name, crc, bits, palette, codes, payload, preview) VALUES (?, ?, ?, ?, ?, ?, ?)",
			name, crc, a.BitLen, a.Palette[:], anim.MarshalCodes(a.Codes), db.enc.EncodeAll(a.Payload, nil), frames[0].Pack())
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Get returns the named animation, or nil if it is not stored.
func (db *AnimDB) Get(name string) (*anim.Animation, error) {
	var bits int
	var palette, codes, payload []byte
	switch err := db.db.QueryRow("SELECT bits, palette, codes, payload FROM anim WHERE name = ?", name).Scan(&bits, &palette, &codes, &payload); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		a := &anim.Animation{BitLen: bits}
		copy(a.Palette[:], palette)
		if a.Codes, err = anim.UnmarshalCodes(codes); err != nil {
			return nil, err
		}
		if a.Payload, err = db.dec.DecodeAll(payload, nil); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, err
	}
}

// Entry is one row of the library listing.
type Entry struct {
	ID   int64
	Name string
	CRC  string
	Bits int
}

// List returns all stored animations ordered by name.
func (db *AnimDB) List() ([]Entry, error) {
	rows, err := db.db.Query("SELECT id, name, crc, bits FROM anim ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.CRC, &e.Bits); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// FindPreviewByCRC returns the stored packed first frame for the given
// payload CRC, or nil if no stored animation matches.
func (db *AnimDB) FindPreviewByCRC(crc string) ([]byte, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT preview FROM anim WHERE crc = ?", crc).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		var preview [anim.PackedFrameSize]byte
		copy(preview[:], b)
		return preview[:], nil
	default:
		return nil, err
	}
}

// Close releases the database and the zstd coders.
func (db *AnimDB) Close() error {
	db.dec.Close()
	if err := db.enc.Close(); err != nil {
		db.db.Close()
		return err
	}
	return db.db.Close()
}
