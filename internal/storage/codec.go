package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ampere207/hyper-vault/internal/apperr"
	"github.com/ampere207/hyper-vault/internal/schema"
)

// Snapshot format: a flat, length-prefixed, little-endian binary encoding
// of the whole engine (metadata + every table). There is no magic number
// and no format version negotiation beyond the advisory Metadata.Version
// string (§6); the binding requirement is bit-exact round-tripping (P1/R1),
// which this codec achieves by always writing tables, rows and row fields
// in a fixed sort order rather than map iteration order.

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
}

// maxStringLen bounds a single length-prefixed field so a corrupt or
// truncated snapshot can never force a multi-gigabyte allocation before the
// read fails.
const maxStringLen = 64 << 20

func readString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n > maxStringLen || int(n) > r.Len() {
		return "", fmt.Errorf("field length %d exceeds remaining input", n)
	}
	data := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, data); err != nil {
			return "", err
		}
	}
	return string(data), nil
}

// Serialize encodes the engine's full state into a byte buffer.
func (e *Engine) Serialize() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var buf bytes.Buffer

	writeString(&buf, e.meta.Version)
	binary.Write(&buf, binary.LittleEndian, e.meta.CreatedAt)
	binary.Write(&buf, binary.LittleEndian, e.meta.LastModified)
	binary.Write(&buf, binary.LittleEndian, e.meta.TotalOperations)
	binary.Write(&buf, binary.LittleEndian, e.meta.TablesCreated)
	binary.Write(&buf, binary.LittleEndian, e.meta.RowsInserted)
	binary.Write(&buf, binary.LittleEndian, e.meta.RowsUpdated)
	binary.Write(&buf, binary.LittleEndian, e.meta.RowsDeleted)

	names := make([]string, 0, len(e.tables))
	for n := range e.tables {
		names = append(names, n)
	}
	sort.Strings(names)

	binary.Write(&buf, binary.LittleEndian, uint32(len(names)))
	for _, name := range names {
		t := e.tables[name]
		writeString(&buf, t.Name)

		binary.Write(&buf, binary.LittleEndian, uint32(len(t.Columns)))
		for _, c := range t.Columns {
			writeString(&buf, c)
		}
		writeString(&buf, t.PrimaryKey)
		binary.Write(&buf, binary.LittleEndian, int32(t.NextRowID))

		ids := make([]int, 0, len(t.Rows))
		for id := range t.Rows {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		binary.Write(&buf, binary.LittleEndian, uint32(len(ids)))
		for _, id := range ids {
			row := t.Rows[id]
			binary.Write(&buf, binary.LittleEndian, int32(id))

			keys := make([]string, 0, len(row))
			for k := range row {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			binary.Write(&buf, binary.LittleEndian, uint32(len(keys)))
			for _, k := range keys {
				writeString(&buf, k)
				writeString(&buf, row[k])
			}
		}
	}

	return buf.Bytes(), nil
}

// Deserialize replaces e's entire state with the state encoded in data. On
// any malformed input it leaves e untouched and returns an *apperr.Error
// with code CodeIO; callers (the persistence layer) treat that as a
// corrupt-snapshot condition.
func (e *Engine) Deserialize(data []byte) error {
	fresh, err := Deserialize(data)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tables = fresh.tables
	e.meta = fresh.meta
	return nil
}

// Deserialize decodes a standalone Engine from a previously-serialized byte
// buffer.
func Deserialize(data []byte) (*Engine, error) {
	r := bytes.NewReader(data)
	e := &Engine{tables: make(map[string]*schema.Table), now: time.Now}

	version, err := readString(r)
	if err != nil {
		return nil, corrupt(err)
	}
	e.meta.Version = version
	if err := binary.Read(r, binary.LittleEndian, &e.meta.CreatedAt); err != nil {
		return nil, corrupt(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &e.meta.LastModified); err != nil {
		return nil, corrupt(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &e.meta.TotalOperations); err != nil {
		return nil, corrupt(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &e.meta.TablesCreated); err != nil {
		return nil, corrupt(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &e.meta.RowsInserted); err != nil {
		return nil, corrupt(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &e.meta.RowsUpdated); err != nil {
		return nil, corrupt(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &e.meta.RowsDeleted); err != nil {
		return nil, corrupt(err)
	}

	var numTables uint32
	if err := binary.Read(r, binary.LittleEndian, &numTables); err != nil {
		return nil, corrupt(err)
	}

	for i := uint32(0); i < numTables; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, corrupt(err)
		}
		var numCols uint32
		if err := binary.Read(r, binary.LittleEndian, &numCols); err != nil {
			return nil, corrupt(err)
		}
		cols := make([]string, numCols)
		for j := uint32(0); j < numCols; j++ {
			c, err := readString(r)
			if err != nil {
				return nil, corrupt(err)
			}
			cols[j] = c
		}
		pk, err := readString(r)
		if err != nil {
			return nil, corrupt(err)
		}
		var nextID int32
		if err := binary.Read(r, binary.LittleEndian, &nextID); err != nil {
			return nil, corrupt(err)
		}

		t := schema.NewTable(name, cols, pk)
		t.NextRowID = int(nextID)

		var numRows uint32
		if err := binary.Read(r, binary.LittleEndian, &numRows); err != nil {
			return nil, corrupt(err)
		}
		for j := uint32(0); j < numRows; j++ {
			var rowID int32
			if err := binary.Read(r, binary.LittleEndian, &rowID); err != nil {
				return nil, corrupt(err)
			}
			var numFields uint32
			if err := binary.Read(r, binary.LittleEndian, &numFields); err != nil {
				return nil, corrupt(err)
			}
			row := make(schema.Row, numFields)
			for k := uint32(0); k < numFields; k++ {
				key, err := readString(r)
				if err != nil {
					return nil, corrupt(err)
				}
				val, err := readString(r)
				if err != nil {
					return nil, corrupt(err)
				}
				row[key] = val
			}
			t.Rows[int(rowID)] = row
		}
		e.tables[name] = t
	}

	return e, nil
}

func corrupt(cause error) error {
	return apperr.Wrap(apperr.CodeIO, "corrupt snapshot", fmt.Errorf("decode failed: %w", cause))
}
