package binser

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// chunk, fileEntry and directory model the records the sync protocol
// exchanges: a directory listing holding files holding chunk hashes.

type chunk struct {
	Offset int64
	Hash   []byte
}

func (c *chunk) Serialize(w *Writer) error {
	if err := w.WriteInt64(c.Offset); err != nil {
		return err
	}
	return w.WriteBytes(c.Hash)
}

func (c *chunk) Deserialize(r *Reader) (err error) {
	if c.Offset, err = r.ReadInt64(); err != nil {
		return err
	}
	c.Hash, err = r.ReadBytes(CountFromStream)
	return err
}

type fileEntry struct {
	Name     string
	ID       uuid.UUID
	Size     int64
	Modified time.Time
	Deleted  bool
	Chunks   []chunk
}

func (f *fileEntry) Serialize(w *Writer) error {
	if err := w.WriteString(f.Name); err != nil {
		return err
	}
	if err := w.WriteUUID(f.ID); err != nil {
		return err
	}
	if err := w.WriteInt64(f.Size); err != nil {
		return err
	}
	if err := w.WriteTime(f.Modified); err != nil {
		return err
	}
	if err := w.WriteBool(f.Deleted); err != nil {
		return err
	}
	return WriteValues(w, f.Chunks)
}

func (f *fileEntry) Deserialize(r *Reader) (err error) {
	if f.Name, err = r.ReadString(); err != nil {
		return err
	}
	if f.ID, err = r.ReadUUID(); err != nil {
		return err
	}
	if f.Size, err = r.ReadInt64(); err != nil {
		return err
	}
	if f.Modified, err = r.ReadTime(); err != nil {
		return err
	}
	if f.Deleted, err = r.ReadBool(); err != nil {
		return err
	}
	f.Chunks, err = ReadValues[chunk](r, CountFromStream)
	return err
}

type directory struct {
	Path  string
	Files []fileEntry
}

func (d *directory) Serialize(w *Writer) error {
	if err := w.WriteString(d.Path); err != nil {
		return err
	}
	return WriteValues(w, d.Files)
}

func (d *directory) Deserialize(r *Reader) (err error) {
	if d.Path, err = r.ReadString(); err != nil {
		return err
	}
	d.Files, err = ReadValues[fileEntry](r, CountFromStream)
	return err
}

func (f fileEntry) equal(o fileEntry) bool {
	if f.Name != o.Name || f.ID != o.ID || f.Size != o.Size || f.Deleted != o.Deleted ||
		!f.Modified.Equal(o.Modified) || len(f.Chunks) != len(o.Chunks) {
		return false
	}
	for i := range f.Chunks {
		if f.Chunks[i].Offset != o.Chunks[i].Offset || !bytes.Equal(f.Chunks[i].Hash, o.Chunks[i].Hash) {
			return false
		}
	}
	return true
}

func (d directory) equal(o directory) bool {
	if d.Path != o.Path || len(d.Files) != len(o.Files) {
		return false
	}
	for i := range d.Files {
		if !d.Files[i].equal(o.Files[i]) {
			return false
		}
	}
	return true
}

func sampleDirectory() directory {
	mod := time.Date(2024, 3, 9, 17, 45, 12, 123456700, time.UTC)
	return directory{
		Path: "/home/ada/Documents",
		Files: []fileEntry{
			{
				Name:     "report.pdf",
				ID:       uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
				Size:     1 << 20,
				Modified: mod,
				Chunks: []chunk{
					{Offset: 0, Hash: []byte{0xde, 0xad, 0xbe, 0xef}},
					{Offset: 1 << 19, Hash: []byte{0xca, 0xfe}},
				},
			},
			{
				Name:     "notes-é.txt",
				ID:       uuid.Nil,
				Modified: mod.Add(-time.Hour),
				Deleted:  true,
			},
		},
	}
}
