package fs

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/mailscout"
)

// Header is the first row of every email CSV file.
var Header = []string{"Website", "Email"}

// Ensure RowFile implements mailscout.RowWriter at compile time.
var _ mailscout.RowWriter = (*RowFile)(nil)

// RowFile stores email rows as a two-column CSV file.
type RowFile struct {
	path string
}

// NewRowFile creates a new RowFile at path.
func NewRowFile(path string) *RowFile {
	return &RowFile{path: path}
}

// Path returns the file location.
func (f *RowFile) Path() string {
	return f.path
}

// WriteRows replaces the file with the header followed by rows.
// Rows are written to a temporary file in the same directory, which is
// renamed over the destination once complete.
func (f *RowFile) WriteRows(ctx context.Context, rows []mailscout.EmailRow) (err error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Write([]string{row.Website, row.Email}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// ReadRows reads the rows back, skipping the header.
// Returns ENOTFOUND if the file does not exist and EINVALID if a row does
// not have exactly two columns.
func (f *RowFile) ReadRows(ctx context.Context) ([]mailscout.EmailRow, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, mailscout.Errorf(mailscout.ENOTFOUND, "email file %s not found", f.path)
	} else if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, mailscout.Errorf(mailscout.EINVALID, "reading %s: %v", f.path, err)
	}

	var rows []mailscout.EmailRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, mailscout.Errorf(mailscout.EINVALID, "reading %s: %v", f.path, err)
		}

		if len(record) != 2 {
			line, _ := r.FieldPos(0)
			return nil, mailscout.Errorf(mailscout.EINVALID, "%s line %d: want 2 columns, got %d", f.path, line, len(record))
		}
		rows = append(rows, mailscout.EmailRow{Website: record[0], Email: record[1]})
	}

	return rows, nil
}
