// Package fs provides CSV file storage for site lists and email rows.
package fs

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/mailscout"
)

// Ensure SiteFile implements mailscout.SiteSource at compile time.
var _ mailscout.SiteSource = (*SiteFile)(nil)

// SiteFile reads site URLs from a CSV file with a header row.
// The first column of each following row is the URL.
type SiteFile struct {
	path string
}

// NewSiteFile creates a new SiteFile reading from path.
func NewSiteFile(path string) *SiteFile {
	return &SiteFile{path: path}
}

// ReadSites returns the URLs in file order, trimmed, skipping empty rows.
func (f *SiteFile) ReadSites(ctx context.Context) ([]string, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, mailscout.Errorf(mailscout.ENOTFOUND, "site list %s not found", f.path)
	} else if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	// Header
	if _, err := r.Read(); err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, mailscout.Errorf(mailscout.EINVALID, "reading %s: %v", f.path, err)
	}

	var sites []string
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

		if len(record) == 0 {
			continue
		}
		if site := strings.TrimSpace(record[0]); site != "" {
			sites = append(sites, site)
		}
	}

	return sites, nil
}
