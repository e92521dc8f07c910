package signals

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// filenameLayout is the date layout of day-file names.
	filenameLayout = "20060102"
	// resourceLayout is the date layout of resource identifiers.
	resourceLayout = "2006-01-02"
)

// DayFile is one discovered day file.
type DayFile struct {
	// Name is the base name, extension included.
	Name string
	// Path is the full path of the file.
	Path string
	// Format is the lower-case extension without the dot.
	Format string
	// Date is the day encoded in the name.
	Date time.Time
}

// Resource returns the identifier of the day, formatted as YYYY-MM-DD.
func (f DayFile) Resource() string {
	return f.Date.Format(resourceLayout)
}

// InvalidDateFilenameError reports a file whose name is not a YYYYMMDD date.
type InvalidDateFilenameError struct {
	// Name is the offending base name.
	Name string
	// Err is the parse failure.
	Err error
}

// Error implements the error interface.
func (e *InvalidDateFilenameError) Error() string {
	return fmt.Sprintf("file %q is not named YYYYMMDD: %v", e.Name, e.Err)
}

// Unwrap exposes the parse failure.
func (e *InvalidDateFilenameError) Unwrap() error {
	return e.Err
}

// DuplicateDayError reports a day file left out because another file holds the same date.
type DuplicateDayError struct {
	// Name is the base name of the file left out.
	Name string
	// Kept is the base name of the file used for the day.
	Kept string
}

// Error implements the error interface.
func (e *DuplicateDayError) Error() string {
	return fmt.Sprintf("file %q duplicates day file %q", e.Name, e.Kept)
}

// Listing is the outcome of a folder scan.
type Listing struct {
	// Files are the day files within range, one per date, ordered by date.
	Files []DayFile
	// Skipped holds one *InvalidDateFilenameError per file that could not be dated
	// and one *DuplicateDayError per file whose date was already taken.
	Skipped []error
}

// Discover lists the day files of dir whose date lies within [from, to].
// Only extensions known to the registry are considered; other files are ignored.
// When several files share a date, the one whose format sorts first in
// registry.Formats is kept and the others are reported as skipped.
func Discover(ctx context.Context, dir string, registry *Registry, from, to time.Time) (*Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	var (
		listing = new(Listing)
		lower   = dateKey(from)
		upper   = dateKey(to)
		rank    = make(map[string]int)
		byDate  = make(map[int]int)
	)

	for i, format := range registry.Formats() {
		rank[format] = i
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		format := strings.ToLower(strings.TrimPrefix(ext, "."))

		if !registry.Supports(format) {
			continue
		}

		date, key, err := parseFilename(strings.TrimSuffix(name, ext))
		if err != nil {
			listing.Skipped = append(listing.Skipped, &InvalidDateFilenameError{Name: name, Err: err})
			continue
		}

		if key < lower || key > upper {
			continue
		}

		file := DayFile{
			Name:   name,
			Path:   filepath.Join(dir, name),
			Format: format,
			Date:   date,
		}

		at, taken := byDate[key]
		if !taken {
			byDate[key] = len(listing.Files)
			listing.Files = append(listing.Files, file)

			continue
		}

		kept := listing.Files[at]
		if rank[file.Format] < rank[kept.Format] {
			listing.Files[at], kept, file = file, file, kept
		}

		listing.Skipped = append(listing.Skipped, &DuplicateDayError{Name: file.Name, Kept: kept.Name})
	}

	sort.SliceStable(listing.Files, func(i, j int) bool {
		return listing.Files[i].Date.Before(listing.Files[j].Date)
	})

	return listing, nil
}

// parseFilename reads the stem of a day file as an integer and then as a calendar date.
func parseFilename(stem string) (time.Time, int, error) {
	key, err := strconv.Atoi(stem)
	if err != nil {
		return time.Time{}, 0, err
	}

	date, err := time.Parse(filenameLayout, stem)
	if err != nil {
		return time.Time{}, 0, err
	}

	return date, key, nil
}

// dateKey encodes a date as the integer YYYYMMDD.
func dateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
