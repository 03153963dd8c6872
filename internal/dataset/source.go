package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"disruption-stats-go/internal/types"
)

// Years the dashboard offers, newest first.
var Years = []string{
	"2024", "2023", "2022", "2021", "2020", "2019", "2018",
	"2017", "2016", "2015", "2014", "2013", "2012", "2011",
}

const trackFile = "train-map.json"

var (
	// ErrFetch wraps every failure to obtain a data file.
	ErrFetch = errors.New("fetch failed")
	// ErrNotFound means the file for the selection does not exist.
	ErrNotFound = errors.New("data file not found")
	// ErrUnsupportedYear rejects years outside Years.
	ErrUnsupportedYear = errors.New("unsupported year")
)

// Source provides the raw yearly records and the map tracks.
type Source interface {
	Records(ctx context.Context, year string) ([]types.DisruptionRecord, error)
	Tracks(ctx context.Context) ([]types.Track, error)
}

// IsSupported reports whether year is in Years.
func IsSupported(year string) bool {
	return slices.Contains(Years, year)
}

// YearFile is the file name holding one year's records.
func YearFile(year string) (string, error) {
	if !IsSupported(year) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedYear, year)
	}
	return fmt.Sprintf("disruptions-%s.json", year), nil
}

// FileSource reads data files from a local directory.
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) Records(ctx context.Context, year string) ([]types.DisruptionRecord, error) {
	name, err := YearFile(year)
	if err != nil {
		return nil, err
	}
	var out []types.DisruptionRecord
	if err := s.readJSON(ctx, name, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FileSource) Tracks(ctx context.Context) ([]types.Track, error) {
	var out []types.Track
	if err := s.readJSON(ctx, trackFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FileSource) readJSON(ctx context.Context, name string, target any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	path := filepath.Join(s.Dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %w: %s", ErrFetch, ErrNotFound, path)
		}
		return fmt.Errorf("%w: read %s: %w", ErrFetch, path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrFetch, path, err)
	}
	return nil
}
