package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/tahoefourseasons/itinerary-api/internal/types"
)

// pois.json is generated by the site build step from the content files and
// checked in here so the service has no runtime dependency on the frontend
// repo. A file path from config takes precedence when present.
//
//go:embed pois.json
var embeddedCatalog []byte

// Repository provides read-only access to the POI catalog.
type Repository interface {
	GetCatalog(ctx context.Context) ([]types.POI, error)
}

// Ensure implementation satisfies the interface
var _ Repository = (*FileRepository)(nil)

// FileRepository loads the catalog once per process. The catalog is immutable
// for the process lifetime, so the parsed slice is shared by all requests.
type FileRepository struct {
	path   string
	logger *slog.Logger

	once sync.Once
	pois []types.POI
	err  error
}

func NewFileRepository(path string, logger *slog.Logger) *FileRepository {
	return &FileRepository{path: path, logger: logger}
}

func (r *FileRepository) GetCatalog(ctx context.Context) ([]types.POI, error) {
	r.once.Do(func() {
		r.pois, r.err = r.load(ctx)
	})
	return r.pois, r.err
}

func (r *FileRepository) load(ctx context.Context) ([]types.POI, error) {
	raw := embeddedCatalog
	if r.path != "" {
		if fileRaw, err := os.ReadFile(r.path); err == nil {
			raw = fileRaw
		} else {
			r.logger.WarnContext(ctx, "POI catalog file not readable, using embedded catalog",
				slog.String("path", r.path),
				slog.Any("error", err))
		}
	}

	var pois []types.POI
	if err := json.Unmarshal(raw, &pois); err != nil {
		return nil, fmt.Errorf("failed to parse POI catalog: %w", err)
	}
	if len(pois) == 0 {
		return nil, fmt.Errorf("POI catalog is empty")
	}

	seen := make(map[string]struct{}, len(pois))
	for _, p := range pois {
		if p.ID == "" {
			return nil, fmt.Errorf("POI catalog entry %q has no id", p.Name)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate POI id in catalog: %s", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	r.logger.InfoContext(ctx, "POI catalog loaded", slog.Int("count", len(pois)))
	return pois, nil
}
