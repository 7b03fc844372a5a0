package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/fangj99/gifmaze/internal/config"
	"github.com/fangj99/gifmaze/internal/experiment"
	"gopkg.in/yaml.v3"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	configFile   = "config.yaml"
	animFile     = "animation.gif"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	ColorDepth int                `json:"color_depth"`
	Algorithms []string           `json:"algorithms"`
	Frames     int                `json:"frames"`
	Bytes      int                `json:"bytes"`
	Duration   int                `json:"duration"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding the animation, the config that
// produced it, per-frame sizes and metadata. It returns the run ID.
func (s *Store) Save(cfg *config.Config, result *experiment.Result) (string, error) {
	name := cfg.Name
	if name == "" {
		name = "custom"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	gifData := result.Surface.Export()
	if err := os.WriteFile(filepath.Join(runDir, animFile), gifData, 0644); err != nil {
		return "", err
	}

	cfgData, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, configFile), cfgData, 0644); err != nil {
		return "", err
	}

	algos := make([]string, len(cfg.Phases))
	for i, p := range cfg.Phases {
		algos[i] = p.Algorithm
	}
	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  now,
		Seed:       cfg.Seed,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ColorDepth: cfg.ColorDepth,
		Algorithms: algos,
		Frames:     result.Frames,
		Bytes:      len(gifData),
		Duration:   result.Duration,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"frame", "bytes"}); err != nil {
		return "", err
	}
	for i, n := range result.Sizes {
		if err := w.Write([]string{strconv.Itoa(i), strconv.Itoa(n)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the stored runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	slices.SortFunc(runs, func(a, b RunMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadConfig returns the config a run was made with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

// AnimationPath is where a run's GIF lives.
func (s *Store) AnimationPath(runID string) string {
	return filepath.Join(s.baseDir, runID, animFile)
}

// LoadFrameSizes reads the encoded size of every frame of a run.
func (s *Store) LoadFrameSizes(runID string) ([]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []int{}, nil
	}

	sizes := make([]int, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		n, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", record[0], err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
