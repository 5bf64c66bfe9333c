package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/forcekit/internal/backend"
	"github.com/san-kum/forcekit/internal/experiment"
	"github.com/san-kum/forcekit/internal/vector"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrBadSamples  = errors.New("storage: malformed samples file")
	ErrInvalidID   = errors.New("storage: invalid run id")
)

var sampleHeader = []string{"step", "time", "f64", "f32", "vec_x", "vec_y", "vec_z", "energy"}

type Store struct {
	baseDir string
	create  func(path string) (io.WriteCloser, error)
}

func New(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		create:  func(path string) (io.WriteCloser, error) { return os.Create(path) },
	}
}

// runDir resolves a run id to its directory. Ids are single path elements,
// so a run can never resolve outside baseDir.
func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || filepath.Base(runID) != runID {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// BackendMetadata is the stored form of backend.Info.
type BackendMetadata struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Device    string `json:"device"`
	Vector    string `json:"vector"`
	Available bool   `json:"available"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Session   uuid.UUID          `json:"session"`
	Timestamp time.Time          `json:"timestamp"`
	Steps     int                `json:"steps"`
	Dt        float64            `json:"dt"`
	Parallel  bool               `json:"parallel"`
	Backends  []BackendMetadata  `json:"backends"`
	Forces    []experiment.Spec  `json:"forces"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the metadata and samples of a finished run under a fresh
// directory named after the session and returns the run id.
func (s *Store) Save(session uuid.UUID, cfg experiment.Config, result *experiment.Result, metrics map[string]float64) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", session.String()[:8], now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Session:   session,
		Timestamp: now,
		Steps:     cfg.Steps,
		Dt:        cfg.Dt,
		Parallel:  cfg.Parallel,
		Backends:  backendMetadata(result.Backends),
		Forces:    cfg.Forces,
		Metrics:   metrics,
	}
	if err := s.writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := s.writeSamples(filepath.Join(runDir, samplesFile), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func backendMetadata(infos []backend.Info) []BackendMetadata {
	out := make([]BackendMetadata, 0, len(infos))
	for _, info := range infos {
		out = append(out, BackendMetadata{
			Name:      info.Name,
			Type:      info.ID.String(),
			Device:    info.Device.String(),
			Vector:    info.Vector,
			Available: info.Available,
		})
	}
	return out
}

// closeFile closes f, keeping the first error.
func closeFile(f io.Closer, err *error) {
	if cerr := f.Close(); *err == nil {
		*err = cerr
	}
}

func (s *Store) writeMetadata(path string, meta RunMetadata) (err error) {
	f, err := s.create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func formatFloat(v float64, bits int) string {
	return strconv.FormatFloat(v, 'g', -1, bits)
}

func (s *Store) writeSamples(path string, samples []experiment.Sample) (err error) {
	f, err := s.create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	w := csv.NewWriter(f)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatUint(smp.Step, 10),
			formatFloat(smp.Time, 64),
			formatFloat(smp.F64, 64),
			formatFloat(float64(smp.F32), 32),
			formatFloat(smp.Vec.X, 64),
			formatFloat(smp.Vec.Y, 64),
			formatFloat(smp.Vec.Z, 64),
			formatFloat(smp.Energy, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, newest first. Directories
// without readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]experiment.Sample, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(dir, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(sampleHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSamples, err)
	}
	if len(records) < 2 {
		return []experiment.Sample{}, nil
	}

	samples := make([]experiment.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		smp, err := parseSample(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadSamples, i+1, err)
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(rec []string) (experiment.Sample, error) {
	var smp experiment.Sample

	step, err := strconv.ParseUint(rec[0], 10, 64)
	if err != nil {
		return smp, err
	}
	smp.Step = step

	vals := make([]float64, len(rec)-1)
	for i, field := range rec[1:] {
		bits := 64
		if i == 2 {
			bits = 32
		}
		v, err := strconv.ParseFloat(field, bits)
		if err != nil {
			return smp, err
		}
		vals[i] = v
	}

	smp.Time = vals[0]
	smp.F64 = vals[1]
	smp.F32 = float32(vals[2])
	smp.Vec = vector.NewVec3(vals[3], vals[4], vals[5])
	smp.Energy = vals[6]
	return smp, nil
}
