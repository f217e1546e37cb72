package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Logger is the optional per-agent telemetry archive: a directory of
// CSV files, one row appended per logged tick to each enabled file.
// A nil *Logger is always safe to call methods on, so callers don't
// need an extra branch for the "logging disabled" case.
type Logger struct {
	dir string

	motionFile *os.File
	motionHdr  bool

	statsFile *os.File
	statsHdr  bool

	polarFile  *os.File
	polarW     *csv.Writer
	polarHdr   bool

	windowFile *os.File
	windowW    *csv.Writer
	windowHdr  bool

	fullGridFile *os.File
	fullGridW    *csv.Writer
	fullGridHdr  bool
	logFullGrid  bool

	snapshot any
}

// NewLogger creates dir and opens the telemetry files inside it.
// logFullGrid controls whether the heavy full_grid.csv dataset (one row
// of W*H bytes per tick) is written at all.
func NewLogger(dir string, logFullGrid bool) (*Logger, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}

	l := &Logger{dir: dir, logFullGrid: logFullGrid}

	var err error
	if l.motionFile, err = os.Create(filepath.Join(dir, "motion.csv")); err != nil {
		return nil, fmt.Errorf("creating motion.csv: %w", err)
	}
	if l.statsFile, err = os.Create(filepath.Join(dir, "window_stats.csv")); err != nil {
		l.Close()
		return nil, fmt.Errorf("creating window_stats.csv: %w", err)
	}
	if l.polarFile, err = os.Create(filepath.Join(dir, "polar_histogram.csv")); err != nil {
		l.Close()
		return nil, fmt.Errorf("creating polar_histogram.csv: %w", err)
	}
	l.polarW = csv.NewWriter(l.polarFile)

	if l.windowFile, err = os.Create(filepath.Join(dir, "window_histogram.csv")); err != nil {
		l.Close()
		return nil, fmt.Errorf("creating window_histogram.csv: %w", err)
	}
	l.windowW = csv.NewWriter(l.windowFile)

	if logFullGrid {
		if l.fullGridFile, err = os.Create(filepath.Join(dir, "full_grid.csv")); err != nil {
			l.Close()
			return nil, fmt.Errorf("creating full_grid.csv: %w", err)
		}
		l.fullGridW = csv.NewWriter(l.fullGridFile)
	}

	return l, nil
}

// LogMotion appends one row of motion telemetry to motion.csv.
func (l *Logger) LogMotion(row MotionRow) error {
	if l == nil {
		return nil
	}
	records := []MotionRow{row}
	if !l.motionHdr {
		if err := gocsv.Marshal(records, l.motionFile); err != nil {
			return fmt.Errorf("writing motion.csv: %w", err)
		}
		l.motionHdr = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, l.motionFile); err != nil {
		return fmt.Errorf("writing motion.csv: %w", err)
	}
	return nil
}

// LogWindowStats appends one row to window_stats.csv, archiving a
// Collector flush alongside the per-tick motion trace.
func (l *Logger) LogWindowStats(tick int, s WindowStats) error {
	if l == nil {
		return nil
	}
	records := []WindowStatsRow{{
		Tick:      tick,
		Ticks:     s.Ticks,
		MeanSpeed: s.MeanSpeed,
		StdSpeed:  s.StdSpeed,
		MinSpeed:  s.MinSpeed,
		MaxSpeed:  s.MaxSpeed,
	}}
	if !l.statsHdr {
		if err := gocsv.Marshal(records, l.statsFile); err != nil {
			return fmt.Errorf("writing window_stats.csv: %w", err)
		}
		l.statsHdr = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, l.statsFile); err != nil {
		return fmt.Errorf("writing window_stats.csv: %w", err)
	}
	return nil
}

// LogPolarHistogram appends one row to polar_histogram.csv: tick then
// the K smoothed sector values. K varies per agent configuration, so
// this dataset is written with the stdlib csv writer directly rather
// than gocsv, which expects a fixed set of struct-tagged columns.
func (l *Logger) LogPolarHistogram(tick int, values []float64) error {
	if l == nil {
		return nil
	}
	if !l.polarHdr {
		header := make([]string, len(values)+1)
		header[0] = "tick"
		for i := range values {
			header[i+1] = fmt.Sprintf("k%d", i)
		}
		if err := l.polarW.Write(header); err != nil {
			return fmt.Errorf("writing polar_histogram.csv header: %w", err)
		}
		l.polarHdr = true
	}
	if err := l.polarW.Write(floatRow(tick, values)); err != nil {
		return fmt.Errorf("writing polar_histogram.csv row: %w", err)
	}
	l.polarW.Flush()
	return l.polarW.Error()
}

// LogWindowHistogram appends one row to window_histogram.csv: tick then
// the WINDOW_SIZE^2 certainty values of the active window.
func (l *Logger) LogWindowHistogram(tick int, window []uint8) error {
	if l == nil {
		return nil
	}
	if !l.windowHdr {
		header := make([]string, len(window)+1)
		header[0] = "tick"
		for i := range window {
			header[i+1] = fmt.Sprintf("c%d", i)
		}
		if err := l.windowW.Write(header); err != nil {
			return fmt.Errorf("writing window_histogram.csv header: %w", err)
		}
		l.windowHdr = true
	}
	if err := l.windowW.Write(byteRow(tick, window)); err != nil {
		return fmt.Errorf("writing window_histogram.csv row: %w", err)
	}
	l.windowW.Flush()
	return l.windowW.Error()
}

// LogFullGrid appends one row to full_grid.csv: tick then every cell of
// the agent's full certainty grid. A no-op unless the logger was built
// with logFullGrid, since this dataset is heavy and opt-in.
func (l *Logger) LogFullGrid(tick int, cells []uint8) error {
	if l == nil || !l.logFullGrid {
		return nil
	}
	if !l.fullGridHdr {
		header := make([]string, len(cells)+1)
		header[0] = "tick"
		for i := range cells {
			header[i+1] = fmt.Sprintf("cell%d", i)
		}
		if err := l.fullGridW.Write(header); err != nil {
			return fmt.Errorf("writing full_grid.csv header: %w", err)
		}
		l.fullGridHdr = true
	}
	if err := l.fullGridW.Write(byteRow(tick, cells)); err != nil {
		return fmt.Errorf("writing full_grid.csv row: %w", err)
	}
	l.fullGridW.Flush()
	return l.fullGridW.Error()
}

// SnapshotConfig records cfg to be written as config.yaml alongside the
// rest of the archive when Close runs, so a run's output directory is
// self-describing without cross-referencing the original config path.
func (l *Logger) SnapshotConfig(cfg any) {
	if l == nil {
		return
	}
	l.snapshot = cfg
}

// Close flushes and closes every open file, writes the config snapshot
// if one was recorded, and returns the first error encountered.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	var errFirst error
	closeAll := func(f *os.File) {
		if f == nil {
			return
		}
		if err := f.Close(); err != nil && errFirst == nil {
			errFirst = err
		}
	}
	closeAll(l.motionFile)
	closeAll(l.statsFile)
	closeAll(l.polarFile)
	closeAll(l.windowFile)
	closeAll(l.fullGridFile)
	l.motionFile, l.statsFile, l.polarFile, l.windowFile, l.fullGridFile = nil, nil, nil, nil, nil

	if l.snapshot != nil {
		if err := writeYAMLSnapshot(filepath.Join(l.dir, "config.yaml"), l.snapshot); err != nil && errFirst == nil {
			errFirst = err
		}
	}
	return errFirst
}

func writeYAMLSnapshot(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling config snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}
	return nil
}

func floatRow(tick int, values []float64) []string {
	row := make([]string, len(values)+1)
	row[0] = strconv.Itoa(tick)
	for i, v := range values {
		row[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return row
}

func byteRow(tick int, values []uint8) []string {
	row := make([]string, len(values)+1)
	row[0] = strconv.Itoa(tick)
	for i, v := range values {
		row[i+1] = strconv.Itoa(int(v))
	}
	return row
}
