package telemetry

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"
)

var csvHeader = []string{
	"op", "device", "workers", "elements", "degree",
	"init_ms", "duration_ms", "total_ms",
}

// CSVSink appends one row per record to a CSV file, writing the header only
// when it creates the file. Safe for concurrent use.
type CSVSink struct {
	mu sync.Mutex
	f  *os.File
	w  *csv.Writer
}

// NewCSVSink opens or creates the stats file at path.
func NewCSVSink(path string) (*CSVSink, error) {
	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	s := &CSVSink{f: f, w: csv.NewWriter(f)}
	if statErr != nil {
		if err := s.w.Write(csvHeader); err != nil {
			f.Close()
			return nil, err
		}
		s.w.Flush()
	}
	return s, nil
}

func (s *CSVSink) Record(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// write errors stay inside the sink
	_ = s.w.Write([]string{
		r.Op,
		r.Device,
		strconv.Itoa(r.Workers),
		strconv.Itoa(r.Elements),
		strconv.FormatUint(uint64(r.Degree), 10),
		strconv.FormatInt(r.Init.Milliseconds(), 10),
		strconv.FormatInt(r.Duration.Milliseconds(), 10),
		strconv.FormatInt(r.Total.Milliseconds(), 10),
	})
	s.w.Flush()
}

func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Flush()
	return s.f.Close()
}
