package locationlog

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
)

// Entry is one append-only location-log row.
type Entry struct {
	SessionID         string
	X                 float64
	Y                 float64
	ZoneName          string
	TargetDestination string
	TimestampMillis   int64
}

// Sink is the append-only external collaborator SessionCoordinator
// writes every location response to. A synchronous append is tolerable
// only when it's sub-millisecond; CSVSink instead buffers and drains
// asynchronously so a slow disk never stalls the positioning pipeline.
type Sink interface {
	Append(e Entry)
	Close()
}

// CSVSink is a bounded-channel, single-writer-goroutine sink appending
// to a CSV file: a buffered queue, a drop-if-full Append, and one
// goroutine owning the file handle for its lifetime.
type CSVSink struct {
	queue   chan Entry
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// NewCSVSink opens path for appending (creating it with a header row if
// it doesn't exist yet) and starts the drain goroutine. capacity bounds
// how many entries may queue before Append starts dropping rows.
func NewCSVSink(path string, capacity int) (*CSVSink, error) {
	writeHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("locationlog: open %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{"sessionId", "x", "y", "zoneName", "targetDestination", "timestamp"}); err != nil {
			f.Close()
			return nil, fmt.Errorf("locationlog: write header: %w", err)
		}
		w.Flush()
	}

	s := &CSVSink{queue: make(chan Entry, capacity)}
	s.wg.Add(1)
	go s.loop(f, w)
	return s, nil
}

func (s *CSVSink) loop(f *os.File, w *csv.Writer) {
	defer s.wg.Done()
	defer f.Close()

	for e := range s.queue {
		row := []string{
			e.SessionID,
			strconv.FormatFloat(e.X, 'f', 2, 64),
			strconv.FormatFloat(e.Y, 'f', 2, 64),
			e.ZoneName,
			e.TargetDestination,
			strconv.FormatInt(e.TimestampMillis, 10),
		}
		if err := w.Write(row); err != nil {
			log.Printf("locationlog: write row failed: %v", err)
			continue
		}
		w.Flush()
		if err := w.Error(); err != nil {
			log.Printf("locationlog: flush failed: %v", err)
		}
	}
}

// Append enqueues e for the drain goroutine. Non-blocking: if the queue
// is full, the entry is dropped rather than stalling the caller's
// positioning pipeline.
func (s *CSVSink) Append(e Entry) {
	select {
	case s.queue <- e:
	default:
		n := s.dropped.Add(1)
		if n%100 == 1 {
			log.Printf("locationlog: queue full, dropped entry (total dropped: %d)", n)
		}
	}
}

// Close drains and stops the sink's goroutine, closing the underlying file.
func (s *CSVSink) Close() {
	close(s.queue)
	s.wg.Wait()
}
