package locationlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCSVSinkWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	sink, err := NewCSVSink(path, 8)
	if err != nil {
		t.Fatalf("NewCSVSink: %v", err)
	}

	sink.Append(Entry{SessionID: "s1", X: 10, Y: 20, ZoneName: "157", TargetDestination: "147", TimestampMillis: 1000})
	sink.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "sessionId,x,y,zoneName,targetDestination,timestamp") {
		t.Fatalf("missing header row: %q", content)
	}
	if !strings.Contains(content, "s1,10.00,20.00,157,147,1000") {
		t.Fatalf("missing expected row: %q", content)
	}
}

func TestCSVSinkAppendsWithoutBlocking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	sink, err := NewCSVSink(path, 1)
	if err != nil {
		t.Fatalf("NewCSVSink: %v", err)
	}
	defer sink.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			sink.Append(Entry{SessionID: "s1", TimestampMillis: int64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Append blocked instead of dropping excess entries")
	}
}

func TestCSVSinkAppendsToExistingFileWithoutDuplicateHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	s1, err := NewCSVSink(path, 4)
	if err != nil {
		t.Fatalf("NewCSVSink: %v", err)
	}
	s1.Append(Entry{SessionID: "s1", TimestampMillis: 1})
	s1.Close()

	s2, err := NewCSVSink(path, 4)
	if err != nil {
		t.Fatalf("NewCSVSink (reopen): %v", err)
	}
	s2.Append(Entry{SessionID: "s2", TimestampMillis: 2})
	s2.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Count(string(data), "sessionId,x,y") != 1 {
		t.Fatalf("expected exactly one header row, got content: %q", string(data))
	}
}
