package metrics

import (
	"strings"
	"testing"
)

func TestProcessCollector(t *testing.T) {
	pc := NewProcessCollector()
	families := pc.Collect()
	if len(families) == 0 {
		t.Fatalf("expecting non-empty families")
	}

	byName := make(map[string]Family, len(families))
	for _, fam := range families {
		if !strings.HasPrefix(fam.Name, "process_") {
			t.Fatalf("unexpected family name %q; must have process_ prefix", fam.Name)
		}
		if len(fam.Samples) != 1 {
			t.Fatalf("unexpected number of samples for %q; got %d; want 1", fam.Name, len(fam.Samples))
		}
		byName[fam.Name] = fam
	}

	for _, name := range []string{
		"process_cpu_seconds_total",
		"process_virtual_memory_bytes",
		"process_resident_memory_bytes",
		"process_threads",
		"process_open_fds",
		"process_max_fds",
		"process_start_time_seconds",
	} {
		if _, ok := byName[name]; !ok {
			t.Fatalf("missing %q family", name)
		}
	}

	if v := byName["process_threads"].Samples[0].Value; v < 1 {
		t.Fatalf("unexpected process_threads value; got %v; want at least 1", v)
	}
	if v := byName["process_open_fds"].Samples[0].Value; v < 1 {
		t.Fatalf("unexpected process_open_fds value; got %v; want at least 1", v)
	}
	// The process started after the unix epoch, well into this century.
	if v := byName["process_start_time_seconds"].Samples[0].Value; v < 1e9 {
		t.Fatalf("unexpected process_start_time_seconds value; got %v", v)
	}
}

func TestReadProcStat(t *testing.T) {
	stat, err := readProcStat()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if stat.NumThreads < 1 {
		t.Fatalf("unexpected NumThreads; got %d; want at least 1", stat.NumThreads)
	}
	if stat.Vsize == 0 {
		t.Fatalf("unexpected zero Vsize")
	}
}

func TestReadBootTime(t *testing.T) {
	bootTime, err := readBootTime()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if bootTime < 1e9 {
		t.Fatalf("unexpected boot time; got %d", bootTime)
	}
}
