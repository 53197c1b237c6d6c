package metrics

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// See https://github.com/prometheus/procfs/blob/a4ac0826abceb44c40fc71daed2b301db498b93e/proc_stat.go#L40 .
const userHZ = 100

// Different environments may have different page size.
var pageSizeBytes = uint64(os.Getpagesize())

// See http://man7.org/linux/man-pages/man5/proc.5.html
type procStat struct {
	State       byte
	Ppid        int
	Pgrp        int
	Session     int
	TtyNr       int
	Tpgid       int
	Flags       uint
	Minflt      uint
	Cminflt     uint
	Majflt      uint
	Cmajflt     uint
	Utime       uint
	Stime       uint
	Cutime      int
	Cstime      int
	Priority    int
	Nice        int
	NumThreads  int
	ItrealValue int
	Starttime   uint64
	Vsize       uint
	Rss         int
}

func collectProcessFamilies() []Family {
	var families []Family

	if maxFds, err := softRlimit(unix.RLIMIT_NOFILE); err == nil {
		families = append(families, gaugeFamily("process_max_fds",
			"Maximum number of open file descriptors.", float64(maxFds)))
	}
	if maxVM, err := softRlimit(unix.RLIMIT_AS); err == nil {
		families = append(families, gaugeFamily("process_virtual_memory_max_bytes",
			"Maximum amount of virtual memory available in bytes.", float64(maxVM)))
	}
	if openFds, err := countOpenFDs(); err == nil {
		families = append(families, gaugeFamily("process_open_fds",
			"Number of open file descriptors.", float64(openFds)))
	} else {
		log.Printf("WARN: cannot count open fds: %s", err)
	}

	stat, err := readProcStat()
	if err != nil {
		log.Printf("WARN: cannot read process stats: %s", err)
		return families
	}

	cpuSeconds := float64(stat.Utime+stat.Stime) / userHZ
	families = append(families,
		counterFamily("process_cpu_seconds_total",
			"Total user and system CPU time spent in seconds.", cpuSeconds),
		gaugeFamily("process_virtual_memory_bytes",
			"Virtual memory size in bytes.", float64(stat.Vsize)),
		gaugeFamily("process_resident_memory_bytes",
			"Resident memory size in bytes.", float64(uint64(stat.Rss)*pageSizeBytes)),
		gaugeFamily("process_threads",
			"Number of OS threads in the process.", float64(stat.NumThreads)),
	)

	startSeconds := float64(startTime.Unix())
	if bootTime, err := readBootTime(); err == nil {
		startSeconds = float64(bootTime) + float64(stat.Starttime)/userHZ
	}
	families = append(families, counterFamily("process_start_time_seconds",
		"Start time of the process since unix epoch in seconds.", startSeconds))

	return families
}

// softRlimit returns the soft limit for the given resource.
func softRlimit(resource int) (uint64, error) {
	var rlimit unix.Rlimit
	if err := unix.Getrlimit(resource, &rlimit); err != nil {
		return 0, err
	}
	return rlimit.Cur, nil
}

func readProcStat() (*procStat, error) {
	data, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return nil, err
	}
	// Skip the pid and the parenthesized command name; the name may contain
	// spaces, so search for the closing ') ' instead of splitting on fields.
	n := bytes.LastIndex(data, []byte(") "))
	if n < 0 {
		return nil, fmt.Errorf("unexpected format of /proc/self/stat: %q", data)
	}
	var p procStat
	_, err = fmt.Fscanf(bytes.NewReader(data[n+2:]),
		"%c %d %d %d %d %d %d %d %d %d %d %d %d %d %d %d %d %d %d %d %d %d",
		&p.State, &p.Ppid, &p.Pgrp, &p.Session, &p.TtyNr, &p.Tpgid, &p.Flags,
		&p.Minflt, &p.Cminflt, &p.Majflt, &p.Cmajflt,
		&p.Utime, &p.Stime, &p.Cutime, &p.Cstime, &p.Priority, &p.Nice,
		&p.NumThreads, &p.ItrealValue, &p.Starttime, &p.Vsize, &p.Rss)
	if err != nil {
		return nil, fmt.Errorf("cannot parse /proc/self/stat %q: %w", data, err)
	}
	return &p, nil
}

// countOpenFDs returns the number of open file descriptors for the current
// process.
func countOpenFDs() (int, error) {
	f, err := os.Open("/proc/self/fd")
	if err != nil {
		return 0, err
	}
	defer f.Close()
	total := 0
	for {
		names, err := f.Readdirnames(512)
		total += len(names)
		if err == io.EOF {
			// The directory listing itself holds one extra fd open.
			return total - 1, nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// readBootTime returns the btime value from /proc/stat - the system boot time
// in seconds since the unix epoch.
func readBootTime() (int64, error) {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return 0, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "btime ") {
			continue
		}
		bootTime, err := strconv.ParseInt(strings.TrimSpace(line[len("btime "):]), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse btime from /proc/stat line %q: %w", line, err)
		}
		return bootTime, nil
	}
	return 0, fmt.Errorf("no btime line found in /proc/stat")
}
