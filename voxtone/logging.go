package voxtone

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

var errLogClosed = errors.New("log file closed")

// logFile is the --log destination. Once a write would take it past limit
// bytes the file moves to <path>.1, replacing the previous backup, and a
// fresh file is started.
type logFile struct {
	mu    sync.Mutex
	path  string
	limit int64
	f     *os.File
	size  int64
}

func openLogFile(path string, limit int64) (*logFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	lf := &logFile{path: path, limit: limit}
	if err := lf.open(); err != nil {
		return nil, err
	}
	if lf.size >= limit {
		if err := lf.rotate(); err != nil {
			_ = lf.f.Close()
			return nil, err
		}
	}
	return lf, nil
}

func (lf *logFile) open() error {
	f, err := os.OpenFile(lf.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	lf.f, lf.size = f, info.Size()
	return nil
}

func (lf *logFile) rotate() error {
	if err := lf.f.Close(); err != nil {
		return err
	}
	lf.f = nil
	if err := os.Rename(lf.path, lf.backupPath()); err != nil {
		return err
	}
	return lf.open()
}

func (lf *logFile) backupPath() string {
	return lf.path + ".1"
}

func (lf *logFile) Write(p []byte) (int, error) {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	if lf.f == nil {
		return 0, errLogClosed
	}
	if lf.size > 0 && lf.size+int64(len(p)) > lf.limit {
		if err := lf.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := lf.f.Write(p)
	lf.size += int64(n)
	return n, err
}

func (lf *logFile) Close() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	if lf.f == nil {
		return nil
	}
	err := lf.f.Close()
	lf.f = nil
	return err
}

// setupLog installs the default logger. With an empty path logs go to out
// (io.Discard when the TUI owns the terminal); otherwise to a size-capped file.
// File logs use logfmt so they stay greppable.
func setupLog(path string, level log.Level, out io.Writer) (func() error, error) {
	opts := log.Options{
		ReportTimestamp: true,
		Level:           level,
	}
	closer := func() error { return nil }
	if path != "" {
		lf, err := openLogFile(path, defaultLogMaxBytes)
		if err != nil {
			return closer, err
		}
		out, closer = lf, lf.Close
		opts.Formatter = log.LogfmtFormatter
		opts.ReportCaller = level == log.DebugLevel
	}
	log.SetDefault(log.NewWithOptions(out, opts))
	return closer, nil
}
