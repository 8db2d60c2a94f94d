package probe

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// reportWriter writes Records as JSON lines, zstd-compressed when the path
// ends in ".zst".
type reportWriter struct {
	file *os.File
	buf  *bufio.Writer
	enc  *zstd.Encoder
	json *json.Encoder
}

func newReportWriter(path string) (*reportWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create report dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	rw := &reportWriter{file: f}
	var w io.Writer = f
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		rw.enc = enc
		w = enc
	}
	rw.buf = bufio.NewWriter(w)
	rw.json = json.NewEncoder(rw.buf)
	return rw, nil
}

func (rw *reportWriter) Write(r Record) error {
	if err := rw.json.Encode(r); err != nil {
		return fmt.Errorf("write record %d: %w", r.Index, err)
	}
	return nil
}

func (rw *reportWriter) Close() error {
	if err := rw.buf.Flush(); err != nil {
		rw.file.Close()
		return fmt.Errorf("flush report: %w", err)
	}
	if rw.enc != nil {
		if err := rw.enc.Close(); err != nil {
			rw.file.Close()
			return fmt.Errorf("finalize compression: %w", err)
		}
	}
	return rw.file.Close()
}

// ReadReport decodes a report written by Run, decompressing ".zst" files.
func ReadReport(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	var out []Record
	d := json.NewDecoder(r)
	for d.More() {
		var rec Record
		if err := d.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
	return out, nil
}
