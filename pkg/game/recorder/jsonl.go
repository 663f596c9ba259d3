package recorder

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// WriteJSONL writes ts as zstd-compressed JSON lines.
func WriteJSONL(w io.Writer, ts []Transition) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 128*1024)

	for _, t := range ts {
		b, err := json.Marshal(t)
		if err != nil {
			_ = enc.Close()
			return err
		}
		if _, err := bw.Write(b); err != nil {
			_ = enc.Close()
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			_ = enc.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// ReadJSONL reads transitions written by WriteJSONL.
func ReadJSONL(r io.Reader) ([]Transition, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	jd := json.NewDecoder(bufio.NewReaderSize(dec, 128*1024))
	var out []Transition
	for line := 1; ; line++ {
		var t Transition
		if err := jd.Decode(&t); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, t)
	}
}

// ExportFile writes ts to path, replacing any existing file.
func ExportFile(path string, ts []Transition) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := WriteJSONL(f, ts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ImportFile reads transitions from a file written by ExportFile.
func ImportFile(path string) ([]Transition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSONL(f)
}
