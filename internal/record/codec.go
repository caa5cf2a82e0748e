package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Delimiter separates fields on a line. Values containing it are not escaped.
const Delimiter = "|"

// Codec maps a record type to and from its delimited fields
type Codec[T any] struct {
	Name   string   // collection name used in errors and logs
	Fields []string // field names in file order
	Encode func(T) []string
	Decode func([]string) (T, error)
}

// FieldError reports a single field that could not be parsed
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: invalid value %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// CorruptRecordError reports a line whose fields could not be decoded
type CorruptRecordError struct {
	Collection string
	Line       int
	Field      string
	Value      string
	Err        error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt %s record at line %d: field %s: invalid value %q: %v",
		e.Collection, e.Line, e.Field, e.Value, e.Err)
}

func (e *CorruptRecordError) Unwrap() error { return e.Err }

// CorruptHandler decides what happens to a corrupt line. Returning nil skips
// the line and continues; returning an error aborts the load.
type CorruptHandler func(*CorruptRecordError) error

// Abort is a CorruptHandler that stops at the first corrupt line
func Abort(err *CorruptRecordError) error { return err }

// Split breaks a line into fields
func Split(line string) []string {
	return strings.Split(line, Delimiter)
}

// Join assembles fields into a line
func Join(fields []string) string {
	return strings.Join(fields, Delimiter)
}

// Decode reads every record from r. Empty lines and lines with fewer fields
// than the codec requires are skipped. Lines with unparsable fields go to
// onCorrupt; a nil handler aborts.
func Decode[T any](r io.Reader, c Codec[T], onCorrupt CorruptHandler) ([]T, error) {
	if onCorrupt == nil {
		onCorrupt = Abort
	}

	var out []T
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		fields := Split(line)
		if len(fields) < len(c.Fields) {
			continue
		}
		item, err := c.Decode(fields)
		if err != nil {
			corrupt := &CorruptRecordError{Collection: c.Name, Line: lineNo, Err: err}
			var fe *FieldError
			if errors.As(err, &fe) {
				corrupt.Field, corrupt.Value, corrupt.Err = fe.Field, fe.Value, fe.Err
			}
			if herr := onCorrupt(corrupt); herr != nil {
				return nil, herr
			}
			continue
		}
		out = append(out, item)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Name, err)
	}
	return out, nil
}

// Encode writes one line per record
func Encode[T any](w io.Writer, c Codec[T], items []T) error {
	bw := bufio.NewWriter(w)
	for _, item := range items {
		if _, err := bw.WriteString(Join(c.Encode(item)) + "\n"); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Name, err)
		}
	}
	return bw.Flush()
}

// FormatFloat renders a float with six decimals, e.g. "3000.000000"
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// FormatInt renders an integer in base 10
func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// fieldReader parses positional fields and keeps the first error
type fieldReader struct {
	fields []string
	names  []string
	err    error
}

func newFieldReader(fields, names []string) *fieldReader {
	return &fieldReader{fields: fields, names: names}
}

func (r *fieldReader) str(i int) string {
	return r.fields[i]
}

func (r *fieldReader) float(i int) float64 {
	if r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(r.fields[i]), 64)
	if err != nil {
		r.err = &FieldError{Field: r.names[i], Value: r.fields[i], Err: err}
	}
	return v
}

func (r *fieldReader) int(i int) int {
	if r.err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(r.fields[i]))
	if err != nil {
		r.err = &FieldError{Field: r.names[i], Value: r.fields[i], Err: err}
	}
	return v
}
