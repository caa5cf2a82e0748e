// Package student keeps a flat file of student scores, one
// "id name score" line per student.
package student

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/beesaferoot/dorm-ledger/internal/record"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Student is one scored student
type Student struct {
	ID    string
	Name  string
	Score int
}

// Grade returns the letter grade of the student's score
func (s Student) Grade() string {
	return Grade(s.Score)
}

// Grade maps a score to A (80+), B (70+), C (60+), D (50+) or F
func Grade(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// Book reads and appends to a student file
type Book struct {
	path      string
	onCorrupt record.CorruptHandler
}

// NewBook returns a Book over path. A nil handler aborts on corrupt lines.
func NewBook(path string, onCorrupt record.CorruptHandler) *Book {
	if onCorrupt == nil {
		onCorrupt = record.Abort
	}
	return &Book{path: path, onCorrupt: onCorrupt}
}

func validateWord(name, v string) error {
	if v == "" || strings.ContainsAny(v, " \t\r\n") {
		return fmt.Errorf("%w: %s must be a single word", ErrInvalidInput, name)
	}
	return nil
}

// Add appends a student to the file, creating it if needed
func (b *Book) Add(s Student) error {
	if err := validateWord("id", s.ID); err != nil {
		return err
	}
	if err := validateWord("name", s.Name); err != nil {
		return err
	}

	f, err := os.OpenFile(b.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", b.path, err)
	}
	if _, err := fmt.Fprintf(f, "%s %s %d\n", s.ID, s.Name, s.Score); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", b.path, err)
	}
	return f.Close()
}

// List returns every student in file order. A missing file is empty.
func (b *Book) List() ([]Student, error) {
	f, err := os.Open(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", b.path, err)
	}
	defer f.Close()
	return b.decode(f)
}

// Find returns the first student whose name equals name exactly
func (b *Book) Find(name string) (Student, error) {
	students, err := b.List()
	if err != nil {
		return Student{}, err
	}
	for _, s := range students {
		if s.Name == name {
			return s, nil
		}
	}
	return Student{}, fmt.Errorf("student %s: %w", name, ErrNotFound)
}

func (b *Book) decode(r io.Reader) ([]Student, error) {
	var out []Student
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			corrupt := &record.CorruptRecordError{
				Collection: "student",
				Line:       lineNo,
				Field:      "line",
				Value:      sc.Text(),
				Err:        fmt.Errorf("want 3 fields, got %d", len(fields)),
			}
			if err := b.onCorrupt(corrupt); err != nil {
				return nil, err
			}
			continue
		}
		score, err := strconv.Atoi(fields[2])
		if err != nil {
			corrupt := &record.CorruptRecordError{
				Collection: "student",
				Line:       lineNo,
				Field:      "score",
				Value:      fields[2],
				Err:        err,
			}
			if herr := b.onCorrupt(corrupt); herr != nil {
				return nil, herr
			}
			continue
		}
		out = append(out, Student{ID: fields[0], Name: fields[1], Score: score})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}
	return out, nil
}

// WriteList prints the numbered student table
func WriteList(w io.Writer, students []Student) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("=", 10)
	fmt.Fprintln(bw, "List Student")
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, "No. id name score Grade")
	fmt.Fprintln(bw, rule)
	for i, s := range students {
		fmt.Fprintf(bw, "%3d : %-8s%-20s%6d%6s\n", i+1, s.ID, s.Name, s.Score, s.Grade())
	}
	return bw.Flush()
}
