package student

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/dorm-ledger/internal/record"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "A"}, {80, "A"}, {79, "B"}, {70, "B"}, {69, "C"},
		{60, "C"}, {59, "D"}, {50, "D"}, {49, "F"}, {0, "F"}, {-5, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score %d", tt.score)
	}
}

func TestBookAddListFind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "student.dat")
	book := NewBook(path, nil)

	students, err := book.List()
	require.NoError(t, err)
	assert.Empty(t, students)

	require.NoError(t, book.Add(Student{ID: "6501", Name: "Somchai", Score: 85}))
	require.NoError(t, book.Add(Student{ID: "6502", Name: "Malee", Score: 64}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "6501 Somchai 85\n6502 Malee 64\n", string(data))

	students, err = book.List()
	require.NoError(t, err)
	assert.Equal(t, []Student{
		{ID: "6501", Name: "Somchai", Score: 85},
		{ID: "6502", Name: "Malee", Score: 64},
	}, students)

	s, err := book.Find("Malee")
	require.NoError(t, err)
	assert.Equal(t, "C", s.Grade())

	_, err = book.Find("malee")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, book.Add(Student{ID: "6503", Name: "Two Words", Score: 50}), ErrInvalidInput)
}

func TestBookCorruptScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "student.dat")
	require.NoError(t, os.WriteFile(path, []byte("6501 Somchai 85\n6502 Malee abc\n\n6503 Dao 49\n"), 0644))

	_, err := NewBook(path, nil).List()
	var corrupt *record.CorruptRecordError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, 2, corrupt.Line)
	assert.Equal(t, "score", corrupt.Field)

	var skipped int
	students, err := NewBook(path, func(*record.CorruptRecordError) error {
		skipped++
		return nil
	}).List()
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Equal(t, 1, skipped)
}

func TestWriteList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteList(&buf, []Student{{ID: "6501", Name: "Somchai", Score: 85}}))
	assert.Equal(t, "List Student\n==========\nNo. id name score Grade\n==========\n"+
		"  1 : 6501    Somchai                 85     A\n", buf.String())
}
