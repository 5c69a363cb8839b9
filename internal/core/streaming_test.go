package core

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,email")...),
			expected: "name,email",
		},
		{
			name:     "file without BOM",
			input:    []byte("name,email"),
			expected: "name,email",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewBOMSkippingReader(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "valid ASCII",
			input:    []byte("name,email"),
			expected: "name,email",
		},
		{
			name:     "valid UTF-8 with multibyte",
			input:    []byte("Jürgen,Łódź"),
			expected: "Jürgen,Łódź",
		},
		{
			name:     "invalid single byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he?lo",
		},
		{
			name:     "truncated sequence at end",
			input:    []byte{'a', 0xC3},
			expected: "a?",
		},
		{
			name:     "empty input",
			input:    []byte{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewUTF8Sanitizer(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer_SplitRune(t *testing.T) {
	// One byte per read splits every multi-byte rune across reads.
	input := "Zoë,Jürgen"
	reader := NewUTF8Sanitizer(iotest.OneByteReader(strings.NewReader(input)))

	result, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != input {
		t.Errorf("got %q, want %q", string(result), input)
	}
}

func TestUTF8Sanitizer_SmallBuffer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		bufSize  int
		expected string
	}{
		{"two-byte rune, 1-byte buffer", "é", 1, "é"},
		{"four-byte rune, 1-byte buffer", "a😀b", 1, "a😀b"},
		{"three-byte runes, 2-byte buffer", "€€€", 2, "€€€"},
		{"mixed, 3-byte buffer", "Zoë,Jürgen,✓", 3, "Zoë,Jürgen,✓"},
		{"invalid byte, 1-byte buffer", "a\x80é", 1, "a?é"},
		{"truncated rune at EOF", "ab\xE2\x82", 1, "ab??"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, source := range []struct {
				name string
				r    func() io.Reader
			}{
				{"whole", func() io.Reader { return strings.NewReader(tt.input) }},
				{"one byte", func() io.Reader { return iotest.OneByteReader(strings.NewReader(tt.input)) }},
			} {
				got, err := readWithBuffer(NewUTF8Sanitizer(source.r()), tt.bufSize)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", source.name, err)
				}
				if got != tt.expected {
					t.Errorf("%s: got %q, want %q", source.name, got, tt.expected)
				}
			}
		})
	}
}

// readWithBuffer reads r to EOF using a buffer of size n, failing on a
// reader that stops making progress.
func readWithBuffer(r io.Reader, n int) (string, error) {
	var out strings.Builder
	buf := make([]byte, n)
	for stalls := 0; stalls < 100; {
		c, err := r.Read(buf)
		out.Write(buf[:c])
		if err == io.EOF {
			return out.String(), nil
		}
		if err != nil {
			return out.String(), err
		}
		if c == 0 {
			stalls++
		}
	}
	return out.String(), io.ErrNoProgress
}

func TestCountingReader(t *testing.T) {
	input := strings.Repeat("x", 1000)
	reader := NewCountingReader(strings.NewReader(input))

	buf := make([]byte, 100)
	totalRead := 0
	for {
		n, err := reader.Read(buf)
		totalRead += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if totalRead != len(input) {
		t.Errorf("total read = %d, want %d", totalRead, len(input))
	}
	if reader.BytesRead != int64(len(input)) {
		t.Errorf("BytesRead = %d, want %d", reader.BytesRead, len(input))
	}
}

func TestWrapForImport(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte{'h', 'e', 0x80, 'l', 'o'}...)

	reader, counter := WrapForImport(bytes.NewReader(input))
	result, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// BOM stripped, invalid byte replaced
	if string(result) != "he?lo" {
		t.Errorf("got %q, want %q", string(result), "he?lo")
	}
	// The count is of the upload itself, BOM included.
	if counter.BytesRead != int64(len(input)) {
		t.Errorf("BytesRead = %d, want %d", counter.BytesRead, len(input))
	}
}

func TestWrapForImport_CountsRawBytes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"BOM", "\xEF\xBB\xBFid,name\n9,Z"},
		{"no BOM", "id,name\n9,Zoe"},
		{"invalid bytes", "\xEF\xBB\xBFid\n\x80\x81"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, counter := WrapForImport(iotest.HalfReader(strings.NewReader(tt.input)))
			if _, err := io.ReadAll(reader); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if counter.BytesRead != int64(len(tt.input)) {
				t.Errorf("BytesRead = %d, want %d", counter.BytesRead, len(tt.input))
			}
		})
	}
}
