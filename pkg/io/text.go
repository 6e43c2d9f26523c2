package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/ucycle/pkg/errors"
)

// EncodeSymbol renders one symbol: 0–9 as a decimal digit, 10–35 as an
// uppercase letter starting at 'A'.
func EncodeSymbol(x int) (byte, error) {
	switch {
	case x >= 0 && x <= 9:
		return byte('0' + x), nil
	case x >= 10 && x <= 35:
		return byte('A' + x - 10), nil
	}
	return 0, errors.New(errors.ErrCodeInvalidFormat, "symbol %d has no single-character encoding", x)
}

// DecodeSymbol is the inverse of EncodeSymbol. Lowercase letters are
// accepted.
func DecodeSymbol(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, nil
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidFormat, "unexpected character %q", c)
}

// EncodeText renders a cycle as one line of single-character symbols, so that
// symbols of n >= 10 do not run together ("1112" is never ambiguous).
func EncodeText(cycle []int) (string, error) {
	buf := make([]byte, len(cycle))
	for i, x := range cycle {
		c, err := EncodeSymbol(x)
		if err != nil {
			return "", fmt.Errorf("index %d: %w", i, err)
		}
		buf[i] = c
	}
	return string(buf), nil
}

// DecodeText parses a cycle written by EncodeText. It also accepts the
// comma-separated decimal form, optionally wrapped in braces or brackets:
// "{3,2,1,3,1,2}" or "[10, 9, 8]". Surrounding whitespace is ignored.
func DecodeText(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty cycle")
	}
	if strings.ContainsAny(s, ", ") {
		return decodeList(s)
	}

	cycle := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		x, err := DecodeSymbol(s[i])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "position %d", i)
		}
		cycle[i] = x
	}
	return cycle, nil
}

// EncodeList renders a cycle in the brace form "{3,2,1,3,1,2}", which works
// for any symbol value.
func EncodeList(cycle []int) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, x := range cycle {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	b.WriteByte('}')
	return b.String()
}

func decodeList(s string) ([]int, error) {
	s = strings.Trim(s, "{}[]() ")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	cycle := make([]int, 0, len(fields))
	for i, f := range fields {
		x, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "element %d", i)
		}
		cycle = append(cycle, x)
	}
	if len(cycle) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty cycle")
	}
	return cycle, nil
}

// WriteText writes the encoded cycle followed by a newline.
func WriteText(cycle []int, w io.Writer) error {
	line, err := EncodeText(cycle)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(line); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadText reads the first non-empty line from r and decodes it.
func ReadText(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<30)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return DecodeText(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "no cycle found")
}

// ImportText reads a cycle from the text file at path.
func ImportText(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadText(f)
}

// ExportText writes a cycle to the text file at path.
func ExportText(cycle []int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteText(cycle, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
