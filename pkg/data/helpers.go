package data

import (
	"bufio"
	"io"
	"math/rand"
	"strconv"

	"github.com/pkg/errors"
)

// Parse n whitespace-separated decimal integers from r. Anything after the
// n'th integer is left unread.
func ReadInts(r io.Reader, n int) ([]int32, error) {
	if n < 0 {
		return nil, errors.Errorf("Invalid number of integers requested: %v", n)
	}

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	out := make([]int32, n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, errors.Wrapf(err, "Failed to read integer %v", i)
			}
			return nil, errors.Wrapf(ErrShortInput, "Got %v of %v integers", i, n)
		}

		v, err := strconv.ParseInt(scanner.Text(), 10, 32)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "Integer %v (%q): %v", i, scanner.Text(), err)
		}
		out[i] = (int32)(v)
	}

	return out, nil
}

// Write list as space separated decimal integers followed by a newline. This
// is the format ReadInts expects.
func WriteInts(w io.Writer, list []int32) error {
	bw := bufio.NewWriter(w)

	var scratch []byte
	for i, v := range list {
		if i != 0 {
			if err := bw.WriteByte(' '); err != nil {
				return errors.Wrap(err, "Failed to write separator")
			}
		}
		scratch = strconv.AppendInt(scratch[:0], (int64)(v), 10)
		if _, err := bw.Write(scratch); err != nil {
			return errors.Wrapf(err, "Failed to write integer %v", i)
		}
	}

	if err := bw.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "Failed to write trailing newline")
	}
	return errors.Wrap(bw.Flush(), "Failed to flush output")
}

// Generate n pseudo-random keys in [0, max). The same seed always produces the
// same list.
func GenerateInputs(n int, seed int64, max int32) []int32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = rng.Int31n(max)
	}
	return out
}
