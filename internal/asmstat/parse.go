package asmstat

import (
	"bufio"
	"io"
	"strings"
)

// Lengths reads FASTA records from r and returns one length per record, in
// file order. A record's length is the character count of its concatenated
// sequence lines, whitespace-stripped. Records with no sequence at all
// (a header followed immediately by another header or EOF) are dropped
// rather than reported as zero. Content before the first header is ignored.
//
// The returned error is an I/O failure from the underlying reader; the
// lengths collected up to that point are returned with it.
func Lengths(r io.Reader) ([]int, error) {
	var (
		lengths []int
		current int
		started bool
	)

	flush := func() {
		if started && current > 0 {
			lengths = append(lengths, current)
		}
		current = 0
	}

	// ReadString rather than a Scanner: assembler output can put an entire
	// contig on a single line, which would overflow a fixed scan buffer.
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, ">") {
			flush()
			started = true
		} else if started {
			current += len(line)
		}

		if err == io.EOF {
			// the last record has no trailing header to flush it
			flush()
			return lengths, nil
		}
		if err != nil {
			flush()
			return lengths, err
		}
	}
}
