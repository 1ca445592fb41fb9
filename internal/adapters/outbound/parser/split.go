package parser

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strconv"
	"strings"
)

// chunk is the source text of one document. offset is the number of lines
// of the stream that precede it.
type chunk struct {
	text   string
	offset int
}

// splitDocuments cuts r into documents on column-0 "---" and "..." marker
// lines. Each chunk is decoded with its own yaml.Decoder, so an error at the
// start of a document can never be charged to the one before it. Directives
// and comments ahead of the first "---" stay with the document they precede.
func splitDocuments(r io.Reader) iter.Seq2[chunk, error] {
	return func(yield func(chunk, error) bool) {
		br := bufio.NewReader(r)
		var b strings.Builder
		offset, line := 0, 0
		hasContent := false

		flush := func() bool {
			c := chunk{text: b.String(), offset: offset}
			b.Reset()
			offset = line
			hasContent = false
			if c.text == "" {
				return true
			}
			return yield(c, nil)
		}

		for {
			s, err := br.ReadString('\n')
			if s != "" {
				switch {
				case isMarker(s, "---"):
					if hasContent {
						if !flush() {
							return
						}
					}
					line++
					b.WriteString(s)
					hasContent = true
				case isMarker(s, "..."):
					line++
					b.WriteString(s)
					if !flush() {
						return
					}
				default:
					line++
					b.WriteString(s)
					if carriesContent(s) {
						hasContent = true
					}
				}
			}
			if err == io.EOF {
				flush()
				return
			}
			if err != nil {
				yield(chunk{}, err)
				return
			}
		}
	}
}

// isMarker reports whether s is a document marker line: the marker at
// column 0, followed by whitespace or the end of the line.
func isMarker(s, marker string) bool {
	if !strings.HasPrefix(s, marker) {
		return false
	}
	rest := s[len(marker):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\r' || rest[0] == '\n'
}

// carriesContent reports whether s holds document content, as opposed to
// blank space, a comment or a directive.
func carriesContent(s string) bool {
	if strings.HasPrefix(s, "%") {
		return false
	}
	t := strings.TrimSpace(s)
	return t != "" && !strings.HasPrefix(t, "#")
}

var lineRef = regexp.MustCompile(`^line (\d+):`)

// shiftLine rewrites the leading "line N:" of a parser message from chunk
// coordinates to stream coordinates.
func shiftLine(msg string, offset int) string {
	m := lineRef.FindStringSubmatch(msg)
	if m == nil || offset == 0 {
		return msg
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return msg
	}
	return fmt.Sprintf("line %d:", n+offset) + msg[len(m[0]):]
}
