package llm

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// MaxEventSize caps the data of a single server sent event
const MaxEventSize = 1 << 20

// ErrEventTooLarge is returned when an event exceeds MaxEventSize
var ErrEventTooLarge = errors.New("llm: sse event too large")

// SSEReader reads server sent events
type SSEReader struct {
	r *bufio.Reader
}

// NewSSEReader wraps r
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{r: bufio.NewReader(r)}
}

// ReadEvent returns the next event name and its data lines joined by newlines
// a stream that ends without a blank line still yields its last event, then io.EOF
func (s *SSEReader) ReadEvent() (string, []byte, error) {
	var (
		event string
		data  []byte
		has   bool
	)
	for {
		line, err := s.r.ReadBytes('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			if errors.Is(err, io.EOF) && has {
				return event, data, nil
			}
			return "", nil, err
		}
		line = bytes.TrimRight(line, "\r\n")

		if len(line) == 0 {
			if has {
				return event, data, nil
			}
			event = ""
			continue
		}
		if line[0] == ':' {
			continue
		}

		field, value, _ := bytes.Cut(line, []byte(":"))
		value = bytes.TrimPrefix(value, []byte(" "))
		switch string(field) {
		case "event":
			event = string(value)
		case "data":
			if has {
				data = append(data, '\n')
			}
			data = append(data, value...)
			has = true
			if len(data) > MaxEventSize {
				return "", nil, ErrEventTooLarge
			}
		}
	}
}
