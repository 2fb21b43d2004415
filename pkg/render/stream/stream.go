package stream

import (
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/render"
)

// Encoding selects the wire format of a stream.
type Encoding string

const (
	JSON    Encoding = "json"
	MsgPack Encoding = "msgpack"
)

// ParseEncoding parses an encoding name, case-insensitively.
func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(strings.ToLower(s)); e {
	case JSON, MsgPack:
		return e, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unknown stream encoding %q (want json or msgpack)", s)
}

type encoder interface {
	Encode(v any) error
}

type decoder interface {
	Decode(v any) error
}

// Sink writes frames to a stream. It is safe for concurrent use.
type Sink struct {
	mu  sync.Mutex
	enc encoder
	n   int
}

// NewSink returns a Sink writing records to w in the given encoding.
func NewSink(w io.Writer, e Encoding) (*Sink, error) {
	switch e {
	case JSON:
		return &Sink{enc: json.NewEncoder(w)}, nil
	case MsgPack:
		return &Sink{enc: msgpack.NewEncoder(w)}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown stream encoding %q", e)
}

// Paint encodes f as one record.
func (s *Sink) Paint(f render.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(NewRecord(f)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "stream: encode frame %d", f.Seq)
	}
	s.n++
	return nil
}

// Written returns the number of frames written so far.
func (s *Sink) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Decoder reads frames written by a [Sink].
type Decoder struct {
	dec decoder
}

// NewDecoder returns a Decoder reading records from r.
func NewDecoder(r io.Reader, e Encoding) (*Decoder, error) {
	switch e {
	case JSON:
		return &Decoder{dec: json.NewDecoder(r)}, nil
	case MsgPack:
		return &Decoder{dec: msgpack.NewDecoder(r)}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown stream encoding %q", e)
}

// Next decodes the next frame. It returns io.EOF at the end of the stream.
func (d *Decoder) Next() (render.Frame, error) {
	var r Record
	if err := d.dec.Decode(&r); err != nil {
		if err == io.EOF {
			return render.Frame{}, io.EOF
		}
		return render.Frame{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "stream: decode frame")
	}
	return r.Frame()
}

// ReadAll decodes every remaining frame.
func (d *Decoder) ReadAll() ([]render.Frame, error) {
	var frames []render.Frame
	for {
		f, err := d.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
}
