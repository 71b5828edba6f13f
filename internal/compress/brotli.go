package compress

import (
	"bytes"

	"github.com/andybalholm/brotli"
)

type Brotli struct {
}

func NewBrotli() Brotli {
	return Brotli{}
}

func (b Brotli) Name() string {
	return "brotli"
}

func (b Brotli) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, err := w.Write(data)
	if err != nil {
		return nil, err
	}

	err = w.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (b Brotli) Decode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
