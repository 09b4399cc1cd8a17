package visualization

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"
)

func EncodeJSON(c *Chart) ([]byte, error) {
	data, err := sonic.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal %s chart: %w", c.Kind, err)
	}
	return data, nil
}

func DecodeJSON(data []byte) (*Chart, error) {
	var c Chart
	if err := sonic.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal chart: %w", err)
	}
	return &c, nil
}

// WriteCompressed writes the chart as a single zstd-compressed JSON frame.
func WriteCompressed(w io.Writer, c *Chart) error {
	data, err := EncodeJSON(c)
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd: create writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return fmt.Errorf("zstd: compress chart: %w", err)
	}
	return enc.Close()
}

func ReadCompressed(r io.Reader) (*Chart, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd: create reader: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd: decompress chart: %w", err)
	}
	return DecodeJSON(data)
}
