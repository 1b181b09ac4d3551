// util/stream.go
// Copyright(c) 2024-2025 rotorfield contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackWriter writes a zstd-compressed stream of msgpack-encoded
// values.
type MsgpackWriter struct {
	zw  *zstd.Encoder
	enc *msgpack.Encoder
}

func NewMsgpackWriter(w io.Writer) (*MsgpackWriter, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return &MsgpackWriter{zw: zw, enc: msgpack.NewEncoder(zw)}, nil
}

func (m *MsgpackWriter) Encode(v any) error {
	return m.enc.Encode(v)
}

// Close flushes the compressed stream. It does not close the underlying
// writer.
func (m *MsgpackWriter) Close() error {
	return m.zw.Close()
}

// MsgpackReader reads values written by a MsgpackWriter.
type MsgpackReader struct {
	zr  *zstd.Decoder
	dec *msgpack.Decoder
}

func NewMsgpackReader(r io.Reader) (*MsgpackReader, error) {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}
	return &MsgpackReader{zr: zr, dec: msgpack.NewDecoder(zr)}, nil
}

// Decode decodes the next value into v. It returns io.EOF once the
// stream has been consumed.
func (m *MsgpackReader) Decode(v any) error {
	err := m.dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return err
}

func (m *MsgpackReader) Close() {
	m.zr.Close()
}
