// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/flintml/flint/internal/tensor"
)

// TextEncoder turns text into int64 token tensors using a BPE encoding.
type TextEncoder struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewTextEncoder loads a tiktoken encoding, e.g. "cl100k_base".
func NewTextEncoder(encodingName string) (*TextEncoder, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("loading encoding %q: %w", encodingName, err)
	}
	return &TextEncoder{encoding: encoding, name: encodingName}, nil
}

// Name returns the encoding name.
func (e *TextEncoder) Name() string { return e.name }

// Encode tokenizes text into a 1-D int64 tensor.
func (e *TextEncoder) Encode(text string) (*tensor.RawTensor, error) {
	ids := e.encoding.Encode(text, nil, nil)
	if len(ids) == 0 {
		return nil, fmt.Errorf("text produced no tokens")
	}
	raw, err := tensor.NewRaw(tensor.Shape{len(ids)}, tensor.Int64)
	if err != nil {
		return nil, err
	}
	dst := raw.AsInt64()
	for i, id := range ids {
		dst[i] = int64(id)
	}
	return raw, nil
}

// EncodeBatch tokenizes texts into a [B, maxLen] int64 tensor, padding short
// rows with pad.
func (e *TextEncoder) EncodeBatch(texts []string, pad int64) (*tensor.RawTensor, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to encode")
	}
	rows := make([][]int, len(texts))
	maxLen := 0
	for i, text := range texts {
		rows[i] = e.encoding.Encode(text, nil, nil)
		if len(rows[i]) > maxLen {
			maxLen = len(rows[i])
		}
	}
	if maxLen == 0 {
		return nil, fmt.Errorf("texts produced no tokens")
	}
	raw, err := tensor.NewRaw(tensor.Shape{len(texts), maxLen}, tensor.Int64)
	if err != nil {
		return nil, err
	}
	dst := raw.AsInt64()
	for i, row := range rows {
		for j := 0; j < maxLen; j++ {
			if j < len(row) {
				dst[i*maxLen+j] = int64(row[j])
			} else {
				dst[i*maxLen+j] = pad
			}
		}
	}
	return raw, nil
}

// Decode turns a 1-D int64 token tensor back into text.
func (e *TextEncoder) Decode(t *tensor.RawTensor) (string, error) {
	if t.DType() != tensor.Int64 {
		return "", fmt.Errorf("token tensor holds %s, want int64", t.DType())
	}
	src := t.AsInt64()
	ids := make([]int, len(src))
	for i, v := range src {
		ids[i] = int(v)
	}
	return e.encoding.Decode(ids), nil
}
