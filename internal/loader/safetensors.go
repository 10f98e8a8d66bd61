// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loader reads and writes tensor data files for Flint scripts.
// The on-disk format is SafeTensors (the Hugging Face standard):
//
//	[8 bytes: header_size (uint64 LE)]
//	[header_size bytes: JSON header]
//	[tensor data: raw bytes]
package loader

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/flintml/flint/internal/tensor"
)

// maxHeaderSize bounds the JSON header to keep malformed files from
// triggering huge allocations.
const maxHeaderSize = 100 * 1024 * 1024

// SafeTensorsDType represents supported SafeTensors data types.
type SafeTensorsDType string

// Supported SafeTensors dtypes.
const (
	SafeTensorsF32 SafeTensorsDType = "F32"
	SafeTensorsF64 SafeTensorsDType = "F64"
	SafeTensorsI32 SafeTensorsDType = "I32"
	SafeTensorsI64 SafeTensorsDType = "I64"
	SafeTensorsU8  SafeTensorsDType = "U8"
)

// dataTypeOf maps a SafeTensors dtype to the runtime DataType.
func dataTypeOf(dt SafeTensorsDType) (tensor.DataType, error) {
	switch dt {
	case SafeTensorsF32:
		return tensor.Float32, nil
	case SafeTensorsF64:
		return tensor.Float64, nil
	case SafeTensorsI32:
		return tensor.Int32, nil
	case SafeTensorsI64:
		return tensor.Int64, nil
	case SafeTensorsU8:
		return tensor.Uint8, nil
	default:
		return 0, fmt.Errorf("unsupported dtype %q", dt)
	}
}

func safeDTypeOf(dt tensor.DataType) SafeTensorsDType {
	switch dt {
	case tensor.Float32:
		return SafeTensorsF32
	case tensor.Float64:
		return SafeTensorsF64
	case tensor.Int32:
		return SafeTensorsI32
	case tensor.Int64:
		return SafeTensorsI64
	case tensor.Uint8:
		return SafeTensorsU8
	default:
		panic("unknown data type")
	}
}

// TensorInfo describes one tensor in the header.
type TensorInfo struct {
	DType       SafeTensorsDType `json:"dtype"`
	Shape       []int            `json:"shape"`
	DataOffsets [2]int64         `json:"data_offsets"` // [start, end], relative to the data section
}

// header is the parsed JSON header: tensor entries plus optional
// "__metadata__" string map.
type header struct {
	Metadata map[string]string
	Tensors  map[string]TensorInfo
}

func (h *header) UnmarshalJSON(data []byte) error {
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawMap); err != nil {
		return err
	}
	if metadataRaw, ok := rawMap["__metadata__"]; ok {
		if err := json.Unmarshal(metadataRaw, &h.Metadata); err != nil {
			return fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}
	h.Tensors = make(map[string]TensorInfo, len(rawMap))
	for key, value := range rawMap {
		if key == "__metadata__" {
			continue
		}
		var info TensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("unmarshaling tensor %s: %w", key, err)
		}
		h.Tensors[key] = info
	}
	return nil
}

// Reader reads tensors from a SafeTensors file.
type Reader struct {
	file       *os.File
	header     header
	dataOffset int64
}

// Open opens a SafeTensors file and parses its header.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("reading header size: %w", err)
	}
	if headerSize > maxHeaderSize {
		_ = file.Close()
		return nil, fmt.Errorf("invalid header size %d", headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var h header
	if err := json.Unmarshal(headerBytes, &h); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("parsing header JSON: %w", err)
	}

	return &Reader{
		file:       file,
		header:     h,
		dataOffset: int64(8 + headerSize),
	}, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Metadata returns the header's metadata map, if any.
func (r *Reader) Metadata() map[string]string { return r.header.Metadata }

// TensorNames returns the sorted tensor names in the file.
func (r *Reader) TensorNames() []string {
	names := make([]string, 0, len(r.header.Tensors))
	for name := range r.header.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info returns the header entry for a tensor.
func (r *Reader) Info(name string) (TensorInfo, bool) {
	info, ok := r.header.Tensors[name]
	return info, ok
}

// Load reads one tensor by name.
func (r *Reader) Load(name string) (*tensor.RawTensor, error) {
	info, ok := r.header.Tensors[name]
	if !ok {
		return nil, fmt.Errorf("tensor %q not found", name)
	}
	dtype, err := dataTypeOf(info.DType)
	if err != nil {
		return nil, fmt.Errorf("tensor %q: %w", name, err)
	}

	raw, err := tensor.NewRaw(tensor.Shape(info.Shape), dtype)
	if err != nil {
		return nil, fmt.Errorf("tensor %q: %w", name, err)
	}
	size := info.DataOffsets[1] - info.DataOffsets[0]
	if size != int64(len(raw.Bytes())) {
		return nil, fmt.Errorf("tensor %q: data span %d does not match shape %v (%d bytes)",
			name, size, info.Shape, len(raw.Bytes()))
	}
	if _, err := r.file.ReadAt(raw.Bytes(), r.dataOffset+info.DataOffsets[0]); err != nil {
		return nil, fmt.Errorf("tensor %q: reading data: %w", name, err)
	}
	return raw, nil
}

// Write writes tensors to path in SafeTensors format, with optional
// metadata. Tensors are laid out in sorted name order.
func Write(path string, tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	if len(tensors) == 0 {
		return fmt.Errorf("nothing to write")
	}

	names := make([]string, 0, len(tensors))
	for name := range tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make(map[string]json.RawMessage, len(tensors)+1)
	offset := int64(0)
	for _, name := range names {
		t := tensors[name]
		size := int64(len(t.Bytes()))
		info := TensorInfo{
			DType:       safeDTypeOf(t.DType()),
			Shape:       []int(t.Shape()),
			DataOffsets: [2]int64{offset, offset + size},
		}
		raw, err := json.Marshal(info)
		if err != nil {
			return fmt.Errorf("encoding header for %q: %w", name, err)
		}
		entries[name] = raw
		offset += size
	}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}
		entries["__metadata__"] = raw
	}

	headerBytes, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := binary.Write(file, binary.LittleEndian, uint64(len(headerBytes))); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing header size: %w", err)
	}
	if _, err := file.Write(headerBytes); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, name := range names {
		if _, err := file.Write(tensors[name].Bytes()); err != nil {
			_ = file.Close()
			return fmt.Errorf("writing tensor %q: %w", name, err)
		}
	}
	return file.Close()
}
