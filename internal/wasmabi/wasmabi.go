package wasmabi

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/abigen/errors"
)

// DefaultSection is the custom section a nucleus module carries its ABI in.
const DefaultSection = "abi"

const sectionCustom = 0x00

var magic = []byte{0x00, 0x61, 0x73, 0x6D}

// IsWasm reports whether data starts with the wasm binary magic.
func IsWasm(data []byte) bool {
	return len(data) >= 8 && bytes.Equal(data[:4], magic)
}

// IsComponent reports whether data is a component rather than a core module.
func IsComponent(data []byte) bool {
	return IsWasm(data) && binary.LittleEndian.Uint32(data[4:8]) > 1
}

// Extract returns the payload of the named custom section. Core modules are
// compiled with wazero, which validates them; components are scanned for
// top-level custom sections only.
func Extract(ctx context.Context, data []byte, section string) ([]byte, error) {
	if section == "" {
		section = DefaultSection
	}
	if !IsWasm(data) {
		return nil, errors.InvalidInput(errors.PhaseLoad, "not a wasm binary")
	}
	if IsComponent(data) {
		return scan(data, section)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCustomSections(true))
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, data)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "compile module")
	}
	defer compiled.Close(ctx)

	for _, cs := range compiled.CustomSections() {
		if cs.Name() == section {
			return cs.Data(), nil
		}
	}
	return nil, errors.NotFound(errors.PhaseLoad, fmt.Sprintf("custom section %q", section))
}

// scan walks the section headers of a binary and returns the first custom
// section with the given name.
func scan(data []byte, section string) ([]byte, error) {
	r := bytes.NewReader(data[8:])
	for {
		id, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		size, err := readU32(r)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "section size")
		}
		if int64(size) > int64(r.Len()) {
			return nil, errors.InvalidData(errors.PhaseLoad, nil, "section exceeds binary")
		}
		body := make([]byte, size)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "section data")
		}
		if id != sectionCustom {
			continue
		}

		br := bytes.NewReader(body)
		n, err := readU32(br)
		if err != nil || int64(n) > int64(br.Len()) {
			return nil, errors.InvalidData(errors.PhaseLoad, nil, "custom section name")
		}
		name := body[len(body)-br.Len() : len(body)-br.Len()+int(n)]
		if string(name) == section {
			return body[len(body)-br.Len()+int(n):], nil
		}
	}
	return nil, errors.NotFound(errors.PhaseLoad, fmt.Sprintf("custom section %q", section))
}

// AppendSection returns a copy of module with a custom section appended.
func AppendSection(module []byte, name string, payload []byte) []byte {
	body := appendU32(nil, uint32(len(name)))
	body = append(body, name...)
	body = append(body, payload...)

	out := make([]byte, 0, len(module)+len(body)+6)
	out = append(out, module...)
	out = append(out, sectionCustom)
	out = appendU32(out, uint32(len(body)))
	return append(out, body...)
}
