package wasmabi

import (
	"bytes"
	"context"
	"testing"

	"github.com/wippyai/abigen/errors"
)

var emptyModule = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

var emptyComponent = []byte{0x00, 0x61, 0x73, 0x6D, 0x0d, 0x00, 0x01, 0x00}

func TestLEB128(t *testing.T) {
	tests := []struct {
		v    uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{624485, []byte{0xe5, 0x8e, 0x26}},
	}
	for _, tt := range tests {
		got := appendU32(nil, tt.v)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("appendU32(%d) = %x, want %x", tt.v, got, tt.want)
		}
		back, err := readU32(bytes.NewReader(got))
		if err != nil || back != tt.v {
			t.Errorf("readU32(%x) = %d, %v", got, back, err)
		}
	}

	if _, err := readU32(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})); err == nil {
		t.Error("expected overflow")
	}
}

func TestExtract_CoreModule(t *testing.T) {
	payload := []byte(`[{"type":"struct","name":"A"}]`)
	bin := AppendSection(AppendSection(emptyModule, "producers", []byte{0}), DefaultSection, payload)

	got, err := Extract(context.Background(), bin, "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Extract = %q, want %q", got, payload)
	}

	_, err = Extract(context.Background(), bin, "other")
	if e, ok := err.(*errors.Error); !ok || e.Kind != errors.KindNotFound {
		t.Errorf("missing section error = %v", err)
	}
}

func TestExtract_Component(t *testing.T) {
	payload := []byte(`{"type":"fn","name":"f"}`)
	bin := AppendSection(emptyComponent, "abi", payload)
	if !IsComponent(bin) {
		t.Fatal("IsComponent = false")
	}
	got, err := Extract(context.Background(), bin, "abi")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Extract = %q, want %q", got, payload)
	}
}

func TestExtract_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"not wasm", []byte("[]")},
		{"truncated component section", append(append([]byte{}, emptyComponent...), 0x00, 0x10, 0x01)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Extract(context.Background(), tt.in, "abi"); err == nil {
				t.Error("expected error")
			}
		})
	}
}
