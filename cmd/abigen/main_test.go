package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/abigen/config"
	"github.com/wippyai/abigen/internal/wasmabi"
)

const sampleABI = `[
	{"type":"struct","name":"Point","fields":[{"name":"x","type":{"kind":"Path","path":["i32"]}}]},
	{"type":"fn","name":"set","method":"post","inputs":[
		{"name":"a","type":{"kind":"Path","path":["u32"]}},
		{"name":"b","type":{"kind":"Path","path":["bool"]}}
	]}
]`

func TestOutputName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"abi.json", "abi.ts"},
		{"/tmp/x/nucleus.wasm", "nucleus.ts"},
		{"plain", "plain.ts"},
		{"a.b.json", "a.b.ts"},
	}
	for _, tt := range tests {
		if got := outputName(tt.in); got != tt.want {
			t.Errorf("outputName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateAndWrite(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "demo.json")
	if err := os.WriteFile(input, []byte(sampleABI), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := generate(context.Background(), config.Default(), input, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := verify(context.Background(), res.Code); err != nil {
		t.Fatalf("verify: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	now := time.UnixMilli(1700000000123)
	path, err := writeOutput(res, input, outDir, true, now)
	if err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	if path != filepath.Join(outDir, "demo.ts") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n// Generated Version: 1700000000123\n") {
		t.Errorf("missing version trailer:\n%s", data)
	}

	path, err = writeOutput(res, input, outDir, false, now)
	if err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != res.Code {
		t.Error("unstamped output differs from generated code")
	}

	var out bytes.Buffer
	printSummary(&out, res, path, time.Second)
	if !strings.Contains(out.String(), "Generated "+path) {
		t.Errorf("summary = %q", out.String())
	}
}

func TestGenerate_Wasm(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "nucleus.wasm")
	module := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}
	if err := os.WriteFile(input, wasmabi.AppendSection(module, "abi", []byte(sampleABI)), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := generate(context.Background(), config.Default(), input, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(res.Code, "export class Point extends Struct") {
		t.Error("wasm input did not generate the struct")
	}
}

func TestGenerate_MissingFile(t *testing.T) {
	_, err := generate(context.Background(), config.Default(), filepath.Join(t.TempDir(), "nope.json"), false)
	if err == nil || !strings.Contains(err.Error(), "Failed to read ABI file") {
		t.Errorf("err = %v", err)
	}
}

func TestVerify_Rejects(t *testing.T) {
	if err := verify(context.Background(), "export class {"); err == nil {
		t.Error("expected verification failure")
	}
}

func TestInteractiveModel(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "demo.json")
	if err := os.WriteFile(input, []byte(sampleABI), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := generate(context.Background(), config.Default(), input, false)
	if err != nil {
		t.Fatal(err)
	}

	m := newInteractiveModel(input, res)
	if len(m.visible) != 2 {
		t.Fatalf("visible = %d, want 2", len(m.visible))
	}
	if !strings.Contains(m.View(), "Point") {
		t.Error("browse view does not list Point")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateCode {
		t.Fatalf("state = %v, want code view", m.state)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateBrowse {
		t.Errorf("state = %v, want browse", m.state)
	}

	m.filter.SetValue("poi")
	m.applyFilter()
	if len(m.visible) != 1 || m.selected != 0 {
		t.Errorf("filtered visible = %v, selected = %d", m.visible, m.selected)
	}
}
