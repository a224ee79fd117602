package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender_YAMLKeepsKeyOrder(t *testing.T) {
	got, err := render([]byte(`{"top_products":{"z":9,"a":5},"status":"URGENT_REORDER"}`), "yaml")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "top_products:\n  z: 9\n  a: 5\nstatus: URGENT_REORDER\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_JSONIndents(t *testing.T) {
	got, err := render([]byte(`{"a":1}`), "json")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(got) != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("unexpected json: %q", got)
	}
}

func TestRun_List(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"-list"}, strings.NewReader(""), &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "analyze_sales_data\ncalculate_inventory_optimization\npricing_strategy_analysis\n"
	if out.String() != want {
		t.Fatalf("list mismatch:\n%s", out.String())
	}
}

func TestRun_InventoryFromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "in.json")
	in := `{"current_inventory":"{\"P1\":10}","sales_velocity":"{\"P1\":2}"}`
	if err := os.WriteFile(p, []byte(in), 0o644); err != nil {
		t.Fatalf("prep: %v", err)
	}

	var out, errOut bytes.Buffer
	if err := run([]string{"-tool", "calculate_inventory_optimization", "-input", p, "-format", "yaml"}, nil, &out, &errOut); err != nil {
		t.Fatalf("run: %v (stderr=%s)", err, errOut.String())
	}
	for _, want := range []string{"P1:", "days_remaining: 5", "status: URGENT_REORDER", "recommended_order_quantity: 50"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_ToolErrorPrintsPayload(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"-tool", "analyze_sales_data"}, strings.NewReader(`{"sales_data":"nope"}`), &out, &errOut)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out.String(), `"error"`) {
		t.Fatalf("expected error payload on stdout, got %q", out.String())
	}
}

func TestRun_UnknownTool(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"-tool", "nope"}, strings.NewReader("{}"), &out, &errOut)
	if err == nil || !strings.Contains(err.Error(), `unknown tool "nope"`) {
		t.Fatalf("expected unknown tool error, got %v", err)
	}
}
