package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(SeedCatalog(), SeedRegistry()), echo.New()
}

func TestHandler_ListProcedures(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListProcedures(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var procs []ProcedureDefinition
	if err := json.Unmarshal(rec.Body.Bytes(), &procs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(procs) == 0 {
		t.Fatal("expected seeded procedures")
	}
}

func TestHandler_ListProcedures_FilterByCategory(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/?category=surgical", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListProcedures(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var procs []ProcedureDefinition
	if err := json.Unmarshal(rec.Body.Bytes(), &procs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, p := range procs {
		if p.Category != CategorySurgical {
			t.Errorf("expected only surgical procedures, got %s in %s", p.Title, p.Category)
		}
	}
}

func TestHandler_GetProcedure(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("title")
	c.SetParamValues("Perform OPU")

	if err := h.GetProcedure(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var proc ProcedureDefinition
	if err := json.Unmarshal(rec.Body.Bytes(), &proc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if proc.BaseDuration != 45 {
		t.Errorf("expected base duration 45, got %d", proc.BaseDuration)
	}
}

func TestHandler_GetProcedure_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("title")
	c.SetParamValues("No Such Procedure")

	err := h.GetProcedure(c)
	if err == nil {
		t.Fatal("expected error for unknown procedure")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_ListStaff(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListStaff(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var staff []StaffResource
	if err := json.Unmarshal(rec.Body.Bytes(), &staff); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(staff) != 4 {
		t.Errorf("expected 4 staff members, got %d", len(staff))
	}
}
