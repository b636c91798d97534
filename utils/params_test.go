package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/jobs", nil)
	o := ParseQueryOptions(r)

	if o.Page != 1 || o.Limit != 20 {
		t.Fatalf("defaults wrong: page=%d limit=%d", o.Page, o.Limit)
	}
	if o.Skip() != 0 {
		t.Fatalf("skip = %d", o.Skip())
	}
}

func TestParseQueryOptionsClampsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/jobs?page=3&limit=500", nil)
	o := ParseQueryOptions(r)

	if o.Limit != 100 {
		t.Fatalf("limit not clamped: %d", o.Limit)
	}
	if o.Skip() != 200 {
		t.Fatalf("skip = %d, want 200", o.Skip())
	}
}

func TestParseQueryOptionsFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/labours?category=mason&location=indore&search=pipe", nil)
	o := ParseQueryOptions(r)

	if o.Category != "mason" || o.Location != "indore" || o.Search != "pipe" {
		t.Fatalf("filters wrong: %+v", o)
	}
}
