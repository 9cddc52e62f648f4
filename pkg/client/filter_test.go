package client

import (
	"reflect"
	"testing"
)

func sampleJobs() []Job {
	return []Job{
		{ID: "1", Title: "Hem wedding dress", Category: "alterations"},
		{ID: "2", Title: "Three-piece suit", Category: "bespoke"},
		{ID: "3", Title: "Dress repair", Category: "repairs"},
	}
}

func TestFilterJobs_CaseInsensitive(t *testing.T) {
	got := FilterJobs(sampleJobs(), "DRESS")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFilterJobs_MatchesSecondField(t *testing.T) {
	got := FilterJobs(sampleJobs(), "bespoke")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected category match, got %+v", got)
	}
}

func TestFilterJobs_EmptyQueryReturnsAll(t *testing.T) {
	jobs := sampleJobs()
	got := FilterJobs(jobs, "")
	if !reflect.DeepEqual(got, jobs) {
		t.Fatalf("empty query must return all items in order")
	}
}

func TestFilterJobs_Idempotent(t *testing.T) {
	once := FilterJobs(sampleJobs(), "dress")
	twice := FilterJobs(once, "dress")
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filtering twice changed the result: %+v vs %+v", once, twice)
	}
}

func TestFilterJobs_NilStaysNil(t *testing.T) {
	if got := FilterJobs(nil, "dress"); got != nil {
		t.Fatalf("nil input must stay nil, got %+v", got)
	}
}

func TestFilterJobs_NoMatchIsEmptyNotNil(t *testing.T) {
	got := FilterJobs(sampleJobs(), "zzz")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %+v", got)
	}
}

func TestFilterServices_MatchesSkills(t *testing.T) {
	services := []Service{
		{ID: "1", Title: "Suit fitting", Skills: []string{"suits", "fitting"}},
		{ID: "2", Title: "Curtain making", Skills: []string{"upholstery"}},
	}
	got := FilterServices(services, "Upholstery")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected skill match, got %+v", got)
	}
}
