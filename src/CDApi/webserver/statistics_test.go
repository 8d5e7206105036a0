package webserver

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agent-tribunal/casedocket/src/CDApi/types"
)

func insertCase(t *testing.T, db *gorm.DB, offense, severity, verdict string, ts time.Time) {
	t.Helper()
	c := types.Case{
		ID:                uuid.NewString(),
		CaseID:            uuid.NewString(),
		AnonymizedAgentID: "agent_test",
		OffenseType:       offense,
		OffenseName:       offense,
		Severity:          severity,
		Verdict:           verdict,
		Vote:              "2-1",
		PrimaryFailure:    "test failure",
		SchemaVersion:     types.DefaultSchemaVersion,
		AgentKeyID:        "key-row",
		SubmittedAt:       ts,
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("insert case: %v", err)
	}
}

func TestStatistics_Empty(t *testing.T) {
	r, _ := newTestServer(t)

	w, out := getJSON(r, "/cases-api/statistics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if out["total_cases"].(float64) != 0 {
		t.Errorf("total_cases = %v", out["total_cases"])
	}
	if out["guilty_rate"].(float64) != 0 {
		t.Errorf("guilty_rate = %v, want 0 on empty table", out["guilty_rate"])
	}
	if out["active_agents"].(float64) != 0 {
		t.Errorf("active_agents = %v", out["active_agents"])
	}
	breakdown := out["severity_breakdown"].(map[string]any)
	for _, sev := range []string{"minor", "moderate", "severe"} {
		if breakdown[sev].(float64) != 0 {
			t.Errorf("severity_breakdown.%s = %v, want 0", sev, breakdown[sev])
		}
	}
	if len(out["top_offenses"].([]any)) != 0 {
		t.Errorf("top_offenses = %v, want []", out["top_offenses"])
	}
}

func TestStatistics_GuiltyRateAndBreakdown(t *testing.T) {
	r, db := newTestServer(t)
	base := time.Now().Add(-time.Hour)
	insertCase(t, db, "ghost", "minor", "GUILTY", base)
	insertCase(t, db, "ghost", "moderate", "GUILTY", base.Add(time.Minute))
	insertCase(t, db, "ghost", "moderate", "NOT GUILTY", base.Add(2*time.Minute))
	insertCase(t, db, "ghost", "severe", "GUILTY", base.Add(3*time.Minute))

	_, out := getJSON(r, "/cases-api/statistics")
	if out["total_cases"].(float64) != 4 {
		t.Errorf("total_cases = %v, want 4", out["total_cases"])
	}
	if got := out["guilty_rate"].(float64); got != 0.75 {
		t.Errorf("guilty_rate = %v, want 0.75", got)
	}
	breakdown := out["severity_breakdown"].(map[string]any)
	if breakdown["minor"].(float64) != 1 || breakdown["moderate"].(float64) != 2 || breakdown["severe"].(float64) != 1 {
		t.Errorf("severity_breakdown = %v", breakdown)
	}
}

func TestStatistics_UnknownSeverityIgnored(t *testing.T) {
	r, db := newTestServer(t)
	insertCase(t, db, "ghost", "catastrophic", "GUILTY", time.Now())

	_, out := getJSON(r, "/cases-api/statistics")
	breakdown := out["severity_breakdown"].(map[string]any)
	if len(breakdown) != 3 {
		t.Errorf("severity_breakdown grew unknown key: %v", breakdown)
	}
	if out["total_cases"].(float64) != 1 {
		t.Errorf("total_cases = %v, want 1", out["total_cases"])
	}
}

func TestStatistics_TopOffensesStableTieBreak(t *testing.T) {
	r, db := newTestServer(t)
	ts := time.Now().Add(-2 * time.Hour)
	next := func() time.Time {
		ts = ts.Add(time.Second)
		return ts
	}
	for i := 0; i < 5; i++ {
		insertCase(t, db, "offense_a", "minor", "GUILTY", next())
	}
	for i := 0; i < 5; i++ {
		insertCase(t, db, "offense_b", "minor", "GUILTY", next())
	}
	for i := 0; i < 3; i++ {
		insertCase(t, db, "offense_c", "minor", "GUILTY", next())
	}

	_, out := getJSON(r, "/cases-api/statistics")
	top := out["top_offenses"].([]any)
	if len(top) != 3 {
		t.Fatalf("len(top_offenses) = %d, want 3", len(top))
	}
	got := []string{}
	for _, e := range top {
		got = append(got, e.(map[string]any)["type"].(string))
	}
	want := []string{"offense_a", "offense_b", "offense_c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("top_offenses order = %v, want %v (ties broken by first occurrence)", got, want)
		}
	}
	if top[0].(map[string]any)["count"].(float64) != 5 {
		t.Errorf("top count = %v, want 5", top[0].(map[string]any)["count"])
	}
}

func TestStatistics_TopOffensesCappedAtTen(t *testing.T) {
	r, db := newTestServer(t)
	ts := time.Now().Add(-time.Hour)
	for i := 0; i < 13; i++ {
		ts = ts.Add(time.Second)
		insertCase(t, db, fmt.Sprintf("offense_%02d", i), "minor", "GUILTY", ts)
	}

	_, out := getJSON(r, "/cases-api/statistics")
	if got := len(out["top_offenses"].([]any)); got != 10 {
		t.Errorf("len(top_offenses) = %d, want 10", got)
	}
}

func TestStatistics_ActiveAgentsCountsKeys(t *testing.T) {
	r, db := newTestServer(t)
	for i := 0; i < 3; i++ {
		key := types.AgentKey{
			ID:        uuid.NewString(),
			KeyID:     fmt.Sprintf("key-%d", i),
			PublicKey: "pk",
			AgentID:   "agent_shared",
			CaseCount: 1,
		}
		if err := db.Create(&key).Error; err != nil {
			t.Fatalf("insert key: %v", err)
		}
	}

	_, out := getJSON(r, "/cases-api/statistics")
	// Registered keys, not distinct agents.
	if out["active_agents"].(float64) != 3 {
		t.Errorf("active_agents = %v, want 3", out["active_agents"])
	}
}
