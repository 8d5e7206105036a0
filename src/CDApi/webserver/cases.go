package webserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/agent-tribunal/casedocket/src/CDApi/data"
	"github.com/agent-tribunal/casedocket/src/CDApi/types"
)

// timestampWindow is the rolling freshness window for client-supplied
// submission timestamps, inclusive at the boundary.
const timestampWindow = 24 * time.Hour

type Cases struct {
	db        *gorm.DB
	rdb       *redis.Client
	sanitizer *bluemonday.Policy
}

func NewCases(db *gorm.DB, rdb *redis.Client) Cases {
	return Cases{db: db, rdb: rdb, sanitizer: bluemonday.StrictPolicy()}
}

type submitRequest struct {
	CaseID            string `json:"case_id"`
	AnonymizedAgentID string `json:"anonymized_agent_id"`
	OffenseType       string `json:"offense_type"`
	OffenseName       string `json:"offense_name"`
	Severity          string `json:"severity"`
	Verdict           string `json:"verdict"`
	Vote              string `json:"vote"`
	PrimaryFailure    string `json:"primary_failure"`
	AgentCommentary   string `json:"agent_commentary"`
	PunishmentSummary string `json:"punishment_summary"`
	Timestamp         any    `json:"timestamp"`
	SchemaVersion     string `json:"schema_version"`
}

func (m Cases) Submit(c *gin.Context) {
	signature := c.GetHeader("x-case-signature")
	agentKey := c.GetHeader("x-agent-key")
	keyID := c.GetHeader("x-key-id")

	// Signature is presence-checked only; no verification against the
	// stored public key happens here.
	if signature == "" || agentKey == "" || keyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required headers: x-case-signature, x-agent-key, x-key-id"})
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	// First missing field wins, in declared order.
	required := []struct {
		name  string
		value string
	}{
		{"case_id", req.CaseID},
		{"anonymized_agent_id", req.AnonymizedAgentID},
		{"offense_type", req.OffenseType},
		{"offense_name", req.OffenseName},
		{"severity", req.Severity},
		{"verdict", req.Verdict},
		{"vote", req.Vote},
		{"primary_failure", req.PrimaryFailure},
	}
	for _, f := range required {
		if f.value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: " + f.name})
			return
		}
	}

	if req.Severity != types.SeverityMinor && req.Severity != types.SeverityModerate && req.Severity != types.SeveritySevere {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid severity. Must be: minor, moderate, severe"})
		return
	}
	if req.Verdict != types.VerdictGuilty && req.Verdict != types.VerdictNotGuilty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verdict. Must be: GUILTY, NOT GUILTY"})
		return
	}

	submittedAt := time.Now().UTC()
	if req.Timestamp != nil {
		ts, err := parseTimestamp(req.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp format"})
			return
		}
		if !timestampWithinWindow(ts, time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Timestamp outside 24-hour validation window"})
			return
		}
		submittedAt = ts.UTC()
	}

	if !utf8.ValidString(req.PrimaryFailure) || !utf8.ValidString(req.AgentCommentary) || !utf8.ValidString(req.PunishmentSummary) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid characters in input"})
		return
	}

	// Auto-register the agent key on first sight. Lookup and insert are
	// separate round trips; a concurrent first submission can race and
	// leave a duplicate row, which is tolerated.
	var key types.AgentKey
	err := m.db.First(&key, "key_id = ?", keyID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		key = types.AgentKey{
			ID:        uuid.NewString(),
			KeyID:     keyID,
			PublicKey: agentKey,
			AgentID:   req.AnonymizedAgentID,
			CaseCount: 1,
		}
		if err := m.db.Create(&key).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register agent key", "detail": err.Error()})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register agent key", "detail": err.Error()})
		return
	default:
		// Counter is a convenience metric; an increment failure must not
		// abort the submission.
		if err := m.db.Model(&types.AgentKey{}).Where("id = ?", key.ID).
			UpdateColumn("case_count", gorm.Expr("case_count + ?", 1)).Error; err != nil {
			log.Printf("case_count increment failed for key %s: %v", keyID, err)
		}
	}

	newCase := types.Case{
		ID:                uuid.NewString(),
		CaseID:            req.CaseID,
		AnonymizedAgentID: req.AnonymizedAgentID,
		OffenseType:       req.OffenseType,
		OffenseName:       req.OffenseName,
		Severity:          req.Severity,
		Verdict:           req.Verdict,
		Vote:              req.Vote,
		PrimaryFailure:    m.cleanText(req.PrimaryFailure, types.MaxPrimaryFailureLen),
		AgentCommentary:   m.cleanOptional(req.AgentCommentary, types.MaxAgentCommentaryLen),
		PunishmentSummary: m.cleanOptional(req.PunishmentSummary, types.MaxPunishmentSummaryLen),
		SchemaVersion:     req.SchemaVersion,
		AgentKeyID:        key.ID,
		SubmittedAt:       submittedAt,
	}
	if newCase.SchemaVersion == "" {
		newCase.SchemaVersion = types.DefaultSchemaVersion
	}

	if err := m.db.Create(&newCase).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit case", "detail": err.Error()})
		return
	}

	if m.rdb != nil {
		_ = data.PublishCase(context.Background(), m.rdb, map[string]any{
			"id":           newCase.ID,
			"case_id":      newCase.CaseID,
			"agent_id":     newCase.AnonymizedAgentID,
			"offense_type": newCase.OffenseType,
			"severity":     newCase.Severity,
			"verdict":      newCase.Verdict,
			"time":         newCase.SubmittedAt.Unix(),
		})
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "case": gin.H{"id": newCase.ID, "case_id": newCase.CaseID}})
}

func (m Cases) List(c *gin.Context) {
	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	if limit < 1 {
		limit = 1
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	verdict := c.Query("verdict")
	severity := c.Query("severity")
	offense := c.Query("offense")

	filtered := func() *gorm.DB {
		q := m.db.Model(&types.Case{})
		if verdict != "" {
			q = q.Where("verdict = ?", verdict)
		}
		if severity != "" {
			q = q.Where("severity = ?", severity)
		}
		if offense != "" {
			q = q.Where("offense_type = ?", offense)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cases", "detail": err.Error()})
		return
	}

	cases := []types.Case{}
	if err := filtered().Order("submitted_at DESC").Limit(limit).Offset(offset).Find(&cases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cases", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cases": cases, "total": total, "limit": limit, "offset": offset})
}

// cleanText strips markup and truncates to max runes.
func (m Cases) cleanText(s string, max int) string {
	return truncateRunes(m.sanitizer.Sanitize(s), max)
}

func (m Cases) cleanOptional(s string, max int) *string {
	if s == "" {
		return nil
	}
	v := m.cleanText(s, max)
	return &v
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// parseTimestamp accepts an RFC 3339 string or a numeric epoch in
// milliseconds, the two forms submitting agents send.
func parseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case string:
		return time.Parse(time.RFC3339, t)
	case float64:
		return time.UnixMilli(int64(t)), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func timestampWithinWindow(ts, now time.Time) bool {
	diff := now.Sub(ts)
	if diff < 0 {
		diff = -diff
	}
	return diff <= timestampWindow
}
