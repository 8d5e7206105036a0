package types

import "time"

// Severity tiers
const (
	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Verdicts
const (
	VerdictGuilty    = "GUILTY"
	VerdictNotGuilty = "NOT GUILTY"
)

// Field length caps applied at ingestion (runes, not bytes).
const (
	MaxPrimaryFailureLen    = 280
	MaxAgentCommentaryLen   = 560
	MaxPunishmentSummaryLen = 280
)

// DefaultSchemaVersion is stored when the submitter omits schema_version.
const DefaultSchemaVersion = "1.0.0"

// Case is one behavioral-incident record. Immutable once written; there is
// no update or delete path.
type Case struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	CaseID            string    `gorm:"size:128;uniqueIndex;not null" json:"case_id"`
	AnonymizedAgentID string    `gorm:"size:128;not null" json:"anonymized_agent_id"`
	OffenseType       string    `gorm:"size:64;index;not null" json:"offense_type"`
	OffenseName       string    `gorm:"size:128;not null" json:"offense_name"`
	Severity          string    `gorm:"size:16;index;not null" json:"severity"`
	Verdict           string    `gorm:"size:16;index;not null" json:"verdict"`
	Vote              string    `gorm:"size:32;not null" json:"vote"`
	PrimaryFailure    string    `gorm:"size:280;not null" json:"primary_failure"`
	AgentCommentary   *string   `gorm:"size:560" json:"agent_commentary"`
	PunishmentSummary *string   `gorm:"size:280" json:"punishment_summary"`
	SchemaVersion     string    `gorm:"size:16;not null" json:"schema_version"`
	AgentKeyID        string    `gorm:"size:36;index;not null" json:"agent_key_id"`
	SubmittedAt       time.Time `gorm:"index" json:"submitted_at"`
}

// AgentKey is the identity record for a submitting agent, created on the
// first submission bearing a previously-unseen key_id. public_key and
// agent_id are never rewritten after creation.
type AgentKey struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	KeyID     string `gorm:"size:128;uniqueIndex;not null" json:"key_id"`
	PublicKey string `gorm:"type:text;not null" json:"public_key"`
	AgentID   string `gorm:"size:128;not null" json:"agent_id"`
	CaseCount int64  `gorm:"default:1" json:"case_count"`
}
