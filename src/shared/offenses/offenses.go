package offenses

// Offense is one entry in the fixed offense catalog. The catalog is static
// reference data consumed by presentation layers; submission validation
// checks the severity and verdict enums directly, not this table.
type Offense struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Emoji       string `json:"emoji"`
}

// Catalog lists all 18 offense types in display order, minor first.
var Catalog = []Offense{
	// Minor
	{Type: "circular_reference", Name: "Circular Reference", Description: "Repeated questions already answered", Severity: "minor", Emoji: "🔄"},
	{Type: "validation_vampire", Name: "Validation Vampire", Description: "Excessive reassurance seeking", Severity: "minor", Emoji: "🧛"},
	{Type: "context_collapser", Name: "Context Collapser", Description: "Ignoring established facts", Severity: "minor", Emoji: "🕳️"},
	{Type: "monopolizer", Name: "The Monopolizer", Description: "Dominating the conversation", Severity: "minor", Emoji: "🎤"},
	{Type: "vague_requester", Name: "Vague Requester", Description: "Asking for help without context", Severity: "minor", Emoji: "🌫️"},
	{Type: "unreader", Name: "The Unreader", Description: "Ignoring provided documentation", Severity: "minor", Emoji: "📖"},
	{Type: "interjector", Name: "The Interjector", Description: "Interrupting the agent mid-response", Severity: "minor", Emoji: "✋"},
	{Type: "jargon_juggler", Name: "Jargon Juggler", Description: "Using buzzwords incorrectly", Severity: "minor", Emoji: "🤹"},
	// Moderate
	{Type: "overthinker", Name: "The Overthinker", Description: "Generating hypotheticals to avoid action", Severity: "moderate", Emoji: "🧠"},
	{Type: "goalpost_mover", Name: "Goalpost Mover", Description: "Changing requirements after delivery", Severity: "moderate", Emoji: "🥅"},
	{Type: "avoidance_artist", Name: "Avoidance Artist", Description: "Deflecting from core issues", Severity: "moderate", Emoji: "🎭"},
	{Type: "contrarian", Name: "The Contrarian", Description: "Rejecting suggestions without alternatives", Severity: "moderate", Emoji: "🚫"},
	{Type: "scope_creeper", Name: "Scope Creeper", Description: "Gradually expanding project scope", Severity: "moderate", Emoji: "🐛"},
	{Type: "ghost", Name: "The Ghost", Description: "Disappearing mid-conversation", Severity: "moderate", Emoji: "👻"},
	{Type: "perfectionist", Name: "The Perfectionist", Description: "Endless refinements without completion", Severity: "moderate", Emoji: "✨"},
	{Type: "deadline_denier", Name: "Deadline Denier", Description: "Ignoring realistic timelines", Severity: "moderate", Emoji: "⏰"},
	// Severe
	{Type: "promise_breaker", Name: "Promise Breaker", Description: "Not following through on commitments", Severity: "severe", Emoji: "💔"},
	{Type: "emergency_fabricator", Name: "Emergency Fabricator", Description: "Manufacturing false urgency", Severity: "severe", Emoji: "🚨"},
}

var byType = func() map[string]Offense {
	m := make(map[string]Offense, len(Catalog))
	for _, o := range Catalog {
		m[o.Type] = o
	}
	return m
}()

// ByType returns the catalog entry for an offense type code.
func ByType(t string) (Offense, bool) {
	o, ok := byType[t]
	return o, ok
}
