package webserver

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agent-tribunal/casedocket/src/CDApi/types"
)

type Statistics struct{ db *gorm.DB }

func NewStatistics(db *gorm.DB) Statistics { return Statistics{db: db} }

type offenseCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Get recomputes the aggregate stats from a full projection scan on every
// request. Acceptable while case volume stays small; an incrementally
// maintained counter table would trade this for insert-time consistency
// risk.
func (s Statistics) Get(c *gin.Context) {
	var rows []struct {
		Verdict     string
		Severity    string
		OffenseType string
	}
	// Oldest first, so offense tie-breaks follow first submission order.
	if err := s.db.Model(&types.Case{}).Select("verdict, severity, offense_type").
		Order("submitted_at ASC").Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	total := len(rows)
	guilty := 0
	severityBreakdown := map[string]int{
		types.SeverityMinor:    0,
		types.SeverityModerate: 0,
		types.SeveritySevere:   0,
	}
	offenseCounts := map[string]int{}
	var offenseOrder []string

	for _, r := range rows {
		if r.Verdict == types.VerdictGuilty {
			guilty++
		}
		// Unknown severity values are ignored rather than grown into the
		// breakdown.
		if _, ok := severityBreakdown[r.Severity]; ok {
			severityBreakdown[r.Severity]++
		}
		if _, seen := offenseCounts[r.OffenseType]; !seen {
			offenseOrder = append(offenseOrder, r.OffenseType)
		}
		offenseCounts[r.OffenseType]++
	}

	top := make([]offenseCount, 0, len(offenseOrder))
	for _, t := range offenseOrder {
		top = append(top, offenseCount{Type: t, Count: offenseCounts[t]})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > 10 {
		top = top[:10]
	}

	guiltyRate := 0.0
	if total > 0 {
		guiltyRate = float64(guilty) / float64(total)
	}

	var agentCount int64
	if err := s.db.Model(&types.AgentKey{}).Count(&agentCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_cases":        total,
		"guilty_rate":        guiltyRate,
		"active_agents":      agentCount,
		"severity_breakdown": severityBreakdown,
		"top_offenses":       top,
	})
}
