// internal/matching/reasoning.go
package matching

import (
	"fmt"
	"strings"

	"career-workers/internal/models"
)

const (
	maxStrengths      = 5
	maxConsiderations = 4
	maxNearby         = 3
)

// GenerateReasoning fills the career's explanation templates for a profile.
// It only reads its inputs.
func (e *Engine) GenerateReasoning(c *models.Career, p *models.UserProfile, b models.Breakdown) models.Reasoning {
	t := c.ReasoningTemplates

	summary := t.Summary
	if b.Academic >= 80 {
		summary = strings.Replace(summary, "Your", "Your exceptional", 1)
	}
	if p.IsRural() {
		summary += " This career can be pursued while staying connected to your roots."
	}

	strengths := make([]string, 0, len(t.Strengths)+3)
	if b.Interest >= 90 {
		strengths = append(strengths, "Your interests closely match what this career requires")
	}
	if b.Academic >= 85 {
		strengths = append(strengths, fmt.Sprintf("Your %d%% academic alignment indicates strong foundational preparation", b.Academic))
	}
	strengths = append(strengths, t.Strengths...)
	if p.Finance.CanRelocate {
		strengths = append(strengths, "Flexibility to relocate opens more opportunities")
	}
	if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}

	considerations := make([]string, 0, len(t.Considerations)+2)
	considerations = append(considerations, t.Considerations...)
	if p.Finance.Budget == models.BudgetLow {
		considerations = append(considerations, "Look for free resources and scholarships to minimize costs")
	}
	if p.Finance.PreferDuration == models.Duration6Months {
		considerations = append(considerations, "Short timeline preference - focus on intensive bootcamps or fast-track options")
	}
	if len(considerations) > maxConsiderations {
		considerations = considerations[:maxConsiderations]
	}

	return models.Reasoning{
		Summary:        summary,
		Strengths:      strengths,
		Considerations: considerations,
		LocalInsight:   e.localInsight(c, p),
	}
}

func (e *Engine) localInsight(c *models.Career, p *models.UserProfile) string {
	var sb strings.Builder

	if opps, ok := e.regionalOpportunities(c, p.Location.State); ok {
		fmt.Fprintf(&sb, "In %s, you have access to: %s. ", p.Location.State, strings.Join(opps, ", "))
		if p.Location.District != "" {
			if p.IsRural() {
				fmt.Fprintf(&sb, "Being in %s area gives you a strong foundation for self-employment or local service.", p.Location.District)
			} else {
				fmt.Fprintf(&sb, "Being in %s city gives you access to urban opportunities.", p.Location.District)
			}
		}
		return strings.TrimSpace(sb.String())
	}

	fallback := c.StateOpportunities[e.cfg.FallbackRegion]
	fmt.Fprintf(&sb, "%s are available in your region. ", strings.Join(fallback, ", "))
	switch {
	case c.Type == models.CareerTypeSelfEmployed:
		sb.WriteString("Self-employment options work well in your area with government support schemes.")
	case p.Finance.CanRelocate:
		sb.WriteString("Your willingness to relocate significantly expands your options.")
	}
	return strings.TrimSpace(sb.String())
}

// regionalOpportunities returns the state-specific list, if the career has
// one for the state.
func (e *Engine) regionalOpportunities(c *models.Career, state string) ([]string, bool) {
	if state == "" || state == e.cfg.FallbackRegion {
		return nil, false
	}
	opps, ok := c.StateOpportunities[state]
	return opps, ok
}

// NearbyLocations returns up to three places where the career can be pursued.
func (e *Engine) NearbyLocations(c *models.Career, p *models.UserProfile) []string {
	if opps, ok := e.regionalOpportunities(c, p.Location.State); ok {
		n := len(opps)
		if n > maxNearby {
			n = maxNearby
		}
		out := make([]string, n)
		copy(out, opps[:n])
		return out
	}

	district := p.Location.District
	switch c.Type {
	case models.CareerTypeSelfEmployed:
		return []string{orDefault(district, "Your Village"), "Nearby Taluk", "District Center"}
	case models.CareerTypeGovernment:
		return []string{orDefault(district, "District HQ"), p.Location.State, "Across India"}
	default:
		return []string{p.Location.State, "Major Cities", "Remote/Online"}
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
