// internal/report/report.go
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"career-workers/internal/models"
)

const topMatchCount = 3

var ErrNoSelection = errors.New("report requires a selected career")

// Data is everything a report renders. It only reads engine output.
type Data struct {
	Profile     models.UserProfile
	Matches     []models.CareerMatch
	Selected    models.CareerMatch
	GeneratedAt time.Time
}

func (d *Data) validate() error {
	if d.Selected.Career == nil {
		return ErrNoSelection
	}
	return nil
}

var educationLabels = map[models.EducationLevel]string{
	models.Education10th:         "10th Standard",
	models.Education12th:         "12th Standard",
	models.EducationGraduate:     "Graduate",
	models.EducationPostgraduate: "Post Graduate",
}

var budgetLabels = map[models.BudgetTier]string{
	models.BudgetLow:    "Minimal (< ₹50,000)",
	models.BudgetMedium: "Moderate (₹50K - ₹2L)",
	models.BudgetHigh:   "Flexible (> ₹2 Lakh)",
}

// Disclaimer is the closing notice of every report.
var Disclaimer = []string{
	"This career guidance report is generated by an AI system based on the information you provided. " +
		"While we strive for accuracy, the recommendations should be considered as guidance, not guaranteed outcomes.",
	"Salary ranges are estimates and may vary based on location, experience, and market conditions",
	"Career timelines depend on individual effort, available resources, and opportunities",
	"We recommend consulting with career counselors, teachers, and industry professionals",
	"Government schemes and policies mentioned may change over time",
	"Success in any career path requires dedication, continuous learning, and adaptability",
}

var Resources = []string{
	"National Career Service Portal: www.ncs.gov.in",
	"Skill India Portal: www.skillindia.gov.in",
	"National Skill Development Corporation: www.nsdcindia.org",
	"PMKVY (Pradhan Mantri Kaushal Vikas Yojana)",
	"State Employment Exchanges and Career Guidance Centers",
}

func EducationLabel(e models.EducationLevel) string {
	if l, ok := educationLabels[e]; ok {
		return l
	}
	return string(e)
}

func BudgetLabel(b models.BudgetTier) string {
	if l, ok := budgetLabels[b]; ok {
		return l
	}
	return string(b)
}

func RelocationLabel(canRelocate bool) string {
	if canRelocate {
		return "Yes"
	}
	return "Prefer Local Options"
}

func LocationLabel(l models.Location) string {
	return fmt.Sprintf("%s, %s (%s)", l.District, l.State, l.Type)
}

// SubjectLines renders "Mathematics: 75%" style lines in subject order.
func SubjectLines(p models.UserProfile) []string {
	names := p.SubjectNames()
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, fmt.Sprintf("%s: %s%%", capitalize(string(name)), formatScore(p.Subjects[name])))
	}
	return out
}

func InterestsLine(p models.UserProfile) string {
	parts := make([]string, len(p.Interests))
	for i, interest := range p.Interests {
		parts[i] = string(interest)
	}
	return strings.Join(parts, ", ")
}

// NearYou is the first nearby location, or "Multiple".
func NearYou(m models.CareerMatch) string {
	if len(m.NearbyLocations) == 0 || m.NearbyLocations[0] == "" {
		return "Multiple"
	}
	return m.NearbyLocations[0]
}

type BreakdownRow struct {
	Label string
	Score int
}

// BreakdownRows pairs each factor score with its display label.
func BreakdownRows(b models.Breakdown) []BreakdownRow {
	return []BreakdownRow{
		{"Academic Fit", b.Academic},
		{"Skill Alignment", b.Skill},
		{"Interest Match", b.Interest},
		{"Local Opportunity", b.Opportunity},
	}
}

// TopMatches returns at most the first three matches.
func TopMatches(matches []models.CareerMatch) []models.CareerMatch {
	if len(matches) > topMatchCount {
		return matches[:topMatchCount]
	}
	return matches
}

// FileName returns Career_Report_<Title_With_Underscores>_<YYYY-MM-DD>.xlsx.
func FileName(title string, at time.Time) string {
	return fmt.Sprintf("Career_Report_%s_%s.xlsx", strings.Join(strings.Fields(title), "_"), at.UTC().Format("2006-01-02"))
}

// EmailSubject is the subject line of the delivery email.
func EmailSubject(d *Data) string {
	return fmt.Sprintf("Your career report: %s (%d%% match)", d.Selected.Career.Title, d.Selected.MatchScore)
}

// EmailBody renders a plain-text summary of the report.
func EmailBody(d *Data) string {
	sel := d.Selected
	var sb strings.Builder

	fmt.Fprintf(&sb, "Recommended career: %s (%d%% match)\n", sel.Career.Title, sel.MatchScore)
	fmt.Fprintf(&sb, "Salary Range: %s | Time to Achieve: %s | Near You: %s\n\n", sel.Career.FormatSalary(), sel.Career.TimeToAchieve, NearYou(sel))
	sb.WriteString(sel.PersonalizedReasoning.Summary)
	sb.WriteString("\n\nWhy You Will Succeed:\n")
	for _, s := range sel.PersonalizedReasoning.Strengths {
		fmt.Fprintf(&sb, "• %s\n", s)
	}
	sb.WriteString("\nThings to Consider:\n")
	for _, c := range sel.PersonalizedReasoning.Considerations {
		fmt.Fprintf(&sb, "• %s\n", c)
	}
	if sel.PersonalizedReasoning.LocalInsight != "" {
		fmt.Fprintf(&sb, "\n%s\n", sel.PersonalizedReasoning.LocalInsight)
	}

	top := TopMatches(d.Matches)
	if len(top) > 0 {
		sb.WriteString("\nTop Career Matches:\n")
		for i, m := range top {
			fmt.Fprintf(&sb, "%d. %s - %d%%\n", i+1, m.Career.Title, m.MatchScore)
		}
	}

	sb.WriteString("\nImportant Disclaimer:\n")
	sb.WriteString(Disclaimer[0])
	sb.WriteString("\n")
	return sb.String()
}

// SMSText is a single-line notification.
func SMSText(d *Data) string {
	return fmt.Sprintf("Career report ready: %s, %d%% match. Salary %s, %s.",
		d.Selected.Career.Title, d.Selected.MatchScore, d.Selected.Career.FormatSalary(), d.Selected.Career.TimeToAchieve)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
