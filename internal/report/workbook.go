// internal/report/workbook.go
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SheetProfile  = "Profile"
	SheetMatches  = "Top Matches"
	SheetCareer   = "Recommended Career"
	SheetRoadmap  = "Roadmap"
	SheetNotes    = "Disclaimer"
	headerColor   = "FF9933"
	sectionColor  = "14213D"
	strengthColor = "C6EFCE"
	considerColor = "FFEB9C"
)

type styles struct {
	header  int
	section int
	label   int
	wrap    int
	good    int
	caution int
}

func newStyles(f *excelize.File) (*styles, error) {
	var s styles
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return nil, err
	}
	if s.section, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{sectionColor}, Pattern: 1},
	}); err != nil {
		return nil, err
	}
	if s.label, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return nil, err
	}
	if s.wrap, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	}); err != nil {
		return nil, err
	}
	if s.good, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{strengthColor}, Pattern: 1},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	}); err != nil {
		return nil, err
	}
	if s.caution, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{considerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	}); err != nil {
		return nil, err
	}
	return &s, nil
}

// sheetWriter appends rows to one sheet and remembers the first error.
type sheetWriter struct {
	f     *excelize.File
	name  string
	row   int
	err   error
	style *styles
}

func (w *sheetWriter) cell(col string) string {
	return fmt.Sprintf("%s%d", col, w.row)
}

func (w *sheetWriter) set(col string, value interface{}) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(w.name, w.cell(col), value)
}

func (w *sheetWriter) styleRange(from, to string, style int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(w.name, w.cell(from), w.cell(to), style)
}

func (w *sheetWriter) banner(text string, style int, lastCol string) {
	w.set("A", text)
	w.styleRange("A", lastCol, style)
	if w.err == nil && lastCol != "A" {
		w.err = w.f.MergeCell(w.name, w.cell("A"), w.cell(lastCol))
	}
	w.row++
}

func (w *sheetWriter) pair(label string, value interface{}) {
	w.set("A", label)
	w.styleRange("A", "A", w.style.label)
	w.set("B", value)
	w.styleRange("B", "B", w.style.wrap)
	w.row++
}

func (w *sheetWriter) line(text string, style int) {
	w.set("A", text)
	w.styleRange("A", "A", style)
	w.row++
}

func (w *sheetWriter) skip(n int) { w.row += n }

// Build renders the report into a new workbook. The caller must close it.
func Build(d *Data) (*excelize.File, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetProfile); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetMatches, SheetCareer, SheetRoadmap, SheetNotes} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	steps := []struct {
		name string
		fn   func(*excelize.File, *styles, *Data) error
	}{
		{SheetProfile, writeProfileSheet},
		{SheetMatches, writeMatchesSheet},
		{SheetCareer, writeCareerSheet},
		{SheetRoadmap, writeRoadmapSheet},
		{SheetNotes, writeNotesSheet},
	}
	for _, step := range steps {
		if err := step.fn(f, st, d); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create %s sheet: %w", strings.ToLower(step.name), err)
		}
	}
	return f, nil
}

// Write renders the report to w.
func Write(w io.Writer, d *Data) error {
	f, err := Build(d)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// Save writes the report into dir under FileName and returns the full path.
func Save(dir string, d *Data) (string, error) {
	if err := d.validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Clean(filepath.Join(dir, FileName(d.Selected.Career.Title, d.GeneratedAt)))

	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return path, nil
}

func writeProfileSheet(f *excelize.File, st *styles, d *Data) error {
	_ = f.SetColWidth(SheetProfile, "A", "A", 28)
	_ = f.SetColWidth(SheetProfile, "B", "B", 60)

	w := &sheetWriter{f: f, name: SheetProfile, row: 1, style: st}
	w.banner("Career Guidance Report", st.header, "B")
	w.pair("Generated:", d.GeneratedAt.Format("02 January 2006, 15:04"))
	w.skip(1)

	w.banner("Your Profile Summary", st.section, "B")
	p := d.Profile
	w.pair("Education Level:", EducationLabel(p.Education))
	w.pair("Location:", LocationLabel(p.Location))
	w.pair("Investment Capacity:", BudgetLabel(p.Finance.Budget))
	w.pair("Can Relocate:", RelocationLabel(p.Finance.CanRelocate))
	w.pair("Interests:", InterestsLine(p))
	w.skip(1)

	w.banner("Academic Performance", st.section, "B")
	for _, line := range SubjectLines(p) {
		w.line(line, st.wrap)
	}
	return w.err
}

func writeMatchesSheet(f *excelize.File, st *styles, d *Data) error {
	_ = f.SetColWidth(SheetMatches, "A", "A", 8)
	_ = f.SetColWidth(SheetMatches, "B", "B", 30)
	_ = f.SetColWidth(SheetMatches, "C", "C", 16)
	_ = f.SetColWidth(SheetMatches, "D", "D", 12)
	_ = f.SetColWidth(SheetMatches, "E", "E", 45)

	w := &sheetWriter{f: f, name: SheetMatches, row: 1, style: st}
	headers := []string{"Rank", "Career", "Type", "Match", "Details"}
	for i, h := range headers {
		w.set(string(rune('A'+i)), h)
	}
	w.styleRange("A", "E", st.section)
	w.row++

	for i, m := range TopMatches(d.Matches) {
		w.set("A", i+1)
		w.set("B", m.Career.Title)
		w.set("C", capitalize(string(m.Career.Type)))
		w.set("D", fmt.Sprintf("%d%%", m.MatchScore))
		w.set("E", fmt.Sprintf("Salary: %s | Time: %s", m.Career.FormatSalary(), m.Career.TimeToAchieve))
		w.row++
	}

	if w.err == nil {
		w.err = f.SetPanes(SheetMatches, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	return w.err
}

func writeCareerSheet(f *excelize.File, st *styles, d *Data) error {
	_ = f.SetColWidth(SheetCareer, "A", "A", 28)
	_ = f.SetColWidth(SheetCareer, "B", "B", 80)

	sel := d.Selected
	w := &sheetWriter{f: f, name: SheetCareer, row: 1, style: st}
	w.banner("RECOMMENDED CAREER", st.section, "B")
	w.pair(sel.Career.Title, fmt.Sprintf("%d%% Match", sel.MatchScore))
	w.pair("Description:", sel.Career.Description)
	w.skip(1)

	w.pair("Salary Range", sel.Career.FormatSalary())
	w.pair("Time to Achieve", sel.Career.TimeToAchieve)
	w.pair("Type", string(sel.Career.Type))
	w.pair("Near You", NearYou(sel))
	w.skip(1)

	w.banner("Match Score Breakdown", st.section, "B")
	for _, row := range BreakdownRows(sel.Breakdown) {
		w.pair(row.Label, fmt.Sprintf("%d%%", row.Score))
	}
	w.skip(1)

	r := sel.PersonalizedReasoning
	w.banner("AI Analysis: Why This Career Suits You", st.section, "B")
	w.set("A", r.Summary)
	w.styleRange("A", "B", st.wrap)
	if w.err == nil {
		w.err = f.MergeCell(SheetCareer, w.cell("A"), w.cell("B"))
	}
	w.row++
	w.skip(1)

	w.pair("Why You Will Succeed:", "")
	for _, s := range r.Strengths {
		w.set("B", "• "+s)
		w.styleRange("B", "B", st.good)
		w.row++
	}
	w.pair("Things to Consider:", "")
	for _, c := range r.Considerations {
		w.set("B", "• "+c)
		w.styleRange("B", "B", st.caution)
		w.row++
	}
	w.skip(1)

	w.pair("Local Opportunity Insight", r.LocalInsight)
	return w.err
}

func writeRoadmapSheet(f *excelize.File, st *styles, d *Data) error {
	_ = f.SetColWidth(SheetRoadmap, "A", "A", 8)
	_ = f.SetColWidth(SheetRoadmap, "B", "B", 35)
	_ = f.SetColWidth(SheetRoadmap, "C", "C", 14)
	_ = f.SetColWidth(SheetRoadmap, "D", "D", 14)
	_ = f.SetColWidth(SheetRoadmap, "E", "E", 70)

	w := &sheetWriter{f: f, name: SheetRoadmap, row: 1, style: st}
	w.banner("Career Roadmap: "+d.Selected.Career.Title, st.header, "E")
	for i, h := range []string{"Step", "Title", "Duration", "Type", "Description"} {
		w.set(string(rune('A'+i)), h)
	}
	w.styleRange("A", "E", st.section)
	w.row++

	for i, step := range d.Selected.Career.Roadmap {
		w.set("A", i+1)
		w.set("B", step.Title)
		w.set("C", step.Duration)
		w.set("D", string(step.Type))
		w.set("E", step.Description)
		w.styleRange("E", "E", st.wrap)
		w.row++
	}
	return w.err
}

func writeNotesSheet(f *excelize.File, st *styles, d *Data) error {
	_ = f.SetColWidth(SheetNotes, "A", "A", 110)

	w := &sheetWriter{f: f, name: SheetNotes, row: 1, style: st}
	w.banner("Important Disclaimer", st.header, "A")
	w.line(Disclaimer[0], st.wrap)
	for _, item := range Disclaimer[1:] {
		w.line("• "+item, st.wrap)
	}
	w.skip(1)

	w.banner("Useful Resources", st.section, "A")
	for _, res := range Resources {
		w.line("• "+res, st.wrap)
	}
	return w.err
}
