package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/barisense-backend/internal/analysis"
	"github.com/yungbote/barisense-backend/internal/data/store"
)

type CoffeeShots struct {
	CoffeeID uuid.UUID `json:"coffee_id" yaml:"coffee_id"`
	Name     string    `json:"name" yaml:"name"`
	Shots    int       `json:"shots" yaml:"shots"`
}

type Summary struct {
	Coffees               int           `json:"coffees" yaml:"coffees"`
	Waters                int           `json:"waters" yaml:"waters"`
	Shots                 int           `json:"shots" yaml:"shots"`
	Tastings              int           `json:"tastings" yaml:"tastings"`
	Verdicts              int           `json:"verdicts" yaml:"verdicts"`
	ShotsWithoutTasting   int           `json:"shots_without_tasting" yaml:"shots_without_tasting"`
	AverageBrewRatio      *float64      `json:"average_brew_ratio" yaml:"average_brew_ratio"`
	AverageExtractionTime *float64      `json:"average_extraction_time" yaml:"average_extraction_time"`
	TopCoffeesByShots     []CoffeeShots `json:"top_coffees_by_shots" yaml:"top_coffees_by_shots"`
}

// Summarize computes dataset diagnostics. Coffees with equal shot counts keep
// the order of their first shot.
func Summarize(doc *store.Document, top int) Summary {
	s := Summary{
		Coffees:  len(doc.Coffees),
		Waters:   len(doc.Waters),
		Shots:    len(doc.Shots),
		Tastings: len(doc.Tastings),
		Verdicts: len(doc.Verdicts),
	}

	tasted := make(map[uuid.UUID]bool, len(doc.Tastings))
	for _, t := range doc.Tastings {
		tasted[t.ShotID] = true
	}

	var ratios, durations []float64
	counts := map[uuid.UUID]int{}
	var order []uuid.UUID
	for _, shot := range doc.Shots {
		if !tasted[shot.ID] {
			s.ShotsWithoutTasting++
		}
		if shot.DoseInGrams > 0 && shot.BeverageWeightGrams > 0 {
			ratios = append(ratios, shot.BeverageWeightGrams/shot.DoseInGrams)
		}
		if shot.ExtractionTimeSeconds > 0 {
			durations = append(durations, shot.ExtractionTimeSeconds)
		}
		if _, seen := counts[shot.CoffeeID]; !seen {
			order = append(order, shot.CoffeeID)
		}
		counts[shot.CoffeeID]++
	}
	s.AverageBrewRatio = roundedMean(ratios)
	s.AverageExtractionTime = roundedMean(durations)

	names := make(map[uuid.UUID]string, len(doc.Coffees))
	for _, c := range doc.Coffees {
		names[c.ID] = c.Name
	}
	tops := make([]CoffeeShots, 0, len(order))
	for _, id := range order {
		tops = append(tops, CoffeeShots{CoffeeID: id, Name: names[id], Shots: counts[id]})
	}
	sort.SliceStable(tops, func(i, j int) bool { return tops[i].Shots > tops[j].Shots })
	if top >= 0 && len(tops) > top {
		tops = tops[:top]
	}
	s.TopCoffeesByShots = tops
	return s
}

func roundedMean(values []float64) *float64 {
	mean, ok := analysis.Mean(values)
	if !ok {
		return nil
	}
	r := analysis.Round2(mean)
	return &r
}

// Write renders the summary as text, json or yaml.
func (s Summary) Write(w io.Writer, format string) error {
	switch format {
	case "", "text":
		return s.writeText(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("invalid format %q: must be 'text', 'json' or 'yaml'", format)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(26)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
)

func (s Summary) writeText(w io.Writer) error {
	lines := []struct{ label, value string }{
		{"Cafés", strconv.Itoa(s.Coffees)},
		{"Eaux", strconv.Itoa(s.Waters)},
		{"Shots", strconv.Itoa(s.Shots)},
		{"Dégustations", strconv.Itoa(s.Tastings)},
		{"Verdicts", strconv.Itoa(s.Verdicts)},
		{"Shots sans dégustation", strconv.Itoa(s.ShotsWithoutTasting)},
		{"Ratio moyen", formatOptional(s.AverageBrewRatio)},
		{"Temps moyen (s)", formatOptional(s.AverageExtractionTime)},
	}

	if _, err := fmt.Fprintln(w, headerStyle.Render("=== Diagnostic dataset ===")); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s %s\n", labelStyle.Render(l.label), l.value); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Top cafés (nb shots)"))
	if len(s.TopCoffeesByShots) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("  aucun shot"))
		return err
	}
	rows := make([][]string, 0, len(s.TopCoffeesByShots))
	for _, c := range s.TopCoffeesByShots {
		rows = append(rows, []string{c.Name, c.CoffeeID.String(), strconv.Itoa(c.Shots)})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("CAFÉ", "ID", "SHOTS").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatOptional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
