package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/barisense-backend/internal/analysis"
	"github.com/yungbote/barisense-backend/internal/data/store"
	"github.com/yungbote/barisense-backend/internal/domain"
	apperr "github.com/yungbote/barisense-backend/internal/pkg/errors"
	"github.com/yungbote/barisense-backend/internal/services"
)

const (
	CoffeesFile  = "coffees.csv"
	WatersFile   = "waters.csv"
	ShotsFile    = "shots.csv"
	TastingsFile = "tastings.csv"
)

// Non-UUID ids found in CSV files are mapped into this namespace with UUIDv5.
var idNamespace = uuid.MustParse("3f6b8a52-1d0c-5e7a-b4c9-8e2f61d0a7c3")

var (
	coffeeHeader  = []string{"id", "name", "roaster", "reference", "type", "bag_weight_g", "price_eur", "purchase_date"}
	waterHeader   = []string{"id", "label", "source", "brand"}
	shotHeader    = []string{"id", "coffee_id", "water_id", "beverage_type", "dose_g", "yield_g", "duration_s", "grind", "notes"}
	tastingHeader = []string{"id", "shot_id", "acidity", "bitterness", "body", "aroma", "balance", "finish", "overall", "notes"}
)

// RowError locates a rejected CSV row. The header is row 1.
type RowError struct {
	File string
	Row  int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.File, e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

type ImportOptions struct {
	CoffeesPath  string
	ShotsPath    string
	TastingsPath string
	// WatersPath is optional.
	WatersPath string
	Now        func() time.Time
}

type row struct {
	file   string
	num    int
	fields map[string]string
}

func (r row) get(name string) string { return r.fields[name] }

func (r row) optional(name string) *string {
	v := r.fields[name]
	if v == "" {
		return nil
	}
	return &v
}

func (r row) fail(err error) error {
	return &RowError{File: r.file, Row: r.num, Err: err}
}

type importer struct {
	doc     *store.Document
	clock   time.Time
	tick    int
	waters  map[string]*domain.Water
	coffees map[string]*domain.Coffee
	shots   map[string]*domain.Shot
}

func (im *importer) next() time.Time {
	im.tick++
	return im.clock.Add(time.Duration(im.tick) * time.Millisecond)
}

// Import reads the CSV files into a new document. Derived fields are
// computed the same way the API computes them and every coffee with at
// least one tasting gets the verdict of its most recent tasting.
func Import(opts ImportOptions) (*store.Document, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	im := &importer{
		doc:     store.NewDocument(),
		clock:   now().UTC(),
		waters:  map[string]*domain.Water{},
		coffees: map[string]*domain.Coffee{},
		shots:   map[string]*domain.Shot{},
	}

	steps := []struct {
		path     string
		required bool
		apply    func(row) error
	}{
		{opts.WatersPath, false, im.water},
		{opts.CoffeesPath, true, im.coffee},
		{opts.ShotsPath, true, im.shot},
		{opts.TastingsPath, true, im.tasting},
	}
	for _, step := range steps {
		if step.path == "" {
			if step.required {
				return nil, errors.New("missing required CSV path")
			}
			continue
		}
		rows, err := readRows(step.path)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			if err := step.apply(r); err != nil {
				return nil, err
			}
		}
	}
	im.deriveVerdicts()
	return im.doc, nil
}

func mapID(kind, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, apperr.Missing("id")
	}
	if id, err := uuid.Parse(raw); err == nil {
		return id, nil
	}
	return uuid.NewSHA1(idNamespace, []byte(kind+"/"+raw)), nil
}

func (im *importer) water(r row) error {
	id, err := mapID("water", r.get("id"))
	if err != nil {
		return r.fail(err)
	}
	if _, dup := im.waters[r.get("id")]; dup {
		return r.fail(apperr.Invalid("duplicate id %q", r.get("id")))
	}
	in := domain.WaterInput{
		Label:  r.get("label"),
		Source: domain.WaterSource(r.get("source")),
		Brand:  r.optional("brand"),
	}
	if err := in.Validate(); err != nil {
		return r.fail(err)
	}
	w := &domain.Water{ID: id, CreatedAt: im.next()}
	in.Apply(w)
	im.waters[r.get("id")] = w
	im.doc.Waters = append(im.doc.Waters, w)
	return nil
}

func (im *importer) coffee(r row) error {
	id, err := mapID("coffee", r.get("id"))
	if err != nil {
		return r.fail(err)
	}
	if _, dup := im.coffees[r.get("id")]; dup {
		return r.fail(apperr.Invalid("duplicate id %q", r.get("id")))
	}
	weight, err := parseInt(r, "bag_weight_g")
	if err != nil {
		return err
	}
	price, err := parseFloat(r, "price_eur")
	if err != nil {
		return err
	}
	format := domain.CoffeeFormat(r.get("type"))
	if format == "" {
		format = domain.CoffeeFormatGrain
	}
	in := domain.CoffeeInput{
		Name:        r.get("name"),
		Roaster:     r.get("roaster"),
		Reference:   r.optional("reference"),
		Format:      format,
		WeightGrams: weight,
		PriceEUR:    price,
		PurchasedAt: r.get("purchase_date"),
	}
	if err := in.Validate(); err != nil {
		return r.fail(err)
	}
	c := &domain.Coffee{ID: id, CreatedAt: im.next()}
	in.Apply(c)
	c.CostPerShotEUR = analysis.CostPerShot(c.PriceEUR, c.WeightGrams, analysis.ReferenceDoseGrams)
	im.coffees[r.get("id")] = c
	im.doc.Coffees = append(im.doc.Coffees, c)
	return nil
}

func (im *importer) shot(r row) error {
	id, err := mapID("shot", r.get("id"))
	if err != nil {
		return r.fail(err)
	}
	if _, dup := im.shots[r.get("id")]; dup {
		return r.fail(apperr.Invalid("duplicate id %q", r.get("id")))
	}
	coffee, ok := im.coffees[r.get("coffee_id")]
	if !ok {
		return r.fail(fmt.Errorf("%w: coffee %q", apperr.ErrNotFound, r.get("coffee_id")))
	}
	waterID := coffee.DefaultWaterID
	if raw := r.get("water_id"); raw != "" {
		w, ok := im.waters[raw]
		if !ok {
			return r.fail(fmt.Errorf("%w: water %q", apperr.ErrNotFound, raw))
		}
		waterID = &w.ID
	}
	dose, err := parseFloat(r, "dose_g")
	if err != nil {
		return err
	}
	yield, err := parseFloat(r, "yield_g")
	if err != nil {
		return err
	}
	duration, err := parseFloat(r, "duration_s")
	if err != nil {
		return err
	}
	in := domain.ShotInput{
		CoffeeID:              coffee.ID,
		BeverageType:          domain.BeverageType(r.get("beverage_type")),
		GrindSetting:          r.get("grind"),
		DoseInGrams:           dose,
		BeverageWeightGrams:   yield,
		ExtractionTimeSeconds: duration,
		WaterID:               waterID,
		Notes:                 r.optional("notes"),
	}
	if err := in.Validate(); err != nil {
		return r.fail(err)
	}
	s := &domain.Shot{ID: id, CreatedAt: im.next()}
	in.Apply(s)
	s.BrewRatio = analysis.BrewRatio(s.BeverageWeightGrams, s.DoseInGrams)
	im.shots[r.get("id")] = s
	im.doc.Shots = append(im.doc.Shots, s)
	return nil
}

func (im *importer) tasting(r row) error {
	id, err := mapID("tasting", r.get("id"))
	if err != nil {
		return r.fail(err)
	}
	shot, ok := im.shots[r.get("shot_id")]
	if !ok {
		return r.fail(fmt.Errorf("%w: shot %q", apperr.ErrNotFound, r.get("shot_id")))
	}
	in := domain.TastingInput{
		ShotID:          shot.ID,
		AcidityLabel:    r.get("acidity"),
		BitternessLabel: r.get("bitterness"),
		BodyLabel:       r.get("body"),
		AromaLabel:      r.get("aroma"),
		BalanceLabel:    r.get("balance"),
		FinishLabel:     r.get("finish"),
		OverallLabel:    r.get("overall"),
		Comments:        r.optional("notes"),
	}
	if err := in.Validate(); err != nil {
		return r.fail(err)
	}
	t, err := services.ScoreTasting(in)
	if err != nil {
		return r.fail(err)
	}
	t.ID = id
	t.CreatedAt = im.next()
	im.doc.Tastings = append(im.doc.Tastings, t)
	return nil
}

func (im *importer) deriveVerdicts() {
	coffeeOfShot := make(map[uuid.UUID]uuid.UUID, len(im.doc.Shots))
	for _, s := range im.doc.Shots {
		coffeeOfShot[s.ID] = s.CoffeeID
	}
	latest := map[uuid.UUID]*domain.Tasting{}
	for _, t := range im.doc.Tastings {
		latest[coffeeOfShot[t.ShotID]] = t
	}
	for _, c := range im.doc.Coffees {
		t, ok := latest[c.ID]
		if !ok {
			continue
		}
		in := services.DerivedVerdict(c.ID, t.SensoryMean)
		at := im.next()
		im.doc.Verdicts = append(im.doc.Verdicts, &domain.Verdict{
			ID:        uuid.NewSHA1(idNamespace, []byte("verdict/"+c.ID.String())),
			CoffeeID:  c.ID,
			Status:    in.Status,
			Rationale: in.Rationale,
			CreatedAt: at,
			UpdatedAt: at,
		})
	}
}

func parseInt(r row, name string) (int, error) {
	raw := r.get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, r.fail(apperr.Invalid("%s: %q is not an integer", name, raw))
	}
	return v, nil
}

func parseFloat(r row, name string) (float64, error) {
	raw := strings.Replace(r.get(name), ",", ".", 1)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, r.fail(apperr.Invalid("%s: %q is not a number", name, raw))
	}
	return v, nil
}

func readRows(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var out []row
	for num := 2; ; num++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, num, err)
		}
		fields := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(rec) {
				fields[key] = strings.TrimSpace(rec[i])
			}
		}
		out = append(out, row{file: name, num: num, fields: fields})
	}
	return out, nil
}

// Export writes the four CSV files Import reads. Verdicts are derived data
// and are not exported.
func Export(doc *store.Document, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	coffees := make([][]string, 0, len(doc.Coffees))
	for _, c := range doc.Coffees {
		coffees = append(coffees, []string{
			c.ID.String(), c.Name, c.Roaster, deref(c.Reference), string(c.Format),
			strconv.Itoa(c.WeightGrams), formatFloat(c.PriceEUR), c.PurchasedAt,
		})
	}
	waters := make([][]string, 0, len(doc.Waters))
	for _, w := range doc.Waters {
		waters = append(waters, []string{w.ID.String(), w.Label, string(w.Source), deref(w.Brand)})
	}
	shots := make([][]string, 0, len(doc.Shots))
	for _, s := range doc.Shots {
		waterID := ""
		if s.WaterID != nil {
			waterID = s.WaterID.String()
		}
		shots = append(shots, []string{
			s.ID.String(), s.CoffeeID.String(), waterID, string(s.BeverageType),
			formatFloat(s.DoseInGrams), formatFloat(s.BeverageWeightGrams),
			formatFloat(s.ExtractionTimeSeconds), s.GrindSetting, deref(s.Notes),
		})
	}
	tastings := make([][]string, 0, len(doc.Tastings))
	for _, t := range doc.Tastings {
		tastings = append(tastings, []string{
			t.ID.String(), t.ShotID.String(),
			t.AcidityLabel, t.BitternessLabel, t.BodyLabel, t.AromaLabel,
			t.BalanceLabel, t.FinishLabel, t.OverallLabel, deref(t.Comments),
		})
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{CoffeesFile, coffeeHeader, coffees},
		{WatersFile, waterHeader, waters},
		{ShotsFile, shotHeader, shots},
		{TastingsFile, tastingHeader, tastings},
	}
	for _, f := range files {
		if err := writeCSV(filepath.Join(dir, f.name), f.header, f.rows); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
