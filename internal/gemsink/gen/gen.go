package gen

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"gopkg.in/yaml.v3"
)

// Config describes the synthetic payload workload, parsed from YAML.
type Config struct {
	Seed           int64   `yaml:"seed"`
	Output         string  `yaml:"output"`
	Events         int     `yaml:"events"`
	MaxReports     int     `yaml:"maxReports"`
	MaxProducts    int     `yaml:"maxProducts"`
	ListFraction   float64 `yaml:"listFraction"`   // payloads wrapped in an array
	StringFraction float64 `yaml:"stringFraction"` // payloads string-encoded
	EmptyFraction  float64 `yaml:"emptyFraction"`  // reports with no products
}

// ReadConfig parses the YAML generator spec.
func ReadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Events <= 0 {
		cfg.Events = 10
	}
	if cfg.MaxReports <= 0 {
		cfg.MaxReports = 3
	}
	if cfg.MaxProducts <= 0 {
		cfg.MaxProducts = 4
	}
	if cfg.ListFraction <= 0 {
		cfg.ListFraction = 0.2
	}
	if cfg.StringFraction <= 0 {
		cfg.StringFraction = 0.2
	}
	if cfg.EmptyFraction <= 0 {
		cfg.EmptyFraction = 0.25
	}
}

// Generate writes whitespace-separated synthetic SECS/GEM payloads to w and
// returns the number of top-level payloads written. Payloads are built as
// plain maps so optional fields can be omitted the way real equipment omits
// them; list- and string-wrapped payloads are mixed in to exercise every
// normalization path.
func Generate(cfg Config, w io.Writer) (int, error) {
	applyDefaults(&cfg)
	gofakeit.Seed(cfg.Seed)

	enc := json.NewEncoder(w)
	payloads := 0
	remaining := cfg.Events
	for remaining > 0 {
		r := gofakeit.Float64Range(0, 1)
		switch {
		case r < cfg.ListFraction && remaining >= 2:
			batch := []any{synthEvent(cfg), synthEvent(cfg)}
			remaining -= 2
			if err := enc.Encode(batch); err != nil {
				return payloads, fmt.Errorf("encode payload: %w", err)
			}
		case r < cfg.ListFraction+cfg.StringFraction:
			b, err := json.Marshal(synthEvent(cfg))
			if err != nil {
				return payloads, fmt.Errorf("encode payload: %w", err)
			}
			remaining--
			if err := enc.Encode(string(b)); err != nil {
				return payloads, fmt.Errorf("encode payload: %w", err)
			}
		default:
			remaining--
			if err := enc.Encode(synthEvent(cfg)); err != nil {
				return payloads, fmt.Errorf("encode payload: %w", err)
			}
		}
		payloads++
	}
	return payloads, nil
}

// GenerateFile writes the workload to cfg.Output, or stdout when unset.
func GenerateFile(cfg Config) (int, error) {
	if cfg.Output == "" {
		return Generate(cfg, os.Stdout)
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	return Generate(cfg, f)
}

func synthEvent(cfg Config) map[string]any {
	numReports := gofakeit.Number(1, cfg.MaxReports)
	reports := make([]any, 0, numReports)
	for i := 0; i < numReports; i++ {
		reports = append(reports, synthReport(cfg))
	}

	evt := map[string]any{
		"Stream":   gofakeit.Number(1, 16),
		"Function": gofakeit.Number(1, 64),
		"DATA":     map[string]any{"RPTID_Set": reports},
	}
	// some firmware revisions omit the CEID
	if gofakeit.Float64Range(0, 1) < 0.9 {
		evt["CEID"] = fmt.Sprintf("CE%04d", gofakeit.Number(1, 9999))
	}
	return evt
}

func synthReport(cfg Config) map[string]any {
	rpt := map[string]any{
		"RPTID": fmt.Sprintf("RPT%03d", gofakeit.Number(1, 999)),
	}
	if gofakeit.Float64Range(0, 1) < 0.9 {
		rpt["EQP_Control_State_Set"] = map[string]any{
			"EQPID": fmt.Sprintf("EQP-%04d", gofakeit.Number(1, 9999)),
		}
	}
	if gofakeit.Float64Range(0, 1) >= cfg.EmptyFraction {
		numProducts := gofakeit.Number(1, cfg.MaxProducts)
		products := make([]any, 0, numProducts)
		for i := 0; i < numProducts; i++ {
			products = append(products, synthProduct())
		}
		rpt["Product_Object_List"] = products
	}
	return rpt
}

func synthProduct() map[string]any {
	p := map[string]any{
		"LOTID": fmt.Sprintf("LOT%06d", gofakeit.Number(1, 999999)),
	}
	if gofakeit.Bool() {
		p["CARRIERID"] = fmt.Sprintf("CST%04d", gofakeit.Number(1, 9999))
	}
	if gofakeit.Bool() {
		p["JIGID"] = fmt.Sprintf("JIG%03d", gofakeit.Number(1, 999))
	}
	if gofakeit.Bool() {
		p["MATID"] = gofakeit.UUID()
	}
	if gofakeit.Bool() {
		p["MATERIALID"] = fmt.Sprintf("MAT%05d", gofakeit.Number(1, 99999))
	}
	return p
}
