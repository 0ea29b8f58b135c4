package report

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/codalyzer/codalyzer/internal/output"
	"github.com/codalyzer/codalyzer/pkg/models"
)

//go:embed template.html
var templateFS embed.FS

// HTMLData is the template input for the HTML report.
type HTMLData struct {
	GeneratedAt time.Time
	Model       string
	Results     []models.AnalysisResult
}

// Renderer renders HTML reports from the embedded template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded template.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"title": cases.Title(language.English).String,
		"lower": strings.ToLower,
		"ratingClass": func(r models.Rating) string {
			switch r {
			case models.RatingExcellent, models.RatingGood:
				return "rating-good"
			case models.RatingFair:
				return "rating-fair"
			default:
				return "rating-bad"
			}
		},
		"tokens": func(code string) string {
			p := message.NewPrinter(language.English)
			return p.Sprintf("%d", output.EstimateTokens(code))
		},
	}

	content, err := templateFS.ReadFile("template.html")
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("report").Funcs(funcMap).Parse(string(content))
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderHTML writes a standalone HTML report for the given results.
func (r *Renderer) RenderHTML(w io.Writer, model string, results []models.AnalysisResult) error {
	return r.tmpl.Execute(w, HTMLData{
		GeneratedAt: time.Now(),
		Model:       model,
		Results:     results,
	})
}
