package arena

import (
	"math"
	"strconv"
	"strings"

	"quadras/web/internal/utils"
)

type Arena struct {
	ID          string   `json:"id"`
	Name        string   `json:"nome"`
	Slug        string   `json:"slug,omitempty"`
	Description string   `json:"descricao,omitempty"`
	Address     string   `json:"endereco,omitempty"`
	City        string   `json:"cidade,omitempty"`
	State       string   `json:"estado,omitempty"`
	Phone       string   `json:"telefone,omitempty"`
	PhotoURL    string   `json:"fotoUrl,omitempty"`
	Sports      []string `json:"esportes,omitempty"`
	Rating      float64  `json:"notaMedia"`
	ReviewCount int      `json:"totalAvaliacoes"`
}

type Review struct {
	ID          string `json:"id"`
	AthleteName string `json:"atletaNome"`
	Rating      int    `json:"nota"` // 1..5
	Comment     string `json:"comentario,omitempty"`
	CreatedAt   string `json:"criadoEm,omitempty"`
}

// ReviewSummary is the reviews panel of the arena page.
type ReviewSummary struct {
	Reviews []Review `json:"avaliacoes"`
	Average float64  `json:"media"`
	Count   int      `json:"total"`
	Stars   [5]int   `json:"distribuicao"` // Stars[0] counts 1-star reviews
}

// Summarize averages the ratings, rounded to one decimal. Ratings outside
// 1..5 are listed but not counted.
func Summarize(reviews []Review) ReviewSummary {
	if reviews == nil {
		reviews = []Review{}
	}
	sum := ReviewSummary{Reviews: reviews}
	total := 0
	for _, r := range reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		sum.Stars[r.Rating-1]++
		sum.Count++
		total += r.Rating
	}
	if sum.Count > 0 {
		sum.Average = math.Round(float64(total)/float64(sum.Count)*10) / 10
	}
	return sum
}

type UpdateProfileInput struct {
	Name        string `json:"nome" validate:"required,min=2,max=80"`
	Slug        string `json:"slug,omitempty" validate:"omitempty,max=80"`
	Description string `json:"descricao,omitempty" validate:"max=1000"`
	Address     string `json:"endereco,omitempty" validate:"max=160"`
	City        string `json:"cidade" validate:"required,max=80"`
	State       string `json:"estado" validate:"required,len=2"`
	Phone       string `json:"telefone,omitempty" validate:"omitempty,min=8,max=20"`
	PhotoURL    string `json:"fotoUrl,omitempty" validate:"omitempty,url"`
}

// Trim normalizes the form and derives the slug from the name when absent.
func (in *UpdateProfileInput) Trim() {
	in.Name = utils.TrimMax(in.Name, 80)
	in.Description = utils.TrimMax(in.Description, 1000)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.ToUpper(strings.TrimSpace(in.State))
	in.Phone = strings.TrimSpace(in.Phone)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = in.Name
	}
	in.Slug = utils.Slugify(in.Slug)
}

type Card struct {
	Arena
	RatingLabel string `json:"notaFormatada"`
}

func NewCard(a Arena) Card {
	label := "Sem avaliações"
	if a.ReviewCount > 0 {
		label = strings.Replace(strconv.FormatFloat(a.Rating, 'f', 1, 64), ".", ",", 1)
	}
	return Card{Arena: a, RatingLabel: label}
}
