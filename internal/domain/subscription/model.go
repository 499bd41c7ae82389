package subscription

import (
	"strings"
	"time"
)

// Plan types
const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"

	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// PlanLimits defines the limits for each plan
type PlanLimits struct {
	Courts int // -1 = unlimited
}

// GetPlanLimits returns the limits for a given plan
func GetPlanLimits(plan string) PlanLimits {
	switch plan {
	case PlanPro:
		return PlanLimits{Courts: 10}
	case PlanBusiness:
		return PlanLimits{Courts: -1}
	default: // free
		return PlanLimits{Courts: 2}
	}
}

// ResourceUsage represents current usage and limit for a resource
type ResourceUsage struct {
	Current int `json:"current"`
	Limit   int `json:"limit"` // -1 = unlimited
}

func (u ResourceUsage) Full() bool {
	return u.Limit != -1 && u.Current >= u.Limit
}

// Details is the arena's subscription as reported by the backend.
type Details struct {
	Plan              string     `json:"plano"`
	Status            string     `json:"status"`
	PeriodEnd         *time.Time `json:"fimPeriodo,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancelarNoFimDoPeriodo"`
	CourtCount        int        `json:"quadrasCadastradas"`
}

// Info is the subscription panel of the arena dashboard.
type Info struct {
	Details
	StatusLabel string        `json:"statusLabel"`
	Active      bool          `json:"ativa"`
	Courts      ResourceUsage `json:"quadras"`
	Upgradable  bool          `json:"podeAtualizar"`
}

func NewInfo(d Details) Info {
	if d.Plan == "" {
		d.Plan = PlanFree
	}
	if d.Status == "" {
		d.Status = "none"
	}
	active := d.Status == "active" || d.Status == "trialing"
	return Info{
		Details:     d,
		StatusLabel: statusLabel(d),
		Active:      active,
		Courts:      ResourceUsage{Current: d.CourtCount, Limit: GetPlanLimits(d.Plan).Courts},
		Upgradable:  d.Plan != PlanBusiness,
	}
}

func statusLabel(d Details) string {
	switch d.Status {
	case "active":
		if d.CancelAtPeriodEnd {
			return "Cancelamento agendado"
		}
		return "Ativa"
	case "trialing":
		return "Período de teste"
	case "past_due", "unpaid":
		return "Pagamento pendente"
	case "canceled":
		return "Cancelada"
	}
	return "Sem assinatura"
}

// CheckoutInput is the input for creating a checkout session
type CheckoutInput struct {
	Plan       string `json:"plano"`   // "pro" or "business"
	Period     string `json:"periodo"` // "monthly" or "yearly"
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

func (i *CheckoutInput) Trim() {
	i.Plan = strings.ToLower(strings.TrimSpace(i.Plan))
	i.Period = strings.ToLower(strings.TrimSpace(i.Period))
	i.SuccessURL = strings.TrimSpace(i.SuccessURL)
	i.CancelURL = strings.TrimSpace(i.CancelURL)
}

// PortalInput is the input for creating a portal session
type PortalInput struct {
	ReturnURL string `json:"returnUrl"`
}

func (i *PortalInput) Trim() {
	i.ReturnURL = strings.TrimSpace(i.ReturnURL)
}

// SessionURL is the hosted page the browser is redirected to.
type SessionURL struct {
	URL string `json:"url"`
}
