// Package payment holds the payment views: the Pix charge countdown and the
// lookup of hosted checkout sessions after the browser returns.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quadras/web/internal/utils"
)

var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotConfigured = errors.New("payment provider not configured")
)

func IsErrBadRequest(err error) bool    { return errors.Is(err, ErrBadRequest) }
func IsErrNotConfigured(err error) bool { return errors.Is(err, ErrNotConfigured) }

// PixCharge is the instant-payment charge generated by the backend.
type PixCharge struct {
	BookingID string    `json:"agendamentoId"`
	QRCode    string    `json:"qrCodeBase64"`
	CopyPaste string    `json:"copiaECola"`
	Amount    float64   `json:"valor"`
	ExpiresAt time.Time `json:"expiraEm"`
}

// Remaining is the time left to pay, never negative.
func (p PixCharge) Remaining(now time.Time) time.Duration {
	d := p.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

func (p PixCharge) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

type PixView struct {
	PixCharge
	AmountLabel string `json:"valorFormatado"`
	SecondsLeft int    `json:"segundosRestantes"`
	Expired     bool   `json:"expirado"`
}

func (p PixCharge) View(now time.Time) PixView {
	return PixView{
		PixCharge:   p,
		AmountLabel: utils.FormatBRL(p.Amount),
		SecondsLeft: int(p.Remaining(now) / time.Second),
		Expired:     p.Expired(now),
	}
}

type Backend interface {
	CreatePix(ctx context.Context, bookingID string) (*PixCharge, error)
}

type Service struct {
	backend Backend
	now     func() time.Time
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend, now: time.Now}
}

func (s *Service) CreatePix(ctx context.Context, bookingID string) (*PixView, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrBadRequest)
	}
	charge, err := s.backend.CreatePix(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if charge == nil {
		return nil, fmt.Errorf("pix charge for %s: empty response", bookingID)
	}
	if charge.BookingID == "" {
		charge.BookingID = bookingID
	}
	v := charge.View(s.now())
	return &v, nil
}
