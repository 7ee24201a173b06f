package dtos

import (
	"time"

	"github.com/andrescamacho/manoria-go/internal/domain/resource"
)

// SnapshotDTO is the serializable form of a ledger snapshot. Rates are kept as
// decimal strings so no precision is lost on the wire.
type SnapshotDTO struct {
	ID             string    `json:"id"`
	SubjectType    string    `json:"subject_type"`
	SubjectID      string    `json:"subject_id"`
	ResourceKind   string    `json:"resource_kind"`
	Count          int       `json:"count"`
	Timestamp      time.Time `json:"timestamp"`
	NaturalRate    string    `json:"natural_rate"`
	RateAdjustment string    `json:"rate_adjustment"`
	Rate           string    `json:"rate"`
	Limit          int       `json:"limit"`
}

// SnapshotToDTO converts a domain snapshot
func SnapshotToDTO(s *resource.Snapshot) SnapshotDTO {
	return SnapshotDTO{
		ID:             s.ID(),
		SubjectType:    s.Subject().Type().String(),
		SubjectID:      s.Subject().ID(),
		ResourceKind:   s.Kind().String(),
		Count:          s.Count(),
		Timestamp:      s.Timestamp(),
		NaturalRate:    s.NaturalRate().String(),
		RateAdjustment: s.RateAdjustment().String(),
		Rate:           s.Rate().String(),
		Limit:          s.Limit(),
	}
}

// AmountDTO is an extrapolated amount together with the rate and cap in force
type AmountDTO struct {
	ResourceKind string    `json:"resource_kind"`
	Amount       int       `json:"amount"`
	Rate         string    `json:"rate"`
	Limit        int       `json:"limit"`
	AsOf         time.Time `json:"as_of"`
}

// ProjectionToDTO converts a ledger projection
func ProjectionToDTO(p *resource.Projection) AmountDTO {
	return AmountDTO{
		ResourceKind: p.Basis.Kind().String(),
		Amount:       p.Amount,
		Rate:         p.Basis.Rate().String(),
		Limit:        p.Basis.Limit(),
		AsOf:         p.AsOf,
	}
}
