package program

import (
	"fmt"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

// PositiveLimitRule flags layers without a positive limit.
type PositiveLimitRule struct{}

func (r *PositiveLimitRule) RuleKey() string { return "positive_limit" }

func (r *PositiveLimitRule) Validate(p *domain.Program) []Finding {
	var findings []Finding
	for i := range p.Layers {
		if p.Layers[i].Limit <= 0 {
			findings = append(findings, Finding{
				RuleKey:    r.RuleKey(),
				LayerIndex: i,
				Message:    fmt.Sprintf("layer %d has no limit", i+1),
			})
		}
	}
	return findings
}

// ShareSumRule flags layers whose carrier shares do not sum to ~100%.
type ShareSumRule struct{}

func (r *ShareSumRule) RuleKey() string { return "share_sum" }

func (r *ShareSumRule) Validate(p *domain.Program) []Finding {
	var findings []Finding
	for i := range p.Layers {
		layer := &p.Layers[i]
		if len(layer.Carriers) == 0 {
			continue
		}
		total := layer.TotalShare()
		if diff := total - 1.0; diff > domain.ShareTolerance || diff < -domain.ShareTolerance {
			findings = append(findings, Finding{
				RuleKey:    r.RuleKey(),
				LayerIndex: i,
				Message: fmt.Sprintf("layer %d: carrier shares sum to %.2f%%, expected ~100%%",
					i+1, total*100),
			})
		}
	}
	return findings
}

// RBEShareSumRule flags carriers whose risk bearing entity shares do not sum
// to ~100% of the carrier's stake.
type RBEShareSumRule struct{}

func (r *RBEShareSumRule) RuleKey() string { return "rbe_share_sum" }

func (r *RBEShareSumRule) Validate(p *domain.Program) []Finding {
	var findings []Finding
	for i := range p.Layers {
		for j := range p.Layers[i].Carriers {
			carrier := &p.Layers[i].Carriers[j]
			if !carrier.HasMultipleRBEs || len(carrier.RBEs) == 0 {
				continue
			}
			total := carrier.TotalRBEShare()
			if diff := total - 1.0; diff > domain.ShareTolerance || diff < -domain.ShareTolerance {
				findings = append(findings, Finding{
					RuleKey:    r.RuleKey(),
					LayerIndex: i,
					Message: fmt.Sprintf("layer %d, %s: RBE shares sum to %.2f%%, expected ~100%%",
						i+1, carrier.CarrierName, total*100),
				})
			}
		}
	}
	return findings
}

// PrimaryAttachmentRule flags primary layers that attach above zero.
type PrimaryAttachmentRule struct{}

func (r *PrimaryAttachmentRule) RuleKey() string { return "primary_attachment" }

func (r *PrimaryAttachmentRule) Validate(p *domain.Program) []Finding {
	var findings []Finding
	for i := range p.Layers {
		layer := &p.Layers[i]
		if layer.IsPrimary && layer.Attachment > 0 {
			findings = append(findings, Finding{
				RuleKey:    r.RuleKey(),
				LayerIndex: i,
				Message: fmt.Sprintf("layer %d is marked primary but attaches at $%.0f",
					i+1, layer.Attachment),
			})
		}
	}
	return findings
}

// TowerContinuityRule flags gaps between the top of one layer and the
// attachment of the next. Overlaps are common (quota shares split across
// rows) and are not flagged.
type TowerContinuityRule struct{}

func (r *TowerContinuityRule) RuleKey() string { return "tower_continuity" }

func (r *TowerContinuityRule) Validate(p *domain.Program) []Finding {
	var findings []Finding
	for i := 1; i < len(p.Layers); i++ {
		prev := &p.Layers[i-1]
		cur := &p.Layers[i]
		top := prev.Attachment + prev.Limit
		if cur.Attachment > top {
			findings = append(findings, Finding{
				RuleKey:    r.RuleKey(),
				LayerIndex: i,
				Message: fmt.Sprintf("gap between $%.0f (top of layer %d) and $%.0f (attachment of layer %d)",
					top, i, cur.Attachment, i+1),
			})
		}
	}
	return findings
}
