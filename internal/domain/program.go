package domain

import "sort"

// Layer is one band of an insurance program: a limit attaching at a given
// point, split among participating carriers. Layers are ordered by
// attachment ascending (layer 1 = lowest attachment).
type Layer struct {
	Limit      float64                `json:"limit"`
	Attachment float64                `json:"attachment"`
	IsPrimary  bool                   `json:"is_primary"`
	Carriers   []CarrierParticipation `json:"carriers"`
}

// CarrierParticipation is one carrier's stake in a layer. The same carrier
// name may appear more than once in a layer with different shares
// (multiple participations).
type CarrierParticipation struct {
	CarrierName     string  `json:"carrier_name"`
	Share           float64 `json:"share"`
	Premium         float64 `json:"premium"`
	CarrierFee      float64 `json:"carrier_fee"`
	SurplusFee      float64 `json:"surplus_fee"`
	PolicyNumber    string  `json:"policy_number"`
	HasMultipleRBEs bool    `json:"has_multiple_rbes"`
	RBEs            []RBE   `json:"rbes"`
}

// RBE is a risk bearing entity carrying part of a carrier's stated share.
// Share is a fraction of the carrier's share, not of the layer.
type RBE struct {
	RBE          string  `json:"rbe"`
	Share        float64 `json:"share"`
	Premium      float64 `json:"premium"`
	PolicyNumber string  `json:"policy_number"`
}

// Program is the assembled structure for one account.
type Program struct {
	Account string  `json:"account"`
	Layers  []Layer `json:"layers"`
}

// ShareTolerance is the slack allowed before a layer's carrier shares are
// flagged as not summing to 100%. Violations are surfaced, never rejected.
const ShareTolerance = 0.01

// TotalShare returns the sum of carrier shares in the layer.
func (l *Layer) TotalShare() float64 {
	var total float64
	for i := range l.Carriers {
		total += l.Carriers[i].Share
	}
	return total
}

// TotalRBEShare returns the sum of RBE shares within the carrier.
func (c *CarrierParticipation) TotalRBEShare() float64 {
	var total float64
	for i := range c.RBEs {
		total += c.RBEs[i].Share
	}
	return total
}

// SortLayers orders layers by attachment point ascending, in place.
func SortLayers(layers []Layer) {
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].Attachment < layers[j].Attachment
	})
}
