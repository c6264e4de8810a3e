package parser

import (
	"math"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

// mergeKey identifies a layer across documents. Amounts are rounded to the
// nearest dollar so float noise from suffix multiplication ("0.075MM" vs
// "$75,000,000") cannot split one layer into two buckets.
type mergeKey struct {
	limit      float64
	attachment float64
}

func keyFor(limit, attachment float64) mergeKey {
	return mergeKey{limit: math.Round(limit), attachment: math.Round(attachment)}
}

// sharesEqual treats shares within 1e-4 as the same participation.
func sharesEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

// MergeSpreadsheetPrograms reconciles per-document spreadsheet results into
// one program. Layers are merged by (limit, attachment); within a bucket, a
// carrier appearing in several documents with the same share has its
// premiums and fees summed, while a different share is kept as a separate
// participation. Failed documents are counted and otherwise ignored, so one
// unreadable file never poisons the rest of the upload.
//
// Input order is the upload order and determines layer-bucket and carrier
// order before the final attachment sort; merging is deterministic for a
// given input sequence.
func MergeSpreadsheetPrograms(results []*SpreadsheetResult) *MergedProgram {
	merged := &MergedProgram{}
	var order []mergeKey
	buckets := make(map[mergeKey]*domain.Layer)

	for _, res := range results {
		if res == nil || !res.Success {
			merged.DocumentsFailed++
			continue
		}
		merged.DocumentsProcessed++

		for i := range res.Layers {
			layer := &res.Layers[i]
			if layer.Limit <= 0 {
				continue
			}
			key := keyFor(layer.Limit, layer.Attachment)
			bucket, ok := buckets[key]
			if !ok {
				bucket = &domain.Layer{
					Limit:      layer.Limit,
					Attachment: layer.Attachment,
					IsPrimary:  layer.IsPrimary,
				}
				buckets[key] = bucket
				order = append(order, key)
			}
			for _, carrier := range layer.Carriers {
				mergeCarrier(bucket, carrier)
			}
		}
	}

	for _, key := range order {
		merged.Layers = append(merged.Layers, *buckets[key])
	}
	domain.SortLayers(merged.Layers)
	return merged
}

// mergeCarrier folds one participation into a layer bucket. An exact
// duplicate (same name, same share) is the same placement seen again in
// another document, so its money columns accumulate.
func mergeCarrier(bucket *domain.Layer, c domain.CarrierParticipation) {
	for i := range bucket.Carriers {
		existing := &bucket.Carriers[i]
		if existing.CarrierName == c.CarrierName && sharesEqual(existing.Share, c.Share) {
			existing.Premium += c.Premium
			existing.CarrierFee += c.CarrierFee
			existing.SurplusFee += c.SurplusFee
			if existing.PolicyNumber == "" {
				existing.PolicyNumber = c.PolicyNumber
			}
			return
		}
	}
	bucket.Carriers = append(bucket.Carriers, c)
}

// MergeTextualDocuments reconciles per-document free-text results into one
// program. Part-of allocations are applied first because they carry the
// most specific information (carrier, dollar stake, share, and the exact
// layer it sits on); bare limit mentions then fill in layers the part-of
// pass did not create, and a document's line-level carrier mentions attach
// to such a layer only when nothing more specific claimed it.
func MergeTextualDocuments(docs []*TextResult) *MergedProgram {
	merged := &MergedProgram{}
	var order []mergeKey
	buckets := make(map[mergeKey]*domain.Layer)

	bucketFor := func(limit, attachment float64, isPrimary bool) *domain.Layer {
		key := keyFor(limit, attachment)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.Layer{Limit: limit, Attachment: attachment, IsPrimary: isPrimary}
			buckets[key] = bucket
			order = append(order, key)
		}
		return bucket
	}

	for _, doc := range docs {
		if doc == nil || !doc.Success {
			merged.DocumentsFailed++
			continue
		}
		merged.DocumentsProcessed++

		for _, po := range doc.PartOf {
			if po.LayerLimit <= 0 {
				continue
			}
			bucket := bucketFor(po.LayerLimit, po.Attachment, po.IsPrimary)
			if existing := findCarrier(bucket, po.CarrierName); existing != nil {
				// Same carrier stated again (e.g. quote and binder for the
				// same placement): the stake accumulates.
				existing.Premium += po.CarrierLimit
				continue
			}
			bucket.Carriers = append(bucket.Carriers, domain.CarrierParticipation{
				CarrierName:  po.CarrierName,
				Share:        po.Share,
				Premium:      po.CarrierLimit,
				PolicyNumber: doc.PolicyNumber,
				RBEs:         []domain.RBE{},
			})
		}

		for _, limit := range doc.Limits {
			if limit.Limit <= 0 {
				continue
			}
			bucket := bucketFor(limit.Limit, limit.Attachment, limit.IsPrimary)
			if len(bucket.Carriers) > 0 {
				continue
			}
			for _, cm := range doc.Carriers {
				if existing := findCarrier(bucket, cm.CarrierName); existing != nil {
					existing.Premium += cm.Premium
					continue
				}
				bucket.Carriers = append(bucket.Carriers, domain.CarrierParticipation{
					CarrierName:  cm.CarrierName,
					Share:        cm.Share,
					Premium:      cm.Premium,
					PolicyNumber: doc.PolicyNumber,
					RBEs:         []domain.RBE{},
				})
			}
		}
	}

	for _, key := range order {
		merged.Layers = append(merged.Layers, *buckets[key])
	}
	domain.SortLayers(merged.Layers)
	return merged
}

func findCarrier(layer *domain.Layer, name string) *domain.CarrierParticipation {
	for i := range layer.Carriers {
		if layer.Carriers[i].CarrierName == name {
			return &layer.Carriers[i]
		}
	}
	return nil
}
