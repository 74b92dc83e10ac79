// Package assign applies a resolved strategy to annotated sentence records,
// replacing fine-grained tag references with merged category labels.
package assign

import (
	"fmt"
	"log"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/linguadata/tagmerge/internal/errors"
	"github.com/linguadata/tagmerge/model"
)

// Apply relabels a single record under the given strategy. The input record
// is never mutated: a new record is produced so the original stays intact
// for audit and retry. A reference to a tag outside the strategy's
// partition fails with UnknownTagError.
func Apply(strategy *model.Strategy, rec model.SentenceRecord) (model.LabeledRecord, error) {
	labeled := model.LabeledRecord{
		ID:       rec.ID,
		Sentence: rec.Sentence,
	}
	if rec.Metadata != nil {
		labeled.Metadata = make(map[string]string, len(rec.Metadata))
		for k, v := range rec.Metadata {
			labeled.Metadata[k] = v
		}
	}

	var chunks, posTags, roles []string
	for _, annotation := range rec.Annotations {
		category, ok := strategy.Partition.CategoryOf(annotation.TagID)
		if !ok {
			return model.LabeledRecord{}, errors.NewUnknownTagError(annotation.TagID, rec.ID)
		}

		label := category.Name
		if refined, ok := refine(strategy, annotation); ok {
			label = refined
		}

		words := make([]model.AnnotatedWord, len(annotation.Words))
		copy(words, annotation.Words)
		labeled.Annotations = append(labeled.Annotations, model.LabeledAnnotation{
			Category: label,
			TagID:    annotation.TagID,
			Detail:   annotation.Detail,
			Words:    words,
		})

		if len(words) > 0 {
			parts := make([]string, 0, len(words))
			for _, word := range words {
				parts = append(parts, word.Word)
			}
			chunks = append(chunks, fmt.Sprintf("[%s %s]", label, strings.Join(parts, " ")))
		}
		for _, word := range words {
			posTags = append(posTags, word.PartOfSpeech)
		}

		role := label
		if annotation.Detail != "" {
			role = label + ":" + annotation.Detail
		}
		roles = append(roles, role)
	}

	labeled.Chunks = strings.Join(chunks, " ")
	labeled.POSTags = strings.Join(posTags, " ")
	labeled.Roles = strings.Join(roles, " | ")

	return labeled, nil
}

// refine returns the refined label for an annotation when one of the
// strategy's detail patterns matches, in declaration order. Patterns match
// case-insensitively as substrings of the annotation detail.
func refine(strategy *model.Strategy, annotation model.TagAnnotation) (string, bool) {
	if annotation.Detail == "" {
		return "", false
	}
	detail := strings.ToLower(annotation.Detail)
	for _, ref := range strategy.Refinements {
		if ref.TagID != annotation.TagID {
			continue
		}
		for _, pattern := range ref.Patterns {
			if strings.Contains(detail, strings.ToLower(pattern)) {
				return ref.Category, true
			}
		}
	}
	return "", false
}

// Skip reports a record excluded from a batch, with its position and reason.
type Skip struct {
	Index    int    `json:"index"`
	RecordID string `json:"record_id,omitempty"`
	Reason   string `json:"reason"`
}

// BatchResult holds the relabeled records of a batch and the records that
// were skipped. Records keep the input order.
type BatchResult struct {
	Records []model.LabeledRecord `json:"records"`
	Skipped []Skip                `json:"skipped,omitempty"`
}

// ApplyAll relabels a batch of records. The strategy is immutable, so
// records are processed concurrently; results are collected by input index,
// which keeps the output order independent of scheduling. A record with an
// unknown tag is reported and skipped rather than aborting the batch: one
// malformed record must not invalidate an entire experiment.
func ApplyAll(strategy *model.Strategy, records []model.SentenceRecord) BatchResult {
	labeled := make([]*model.LabeledRecord, len(records))
	skips := make([]*Skip, len(records))

	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())
	for i := range records {
		i := i
		group.Go(func() error {
			out, err := Apply(strategy, records[i])
			if err != nil {
				skips[i] = &Skip{Index: i, RecordID: records[i].ID, Reason: err.Error()}
				return nil
			}
			labeled[i] = &out
			return nil
		})
	}
	_ = group.Wait() // workers never return errors; skips carry the failures

	var result BatchResult
	for i := range records {
		if skip := skips[i]; skip != nil {
			log.Printf("Skipping record %d (%s): %s", skip.Index, skip.RecordID, skip.Reason)
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		result.Records = append(result.Records, *labeled[i])
	}
	return result
}
