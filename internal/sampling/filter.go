// Package sampling implements the dataset-build pipeline: sample
// filter parameters and the selection strategies (all, random,
// class-targets) used for build previews and build requests.
package sampling

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tessellate-ai/samplerev/internal/model"
)

// dateLayout is the wire format for date range bounds.
const dateLayout = "2006-01-02"

// FilterParams selects the candidate samples for a build. The tag
// filter is in disjunctive normal form: [[A,B],[C]] matches samples
// carrying (A AND B) OR C.
type FilterParams struct {
	TagFilter         [][]string             `json:"tag_filter,omitempty"`
	MinIOInstanceID   string                 `json:"minio_instance_id,omitempty"`
	Bucket            string                 `json:"bucket,omitempty"`
	Prefix            string                 `json:"prefix,omitempty"`
	DateFrom          string                 `json:"date_from,omitempty"`
	DateTo            string                 `json:"date_to,omitempty"`
	AnnotationStatus  model.AnnotationStatus `json:"annotation_status,omitempty"`
	AnnotationClasses []string               `json:"annotation_classes,omitempty"`
	ObjectCountMin    *int                   `json:"object_count_min,omitempty"`
	ObjectCountMax    *int                   `json:"object_count_max,omitempty"`
}

// Validate checks ID formats, date formats, and range consistency
// before the filter is sent to the backend.
func (f *FilterParams) Validate() error {
	if f.MinIOInstanceID != "" {
		if _, err := uuid.Parse(f.MinIOInstanceID); err != nil {
			return fmt.Errorf("minio instance id %q: %w", f.MinIOInstanceID, err)
		}
	}
	for _, group := range f.TagFilter {
		for _, tag := range group {
			if _, err := uuid.Parse(tag); err != nil {
				return fmt.Errorf("tag id %q: %w", tag, err)
			}
		}
	}
	var from, to time.Time
	var err error
	if f.DateFrom != "" {
		if from, err = time.Parse(dateLayout, f.DateFrom); err != nil {
			return fmt.Errorf("date_from: %w", err)
		}
	}
	if f.DateTo != "" {
		if to, err = time.Parse(dateLayout, f.DateTo); err != nil {
			return fmt.Errorf("date_to: %w", err)
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return fmt.Errorf("date range inverted: %s after %s", f.DateFrom, f.DateTo)
	}
	if f.ObjectCountMin != nil && f.ObjectCountMax != nil && *f.ObjectCountMax < *f.ObjectCountMin {
		return fmt.Errorf("object count range inverted: [%d, %d]", *f.ObjectCountMin, *f.ObjectCountMax)
	}
	return nil
}

// Empty reports whether the filter matches everything.
func (f *FilterParams) Empty() bool {
	return len(f.TagFilter) == 0 &&
		f.MinIOInstanceID == "" &&
		f.Bucket == "" &&
		f.Prefix == "" &&
		f.DateFrom == "" &&
		f.DateTo == "" &&
		f.AnnotationStatus == "" &&
		len(f.AnnotationClasses) == 0 &&
		f.ObjectCountMin == nil &&
		f.ObjectCountMax == nil
}
