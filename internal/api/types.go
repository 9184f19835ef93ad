package api

import (
	"github.com/tessellate-ai/samplerev/internal/model"
	"github.com/tessellate-ai/samplerev/internal/sampling"
)

// apiError is the backend's error envelope.
type apiError struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// SampleListResponse is one page of a sample listing.
type SampleListResponse struct {
	Data  []model.Sample `json:"data"`
	Count int            `json:"count"`
}

// DatasetsResponse lists datasets.
type DatasetsResponse struct {
	Data  []model.Dataset `json:"data"`
	Count int             `json:"count"`
}

// InstancesResponse lists MinIO instances.
type InstancesResponse struct {
	Data  []model.MinIOInstance `json:"data"`
	Count int                   `json:"count"`
}

type reviewRequest struct {
	Decision model.ReviewVerdict `json:"decision"`
}

type createDatasetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FilterPreviewRequest asks how many samples a filter matches, and
// optionally for the candidate list with class counts so sampling can
// be previewed client-side.
type FilterPreviewRequest struct {
	Filters           sampling.FilterParams `json:"filters"`
	IncludeCandidates bool                  `json:"include_candidates,omitempty"`
}

// PreviewCandidate is a filter match with its annotation class counts.
type PreviewCandidate struct {
	ID          string         `json:"id"`
	ClassCounts map[string]int `json:"class_counts,omitempty"`
}

// FilterPreviewResponse reports the filter match count and, when
// requested, the candidates themselves.
type FilterPreviewResponse struct {
	MatchCount int                `json:"match_count"`
	Candidates []PreviewCandidate `json:"candidates,omitempty"`
}

// ClassStat is the per-class sample/object tally for a filter.
type ClassStat struct {
	Name        string `json:"name"`
	SampleCount int    `json:"sample_count"`
	ObjectCount int    `json:"object_count"`
}

// ClassStatsResponse aggregates class statistics for a filter.
type ClassStatsResponse struct {
	Classes []ClassStat `json:"classes"`
}

// BuildRequest creates a dataset from a filter and sampling config.
type BuildRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Filters     sampling.FilterParams `json:"filters"`
	Sampling    sampling.Config       `json:"sampling"`
}

// AddSamplesRequest adds filtered, sampled samples to a dataset.
type AddSamplesRequest struct {
	Filters  sampling.FilterParams `json:"filters"`
	Sampling sampling.Config       `json:"sampling"`
}

// BuildResult reports what a build or add-samples call selected.
type BuildResult struct {
	AddedCount        int                             `json:"added_count"`
	Mode              sampling.Mode                   `json:"mode"`
	TargetAchievement map[string]sampling.Achievement `json:"target_achievement,omitempty"`
}

// BuildResponse is the outcome of a dataset build.
type BuildResponse struct {
	Dataset model.Dataset `json:"dataset"`
	Result  BuildResult   `json:"result"`
}

// CSVPreview summarizes a CSV file before import.
type CSVPreview struct {
	TotalRows       int              `json:"total_rows"`
	Columns         []string         `json:"columns"`
	SampleRows      []map[string]any `json:"sample_rows"`
	HasTagsColumn   bool             `json:"has_tags_column"`
	ImageCount      int              `json:"image_count"`
	AnnotationCount int              `json:"annotation_count"`
}
