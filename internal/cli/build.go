package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tessellate-ai/samplerev/internal/api"
	"github.com/tessellate-ai/samplerev/internal/model"
	"github.com/tessellate-ai/samplerev/internal/sampling"
)

var (
	buildName        string
	buildDescription string
	buildDataset     string
	buildPreview     bool
	buildStats       bool

	buildMode    string
	buildCount   int
	buildTargets []string
	buildSeed    int64

	filterTags      []string
	filterInstance  string
	filterBucket    string
	filterPrefix    string
	filterDateFrom  string
	filterDateTo    string
	filterAnnStatus string
	filterClasses   []string
	filterObjMin    int
	filterObjMax    int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a dataset from filtered, sampled samples",
	Long: `Filter the sample pool, apply a sampling strategy, and either create a
new dataset (--name), add to an existing one (--dataset), or preview
the selection without writing anything (--preview).

Tag filters are OR-of-ANDs over tag ids: each --tags flag is a
comma-separated AND group, and groups combine with OR.
--tags <id-a>,<id-b> --tags <id-c> matches samples tagged
(a AND b) OR c.`,
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringVar(&buildName, "name", "", "name for the new dataset")
	f.StringVar(&buildDescription, "description", "", "description for the new dataset")
	f.StringVar(&buildDataset, "dataset", "", "existing dataset id to add samples to")
	f.BoolVar(&buildPreview, "preview", false, "preview the selection without building")
	f.BoolVar(&buildStats, "stats", false, "print per-class statistics for the filter")

	f.StringVar(&buildMode, "mode", "all", "sampling mode: all, random, class_targets")
	f.IntVar(&buildCount, "count", 0, "sample count for random mode")
	f.StringArrayVar(&buildTargets, "target", nil, "class target as class=count (repeatable)")
	f.Int64Var(&buildSeed, "seed", 0, "random seed (0 means time-derived)")

	f.StringArrayVar(&filterTags, "tags", nil, "tag-id AND-group, comma separated (repeatable, groups OR)")
	f.StringVar(&filterInstance, "instance", "", "MinIO instance id filter")
	f.StringVar(&filterBucket, "bucket", "", "bucket filter")
	f.StringVar(&filterPrefix, "prefix", "", "object key prefix filter")
	f.StringVar(&filterDateFrom, "from", "", "created-at lower bound (YYYY-MM-DD)")
	f.StringVar(&filterDateTo, "to", "", "created-at upper bound (YYYY-MM-DD)")
	f.StringVar(&filterAnnStatus, "annotation-status", "", "annotation status filter")
	f.StringArrayVar(&filterClasses, "class", nil, "annotation class filter (repeatable)")
	f.IntVar(&filterObjMin, "objects-min", -1, "minimum annotated object count")
	f.IntVar(&filterObjMax, "objects-max", -1, "maximum annotated object count")
}

func buildFilters() (sampling.FilterParams, error) {
	var p sampling.FilterParams
	for _, group := range filterTags {
		var tags []string
		for _, t := range strings.Split(group, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		if len(tags) > 0 {
			p.TagFilter = append(p.TagFilter, tags)
		}
	}
	p.MinIOInstanceID = filterInstance
	p.Bucket = filterBucket
	p.Prefix = filterPrefix
	p.DateFrom = filterDateFrom
	p.DateTo = filterDateTo
	p.AnnotationStatus = model.AnnotationStatus(filterAnnStatus)
	p.AnnotationClasses = filterClasses
	if filterObjMin >= 0 {
		p.ObjectCountMin = &filterObjMin
	}
	if filterObjMax >= 0 {
		p.ObjectCountMax = &filterObjMax
	}
	return p, p.Validate()
}

func buildSamplingConfig() (sampling.Config, error) {
	cfg := sampling.Config{
		Mode:  sampling.Mode(buildMode),
		Count: buildCount,
		Seed:  buildSeed,
	}
	for _, spec := range buildTargets {
		class, count, ok := strings.Cut(spec, "=")
		if !ok {
			return cfg, fmt.Errorf("invalid --target %q, expected class=count", spec)
		}
		n, err := strconv.Atoi(count)
		if err != nil {
			return cfg, fmt.Errorf("invalid --target %q: %w", spec, err)
		}
		if cfg.ClassTargets == nil {
			cfg.ClassTargets = make(map[string]int)
		}
		cfg.ClassTargets[strings.TrimSpace(class)] = n
	}
	return cfg, cfg.Validate()
}

func runBuild(cmd *cobra.Command, args []string) error {
	filters, err := buildFilters()
	if err != nil {
		return err
	}
	samplingCfg, err := buildSamplingConfig()
	if err != nil {
		return err
	}

	if !buildPreview && !buildStats {
		if buildName == "" && buildDataset == "" {
			return fmt.Errorf("one of --name, --dataset, or --preview is required")
		}
		if buildName != "" && buildDataset != "" {
			return fmt.Errorf("--name and --dataset are mutually exclusive")
		}
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if buildStats {
		stats, err := client.ClassStats(ctx, filters)
		if err != nil {
			return err
		}
		printClassStats(stats)
		if !buildPreview && buildName == "" && buildDataset == "" {
			return nil
		}
	}

	if buildPreview {
		preview, err := client.FilterPreview(ctx, filters, true)
		if err != nil {
			return err
		}
		candidates := make([]sampling.Candidate, len(preview.Candidates))
		for i, c := range preview.Candidates {
			candidates[i] = sampling.Candidate{ID: c.ID, ClassCounts: c.ClassCounts}
		}
		result, err := sampling.Select(candidates, samplingCfg)
		if err != nil {
			return err
		}
		fmt.Printf("Filter matches %d samples; %s sampling selects %d\n",
			preview.MatchCount, samplingCfg.Mode, result.TotalSelected())
		printAchievement(result.Achievement)
		return nil
	}

	if buildDataset != "" {
		resp, err := client.AddSamples(ctx, buildDataset, api.AddSamplesRequest{
			Filters: filters, Sampling: samplingCfg,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added %d samples to %s\n", resp.Result.AddedCount, resp.Dataset.Name)
		printAchievement(resp.Result.TargetAchievement)
		return nil
	}

	resp, err := client.BuildDataset(ctx, api.BuildRequest{
		Name:        buildName,
		Description: buildDescription,
		Filters:     filters,
		Sampling:    samplingCfg,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created dataset %s (%s) with %d samples\n",
		resp.Dataset.Name, resp.Dataset.ID, resp.Result.AddedCount)
	printAchievement(resp.Result.TargetAchievement)
	return nil
}

func printAchievement(achievement map[string]sampling.Achievement) {
	if len(achievement) == 0 {
		return
	}
	classes := make([]string, 0, len(achievement))
	for class := range achievement {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	fmt.Println("Class targets:")
	for _, class := range classes {
		a := achievement[class]
		fmt.Printf("  %-20s %d/%d (%s)\n", class, a.Actual, a.Target, a.Status)
	}
}

func printClassStats(stats *api.ClassStatsResponse) {
	fmt.Printf("%-20s %10s %10s\n", "CLASS", "SAMPLES", "OBJECTS")
	for _, s := range stats.Classes {
		fmt.Printf("%-20s %10d %10d\n", s.Name, s.SampleCount, s.ObjectCount)
	}
}
