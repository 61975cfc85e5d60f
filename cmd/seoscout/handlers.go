package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"seoscout/internal/config"
	"seoscout/internal/logging"
	"seoscout/internal/store"
	"seoscout/pkg/audit"
	"seoscout/pkg/classify"
	"seoscout/pkg/cluster"
	"seoscout/pkg/embed"
	"seoscout/pkg/outline"
	"seoscout/pkg/provider"
	"seoscout/pkg/research"
	"seoscout/pkg/score"
	"seoscout/pkg/track"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
}

// buildEmbedder is the single boundary where an unavailable semantic backend
// degrades to the frequency strategy.
func buildEmbedder(ctx context.Context, cfg *config.Config, log zerolog.Logger) embed.Provider {
	if cfg.Embedding.Strategy == "semantic" {
		semantic, err := embed.NewSemantic(ctx, cfg.Embedding.Endpoint, cfg.Embedding.Model, cfg.Embedding.APIKey)
		if err == nil {
			log.Info().Str("endpoint", cfg.Embedding.Endpoint).Str("model", cfg.Embedding.Model).
				Msg("using semantic embeddings")
			return semantic
		}
		log.Warn().Err(err).Msg("semantic embeddings unavailable, falling back to frequency vectors")
	}
	return embed.NewFrequency()
}

func buildSERP(cfg *config.Config) (provider.SERPProvider, error) {
	client := provider.NewClient(cfg.SERP.Endpoint, cfg.SERP.APIKey)
	return provider.NewCachedSERP(client, cfg.SERP.CacheSize)
}

// loadRecords reads keyword records from a JSON file, or expands seed
// keywords through the metrics provider. A failed seed lookup is skipped.
func loadRecords(ctx context.Context, cfg *config.Config, seeds []string, input string, log zerolog.Logger) ([]provider.KeywordRecord, error) {
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("read input %s: %w", input, err)
		}
		var records []provider.KeywordRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse input %s: %w", input, err)
		}
		return provider.Dedupe(records), nil
	}

	if len(seeds) == 0 {
		return nil, fmt.Errorf("no keywords: pass --seed or --input")
	}

	client := provider.NewClient(cfg.SERP.Endpoint, cfg.SERP.APIKey)
	var records []provider.KeywordRecord
	for _, seed := range seeds {
		m, err := client.KeywordMetrics(ctx, seed)
		if err != nil {
			log.Warn().Err(err).Str("keyword", seed).Msg("metrics lookup failed, skipping")
			continue
		}
		records = append(records, provider.KeywordRecord{
			Text:        m.Keyword,
			Volume:      m.Volume,
			CPC:         m.CPC,
			Competition: m.Competition,
		})
	}
	return provider.Dedupe(records), nil
}

func runCluster(seeds []string, input, method string, clusters int, metric string, topN int, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := buildLogger(cfg)
	ctx := context.Background()

	if method == "" {
		method = cfg.Cluster.Method
	}
	if clusters == 0 {
		clusters = cfg.Cluster.Clusters
	}
	if metric == "" {
		metric = cfg.Report.Metric
	}
	if topN == 0 {
		topN = cfg.Report.TopN
	}

	records, err := loadRecords(ctx, cfg, seeds, input, log)
	if err != nil {
		return err
	}

	embedder := buildEmbedder(ctx, cfg, log)
	engine := cluster.NewEngine(embedder, cfg.Cluster.SimilarityThreshold, log)
	assigner := classify.NewProfileAssigner(cfg.Profiles, embedder)
	pipeline := research.New(engine, assigner, log)

	enriched := pipeline.ClusterKeywords(ctx, records, cluster.Method(method), clusters)
	top := score.TopN(assignmentsOf(enriched), metric, topN)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Keywords []research.EnrichedKeyword `json:"keywords"`
			Top      map[string][]string        `json:"top_by_cluster"`
		}{enriched, top})
	}

	clusterCount := map[int]bool{}
	for _, e := range enriched {
		clusterCount[e.ClusterID] = true
	}
	fmt.Printf("keywords: %d, clusters: %d (method: %s)\n\n", len(enriched), len(clusterCount), method)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tVOLUME\tINTENT\tPROFILE\tCLUSTER")
	for _, e := range enriched {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			e.Keyword.Text, e.Keyword.Volume, e.Intent, e.Profile, e.Label)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ntop %d by %s per cluster:\n", topN, metric)
	for label, keywords := range top {
		fmt.Printf("  %s: %s\n", label, strings.Join(keywords, ", "))
	}
	return nil
}

func assignmentsOf(enriched []research.EnrichedKeyword) []cluster.Assignment {
	out := make([]cluster.Assignment, len(enriched))
	for i, e := range enriched {
		out[i] = e.Assignment
	}
	return out
}

func runAudit(competitors []string, limit, minVolume, serpTop int, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := buildLogger(cfg)
	ctx := context.Background()

	if len(competitors) == 0 {
		competitors = cfg.Competitors
	}

	serp, err := buildSERP(cfg)
	if err != nil {
		return err
	}
	organic := provider.NewClient(cfg.SERP.Endpoint, cfg.SERP.APIKey)
	auditor := audit.New(cfg.Domain, competitors, organic, serp, log)

	gap := auditor.ContentGap(ctx, limit, minVolume)

	var gapKeywords []string
	for _, g := range gap {
		gapKeywords = append(gapKeywords, g.Text)
	}
	if len(gapKeywords) > serpTop {
		gapKeywords = gapKeywords[:serpTop]
	}
	features := auditor.AnalyzeSERPFeatures(ctx, gapKeywords, cfg.SERP.NumResults)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Gap          []audit.GapKeyword   `json:"content_gap"`
			SERPFeatures []audit.SERPFeatures `json:"serp_features"`
		}{gap, features})
	}

	if len(gap) == 0 {
		fmt.Println("no content gap found (check competitors configuration)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tVOLUME\tCPC\tCOMPETITORS")
	for _, g := range gap {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\n", g.Text, g.Volume, g.CPC, strings.Join(g.Competitors, ","))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nSERP features:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tOPPORTUNITY\tSNIPPET\tPAA\tRANKING")
	for _, f := range features {
		if f.Err != "" {
			fmt.Fprintf(w, "%s\terror: %s\t\t\t\n", f.Keyword, f.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%v\n",
			f.Keyword, f.Opportunity, f.FeaturedSnippet, f.PeopleAlsoAsk, f.AlreadyRanking)
	}
	return w.Flush()
}

func runPage(pageURL, targetKeyword string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := buildLogger(cfg)
	ctx := context.Background()

	serp, err := buildSERP(cfg)
	if err != nil {
		return err
	}
	organic := provider.NewClient(cfg.SERP.Endpoint, cfg.SERP.APIKey)
	auditor := audit.New(cfg.Domain, cfg.Competitors, organic, serp, log)

	analysis, err := auditor.AnalyzePage(ctx, pageURL, targetKeyword)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(analysis)
}

func runOutline(keyword, intent string, words int, refine bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := buildLogger(cfg)
	ctx := context.Background()

	if intent == "" {
		intent = string(classify.ClassifyIntent(keyword))
	}
	if words <= 0 {
		words = cfg.Outline.TargetWords
	}

	gen := outline.NewGenerator(cfg.Outline.Provider, cfg.Outline.Model, cfg.Outline.APIKey, cfg.Outline.BaseURL)
	o, err := gen.GenerateOutline(ctx, keyword, intent, words)
	if err != nil {
		return fmt.Errorf("generate outline: %w", err)
	}

	analysis := outline.AnalyzeSEO(o, keyword)
	if refine && len(analysis.Recommendations) > 0 {
		log.Info().Int("seo_score", analysis.SEOScore).
			Int("recommendations", len(analysis.Recommendations)).
			Msg("refining outline")
		o = outline.Refine(o, analysis, keyword)
		analysis = outline.AnalyzeSEO(o, keyword)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Outline outline.Outline     `json:"outline"`
		SEO     outline.SEOAnalysis `json:"seo_analysis"`
	}{o, analysis})
}

func runTrack(keywords []string, days int, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := buildLogger(cfg)
	ctx := context.Background()

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	serp, err := buildSERP(cfg)
	if err != nil {
		return err
	}
	trends := provider.NewRSSTrends(trendsFeeds(cfg))
	tracker := track.New(cfg.Domain, serp, trends, db, cfg.SERP.NumResults, log)

	rankings, err := tracker.TrackRankings(ctx, keywords)
	if err != nil {
		return fmt.Errorf("track rankings: %w", err)
	}

	volatility, err := tracker.Volatilities(ctx, keywords, days)
	if err != nil {
		return fmt.Errorf("compute volatility: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Rankings   []store.Ranking             `json:"rankings"`
			Volatility map[string]track.Volatility `json:"volatility"`
		}{rankings, volatility})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tPOSITION\tIN TOP\tVOLATILITY")
	for _, r := range rankings {
		vol := "-"
		if v, ok := volatility[r.Keyword]; ok {
			vol = fmt.Sprintf("%.1f", v.Score)
		}
		if r.Err != "" {
			fmt.Fprintf(w, "%s\terror\t-\t%s\n", r.Keyword, vol)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%s\n", r.Keyword, r.Position, r.InTop, vol)
	}
	return w.Flush()
}

func runOpportunities(seeds []string, topN int, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := buildLogger(cfg)
	ctx := context.Background()

	if len(seeds) == 0 {
		seeds = cfg.Trends.Seeds
	}
	if len(seeds) == 0 {
		return fmt.Errorf("no seed keywords: pass --seed or configure trends.seeds")
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	serp, err := buildSERP(cfg)
	if err != nil {
		return err
	}
	trends := provider.NewRSSTrends(trendsFeeds(cfg))
	tracker := track.New(cfg.Domain, serp, trends, db, cfg.SERP.NumResults, log)

	opportunities, err := tracker.WeeklyOpportunities(ctx, seeds, topN)
	if err != nil {
		return fmt.Errorf("identify opportunities: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(opportunities)
	}

	if len(opportunities) == 0 {
		fmt.Println("no opportunities found (check trends feeds and seeds)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tTOPIC\tTREND\tRANKING\tFEATURES")
	for _, o := range opportunities {
		fmt.Fprintf(w, "%d\t%s\t%.0f\t%v\t%s\n",
			o.Score, o.Topic, o.TrendValue, o.AlreadyRanking, strings.Join(o.Features, ","))
	}
	return w.Flush()
}

func trendsFeeds(cfg *config.Config) []provider.TrendsFeed {
	feeds := make([]provider.TrendsFeed, len(cfg.Trends.Feeds))
	for i, f := range cfg.Trends.Feeds {
		feeds[i] = provider.TrendsFeed{Name: f.Name, URL: f.URL}
	}
	return feeds
}
