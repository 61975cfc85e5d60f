package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seoscout",
		Short: "SEO research: keyword clustering, competitor audits, rank tracking and content opportunities",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(clusterCmd())
	root.AddCommand(auditCmd())
	root.AddCommand(pageCmd())
	root.AddCommand(outlineCmd())
	root.AddCommand(trackCmd())
	root.AddCommand(opportunitiesCmd())

	return root
}

func clusterCmd() *cobra.Command {
	var (
		seeds      []string
		input      string
		method     string
		clusters   int
		metric     string
		topN       int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Cluster keywords by semantic similarity and report top keywords per cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCluster(seeds, input, method, clusters, metric, topN, jsonOutput)
		},
	}

	cmd.Flags().StringSliceVar(&seeds, "seed", nil, "seed keywords to expand via the metrics provider")
	cmd.Flags().StringVar(&input, "input", "", "JSON file of keyword records (instead of seeds)")
	cmd.Flags().StringVar(&method, "method", "", "clustering method: kmeans, dbscan, graph (default: from config)")
	cmd.Flags().IntVar(&clusters, "clusters", 0, "cluster count hint for kmeans (0 = derive)")
	cmd.Flags().StringVar(&metric, "metric", "", "top-keyword metric: volume, cpc, competition (default: from config)")
	cmd.Flags().IntVar(&topN, "top", 0, "top keywords per cluster (default: from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func auditCmd() *cobra.Command {
	var (
		competitors []string
		limit       int
		minVolume   int
		serpTop     int
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Analyze competitor content gap and SERP features",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(competitors, limit, minVolume, serpTop, jsonOutput)
		},
	}

	cmd.Flags().StringSliceVar(&competitors, "competitor", nil, "competitor domains (default: from config)")
	cmd.Flags().IntVar(&limit, "limit", 100, "max organic keywords per domain")
	cmd.Flags().IntVar(&minVolume, "min-volume", 100, "minimum search volume for gap keywords")
	cmd.Flags().IntVar(&serpTop, "serp-top", 20, "how many gap keywords get SERP feature analysis")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func pageCmd() *cobra.Command {
	var targetKeyword string

	cmd := &cobra.Command{
		Use:   "page <url>",
		Short: "Analyze the content of a competitor page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(args[0], targetKeyword)
		},
	}

	cmd.Flags().StringVar(&targetKeyword, "keyword", "", "target keyword for density analysis")
	return cmd
}

func outlineCmd() *cobra.Command {
	var (
		intent string
		words  int
		refine bool
	)

	cmd := &cobra.Command{
		Use:   "outline <keyword>",
		Short: "Generate an SEO-optimized blog post outline for a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(args[0], intent, words, refine)
		},
	}

	cmd.Flags().StringVar(&intent, "intent", "", "search intent (default: classified from the keyword)")
	cmd.Flags().IntVar(&words, "words", 0, "target word count (default: from config)")
	cmd.Flags().BoolVar(&refine, "refine", false, "apply open SEO recommendations to the outline")
	return cmd
}

func trackCmd() *cobra.Command {
	var (
		keywords   []string
		days       int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Record today's rankings and show volatility from history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrack(keywords, days, jsonOutput)
		},
	}

	cmd.Flags().StringSliceVar(&keywords, "keyword", nil, "keywords to track")
	cmd.Flags().IntVar(&days, "days", 7, "volatility window in days")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func opportunitiesCmd() *cobra.Command {
	var (
		seeds      []string
		topN       int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "opportunities",
		Short: "Identify weekly content opportunities from trending topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpportunities(seeds, topN, jsonOutput)
		},
	}

	cmd.Flags().StringSliceVar(&seeds, "seed", nil, "seed keywords (default: from config)")
	cmd.Flags().IntVar(&topN, "top", 10, "top opportunities to report")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
