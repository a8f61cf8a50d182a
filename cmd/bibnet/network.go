package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/scimetry/bibnet/community"
	"github.com/scimetry/bibnet/corpus"
	"github.com/scimetry/bibnet/indicator"
	"github.com/scimetry/bibnet/netgraph"
	"github.com/scimetry/bibnet/relation"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Build an item co-occurrence network and export it",
	Long: `Build a co-occurrence network of one list-valued field (keywords,
authors, countries), optionally detect communities, and write the graph
in the requested formats.

Examples:
  bibnet network -i docs.csv --field author_keywords --top 50
  bibnet network -i docs.csv --field authors --detect --formats pajek,gexf`,
	Args: cobra.NoArgs,
	RunE: runNetwork,
}

func init() {
	rootCmd.AddCommand(networkCmd)
	networkCmd.Flags().String("field", string(corpus.FieldAuthorKeywords), "List-valued field to relate")
	networkCmd.Flags().Int("top", 50, "Vocabulary size (most frequent items, ties kept)")
	networkCmd.Flags().Float64("min-weight", 0, "Drop edges at or below this co-occurrence count")
	networkCmd.Flags().Bool("detect", false, "Run all community detectors and attach partitions")
	networkCmd.Flags().Int64("seed", community.DefaultSeed, "Seed for randomized detectors")
	networkCmd.Flags().String("output", "network", "Output basename")
	networkCmd.Flags().String("formats", "pajek", "Comma-separated: pajek, graphml, gexf")
}

func runNetwork(cmd *cobra.Command, args []string) error {
	input, err := requireInput()
	if err != nil {
		return err
	}
	c, err := loadCorpus(input)
	if err != nil {
		return err
	}
	field := corpus.Field(viper.GetString("field"))
	logger.Info("corpus loaded",
		zap.String("input", input),
		zap.Int("documents", c.Len()),
		zap.String("field", string(field)))

	counts, err := c.CountItems(field, corpus.DefaultListSeparator)
	if err != nil {
		return err
	}
	vocabulary := corpus.TopItems(counts, viper.GetInt("top"), nil, nil)
	if len(vocabulary) == 0 {
		return fmt.Errorf("no items found in field %q", field)
	}

	ind, err := indicator.Match(c, field, vocabulary,
		indicator.WithValueType(indicator.ValueList),
		indicator.WithMissingAsZero())
	if err != nil {
		return err
	}
	rel, err := relation.Compute(ind.Binary, nil)
	if err != nil {
		return err
	}
	g, err := netgraph.FromRelation(rel.Relation,
		netgraph.WithMinWeight(viper.GetFloat64("min-weight")))
	if err != nil {
		return err
	}

	if viper.GetBool("detect") {
		seed := viper.GetInt64("seed")
		detectors := community.DefaultDetectors(community.WithSeed(seed))
		for _, res := range community.DetectAll(g, detectors...) {
			if res.Err != nil {
				logger.Warn("detector failed, skipping",
					zap.String("algorithm", res.Name), zap.Error(res.Err))
				continue
			}
			logger.Info("partition attached",
				zap.String("algorithm", res.Name),
				zap.Int64("seed", seed),
				zap.Int("communities", countCommunities(res.Partition)))
		}
	}

	stats := g.BasicStats()
	logger.Info("network built",
		zap.Int("nodes", stats.Nodes),
		zap.Int("edges", stats.Edges),
		zap.Int("components", stats.Components),
		zap.Float64("density", stats.Density))

	return writeGraph(g, viper.GetString("output"), viper.GetString("formats"))
}

func countCommunities(partition map[string]int) int {
	seen := make(map[int]bool)
	for _, id := range partition {
		seen[id] = true
	}

	return len(seen)
}

// writeGraph exports the graph in every requested format.
func writeGraph(g *netgraph.Graph, basename, formats string) error {
	for _, format := range strings.Split(formats, ",") {
		switch strings.TrimSpace(format) {
		case "pajek":
			files, err := g.WritePajek(basename)
			if err != nil {
				return err
			}
			for _, f := range files {
				logger.Info("wrote", zap.String("file", f))
			}
		case "graphml":
			if err := writeMarkup(basename+".graphml", g.WriteGraphML); err != nil {
				return err
			}
		case "gexf":
			if err := writeMarkup(basename+".gexf", g.WriteGEXF); err != nil {
				return err
			}
		case "":
		default:
			return fmt.Errorf("unknown format %q", format)
		}
	}

	return nil
}

func writeMarkup(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()

		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("wrote", zap.String("file", path))

	return nil
}
