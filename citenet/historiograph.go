package citenet

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"go.uber.org/zap"

	"github.com/scimetry/bibnet/corpus"
	"github.com/scimetry/bibnet/netgraph"
)

// Historiograph links documents through the likely title segment of
// their references: each reference's configured comma segment is fuzzy
// matched against the corpus titles, and a match adds an edge from the
// citing to the cited document. Nodes carry "year" and "cited_by"
// vectors for chronological drawing; documents without a title or year
// are skipped.
func Historiograph(c *corpus.Corpus, opts ...Option) (*netgraph.Graph, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	type docNode struct {
		label string
		index int
	}
	byTitle := make(map[string]docNode)
	var titles []string

	g := netgraph.New(true)
	years := make(map[string]float64)
	citedBy := make(map[string]float64)
	for i := 0; i < c.Len(); i++ {
		doc := c.Doc(i)
		if doc.Title == "" || doc.Year == 0 {
			continue
		}
		label := doc.Title
		if doc.ShortLabel != "" {
			label = doc.ShortLabel
		}
		key := strings.ToLower(doc.Title)
		if _, dup := byTitle[key]; dup {
			continue
		}
		byTitle[key] = docNode{label: label, index: i}
		titles = append(titles, key)
		g.AddNode(label)
		years[label] = float64(doc.Year)
		citedBy[label] = float64(doc.CitedBy)
	}

	dice := metrics.NewSorensenDice()
	for _, key := range titles {
		node := byTitle[key]
		doc := c.Doc(node.index)
		for _, ref := range corpus.SplitList(doc.References, corpus.DefaultReferenceSeparator) {
			candidate := referenceSegment(ref, cfg.segmentIndex)
			if candidate == "" {
				continue
			}
			matched := closestTitle(candidate, titles, dice, cfg.cutoff)
			if matched == "" {
				continue
			}
			cited := byTitle[matched]
			if cited.label == node.label {
				continue
			}
			g.AddEdge(node.label, cited.label, 1)
			cfg.logger.Debug("historiograph link",
				zap.String("citing", node.label),
				zap.String("cited", cited.label))
		}
	}

	g.AttachVector("year", years)
	g.AttachVector("cited_by", citedBy)

	return g, nil
}

// referenceSegment picks the comma segment holding the likely title:
// the configured index when the reference has enough segments, the
// first otherwise.
func referenceSegment(ref string, index int) string {
	parts := strings.Split(ref, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > index {
		return parts[index]
	}

	return parts[0]
}

// closestTitle returns the best title at or above the cutoff, empty
// when none qualifies. Ties keep the earlier title.
func closestTitle(candidate string, titles []string, dice *metrics.SorensenDice, cutoff float64) string {
	lowered := strings.ToLower(candidate)
	best := ""
	bestScore := cutoff
	for _, title := range titles {
		if score := strutil.Similarity(lowered, title, dice); score > bestScore ||
			(score == bestScore && best == "") {
			bestScore = score
			best = title
		}
	}

	return best
}
