package citenet

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"go.uber.org/zap"

	"github.com/scimetry/bibnet/corpus"
	"github.com/scimetry/bibnet/netgraph"
)

var nonWord = regexp.MustCompile(`[\W_]+`)

// NormalizeTitle lowercases, replaces every non-word run with a single
// space and trims, so punctuation and casing differences never block a
// match.
func NormalizeTitle(s string) string {
	return strings.TrimSpace(nonWord.ReplaceAllString(strings.ToLower(s), " "))
}

// Network is a document citation network: a directed graph with edges
// from citing to cited documents, plus the references that matched no
// title.
type Network struct {
	Graph *netgraph.Graph

	// Unmatched maps node labels to their unlinkable reference strings,
	// restricted to documents that survived pruning.
	Unmatched map[string][]string
}

// Build links every reference of every document to a corpus title,
// exactly on the normalized form first and by fuzzy local alignment
// above the threshold second. Self-citations and unlinked documents are
// pruned; unless WithAllComponents is set only the largest weak
// component survives.
func Build(c *corpus.Corpus, opts ...Option) (*Network, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := c.Len()
	normTitles := make([]string, n)
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		doc := c.Doc(i)
		normTitles[i] = NormalizeTitle(doc.Title)
		switch {
		case cfg.shortLabels && doc.ShortLabel != "":
			labels[i] = doc.ShortLabel
		case cfg.longLabels && doc.Title != "":
			labels[i] = doc.Title
		default:
			labels[i] = doc.ID
		}
	}

	swg := metrics.NewSmithWatermanGotoh()
	match := func(ref string) (int, bool) {
		norm := NormalizeTitle(ref)
		if norm == "" {
			return 0, false
		}
		for j, title := range normTitles {
			if title != "" && title == norm {
				return j, true
			}
		}
		bestScore := -1.0
		best := -1
		for j, title := range normTitles {
			if title == "" {
				continue
			}
			if score := strutil.Similarity(norm, title, swg); score > bestScore {
				bestScore = score
				best = j
			}
		}
		if best >= 0 && bestScore*100 >= float64(cfg.threshold) {
			return best, true
		}

		return 0, false
	}

	g := netgraph.New(true)
	for _, l := range labels {
		g.AddNode(l)
	}
	unmatched := make(map[string][]string)
	for i := 0; i < n; i++ {
		refs := corpus.SplitList(c.Doc(i).References, corpus.DefaultReferenceSeparator)
		for _, ref := range refs {
			if j, ok := match(ref); ok {
				// Self-loops are dropped by the graph layer.
				g.AddEdge(labels[i], labels[j], 1)
				cfg.logger.Debug("reference linked",
					zap.String("citing", labels[i]),
					zap.String("cited", labels[j]))

				continue
			}
			unmatched[labels[i]] = append(unmatched[labels[i]], ref)
		}
	}

	// Prune documents that neither cite nor are cited.
	var linked []string
	for _, l := range g.Nodes() {
		if g.Degree(l) > 0 || hasInbound(g, l) {
			linked = append(linked, l)
		}
	}
	g = g.Subgraph(linked)

	if !cfg.allComponents && g.NodeCount() > 0 {
		comps := g.Components()
		largest := comps[0]
		for _, comp := range comps[1:] {
			if len(comp) > len(largest) {
				largest = comp
			}
		}
		g = g.Subgraph(largest)
	}

	for l := range unmatched {
		if !g.HasNode(l) {
			delete(unmatched, l)
		}
	}

	cfg.logger.Info("citation network built",
		zap.Int("documents", g.NodeCount()),
		zap.Int("citations", g.EdgeCount()),
		zap.Int("documents_with_unmatched", len(unmatched)))

	return &Network{Graph: g, Unmatched: unmatched}, nil
}

func hasInbound(g *netgraph.Graph, label string) bool {
	for _, u := range g.Nodes() {
		if u == label {
			continue
		}
		if _, ok := g.Weight(u, label); ok {
			return true
		}
	}

	return false
}
