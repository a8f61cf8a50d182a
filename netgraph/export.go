package netgraph

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WritePajek writes the Pajek triple rooted at basename: the network as
// basename.net, one basename_partition_<name>.clu per stored partition
// and one basename_<attr>.vec per attached vector. Nodes missing from a
// partition get cluster 0; nodes missing from a vector get value 0.
// It returns the paths written.
func (g *Graph) WritePajek(basename string) ([]string, error) {
	if g.NodeCount() == 0 {
		return nil, ErrEmptyGraph
	}

	netPath := basename + ".net"
	if err := writeFile(netPath, g.writeNet); err != nil {
		return nil, err
	}
	written := []string{netPath}

	for _, name := range g.PartitionNames() {
		part := g.partitions[name]
		path := fmt.Sprintf("%s_partition_%s.clu", basename, name)
		err := writeFile(path, func(w *bufio.Writer) error {
			fmt.Fprintf(w, "*Vertices %d\n", g.NodeCount())
			for _, l := range g.nodes {
				fmt.Fprintf(w, "%d\n", part[l])
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	for _, name := range g.VectorNames() {
		vec := g.vectors[name]
		path := fmt.Sprintf("%s_%s.vec", basename, name)
		err := writeFile(path, func(w *bufio.Writer) error {
			fmt.Fprintf(w, "*Vertices %d\n", g.NodeCount())
			for _, l := range g.nodes {
				fmt.Fprintf(w, "%s\n", formatWeight(vec[l]))
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	return written, nil
}

func (g *Graph) writeNet(w *bufio.Writer) error {
	fmt.Fprintf(w, "*Vertices %d\n", g.NodeCount())
	for i, l := range g.nodes {
		fmt.Fprintf(w, "%d %q\n", i+1, l)
	}
	if g.directed {
		fmt.Fprintln(w, "*Arcs")
	} else {
		fmt.Fprintln(w, "*Edges")
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(w, "%d %d %s\n", g.index[e.U]+1, g.index[e.V]+1, formatWeight(e.W))
	}

	return nil
}

func writeFile(path string, fill func(*bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("netgraph: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err = fill(w); err != nil {
		f.Close()
		return err
	}
	if err = w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("netgraph: write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("netgraph: close %s: %w", path, err)
	}

	return nil
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// GraphML document model.

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	Xmlns   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string         `xml:"id,attr"`
	EdgeDefault string         `xml:"edgedefault,attr"`
	Nodes       []graphmlNode  `xml:"node"`
	Edges       []graphmlEdge  `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// WriteGraphML writes the graph (with all attribute overlays) as GraphML.
func (g *Graph) WriteGraphML(w io.Writer) error {
	if g.NodeCount() == 0 {
		return ErrEmptyGraph
	}

	doc := graphmlDoc{
		Xmlns: "http://graphml.graphdrawing.org/xmlns",
		Graph: graphmlGraph{ID: "G", EdgeDefault: "undirected"},
	}
	if g.directed {
		doc.Graph.EdgeDefault = "directed"
	}

	doc.Keys = append(doc.Keys, graphmlKey{ID: "weight", For: "edge", Name: "weight", Type: "double"})
	for _, name := range g.VectorNames() {
		doc.Keys = append(doc.Keys, graphmlKey{ID: name, For: "node", Name: name, Type: "double"})
	}
	for _, name := range g.PartitionNames() {
		key := "partition_" + name
		doc.Keys = append(doc.Keys, graphmlKey{ID: key, For: "node", Name: key, Type: "int"})
	}

	for _, l := range g.nodes {
		node := graphmlNode{ID: l}
		for _, name := range g.VectorNames() {
			if v, ok := g.vectors[name][l]; ok {
				node.Data = append(node.Data, graphmlData{Key: name, Value: formatWeight(v)})
			}
		}
		for _, name := range g.PartitionNames() {
			if c, ok := g.partitions[name][l]; ok {
				node.Data = append(node.Data, graphmlData{Key: "partition_" + name, Value: strconv.Itoa(c)})
			}
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, node)
	}
	for _, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: e.U,
			Target: e.V,
			Data:   []graphmlData{{Key: "weight", Value: formatWeight(e.W)}},
		})
	}

	return writeXML(w, doc)
}

// GEXF document model (1.2draft).

type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	Xmlns   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfGraph struct {
	EdgeType   string          `xml:"defaultedgetype,attr"`
	AttrBlocks []gexfAttrBlock `xml:"attributes"`
	Nodes      []gexfNode      `xml:"nodes>node"`
	Edges      []gexfEdge      `xml:"edges>edge"`
}

type gexfAttrBlock struct {
	Class string     `xml:"class,attr"`
	Attrs []gexfAttr `xml:"attribute"`
}

type gexfAttr struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfNode struct {
	ID     string          `xml:"id,attr"`
	Label  string          `xml:"label,attr"`
	Values []gexfAttrValue `xml:"attvalues>attvalue"`
}

type gexfAttrValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type gexfEdge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Weight string `xml:"weight,attr"`
}

// WriteGEXF writes the graph (with all attribute overlays) as GEXF 1.2.
func (g *Graph) WriteGEXF(w io.Writer) error {
	if g.NodeCount() == 0 {
		return ErrEmptyGraph
	}

	doc := gexfDoc{
		Xmlns:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Graph:   gexfGraph{EdgeType: "undirected"},
	}
	if g.directed {
		doc.Graph.EdgeType = "directed"
	}

	block := gexfAttrBlock{Class: "node"}
	for _, name := range g.VectorNames() {
		block.Attrs = append(block.Attrs, gexfAttr{ID: name, Title: name, Type: "double"})
	}
	for _, name := range g.PartitionNames() {
		key := "partition_" + name
		block.Attrs = append(block.Attrs, gexfAttr{ID: key, Title: key, Type: "integer"})
	}
	if len(block.Attrs) > 0 {
		doc.Graph.AttrBlocks = append(doc.Graph.AttrBlocks, block)
	}

	for _, l := range g.nodes {
		node := gexfNode{ID: l, Label: l}
		for _, name := range g.VectorNames() {
			if v, ok := g.vectors[name][l]; ok {
				node.Values = append(node.Values, gexfAttrValue{For: name, Value: formatWeight(v)})
			}
		}
		for _, name := range g.PartitionNames() {
			if c, ok := g.partitions[name][l]; ok {
				node.Values = append(node.Values, gexfAttrValue{For: "partition_" + name, Value: strconv.Itoa(c)})
			}
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, node)
	}
	for i, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, gexfEdge{
			ID:     strconv.Itoa(i),
			Source: e.U,
			Target: e.V,
			Weight: formatWeight(e.W),
		})
	}

	return writeXML(w, doc)
}

func writeXML(w io.Writer, doc any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("netgraph: xml export: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("netgraph: xml export: %w", err)
	}

	return nil
}
