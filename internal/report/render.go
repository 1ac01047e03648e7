package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"heredity/domain/genetics"
	"heredity/models"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// WriteText prints every person's distributions with four decimals, gene
// counts from 2 down to 0 and the trait as True then False
func WriteText(w io.Writer, result *genetics.Result) error {
	bw := bufio.NewWriter(w)
	for _, p := range result.Posteriors {
		fmt.Fprintf(bw, "%s:\n", p.Person)
		fmt.Fprintf(bw, "  Gene:\n")
		for g := genetics.TwoCopies; g >= genetics.ZeroCopies; g-- {
			fmt.Fprintf(bw, "    %d: %.4f\n", g, p.Gene[g])
		}
		fmt.Fprintf(bw, "  Trait:\n")
		fmt.Fprintf(bw, "    True: %.4f\n", p.Trait[genetics.HasTrait])
		fmt.Fprintf(bw, "    False: %.4f\n", p.Trait[genetics.NoTrait])
	}
	return bw.Flush()
}

// Markdown renders a run as a markdown document
func Markdown(run *models.InferenceRun) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Inference run %s\n\n", run.ID)
	if run.Source != "" {
		fmt.Fprintf(&buf, "- Source: `%s`\n", run.Source)
	}
	fmt.Fprintf(&buf, "- Fingerprint: `%s`\n", run.Fingerprint.Short())
	fmt.Fprintf(&buf, "- Population: %d\n", run.PopulationSize)
	fmt.Fprintf(&buf, "- Hypotheses evaluated: %d across %d trait partitions\n\n", run.Hypotheses, run.Partitions)

	buf.WriteString("## Posteriors\n\n")
	buf.WriteString("| Person | P(0 copies) | P(1 copy) | P(2 copies) | P(trait) |\n")
	buf.WriteString("|---|---:|---:|---:|---:|\n")
	for _, p := range run.Posteriors {
		fmt.Fprintf(&buf, "| %s | %.4f | %.4f | %.4f | %.4f |\n",
			p.Person, p.Gene[genetics.ZeroCopies], p.Gene[genetics.OneCopy], p.Gene[genetics.TwoCopies], p.Trait[genetics.HasTrait])
	}

	if s := run.Summary; s != nil {
		buf.WriteString("\n## Summary\n\n")
		fmt.Fprintf(&buf, "- Mean trait probability: %.4f\n", s.MeanTraitProbability)
		fmt.Fprintf(&buf, "- Highest trait probability: %.4f\n", s.MaxTraitProbability)
		fmt.Fprintf(&buf, "- Mean expected gene count: %.4f\n", s.MeanExpectedGeneCount)
		fmt.Fprintf(&buf, "- Median gene entropy: %.4f nats\n\n", s.MedianGeneEntropy)

		buf.WriteString("| Person | Expected copies | Most likely | Gene entropy | Trait entropy |\n")
		buf.WriteString("|---|---:|---:|---:|---:|\n")
		for _, p := range s.People {
			fmt.Fprintf(&buf, "| %s | %.4f | %d | %.4f | %.4f |\n",
				p.Person, p.ExpectedGeneCount, p.MostLikelyGenes, p.GeneEntropy, p.TraitEntropy)
		}
	}

	return buf.Bytes()
}

// HTML renders a run as a complete HTML page
func HTML(run *models.InferenceRun) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: fmt.Sprintf("Inference run %s", run.ID),
	})
	return markdown.ToHTML(Markdown(run), p, renderer)
}
