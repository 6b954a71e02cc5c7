package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parser reads variants from a VCF file or stream.
// Multi-allelic lines are expanded: Next returns one Variant per ALT allele.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	header     []string
	pending    []*Variant // expanded alleles not yet returned by Next
	skipped    int
}

// NewParser creates a new VCF parser for the given file.
// Supports both plain VCF and gzipped VCF (.vcf.gz) files. Use "-" for stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	if _, err = file.Read(buf); err != nil {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}
	if _, err = file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin or an
// uploaded request body).
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// Next reads the next variant. Multi-allelic records are returned one allele
// at a time. Returns nil, nil when there are no more variants.
// Header lines and malformed lines are skipped, not errors; SkippedLines
// reports how many data lines were dropped.
func (p *Parser) Next() (*Variant, error) {
	if len(p.pending) > 0 {
		v := p.pending[0]
		p.pending = p.pending[1:]
		return v, nil
	}

	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		if line == "" && err == io.EOF {
			return nil, nil
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, "#") {
			p.header = append(p.header, line)
			continue
		}

		variants := ParseLine(line)
		if variants == nil {
			if strings.TrimSpace(line) != "" {
				p.skipped++
			}
			if err == io.EOF {
				return nil, nil
			}
			continue
		}

		p.pending = variants[1:]
		return variants[0], nil
	}
}

// Header returns the VCF header lines seen so far.
func (p *Parser) Header() []string {
	return p.header
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// SkippedLines returns the number of malformed data lines skipped.
func (p *Parser) SkippedLines() int {
	return p.skipped
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseLine parses a single VCF data line into one Variant per ALT allele.
// Blank lines, header lines (leading '#') and lines with fewer than 8
// tab-separated fields return nil. An unparseable POS also returns nil:
// malformed lines are tolerated, not fatal.
func ParseLine(line string) []*Variant {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil
	}

	qual := 0.0
	qualKnown := false
	if fields[5] != "." {
		if q, err := strconv.ParseFloat(fields[5], 64); err == nil {
			qual = q
			qualKnown = true
		}
	}

	info := parseInfo(fields[7])
	gene := resolveGene(info)
	consequence := resolveConsequence(info)
	cohortAF := parseCohortAF(info)

	chrom, ref := fields[0], fields[3]
	alts := strings.Split(fields[4], ",")

	variants := make([]*Variant, 0, len(alts))
	for _, alt := range alts {
		variants = append(variants, &Variant{
			ID:          FormatVariantID(chrom, pos, ref, alt),
			Chrom:       chrom,
			Pos:         pos,
			Ref:         ref,
			Alt:         alt,
			Qual:        qual,
			QualKnown:   qualKnown,
			Filter:      fields[6],
			Gene:        gene,
			Consequence: consequence,
			CohortAF:    cohortAF,
			Info:        info,
		})
	}

	return variants
}

// parseInfo parses the INFO field into a map. Bare flags map to true.
func parseInfo(info string) map[string]any {
	result := make(map[string]any)
	if info == "." {
		return result
	}

	for _, kv := range strings.Split(info, ";") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			result[parts[0]] = parts[1]
		} else {
			result[parts[0]] = true
		}
	}

	return result
}

// resolveGene resolves the gene symbol with precedence: explicit GENE key,
// then the first pipe-delimited field of a CSQ or ANN annotation blob,
// then "Unknown".
func resolveGene(info map[string]any) string {
	if g := stringValue(info, "GENE"); g != "" {
		return g
	}
	if g := firstAnnotationField(info, "CSQ"); g != "" {
		return g
	}
	if g := firstAnnotationField(info, "ANN"); g != "" {
		return g
	}
	return "Unknown"
}

// resolveConsequence resolves the consequence term analogously to resolveGene,
// preferring the explicit CONSEQUENCE key.
func resolveConsequence(info map[string]any) string {
	if c := stringValue(info, "CONSEQUENCE"); c != "" {
		return c
	}
	if c := firstAnnotationField(info, "CSQ"); c != "" {
		return c
	}
	if c := firstAnnotationField(info, "ANN"); c != "" {
		return c
	}
	return "Unknown"
}

func parseCohortAF(info map[string]any) float64 {
	af := stringValue(info, "AF")
	if af == "" {
		return 0
	}
	// Multi-allelic AF lists carry one value per ALT; the first is applied
	// to every expanded allele rather than failing on dirty input.
	if i := strings.IndexByte(af, ','); i >= 0 {
		af = af[:i]
	}
	f, err := strconv.ParseFloat(af, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func stringValue(info map[string]any, key string) string {
	if v, ok := info[key].(string); ok {
		return v
	}
	return ""
}

// firstAnnotationField extracts the first pipe-delimited field of a
// VEP/SnpEff-style annotation blob (CSQ / ANN).
func firstAnnotationField(info map[string]any, key string) string {
	blob := stringValue(info, key)
	if blob == "" {
		return ""
	}
	if i := strings.IndexByte(blob, '|'); i >= 0 {
		return blob[:i]
	}
	return blob
}
