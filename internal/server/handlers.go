package server

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/genoinsight/genoinsight/internal/clinical"
	"github.com/genoinsight/genoinsight/internal/vcf"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "GenoInsight API",
		"version": Version,
	})
}

// analyzeVariantRequest wraps one variant submission. Ancestry is optional;
// unrecognized ancestries resolve against the Other population.
type analyzeVariantRequest struct {
	Variant  *VariantPayload `json:"variant" binding:"required"`
	Ancestry string          `json:"ancestry"`
}

func (s *Server) handleAnalyzeVariant(c *gin.Context) {
	var req analyzeVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No variant data provided"})
		return
	}

	key := req.Variant.ID + "|" + req.Ancestry
	if ann, ok := s.cache.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "analysis": ann})
		return
	}

	ann, err := s.pipeline.Process(c.Request.Context(), req.Variant.ToVariant(), req.Ancestry)
	if err != nil {
		s.logger.Error("analyze variant", zap.String("variant_id", req.Variant.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.cache.Add(key, ann)

	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": ann})
}

type analyzeBatchRequest struct {
	Variants []*VariantPayload `json:"variants" binding:"required"`
	Ancestry string            `json:"ancestry"`
}

func (s *Server) handleAnalyzeBatch(c *gin.Context) {
	var req analyzeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No variants provided"})
		return
	}

	variants := make([]*vcf.Variant, 0, len(req.Variants))
	for _, p := range req.Variants {
		variants = append(variants, p.ToVariant())
	}

	res, err := s.pipeline.Run(c.Request.Context(), vcf.NewSliceSource(variants), req.Ancestry)
	if err != nil {
		s.logger.Error("analyze batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	report := clinical.Summarize(res.Annotations)

	if s.store != nil {
		if err := s.store.WriteAnnotations(res.Annotations); err != nil {
			s.logger.Error("persist annotations", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"total_analyzed":  len(res.Annotations),
		"failed":          res.Failed,
		"annotations":     res.Annotations,
		"clinical_report": report,
	})
}

// allowedUploadExt lists accepted VCF upload extensions.
var allowedUploadExt = map[string]bool{
	".vcf": true,
	".txt": true,
	".gz":  true,
}

func (s *Server) handleUploadVCF(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if fh.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}
	if !allowedUploadExt[strings.ToLower(filepath.Ext(fh.Filename))] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
		return
	}
	if fh.Size > s.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading upload: " + err.Error()})
		return
	}
	defer f.Close()

	parser := vcf.NewParserFromReader(f)
	var variants []*vcf.Variant
	for {
		v, err := parser.Next()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error parsing VCF: " + err.Error()})
			return
		}
		if v == nil {
			break
		}
		variants = append(variants, v)
	}

	filtered := vcf.Filter(variants, vcf.DefaultFilterOptions())
	preview := filtered
	if len(preview) > uploadPreviewLimit {
		preview = preview[:uploadPreviewLimit]
	}

	var snvs, indels int
	for _, v := range filtered {
		switch {
		case v.IsSNV():
			snvs++
		case v.IsIndel():
			indels++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"total_variants":    len(variants),
		"filtered_variants": len(filtered),
		"snv_count":         snvs,
		"indel_count":       indels,
		"skipped_lines":     parser.SkippedLines(),
		"variants":          preview,
	})
}

func (s *Server) handleLookupVariant(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No annotation store configured"})
		return
	}

	id := c.Param("id")
	records, err := s.store.LookupVariant(id)
	if err != nil {
		s.logger.Error("lookup variant", zap.String("variant_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "annotations": records})
}

// handleStats reports the classification breakdown of everything persisted
// in the annotation store.
func (s *Server) handleStats(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No annotation store configured"})
		return
	}

	counts, err := s.store.CountByClassification()
	if err != nil {
		s.logger.Error("classification counts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"total_stored":          total,
		"classification_counts": counts,
	})
}

func (s *Server) handleSampleData(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"sample_variants": sampleVariants(),
	})
}

// sampleVariants returns a demo panel of well-known cancer gene variants.
func sampleVariants() []VariantPayload {
	known := func(q float64) Quality { return Quality{Value: q, Known: true} }
	return []VariantPayload{
		{ID: "chr1:12345:A>G", Gene: "BRCA1", Consequence: "missense_variant", AlleleFrequency: 0.0001, Quality: known(50.0)},
		{ID: "chr2:67890:C>T", Gene: "TP53", Consequence: "nonsense_variant", AlleleFrequency: 0.0002, Quality: known(45.0)},
		{ID: "chr7:55242464:G>A", Gene: "EGFR", Consequence: "missense_variant", AlleleFrequency: 0.001, Quality: known(60.0)},
		{ID: "chr17:43044295:T>C", Gene: "BRCA1", Consequence: "splice_site_variant", AlleleFrequency: 0.0003, Quality: known(55.0)},
		{ID: "chr13:32315474:G>T", Gene: "BRCA2", Consequence: "frameshift_variant", AlleleFrequency: 0.0001, Quality: known(48.0)},
		{ID: "chr12:25398285:C>G", Gene: "KRAS", Consequence: "missense_variant", AlleleFrequency: 0.0005, Quality: known(52.0)},
		{ID: "chr10:89624227:T>A", Gene: "PTEN", Consequence: "frameshift_variant", AlleleFrequency: 0.0002, Quality: known(58.0)},
		{ID: "chr11:108175438:G>C", Gene: "ATM", Consequence: "splice_site_variant", AlleleFrequency: 0.0004, Quality: known(47.0)},
		{ID: "chr3:37050300:A>T", Gene: "MLH1", Consequence: "nonsense_variant", AlleleFrequency: 0.0001, Quality: known(53.0)},
		{ID: "chr2:47641559:C>A", Gene: "MSH2", Consequence: "missense_variant", AlleleFrequency: 0.0003, Quality: known(49.0)},
		{ID: "chr5:112162856:G>T", Gene: "APC", Consequence: "frameshift_variant", AlleleFrequency: 0.0002, Quality: known(56.0)},
		{ID: "chr9:21971120:T>G", Gene: "CDKN2A", Consequence: "missense_variant", AlleleFrequency: 0.0006, Quality: known(51.0)},
		{ID: "chr14:105246494:A>C", Gene: "AKT1", Consequence: "missense_variant", AlleleFrequency: 0.0004, Quality: known(54.0)},
		{ID: "chr19:1220571:G>A", Gene: "STK11", Consequence: "nonsense_variant", AlleleFrequency: 0.0001, Quality: known(48.0)},
		{ID: "chr6:117640000:C>T", Gene: "ROS1", Consequence: "splice_site_variant", AlleleFrequency: 0.0003, Quality: known(57.0)},
		{ID: "chr4:55141055:A>G", Gene: "PDGFRA", Consequence: "missense_variant", AlleleFrequency: 0.0007, Quality: known(46.0)},
		{ID: "chr15:90088702:G>A", Gene: "IDH2", Consequence: "missense_variant", AlleleFrequency: 0.0002, Quality: known(59.0)},
		{ID: "chr1:115256529:T>C", Gene: "NRAS", Consequence: "missense_variant", AlleleFrequency: 0.0004, Quality: known(50.0)},
		{ID: "chr17:7577548:C>T", Gene: "TP53", Consequence: "missense_variant", AlleleFrequency: 0.0001, Quality: known(55.0)},
		{ID: "chr13:32912299:A>G", Gene: "BRCA2", Consequence: "missense_variant", AlleleFrequency: 0.0002, Quality: known(52.0)},
	}
}
