package handler

import (
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/faqforge/faqforge/extractor"
	"github.com/faqforge/faqforge/models"
	"github.com/faqforge/faqforge/simhash"
	"github.com/faqforge/faqforge/webhook"
)

// minContentLength is the smallest cleaned-text size worth sending to the
// generator. Shorter pages produce padded, low-quality answers.
const minContentLength = 50

// Generate returns a handler for POST /api/v1/generate.
//
// Orchestration flow:
//  1. Parse & validate request.
//  2. Document lookup: cache hit unless refresh was asked for.
//  3. Extractor.Extract on miss              (records fetch_ms)
//  4. Content threshold check (minContentLength runes).
//  5. Synthesizer.Generate                   (records synthesis_ms)
//  6. Persist page + draft FAQ items, fire webhook, return 200.
func Generate(ex Extractor, syn Synthesizer, st Store, cc DocCache, webhookSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, &models.InputError{Message: err.Error()})
			return
		}

		// ── 2. Document lookup ──────────────────────────────────────
		target := extractor.NormalizeURL(req.URL)
		cacheStatus := "miss"
		var doc *models.ExtractedDocument
		if cc != nil {
			if req.Refresh {
				cc.Invalidate(target)
			} else if cached, hit := cc.Get(target); hit {
				doc = cached
				cacheStatus = "hit"
			}
		}

		// ── 3. Extract on miss ──────────────────────────────────────
		var fetchMs int64
		if doc == nil {
			fetchStart := time.Now()
			extracted, err := ex.Extract(c.Request.Context(), target)
			fetchMs = time.Since(fetchStart).Milliseconds()
			if err != nil {
				respondError(c, err)
				return
			}
			doc = extracted
			if cc != nil {
				cc.Set(doc.URL, doc)
			}
		}

		// ── 4. Content threshold ────────────────────────────────────
		if n := utf8.RuneCountInString(doc.CleanedText); n < minContentLength {
			respondError(c, &models.ContentError{
				URL:     doc.URL,
				Length:  n,
				Minimum: minContentLength,
			})
			return
		}

		// ── 5. Synthesize ───────────────────────────────────────────
		synthStart := time.Now()
		pairs, err := syn.Generate(c.Request.Context(), doc.CleanedText, req.Count)
		synthesisMs := time.Since(synthStart).Milliseconds()
		if err != nil {
			respondError(c, err)
			return
		}

		// ── 6. Persist & respond ────────────────────────────────────
		ctx := c.Request.Context()
		snapshot := models.FromDocument(doc, time.Now().UTC())
		if req.Refresh {
			if prev, err := st.FindPageByURL(ctx, doc.URL); err == nil && prev != nil {
				if !simhash.Changed(uint64(prev.Fingerprint), uint64(snapshot.Fingerprint)) {
					slog.Info("refresh found unchanged content",
						"url", doc.URL,
						"last_crawled", prev.LastCrawled,
					)
				}
			}
		}
		if err := st.UpsertPage(ctx, snapshot); err != nil {
			respondError(c, err)
			return
		}
		items, err := st.InsertFAQs(ctx, pairs, doc.URL)
		if err != nil {
			respondError(c, err)
			return
		}

		if req.WebhookURL != "" {
			webhook.DeliverAsync(req.WebhookURL, webhookSecret, &webhook.Event{
				Type:      webhook.EventFAQsGenerated,
				SourceURL: doc.URL,
				Timestamp: time.Now().Unix(),
				Data:      items,
			})
		}

		c.JSON(http.StatusOK, models.GenerateResponse{
			Success:     true,
			SourceURL:   doc.URL,
			Count:       len(items),
			Items:       items,
			CacheStatus: cacheStatus,
			Timing: models.TimingInfo{
				TotalMs:     time.Since(totalStart).Milliseconds(),
				FetchMs:     fetchMs,
				SynthesisMs: synthesisMs,
			},
		})
	}
}
