package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/seo-optimizer/content-optimizer/analyzer"
	"github.com/seo-optimizer/content-optimizer/handler"
	"github.com/seo-optimizer/content-optimizer/inserter"
	"github.com/seo-optimizer/content-optimizer/logging"
	"github.com/seo-optimizer/content-optimizer/stats"
	"github.com/seo-optimizer/content-optimizer/storage"
)

func do(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		Expect(json.NewEncoder(&buf).Encode(b)).To(Succeed())
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	return resp
}

var _ = Describe("Handler", func() {
	var (
		router     *gin.Engine
		analyzerFn *mockAnalyzer
		store      *storage.MemoryStore
		monthly    *stats.Storage
		statistics *logging.Statistics
		deps       handler.Deps
	)

	BeforeEach(func() {
		var err error
		monthly, err = stats.NewStorage(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(monthly.Shutdown)

		analyzerFn = &mockAnalyzer{}
		store = storage.NewMemoryStore()
		statistics = logging.NewStatistics(GinkgoT().TempDir())
		deps = handler.Deps{
			Analyzer:   analyzerFn,
			Inserter:   inserter.New(),
			Store:      store,
			Monthly:    monthly,
			Statistics: statistics,
		}
	})

	JustBeforeEach(func() {
		router = gin.New()
		handler.New(deps).Register(router)
	})

	Describe("POST /api/analyze", func() {
		It("returns the analysis and stores a placeholder record", func() {
			w := do(router, http.MethodPost, "/api/analyze", handler.AnalyzeRequest{Content: "Some content to score."})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get(handler.AnalysisHeader)).To(Equal("1"))
			resp := decode(w)
			Expect(resp["seoScore"]).To(BeEquivalentTo(55))

			rec, err := store.Get(context.Background(), 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Content).To(Equal("Some content to score."))
			Expect(rec.SEOScore).To(BeNil())
		})

		It("rejects empty content before analysis starts", func() {
			w := do(router, http.MethodPost, "/api/analyze", handler.AnalyzeRequest{Content: ""})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("Content is required"))
			Expect(analyzerFn.calls).To(BeZero())
		})

		It("rejects whitespace-only content", func() {
			w := do(router, http.MethodPost, "/api/analyze", handler.AnalyzeRequest{Content: " \n\t "})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(analyzerFn.calls).To(BeZero())
		})

		It("returns 400 on malformed JSON", func() {
			w := do(router, http.MethodPost, "/api/analyze", `{`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 500 without partial content on internal failure", func() {
			analyzerFn.analyzeFn = func(context.Context, string) (*analyzer.AnalysisResult, error) {
				return nil, fmt.Errorf("%w: boom", analyzer.ErrInternal)
			}

			w := do(router, http.MethodPost, "/api/analyze", handler.AnalyzeRequest{Content: "text"})

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(w)).To(Equal(map[string]any{"error": "Failed to analyze content"}))
			list, _ := store.List(context.Background())
			Expect(list).To(BeEmpty())
		})
	})

	Describe("POST /api/insert-keyword", func() {
		It("inserts a new keyword", func() {
			w := do(router, http.MethodPost, "/api/insert-keyword", handler.InsertKeywordRequest{
				Content: "AI improves business.",
				Keyword: "artificial intelligence",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp handler.InsertKeywordResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.OptimizedContent).To(Equal("AI artificial intelligence improves business."))
			Expect(resp.OriginalLength).To(Equal(21))
			Expect(resp.NewLength).To(BeNumerically(">", resp.OriginalLength))
			Expect(resp.KeywordInserted).To(BeTrue())

			counters := monthly.GetCurrentStats()
			Expect(counters.Insertions).To(Equal(1))
			Expect(counters.KeywordsInserted).To(Equal(1))
		})

		It("reports a duplicate keyword as not inserted", func() {
			content := "Great content marketing builds trust."
			w := do(router, http.MethodPost, "/api/insert-keyword", handler.InsertKeywordRequest{
				Content: content,
				Keyword: "content marketing",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp handler.InsertKeywordResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.OptimizedContent).To(Equal(content))
			Expect(resp.KeywordInserted).To(BeFalse())
			Expect(monthly.GetCurrentStats().KeywordsSkipped).To(Equal(1))
		})

		Context("when the keyword has irregular spacing", func() {
			BeforeEach(func() {
				deps.Inserter = &mockInserter{
					insertFn: func(content, _ string, _ *int) (string, error) {
						return "We publish weekly, content marketing and readers enjoy it.", nil
					},
				}
			})

			It("reports the collapsed keyword as inserted", func() {
				w := do(router, http.MethodPost, "/api/insert-keyword", handler.InsertKeywordRequest{
					Content: "We publish weekly, and readers enjoy it.",
					Keyword: "  Content \t marketing ",
				})

				Expect(w.Code).To(Equal(http.StatusOK))
				var resp handler.InsertKeywordResponse
				Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
				Expect(resp.KeywordInserted).To(BeTrue())

				counters := monthly.GetCurrentStats()
				Expect(counters.KeywordsInserted).To(Equal(1))
				Expect(counters.KeywordsSkipped).To(Equal(0))
			})
		})

		It("requires a keyword", func() {
			w := do(router, http.MethodPost, "/api/insert-keyword", handler.InsertKeywordRequest{Content: "Text."})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("Keyword is required"))
		})

		Context("when the engine faults", func() {
			BeforeEach(func() {
				deps.Inserter = &mockInserter{
					insertFn: func(string, string, *int) (string, error) {
						return "", fmt.Errorf("%w: boom", inserter.ErrInternal)
					},
				}
			})

			It("returns 500", func() {
				w := do(router, http.MethodPost, "/api/insert-keyword", handler.InsertKeywordRequest{
					Content: "Text.",
					Keyword: "seo",
				})
				Expect(w.Code).To(Equal(http.StatusInternalServerError))
				Expect(decode(w)).NotTo(HaveKey("optimizedContent"))
			})
		})
	})

	Describe("POST /api/insert-keywords", func() {
		It("partitions keywords into inserted and skipped", func() {
			w := do(router, http.MethodPost, "/api/insert-keywords", handler.InsertKeywordsRequest{
				Content:  "We publish articles weekly, and readers enjoy them.",
				Keywords: []string{"seo", "analytics", "seo"},
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp handler.InsertKeywordsResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.InsertedKeywords).To(Equal([]string{"seo", "analytics"}))
			Expect(resp.SkippedKeywords).To(Equal([]string{"seo"}))
			Expect(resp.TotalInserted).To(Equal(2))

			counters := monthly.GetCurrentStats()
			Expect(counters.BulkInsertions).To(Equal(1))
			Expect(counters.KeywordsInserted).To(Equal(2))
			Expect(counters.KeywordsSkipped).To(Equal(1))
		})

		It("requires at least one keyword", func() {
			w := do(router, http.MethodPost, "/api/insert-keywords", handler.InsertKeywordsRequest{
				Content:  "Text.",
				Keywords: []string{},
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("analysis records", func() {
		BeforeEach(func() {
			Expect(store.Create(context.Background(), &storage.Record{Content: "first"})).To(Succeed())
		})

		It("lists records", func() {
			w := do(router, http.MethodGet, "/api/analyses", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["total"]).To(BeEquivalentTo(1))
		})

		It("gets a record by id", func() {
			w := do(router, http.MethodGet, "/api/analyses/1", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["content"]).To(Equal("first"))
			Expect(resp).To(HaveKeyWithValue("readabilityScore", BeNil()))
		})

		It("returns 404 for an unknown id", func() {
			Expect(do(router, http.MethodGet, "/api/analyses/42", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for a malformed id", func() {
			Expect(do(router, http.MethodGet, "/api/analyses/abc", nil).Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("service endpoints", func() {
		It("reports health with cache figures", func() {
			w := do(router, http.MethodGet, "/api/health", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["status"]).To(Equal("ok"))
			Expect(resp["cache"]).To(HaveKeyWithValue("entries", BeEquivalentTo(3)))
		})

		It("hides detailed statistics outside development mode", func() {
			statistics.TrackKeywords("seo")

			resp := decode(do(router, http.MethodGet, "/api/statistics", nil))
			Expect(resp).To(HaveKey("totalRequests"))
			Expect(resp).NotTo(HaveKey("popularKeywords"))
		})

		Context("in development mode", func() {
			BeforeEach(func() { deps.DevMode = true })

			It("includes keyword rankings", func() {
				statistics.TrackKeywords("seo")

				resp := decode(do(router, http.MethodGet, "/api/statistics", nil))
				Expect(resp).To(HaveKey("popularKeywords"))
			})
		})

		It("returns monthly counters", func() {
			monthly.Increment(stats.Delta{Analyses: 2})

			w := do(router, http.MethodGet, "/api/stats/monthly", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["stats"]).To(HaveKeyWithValue("analyses", BeEquivalentTo(2)))
		})

		It("rejects a malformed month", func() {
			Expect(do(router, http.MethodGet, "/api/stats/monthly?month=May", nil).Code).To(Equal(http.StatusBadRequest))
		})
	})
})
