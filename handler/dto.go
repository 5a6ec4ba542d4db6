package handler

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	Content string `json:"content" binding:"required,nonblank"`
}

// InsertKeywordRequest is the body of POST /api/insert-keyword
type InsertKeywordRequest struct {
	Content  string `json:"content" binding:"required,nonblank"`
	Keyword  string `json:"keyword" binding:"required,nonblank"`
	Position *int   `json:"position"`
}

type InsertKeywordResponse struct {
	OptimizedContent string `json:"optimizedContent"`
	OriginalLength   int    `json:"originalLength"`
	NewLength        int    `json:"newLength"`
	KeywordInserted  bool   `json:"keywordInserted"`
}

// InsertKeywordsRequest is the body of POST /api/insert-keywords
type InsertKeywordsRequest struct {
	Content  string   `json:"content" binding:"required,nonblank"`
	Keywords []string `json:"keywords" binding:"required,min=1"`
}

type InsertKeywordsResponse struct {
	OptimizedContent string   `json:"optimizedContent"`
	InsertedKeywords []string `json:"insertedKeywords"`
	SkippedKeywords  []string `json:"skippedKeywords"`
	TotalInserted    int      `json:"totalInserted"`
}
