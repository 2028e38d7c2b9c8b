package routes

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/vigie-app/vigie/backend/internal/db"
	"github.com/vigie-app/vigie/backend/internal/queue"
	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/internal/util"
	"github.com/vigie-app/vigie/backend/pkg/common"
)

// AnalyzeArticleHandler ingests one article and runs the full analysis
// pipeline synchronously, returning the relations it produced.
func AnalyzeArticleHandler(c echo.Context) error {
	type analyzeArticleBody struct {
		Title   string `json:"title" validate:"required"`
		Content string `json:"content"`
		Link    string `json:"link" validate:"omitempty,url"`
		Source  string `json:"source"`
	}

	type analyzeArticleResponse struct {
		Message   string            `json:"message"`
		ArticleID string            `json:"article_id,omitempty"`
		Analysis  *db.Analysis      `json:"analysis,omitempty"`
		Relations []common.Relation `json:"relations,omitempty"`
	}

	data := new(analyzeArticleBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeArticleResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, analyzeArticleResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, analyzeArticleResponse{
			Message: "Unauthorized",
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()
	q := db.New(app.DBConn)

	id, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, analyzeArticleResponse{
			Message: "Internal server error",
		})
	}

	title := util.SanitizePostgresText(data.Title)
	content := util.SanitizePostgresText(data.Content)
	source := data.Source
	if source == "" {
		source = "api"
	}
	link := data.Link
	if link == "" {
		// Articles submitted without a link still need a unique one for
		// deduplication.
		link = "vigie://articles/" + id
	}

	now := time.Now()
	inserted, err := q.InsertArticle(ctx, db.InsertArticleParams{
		ID:          id,
		Title:       title,
		Content:     content,
		Link:        link,
		Source:      source,
		PublishedAt: pgtype.Timestamptz{Time: now, Valid: true},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, analyzeArticleResponse{
			Message: "Internal server error",
		})
	}
	if !inserted {
		return c.JSON(http.StatusConflict, analyzeArticleResponse{
			Message: "An article with this link was already ingested",
		})
	}

	article := common.Article{
		ID:          id,
		Title:       title,
		Content:     content,
		Link:        link,
		Source:      source,
		PublishedAt: now,
	}

	analysis, found, err := queue.AnalyzeArticleNow(ctx, app.Engine, app.DBConn, article)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, analyzeArticleResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, analyzeArticleResponse{
		Message:   "Article analyzed successfully",
		ArticleID: id,
		Analysis:  &analysis,
		Relations: found,
	})
}
