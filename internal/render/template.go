package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"marginalia/internal/domain/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var articleTemplate = template.Must(
	template.ParseFS(templateFS, "templates/article.html"))

// ArticlePage is what the detail template receives. Body is already
// rendered and sanitized.
type ArticlePage struct {
	Title     string
	Author    string
	WordCount int
	IsPrivate bool
	CreatedAt time.Time
	Body      template.HTML
}

// ArticleDetail renders the server-side detail page for an article.
func ArticleDetail(w io.Writer, article *models.Article) error {
	body, err := Markdown(article.Content)
	if err != nil {
		return err
	}

	page := ArticlePage{
		Title:     article.Title,
		Author:    article.Author,
		WordCount: article.WordCount,
		IsPrivate: article.IsPrivate,
		CreatedAt: article.CreatedAt,
		Body:      body,
	}

	if err := articleTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("render article page: %w", err)
	}
	return nil
}
