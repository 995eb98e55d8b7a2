package service

import (
	"bytes"
	"fmt"
	"log"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"willowmoon/internal/models"
	"willowmoon/internal/repository"
	"willowmoon/internal/sanitize"
)

// ContentService renders journal posts and standalone pages for the public
// API. Bodies are stored as markdown and rendered to sanitized HTML on the
// way out.
type ContentService struct {
	journalRepo *repository.JournalRepository
	pageRepo    *repository.PageRepository
	markdown    goldmark.Markdown
}

// NewContentService creates a new content service
func NewContentService(journalRepo *repository.JournalRepository, pageRepo *repository.PageRepository) *ContentService {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &ContentService{
		journalRepo: journalRepo,
		pageRepo:    pageRepo,
		markdown:    md,
	}
}

// RenderMarkdown converts markdown to sanitized HTML
func (s *ContentService) RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return sanitize.HTML(buf.String()), nil
}

// GetPublishedPost retrieves a published journal post by slug with its body
// rendered, returning nil when not found or unpublished
func (s *ContentService) GetPublishedPost(slug string) (*models.JournalPost, error) {
	post, err := s.journalRepo.GetPostBySlug(slug)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.Published {
		return nil, nil
	}

	rendered, err := s.RenderMarkdown(post.Body)
	if err != nil {
		return nil, err
	}
	post.BodyHTML = rendered
	post.Body = ""
	return post, nil
}

// ListPublishedPosts retrieves published journal posts without bodies
func (s *ContentService) ListPublishedPosts() ([]models.JournalPost, error) {
	posts, err := s.journalRepo.ListPosts(true)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Body = ""
	}
	return posts, nil
}

// GetPublishedPage retrieves a published standalone page by slug with its
// body rendered, returning nil when not found or unpublished
func (s *ContentService) GetPublishedPage(slug string) (*models.StandalonePage, error) {
	page, err := s.pageRepo.GetPageBySlug(slug)
	if err != nil {
		return nil, err
	}
	if page == nil || !page.Published {
		return nil, nil
	}

	rendered, err := s.RenderMarkdown(page.Body)
	if err != nil {
		return nil, err
	}
	page.BodyHTML = rendered
	page.Body = ""
	return page, nil
}

// GetPageContent retrieves the editable content for a built-in page
func (s *ContentService) GetPageContent(pageKey string) (*models.PageContent, error) {
	return s.pageRepo.GetPageContent(pageKey)
}

// SeedDefaultPages creates the standalone pages a fresh install needs,
// skipping any that already exist
func (s *ContentService) SeedDefaultPages() error {
	defaults := []models.StandalonePage{
		{Title: "About the Studio", Slug: "about", Body: "Willowmoon is a small wellness studio.", Published: true},
		{Title: "Pricing", Slug: "pricing", Body: "See our rituals for individual pricing.", Published: true},
		{Title: "Frequently Asked Questions", Slug: "faq", Body: "Questions we hear often.", Published: true},
	}

	for _, page := range defaults {
		existing, err := s.pageRepo.GetPageBySlug(page.Slug)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := s.pageRepo.CreatePage(&page); err != nil {
			return err
		}
		log.Printf("Seeded default page: %s", page.Slug)
	}
	return nil
}
