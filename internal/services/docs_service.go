package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
)

// GoogleDocsLink prefixes a document ID to build its browser URL.
const GoogleDocsLink = "https://docs.google.com/document/d/"

// DocumentLink returns the URL of a document, or "" for an empty ID.
func DocumentLink(documentID string) string {
	if documentID == "" {
		return ""
	}
	return GoogleDocsLink + documentID
}

type DocsService struct {
	Docs *docs.Service
}

func NewDocsService(svc *docs.Service) *DocsService {
	return &DocsService{Docs: svc}
}

// CreateDocument creates an empty document and returns its ID, or "" on failure.
func (s *DocsService) CreateDocument(ctx context.Context, title string) string {
	doc, err := s.Docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		log.Printf("❌ Create Document Error for '%s': %s", title, describeAPIError(err))
		return ""
	}
	log.Printf("📄 Created document with title '%s' and ID: %s", doc.Title, doc.DocumentId)
	return doc.DocumentId
}

// InsertText writes body at the start of the document.
func (s *DocsService) InsertText(ctx context.Context, documentID, body string) error {
	req := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: 1},
					Text:     body,
				},
			},
		},
	}
	if _, err := s.Docs.Documents.BatchUpdate(documentID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("insert text into %s: %s: %w", documentID, describeAPIError(err), err)
	}
	log.Printf("✅ Successfully inserted text into document: %s", documentID)
	return nil
}

// StoreCoverLetter puts letter into a new document titled title and returns
// the document ID. An empty letter creates nothing. A failed insert still
// returns the ID of the created document.
func (s *DocsService) StoreCoverLetter(ctx context.Context, title, letter string) string {
	if letter == "" {
		return ""
	}
	documentID := s.CreateDocument(ctx, title)
	if documentID == "" {
		return ""
	}
	if err := s.InsertText(ctx, documentID, letter); err != nil {
		log.Printf("❌ Error occurred: %v", err)
	}
	return documentID
}

// describeAPIError flattens a Google API error into "code: message".
func describeAPIError(err error) string {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return fmt.Sprintf("%d: %s", gErr.Code, gErr.Message)
	}
	return err.Error()
}
