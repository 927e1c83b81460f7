package export

import (
	"fmt"
	"strings"

	errs "cafecrawler/pkg/errors"
	"cafecrawler/pkg/logger"
	"cafecrawler/pkg/models"
	"cafecrawler/pkg/storage"
)

const docExt = ".md"

// Report summarizes one export
type Report struct {
	Attempted int
	Exported  int
	Failed    int
	// Files holds the file name of every attempted post, in corpus order
	Files []string
}

// DocumentWriter stores named documents in one directory
type DocumentWriter interface {
	WriteFile(name string, data []byte) error
}

// MarkdownExporter renders a corpus as INDEX.md plus one Markdown file per post
type MarkdownExporter struct {
	logger logger.Logger
	open   func(root string) (DocumentWriter, error)
}

// NewMarkdownExporter creates an exporter writing through storage.Manager
func NewMarkdownExporter(log logger.Logger) *MarkdownExporter {
	return &MarkdownExporter{
		logger: logger.OrNop(log),
		open: func(root string) (DocumentWriter, error) {
			return storage.NewManager(root)
		},
	}
}

// Export writes the corpus under outputRoot. A post that cannot be written
// is logged and skipped; the index still lists every post. The export fails
// when the index cannot be written or when no post of a non-empty corpus was.
func (e *MarkdownExporter) Export(posts []*models.PostRecord, outputRoot, author string) (*Report, error) {
	writer, err := e.open(outputRoot)
	if err != nil {
		return nil, errs.Wrap(errs.KindExport, "open output directory", err)
	}

	names := newNameAllocator()
	report := &Report{Attempted: len(posts), Files: make([]string, len(posts))}
	for i, post := range posts {
		report.Files[i] = names.allocate(SanitizeFilename(titleOf(post))) + docExt
	}

	for i, post := range posts {
		if post == nil {
			report.Failed++
			continue
		}
		if err := writer.WriteFile(report.Files[i], renderPost(post)); err != nil {
			report.Failed++
			e.logger.ErrorWithFields("Failed to export post", map[string]interface{}{
				"title": post.Title,
				"file":  report.Files[i],
				"error": err.Error(),
			})
			continue
		}
		report.Exported++
	}

	if err := writer.WriteFile(IndexName+docExt, renderIndex(author, posts, report.Files)); err != nil {
		return report, errs.Wrap(errs.KindExport, "write index", err)
	}

	if report.Attempted > 0 && report.Exported == 0 {
		return report, errs.New(errs.KindExport, "export", "no post could be written")
	}

	e.logger.InfoWithFields("Export completed", map[string]interface{}{
		"output":   outputRoot,
		"exported": report.Exported,
		"failed":   report.Failed,
	})
	return report, nil
}

func titleOf(post *models.PostRecord) string {
	if post == nil {
		return ""
	}
	return post.Title
}

func displayTitle(post *models.PostRecord) string {
	if t := strings.TrimSpace(titleOf(post)); t != "" {
		return t
	}
	return models.UnknownTitle
}

func renderIndex(author string, posts []*models.PostRecord, files []string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Articles\n\n", author)
	fmt.Fprintf(&b, "**Total Articles:** %d\n\n", len(posts))
	b.WriteString("## Article List\n\n")
	for i, post := range posts {
		fmt.Fprintf(&b, "%d. [%s](./%s)\n", i+1, displayTitle(post), files[i])
	}
	return []byte(b.String())
}

func renderPost(post *models.PostRecord) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", displayTitle(post))
	fmt.Fprintf(&b, "**Author:** %s\n", post.Author)
	fmt.Fprintf(&b, "**Date:** %s\n", post.Date)
	fmt.Fprintf(&b, "**Views:** %d\n", post.ViewCount)
	fmt.Fprintf(&b, "**URL:** [%s](%s)\n\n", post.URL, post.URL)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "%s\n\n", post.Content)

	if len(post.Images) > 0 {
		b.WriteString("## Images\n\n")
		for _, img := range post.Images {
			fmt.Fprintf(&b, "![Image](%s)\n", img)
		}
	}

	if len(post.Comments) > 0 {
		fmt.Fprintf(&b, "\n## Comments (%d)\n\n", len(post.Comments))
		for _, c := range post.Comments {
			fmt.Fprintf(&b, "**%s** (%s)\n", c.Author, c.Date)
			fmt.Fprintf(&b, "%s\n\n", c.Content)
		}
	}
	return []byte(b.String())
}
