package validation

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/jonathan/cv-generator/internal/types"
)

// CountPDFPages counts the number of pages in a PDF file
// It reads the page tree directly and falls back to pdfinfo, then
// ghostscript, for files the reader cannot parse.
func CountPDFPages(pdfPath string) (int, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return 0, &FileReadError{Message: fmt.Sprintf("failed to open PDF file: %s", pdfPath), Cause: err}
	}

	count, readErr := countPagesWithReader(pdfPath)
	if readErr == nil {
		return count, nil
	}

	// Try pdfinfo (from poppler-utils)
	if count, err := countPagesWithPdfinfo(pdfPath); err == nil {
		return count, nil
	}

	// Fallback to ghostscript
	if count, err := countPagesWithGhostscript(pdfPath); err == nil {
		return count, nil
	}

	return 0, &Error{
		Message: "failed to count PDF pages",
		Cause:   readErr,
	}
}

// countPagesWithReader reads the /Count of the document's page tree root
func countPagesWithReader(pdfPath string) (int, error) {
	doc, err := pdf.Open(pdfPath, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	count, err := pagetree.NumPages(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to read page tree: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("no pages in %s", pdfPath)
	}
	return count, nil
}

// CheckPageLimit reports a page_overflow error when pages exceeds maxPages.
// A non-positive maxPages disables the check.
func CheckPageLimit(pages, maxPages int) []types.Violation {
	if maxPages <= 0 || pages <= maxPages {
		return nil
	}
	return []types.Violation{{
		Type:             "page_overflow",
		Severity:         "error",
		Details:          fmt.Sprintf("CV has %d pages, maximum allowed is %d", pages, maxPages),
		AffectedSections: []string{"experience"},
		PageCount:        intPtr(pages),
	}}
}

// countPagesWithPdfinfo uses pdfinfo to count PDF pages
func countPagesWithPdfinfo(pdfPath string) (int, error) {
	cmd := exec.Command("pdfinfo", pdfPath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}

	// Parse output looking for "Pages: N"
	lines := strings.Split(string(output), "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "Pages:") {
			parts := strings.Fields(line)
			if len(parts) >= 2 {
				count, err := strconv.Atoi(parts[1])
				if err == nil {
					return count, nil
				}
			}
		}
	}

	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

// countPagesWithGhostscript uses ghostscript to count PDF pages
func countPagesWithGhostscript(pdfPath string) (int, error) {
	// Use ghostscript to count pages
	// Command: gs -q -dNODISPLAY -c "(filename.pdf) (r) file runpdfbegin pdfpagecount = quit"
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", pdfPath)
	cmd := exec.Command("gs", "-q", "-dNODISPLAY", "-c", script)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript command failed: %w", err)
	}

	// Output should be just the page count number
	outputStr := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(outputStr)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", outputStr)
	}

	return count, nil
}
