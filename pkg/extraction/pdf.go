package extraction

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractedFile is the plain-text content pulled out of one source file.
type ExtractedFile struct {
	Filename string
	Text     string
}

// ExtractText reads a single PDF and concatenates the plain text of all
// pages. Pages that fail to extract are logged and skipped; the document
// as a whole only fails when it cannot be opened at all.
func ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			log.Printf("[WARN] Page %d of %s is empty, skipping", i, filepath.Base(path))
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[WARN] Failed to extract text from page %d of %s: %v", i, filepath.Base(path), err)
			continue
		}
		b.WriteString(text)
	}

	return b.String(), nil
}

// ExtractFolder walks a directory and extracts text from every .pdf file
// in it. Unreadable files are logged and skipped so one broken brochure
// does not abort a whole ingestion run.
func ExtractFolder(folder string) ([]ExtractedFile, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}

	var files []ExtractedFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		text, err := ExtractText(filepath.Join(folder, entry.Name()))
		if err != nil {
			log.Printf("[ERROR] Failed to read %s: %v", entry.Name(), err)
			continue
		}
		files = append(files, ExtractedFile{Filename: entry.Name(), Text: text})
		log.Printf("[INFO] Extracted text from %s (%d chars)", entry.Name(), len(text))
	}

	return files, nil
}
