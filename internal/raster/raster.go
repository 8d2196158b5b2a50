package raster

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

const helperName = "pdftoppm"

// Page is one rasterized PDF page, PNG-encoded.
type Page struct {
	Index int // 1-based page number
	PNG   []byte
}

// Rasterizer converts a PDF file into an ordered sequence of page images.
type Rasterizer interface {
	ConvertToImages(ctx context.Context, path string) ([]Page, error)
}

// PopplerRasterizer shells out to poppler's pdftoppm. HelperDir optionally
// points at the directory holding the binary (the Windows poppler bundle);
// when empty the binary is resolved from PATH.
type PopplerRasterizer struct {
	HelperDir string
	DPI       int
}

// NewPopplerRasterizer creates a rasterizer with the given helper directory
// and resolution. A non-positive dpi falls back to 200.
func NewPopplerRasterizer(helperDir string, dpi int) *PopplerRasterizer {
	if dpi <= 0 {
		dpi = 200
	}
	return &PopplerRasterizer{HelperDir: helperDir, DPI: dpi}
}

// ConvertToImages validates the PDF, renders every page to PNG in a temp
// directory and returns the images in page order.
func (r *PopplerRasterizer) ConvertToImages(ctx context.Context, path string) ([]Page, error) {
	numPages, err := PageCount(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	tmpDir, err := os.MkdirTemp("", "pdf-ocr-pages-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, r.helperBinary(), "-png", "-r", strconv.Itoa(r.DPI), path, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s failed for %s: %w: %s", helperName, path, err, strings.TrimSpace(string(out)))
	}

	pages, err := collectPages(tmpDir)
	if err != nil {
		return nil, err
	}
	if len(pages) != numPages {
		log.Warn().Str("file", path).Int("expected", numPages).Int("rendered", len(pages)).Msg("Page count mismatch after rasterization")
	}
	return pages, nil
}

func (r *PopplerRasterizer) helperBinary() string {
	if r.HelperDir != "" {
		return filepath.Join(r.HelperDir, helperName)
	}
	return helperName
}

// PageCount opens the PDF and returns its page count. An error means the
// file is not a readable PDF.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}

// collectPages reads the rendered page files in numeric order.
func collectPages(dir string) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := pageIndex(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	sortPageFiles(names)

	pages := make([]Page, 0, len(names))
	for i, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		pages = append(pages, Page{Index: i + 1, PNG: data})
	}
	return pages, nil
}

// pageIndex extracts the page number from a pdftoppm output name such as
// "page-07.png".
func pageIndex(name string) (int, bool) {
	if !strings.HasSuffix(name, ".png") {
		return 0, false
	}
	base := strings.TrimSuffix(name, ".png")
	dash := strings.LastIndex(base, "-")
	if dash < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(base[dash+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// sortPageFiles orders pdftoppm output names numerically, so "page-10.png"
// follows "page-9.png" regardless of zero padding.
func sortPageFiles(names []string) {
	sort.Slice(names, func(i, j int) bool {
		a, _ := pageIndex(names[i])
		b, _ := pageIndex(names[j])
		return a < b
	})
}
