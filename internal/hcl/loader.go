package hcl

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/propgraph/internal/config"
	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/fsutil"
	"github.com/specialistvlad/propgraph/internal/model"
)

// Extension is the file extension of document files.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	parser *hclparse.Parser
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL document loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Files returns every file parsed so far, for rendering diagnostics with
// source snippets.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// Load parses every .hcl file the paths denote, sorted by path, into one
// document. Diagnostics of all files are collected; the document is partial
// when they contain errors.
func (l *Loader) Load(ctx context.Context, paths ...string) (*model.Document, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.ResolvePaths(paths, Extension)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Failed to find document files",
			Detail:   err.Error(),
		}}
	}
	if len(files) == 0 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "No document files",
			Detail:   "No " + Extension + " files were found in the given paths.",
		}}
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	doc := model.NewDocument()
	var diags hcl.Diagnostics
	for _, path := range files {
		file, fileDiags := l.parser.ParseHCLFile(path)
		diags = append(diags, fileDiags...)
		diags = append(diags, l.addFile(doc, path, file)...)
	}

	logger.Debug("HCL loading complete.", "files", len(doc.Files), "top_level", len(doc.Root.Children), "diagnostics", len(diags))
	return doc, diags
}

// Parse loads a single in-memory source as a document.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*model.Document, hcl.Diagnostics) {
	file, diags := l.parser.ParseHCL(src, filename)
	doc := model.NewDocument()
	diags = append(diags, l.addFile(doc, filename, file)...)
	ctxlog.FromContext(ctx).Debug("HCL source parsed.", "filename", filename, "diagnostics", len(diags))
	return doc, diags
}

func (l *Loader) addFile(doc *model.Document, path string, file *hcl.File) hcl.Diagnostics {
	if file == nil {
		return nil
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported file format",
			Detail:   "Only HCL native syntax is supported.",
			Subject:  file.Body.MissingItemRange().Ptr(),
		}}
	}
	info := model.NewFSInfo(path)
	nodes, diags := translateFile(body, info)
	doc.AddFile(info, nodes)
	return diags
}
