package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/layerlint/internal/config"
	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/mvp-joe/layerlint/internal/naming"
	"github.com/mvp-joe/layerlint/internal/rename"
)

// PreviewToolName is the name the preview tool is registered under.
const PreviewToolName = "layerlint_preview"

// PreviewRequest is the layerlint_preview argument set. Unset fields fall
// back to the server's configuration.
type PreviewRequest struct {
	Document          string   `json:"document"`
	Convention        string   `json:"convention,omitempty"`
	Casing            string   `json:"casing,omitempty"`
	Select            []string `json:"select,omitempty"`
	SkipLocked        *bool    `json:"skip_locked,omitempty"`
	SkipHidden        *bool    `json:"skip_hidden,omitempty"`
	OnlyDefaultNames  *bool    `json:"only_default_names,omitempty"`
	Ignore            []string `json:"ignore,omitempty"`
	TextRenameContent *bool    `json:"text_rename_content,omitempty"`
}

// PreviewResponse carries the batch summary and the staged renames.
type PreviewResponse struct {
	Document   string `json:"document"`
	Convention string `json:"convention"`
	Casing     string `json:"casing"`
	*rename.Result
}

// toolDeps is what the preview handler needs from the server.
type toolDeps struct {
	rootDir string
	cfg     *config.Config
	docs    *DocumentCache
	styles  naming.StyleResolver
}

// AddPreviewTool registers the layerlint_preview tool with an MCP server.
func AddPreviewTool(s *server.MCPServer, deps *toolDeps) {
	tool := mcp.NewTool(
		PreviewToolName,
		mcp.WithDescription("Preview generated layer names for an exported design document without changing it. Returns one {nodeId, oldName, newName} record per layer whose name would change, plus batch statistics."),
		mcp.WithString("document",
			mcp.Required(),
			mcp.Description("Path to the exported document JSON, relative to the project root")),
		mcp.WithString("convention",
			mcp.Description("Naming convention: atomic, component, semantic or handoff (default from config)")),
		mcp.WithString("casing",
			mcp.Description("Casing: kebab or pascal (default from config)")),
		mcp.WithArray("select",
			mcp.Description("Node IDs to rename. Empty selects every top-level layer.")),
		mcp.WithBoolean("skip_locked",
			mcp.Description("Leave locked layers and their children alone")),
		mcp.WithBoolean("skip_hidden",
			mcp.Description("Leave hidden layers and their children alone")),
		mcp.WithBoolean("only_default_names",
			mcp.Description("Only rename layers that still carry a tool default name such as 'Frame 12'")),
		mcp.WithArray("ignore",
			mcp.Description("Glob patterns over slash-joined layer paths to leave alone (e.g. ['Header/**'])")),
		mcp.WithBoolean("text_rename_content",
			mcp.Description("Name text layers after their content even when a text style is linked")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createPreviewHandler(deps))
}

func createPreviewHandler(deps *toolDeps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]any); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req PreviewRequest
		if err := bindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(req.Document) == "" {
			return mcp.NewToolResultError("document parameter is required"), nil
		}

		resp, err := runPreview(ctx, deps, &req)
		if err != nil {
			if isUserError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}
		return marshalToolResponse(resp)
	}
}

// userError marks failures caused by the request rather than the server.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

func isUserError(err error) bool {
	var ue userError
	return errors.As(err, &ue) ||
		errors.Is(err, rename.ErrNoSelection) ||
		errors.Is(err, rename.ErrNothingToRename) ||
		errors.Is(err, design.ErrNodeNotFound) ||
		errors.Is(err, design.ErrInvalidDocument) ||
		errors.Is(err, design.ErrCycle)
}

func runPreview(ctx context.Context, deps *toolDeps, req *PreviewRequest) (*PreviewResponse, error) {
	casing := deps.cfg.Casing()
	if req.Casing != "" {
		c, err := naming.ParseCasing(req.Casing)
		if err != nil {
			return nil, userError{err}
		}
		casing = c
	}
	convention := deps.cfg.Convention()
	if req.Convention != "" {
		c, err := naming.ParseConvention(req.Convention)
		if err != nil {
			return nil, userError{err}
		}
		convention = c
	}

	filters := deps.cfg.RenameFilters()
	overrideBool(&filters.SkipLocked, req.SkipLocked)
	overrideBool(&filters.SkipHidden, req.SkipHidden)
	overrideBool(&filters.OnlyDefaultNames, req.OnlyDefaultNames)
	if len(req.Ignore) > 0 {
		filters.Ignore = req.Ignore
	}
	filter, err := rename.NewFilter(filters)
	if err != nil {
		return nil, userError{err}
	}

	prefs := naming.Preferences{TextRenameContent: deps.cfg.Preferences.TextRenameContent}
	overrideBool(&prefs.TextRenameContent, req.TextRenameContent)

	path, err := resolveDocument(deps.rootDir, req.Document)
	if err != nil {
		return nil, err
	}
	doc, err := deps.docs.Load(path)
	if err != nil {
		return nil, userError{err}
	}
	selection, err := doc.Select(req.Select)
	if err != nil {
		return nil, err
	}

	gen := naming.NewGenerator(casing, convention, prefs, deps.styles)
	result, err := rename.NewDriver(gen, filter).Preview(ctx, selection)
	if err != nil {
		return nil, err
	}

	return &PreviewResponse{
		Document:   req.Document,
		Convention: string(convention),
		Casing:     string(casing),
		Result:     result,
	}, nil
}

// resolveDocument joins rel onto root and refuses paths that leave root.
func resolveDocument(root, rel string) (string, error) {
	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, rel)
	}
	path = filepath.Clean(path)

	within, err := filepath.Rel(root, path)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", userError{fmt.Errorf("document %s is outside project root", rel)}
	}
	return path, nil
}

func overrideBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func marshalToolResponse(response any) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
