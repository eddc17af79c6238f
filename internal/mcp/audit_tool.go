package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/layerlint/internal/audit"
	"github.com/mvp-joe/layerlint/internal/design"
)

// AuditToolName is the name the audit tool is registered under.
const AuditToolName = "layerlint_audit"

// AuditRequest is the layerlint_audit argument set.
type AuditRequest struct {
	Document     string   `json:"document"`
	Select       []string `json:"select,omitempty"`
	IgnoreHidden *bool    `json:"ignore_hidden,omitempty"`
	List         string   `json:"list,omitempty"`
}

// AuditLayer is one layer matched by a listed check.
type AuditLayer struct {
	NodeID string `json:"nodeId"`
	Name   string `json:"name"`
	Path   string `json:"path"`
}

// AuditResponse carries either the full report or, with List set, the
// layers matching one check.
type AuditResponse struct {
	Document string        `json:"document"`
	Report   *audit.Report `json:"report,omitempty"`
	Check    string        `json:"check,omitempty"`
	Layers   []AuditLayer  `json:"layers,omitempty"`
}

// AddAuditTool registers the layerlint_audit tool with an MCP server.
func AddAuditTool(s *server.MCPServer, deps *toolDeps) {
	tool := mcp.NewTool(
		AuditToolName,
		mcp.WithDescription("Audit an exported design document without changing it. Reports hidden, locked, default-named, empty and deeply nested layers, single-child wrappers, and a quality score for default names, font sizes, touch targets and text without a linked style."),
		mcp.WithString("document",
			mcp.Required(),
			mcp.Description("Path to the exported document JSON, relative to the project root")),
		mcp.WithArray("select",
			mcp.Description("Node IDs to audit. Empty audits every page.")),
		mcp.WithBoolean("ignore_hidden",
			mcp.Description("Leave hidden layers out of the quality score (default from filters.skip_hidden)")),
		mcp.WithString("list",
			mcp.Description("Return only the layers matching one check: hidden, locked, unnamed, empty or deeply-nested")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createAuditHandler(deps))
}

func createAuditHandler(deps *toolDeps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]any); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req AuditRequest
		if err := bindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(req.Document) == "" {
			return mcp.NewToolResultError("document parameter is required"), nil
		}

		resp, err := runAudit(deps, &req)
		if err != nil {
			if isUserError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}
		return marshalToolResponse(resp)
	}
}

func runAudit(deps *toolDeps, req *AuditRequest) (*AuditResponse, error) {
	path, err := resolveDocument(deps.rootDir, req.Document)
	if err != nil {
		return nil, err
	}
	doc, err := deps.docs.Load(path)
	if err != nil {
		return nil, userError{err}
	}

	roots := doc.Pages()
	if len(req.Select) > 0 {
		if roots, err = doc.Select(req.Select); err != nil {
			return nil, err
		}
	}

	resp := &AuditResponse{Document: req.Document}
	if req.List != "" {
		check, err := audit.ParseCheck(req.List)
		if err != nil {
			return nil, userError{err}
		}
		resp.Check = string(check)
		resp.Layers = auditLayers(audit.Select(roots, check))
		return resp, nil
	}

	ignoreHidden := deps.cfg.Filters.SkipHidden
	overrideBool(&ignoreHidden, req.IgnoreHidden)
	report, err := audit.Run(roots, audit.Options{IgnoreHidden: ignoreHidden})
	if err != nil {
		return nil, userError{err}
	}
	resp.Report = report
	return resp, nil
}

func auditLayers(nodes []*design.Node) []AuditLayer {
	out := make([]AuditLayer, len(nodes))
	for i, n := range nodes {
		out[i] = AuditLayer{NodeID: n.ID, Name: n.Name, Path: n.Path()}
	}
	return out
}
