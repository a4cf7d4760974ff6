// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/grantscope/grantscope/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the GrantScope MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.ProposalStore, evaluator contract.Evaluator) *server.MCPServer {
	s := server.NewMCPServer(
		"GrantScope Proposal Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:   baseCfg,
		store:     store,
		evaluator: evaluator,
	}

	// --- 1. Tool: get_metrics ---
	s.AddTool(mcp.NewTool("get_metrics",
		mcp.WithDescription("Get the aggregated grant proposal metrics snapshot: overall rollup plus per-program, per-author and per-curator breakdowns."),
	), h.handleGetMetrics)

	// --- 2. Tool: get_program_stats ---
	s.AddTool(mcp.NewTool("get_program_stats",
		mcp.WithDescription("Get aggregated statistics for one tracked grant program."),
		mcp.WithString("program", mcp.Description("The program key (e.g. w3f_grants)."), mcp.Required()),
	), h.handleGetProgramStats)

	// --- 3. Tool: list_proposals ---
	s.AddTool(mcp.NewTool("list_proposals",
		mcp.WithDescription("List stored proposals ranked by performance score."),
		mcp.WithString("category", mcp.Description("Filter by lifecycle category."), mcp.Enum("APPROVED", "REJECTED", "PENDING", "STALE", "ADMIN_REVIEW")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleListProposals)

	// --- 4. Tool: evaluate_proposal ---
	s.AddTool(mcp.NewTool("evaluate_proposal",
		mcp.WithDescription("Run the heuristic curator evaluation against one stored proposal."),
		mcp.WithString("id", mcp.Description("The proposal identifier (repository#number)."), mcp.Required()),
	), h.handleEvaluateProposal)

	return s
}

// StartMCPServer starts the GrantScope MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.ProposalStore, evaluator contract.Evaluator) error {
	s := NewMCPServer(baseCfg, store, evaluator)
	return server.ServeStdio(s)
}
