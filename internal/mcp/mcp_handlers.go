package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/grantscope/grantscope/core"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg   *contract.Config
	store     contract.ProposalStore
	evaluator contract.Evaluator
}

func (h *toolHandler) handleGetMetrics(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	snap, err := core.GetMetricsResults(ctx, cfg, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metrics aggregation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(snap, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetProgramStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	program := request.GetString("program", "")

	snap, err := core.GetMetricsResults(ctx, cfg, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metrics aggregation failed: %v", err)), nil
	}

	stats, ok := snap.ByRepository[program]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no stored proposals for program %q", program)), nil
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListProposals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	category := schema.Category(request.GetString("category", ""))

	ranked, err := core.GetRankedProposals(ctx, cfg, h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	if category != "" {
		filtered := make([]schema.Proposal, 0, len(ranked))
		for i := range ranked {
			if ranked[i].Category == category {
				filtered = append(filtered, ranked[i])
			}
		}
		ranked = filtered
	}

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateProposal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	eval, err := core.GetEvaluation(ctx, h.store, h.evaluator, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(eval, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
