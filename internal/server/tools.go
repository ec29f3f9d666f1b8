package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// numberProps builds a schema properties map of required numbers.
func numberProps(names ...string) map[string]interface{} {
	props := make(map[string]interface{}, len(names))
	for _, n := range names {
		props[n] = map[string]interface{}{"type": "number"}
	}
	return props
}

func segmentSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Line segment in source image coordinates (Y down)",
		"properties":  numberProps("x1", "y1", "x2", "y2"),
		"required":    []string{"x1", "y1", "x2", "y2"},
	}
}

func rectSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Bounding rectangle; (x, y) is the top-left corner",
		"properties":  numberProps("x", "y", "width", "height"),
		"required":    []string{"x", "y", "width", "height"},
	}
}

func arrayOf(items map[string]interface{}, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"items":       items,
	}
}

func planIDSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"plan_id": map[string]interface{}{
				"type":        "string",
				"description": "ID returned by floorplan_reconstruct",
			},
		},
		"required": []string{"plan_id"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Pipeline
		{
			Name:        "floorplan_reconstruct",
			Description: "Reconstruct a floor plan from detected line segments and rectangles. Collapses double-line walls to their interior edge, classifies rectangles as doors or windows, and centers and scales the result into Y-up scene coordinates. Returns the plan, an intake report, and a plan_id for follow-up calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"segments":   arrayOf(segmentSchema(), "Detected line segments"),
					"rectangles": arrayOf(rectSchema(), "Detected bounding rectangles"),
				},
				"required": []string{"segments"},
			},
		},

		// Individual stages
		{
			Name:        "floorplan_resolve_walls",
			Description: "Collapse near-duplicate horizontal and vertical segments to one interior wall per group. Output is in source coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"segments": arrayOf(segmentSchema(), "Detected line segments"),
				},
				"required": []string{"segments"},
			},
		},
		{
			Name:        "floorplan_classify_openings",
			Description: "Classify rectangles as windows or doors by size. Rectangles matching neither size band are discarded and counted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rectangles": arrayOf(rectSchema(), "Detected bounding rectangles"),
				},
				"required": []string{"rectangles"},
			},
		},
		{
			Name:        "floorplan_normalize",
			Description: "Center and scale already resolved walls and classified openings into scene coordinates (Y up, origin at the plan center).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"walls":   arrayOf(segmentSchema(), "Resolved walls"),
					"doors":   arrayOf(rectSchema(), "Doors"),
					"windows": arrayOf(rectSchema(), "Windows"),
				},
			},
		},

		// Cached plans
		{
			Name:        "floorplan_get",
			Description: "Return a previously reconstructed plan by its plan_id.",
			InputSchema: planIDSchema(),
		},
		{
			Name:        "floorplan_wall_placements",
			Description: "Compute 3D placement data for a reconstructed plan: each wall's length, angle and midpoint, each opening's center, and the floor plane size.",
			InputSchema: planIDSchema(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
