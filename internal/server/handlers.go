package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/floorplan-mcp/internal/floorplan"
	"github.com/ironsheep/floorplan-mcp/internal/placement"
)

// errInvalidArguments marks tool arguments that could not be decoded or are
// missing a required field.
var errInvalidArguments = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "floorplan_reconstruct").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Bad arguments and rejected primitives return -32602. Any other tool
// failure returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	log := s.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"tool":       params.Name,
	})
	start := time.Now()

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.WithError(err).Warn("tool call failed")
		return s.toolError(req.ID, err)
	}

	text, err := marshalResult(result)
	if err != nil {
		log.WithError(err).Error("tool result could not be encoded")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	log.WithField("elapsed_ms", time.Since(start).Milliseconds()).Info("tool call")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Pipeline
	case "floorplan_reconstruct":
		return s.handleReconstruct(args)

	// Individual stages
	case "floorplan_resolve_walls":
		return s.handleResolveWalls(args)
	case "floorplan_classify_openings":
		return s.handleClassifyOpenings(args)
	case "floorplan_normalize":
		return s.handleNormalize(args)

	// Cached plans
	case "floorplan_get":
		return s.handleGet(args)
	case "floorplan_wall_placements":
		return s.handleWallPlacements(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// toolError maps an execution error to a JSON-RPC error response.
func (s *Server) toolError(id interface{}, err error) *MCPResponse {
	var verr *floorplan.ValidationError
	switch {
	case errors.As(err, &verr):
		return s.errorResponse(id, -32602, "Invalid primitives", verr.Problems)
	case errors.Is(err, errInvalidArguments), errors.Is(err, floorplan.ErrTooManySegments):
		return s.errorResponse(id, -32602, "Invalid params", err.Error())
	default:
		return s.errorResponse(id, -32000, "Tool execution failed", err.Error())
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// marshalResult converts a tool result to a pretty-printed JSON string.
func marshalResult(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(b), nil
}

// decodeArgs unmarshals tool arguments into dst.
func decodeArgs(args json.RawMessage, dst interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

// === Pipeline Handlers ===

type reconstructResult struct {
	PlanID string              `json:"plan_id"`
	Plan   floorplan.FloorPlan `json:"plan"`
	Report floorplan.Report    `json:"report"`
}

func (s *Server) handleReconstruct(args json.RawMessage) (interface{}, error) {
	var a floorplan.Primitives
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	res, err := s.engine.Reconstruct(a)
	if err != nil {
		return nil, err
	}

	return &reconstructResult{
		PlanID: s.cache.Put(res.Plan),
		Plan:   res.Plan,
		Report: res.Report,
	}, nil
}

// === Stage Handlers ===

type resolveWallsArgs struct {
	Segments []floorplan.Segment `json:"segments"`
}

type resolveWallsResult struct {
	Walls      []floorplan.Segment   `json:"walls"`
	Count      int                   `json:"count"`
	Rejections []floorplan.Rejection `json:"rejections"`
}

func (s *Server) handleResolveWalls(args json.RawMessage) (interface{}, error) {
	var a resolveWallsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	walls, rejections, err := s.engine.ResolveWalls(a.Segments)
	if err != nil {
		return nil, err
	}

	return &resolveWallsResult{
		Walls:      walls,
		Count:      len(walls),
		Rejections: nonNil(rejections),
	}, nil
}

type classifyOpeningsArgs struct {
	Rectangles []floorplan.Rect `json:"rectangles"`
}

type classifyOpeningsResult struct {
	Windows    []floorplan.Opening   `json:"windows"`
	Doors      []floorplan.Opening   `json:"doors"`
	Discarded  int                   `json:"discarded"`
	Rejections []floorplan.Rejection `json:"rejections"`
}

func (s *Server) handleClassifyOpenings(args json.RawMessage) (interface{}, error) {
	var a classifyOpeningsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	c, rejections, err := s.engine.ClassifyOpenings(a.Rectangles)
	if err != nil {
		return nil, err
	}

	return &classifyOpeningsResult{
		Windows:    c.Windows,
		Doors:      c.Doors,
		Discarded:  c.Discarded,
		Rejections: nonNil(rejections),
	}, nil
}

type normalizeArgs struct {
	Walls   []floorplan.Segment `json:"walls"`
	Doors   []floorplan.Opening `json:"doors"`
	Windows []floorplan.Opening `json:"windows"`
}

func (s *Server) handleNormalize(args json.RawMessage) (interface{}, error) {
	var a normalizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	plan, err := s.engine.Normalize(a.Walls, a.Doors, a.Windows)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// === Cached Plan Handlers ===

type planIDArgs struct {
	PlanID string `json:"plan_id"`
}

func (a planIDArgs) validate() error {
	if a.PlanID == "" {
		return fmt.Errorf("%w: plan_id is required", errInvalidArguments)
	}
	return nil
}

type getResult struct {
	PlanID string              `json:"plan_id"`
	Plan   floorplan.FloorPlan `json:"plan"`
}

func (s *Server) handleGet(args json.RawMessage) (interface{}, error) {
	var a planIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	plan, err := s.cache.Get(a.PlanID)
	if err != nil {
		return nil, err
	}
	return &getResult{PlanID: a.PlanID, Plan: plan}, nil
}

type wallPlacementsResult struct {
	PlanID   string                       `json:"plan_id"`
	Walls    []placement.WallPlacement    `json:"walls"`
	Openings []placement.OpeningPlacement `json:"openings"`
	Floor    placement.FloorPlane         `json:"floor"`
}

func (s *Server) handleWallPlacements(args json.RawMessage) (interface{}, error) {
	var a planIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	plan, err := s.cache.Get(a.PlanID)
	if err != nil {
		return nil, err
	}
	floor, err := placement.Floor(plan)
	if err != nil {
		return nil, err
	}

	return &wallPlacementsResult{
		PlanID:   a.PlanID,
		Walls:    placement.Walls(plan),
		Openings: placement.Openings(plan),
		Floor:    floor,
	}, nil
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil(r []floorplan.Rejection) []floorplan.Rejection {
	if r == nil {
		return []floorplan.Rejection{}
	}
	return r
}
