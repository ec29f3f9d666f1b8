package server

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/ironsheep/floorplan-mcp/internal/floorplan"
)

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeContent unpacks the JSON text content of a successful tool response.
func decodeContent(t *testing.T, resp *MCPResponse, dst interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content: got %#v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), dst); err != nil {
		t.Fatalf("decode content %q: %v", text, err)
	}
}

func roomArgs() map[string]interface{} {
	return map[string]interface{}{
		"segments": []map[string]float64{
			{"x1": 0, "y1": 10, "x2": 100, "y2": 10},
			{"x1": 0, "y1": 14, "x2": 100, "y2": 14},
			{"x1": 0, "y1": 10, "x2": 0, "y2": 60},
		},
		"rectangles": []map[string]float64{
			{"x": 20, "y": 20, "width": 40, "height": 20},
			{"x": 0, "y": 0, "width": 1, "height": 1},
		},
	}
}

func TestHandleToolsCall_Reconstruct(t *testing.T) {
	s, _ := newTestServer(t)

	var got reconstructResult
	decodeContent(t, callTool(t, s, "floorplan_reconstruct", roomArgs()), &got)

	if got.PlanID == "" {
		t.Error("plan_id should be set")
	}
	if len(got.Plan.Walls) != 2 {
		t.Errorf("got %d walls, want 2", len(got.Plan.Walls))
	}
	if len(got.Plan.Windows) != 1 || got.Plan.Windows[0].Kind != floorplan.Window {
		t.Errorf("windows: got %+v", got.Plan.Windows)
	}
	if got.Report.RectanglesDiscarded != 1 {
		t.Errorf("RectanglesDiscarded: got %d, want 1", got.Report.RectanglesDiscarded)
	}
	// Box over walls and window is (0,10)-(100,60).
	if got.Plan.Dimensions != (floorplan.Dimensions{Width: 400, Height: 200}) {
		t.Errorf("Dimensions: got %+v, want 400x200", got.Plan.Dimensions)
	}

	if _, err := s.cache.Get(got.PlanID); err != nil {
		t.Errorf("plan should be cached: %v", err)
	}
}

func TestHandleToolsCall_ReconstructInvalidRectangle(t *testing.T) {
	s, _ := newTestServer(t)

	args := map[string]interface{}{
		"segments":   []map[string]float64{{"x1": 0, "y1": 0, "x2": 10, "y2": 0}},
		"rectangles": []map[string]float64{{"x": 0, "y": 0, "width": -5, "height": 10}},
	}
	resp := callTool(t, s, "floorplan_reconstruct", args)

	if resp.Error == nil {
		t.Fatal("expected an error for a negative rectangle width")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
	problems, ok := resp.Error.Data.([]floorplan.Problem)
	if !ok || len(problems) != 1 || problems[0].Field != "width" {
		t.Errorf("Error data: got %#v, want one width problem", resp.Error.Data)
	}
	if s.cache.Len() != 0 {
		t.Error("failed reconstruction should not be cached")
	}
}

func TestHandleToolsCall_ResolveWalls(t *testing.T) {
	s, _ := newTestServer(t)

	args := map[string]interface{}{
		"segments": []map[string]float64{
			{"x1": 0, "y1": 10, "x2": 100, "y2": 10},
			{"x1": 0, "y1": 14, "x2": 100, "y2": 14},
			{"x1": 5, "y1": 5, "x2": 5, "y2": 5},
		},
	}

	var got resolveWallsResult
	decodeContent(t, callTool(t, s, "floorplan_resolve_walls", args), &got)

	if got.Count != 1 || len(got.Walls) != 1 {
		t.Fatalf("got %d walls (count %d), want 1", len(got.Walls), got.Count)
	}
	if got.Walls[0].Y1 != 10 {
		t.Errorf("wall: got %+v, want the y=10 edge", got.Walls[0])
	}
	if got.Walls[0].Length != 100 {
		t.Errorf("Length: got %v, want 100", got.Walls[0].Length)
	}
	if len(got.Rejections) != 1 || got.Rejections[0].Reason != "zero length" {
		t.Errorf("rejections: got %+v", got.Rejections)
	}
}

func TestHandleToolsCall_ClassifyOpenings(t *testing.T) {
	s, _ := newTestServer(t)

	args := map[string]interface{}{
		"rectangles": []map[string]float64{
			{"x": 10, "y": 10, "width": 40, "height": 20},
			{"x": 0, "y": 0, "width": 150, "height": 40},
			{"x": 0, "y": 0, "width": 500, "height": 500},
		},
	}

	var got classifyOpeningsResult
	decodeContent(t, callTool(t, s, "floorplan_classify_openings", args), &got)

	if len(got.Windows) != 1 || len(got.Doors) != 1 || got.Discarded != 1 {
		t.Errorf("got %+v, want one window, one door, one discarded", got)
	}
	if got.Rejections == nil {
		t.Error("rejections should encode as an empty list")
	}
}

func TestHandleToolsCall_Normalize(t *testing.T) {
	s, _ := newTestServer(t)

	args := map[string]interface{}{
		"walls": []map[string]float64{
			{"x1": 0, "y1": 0, "x2": 100, "y2": 0},
			{"x1": 0, "y1": 0, "x2": 0, "y2": 100},
		},
	}

	var got floorplan.FloorPlan
	decodeContent(t, callTool(t, s, "floorplan_normalize", args), &got)

	if got.Center != (floorplan.Point{X: 50, Y: 50}) {
		t.Errorf("Center: got %+v, want (50,50)", got.Center)
	}
	if got.Walls[0].Y1 != 200 || got.Walls[0].Length != 400 {
		t.Errorf("top wall: got %+v", got.Walls[0])
	}
}

func TestHandleToolsCall_NormalizeRejectsInvalidOpenings(t *testing.T) {
	s, _ := newTestServer(t)

	args := map[string]interface{}{
		"walls": []map[string]float64{{"x1": 0, "y1": 0, "x2": 100, "y2": 0}},
		"doors": []map[string]float64{{"x": 10, "y": 10, "width": -60, "height": -20}},
	}

	resp := callTool(t, s, "floorplan_normalize", args)
	if resp.Error == nil {
		t.Fatal("expected an error for a negative door size")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
	problems, ok := resp.Error.Data.([]floorplan.Problem)
	if !ok || len(problems) != 2 {
		t.Fatalf("Error data: got %#v, want two problems", resp.Error.Data)
	}
	for i, field := range []string{"width", "height"} {
		if problems[i].Kind != floorplan.KindDoor || problems[i].Field != field {
			t.Errorf("problem %d: got %+v, want door %s", i, problems[i], field)
		}
	}
	if _, err := json.Marshal(resp); err != nil {
		t.Errorf("error response does not encode: %v", err)
	}
}

func TestHandleToolsCall_ReconstructHugeCoordinates(t *testing.T) {
	s, _ := newTestServer(t)

	args := map[string]interface{}{
		"segments": []map[string]float64{
			{"x1": 1e308, "y1": 0, "x2": 1.5e308, "y2": 0},
			{"x1": 0, "y1": 0, "x2": 100, "y2": 0},
		},
	}

	var got reconstructResult
	decodeContent(t, callTool(t, s, "floorplan_reconstruct", args), &got)

	if len(got.Report.Rejections) != 1 || got.Report.Rejections[0].Index != 0 {
		t.Errorf("Rejections: got %+v, want segment 0", got.Report.Rejections)
	}
	if len(got.Plan.Walls) != 1 {
		t.Errorf("got %d walls, want 1", len(got.Plan.Walls))
	}
}

func TestMarshalResult(t *testing.T) {
	text, err := marshalResult(map[string]float64{"x": 1})
	if err != nil || !strings.Contains(text, `"x": 1`) {
		t.Errorf("got %q, %v", text, err)
	}

	if _, err := marshalResult(map[string]float64{"x": math.Inf(-1)}); err == nil {
		t.Error("expected an error for a non-finite value")
	}
}

func TestHandleToolsCall_GetAndPlacements(t *testing.T) {
	s, _ := newTestServer(t)

	var rec reconstructResult
	decodeContent(t, callTool(t, s, "floorplan_reconstruct", roomArgs()), &rec)

	var got getResult
	decodeContent(t, callTool(t, s, "floorplan_get", map[string]string{"plan_id": rec.PlanID}), &got)
	if got.PlanID != rec.PlanID || len(got.Plan.Walls) != len(rec.Plan.Walls) {
		t.Errorf("floorplan_get: got %+v", got)
	}

	var pl wallPlacementsResult
	decodeContent(t, callTool(t, s, "floorplan_wall_placements", map[string]string{"plan_id": rec.PlanID}), &pl)
	if len(pl.Walls) != 2 || len(pl.Openings) != 1 {
		t.Errorf("placements: got %d walls, %d openings", len(pl.Walls), len(pl.Openings))
	}
	if pl.Floor.Width != 400 || pl.Floor.Height != 200 {
		t.Errorf("floor: got %+v, want 400x200", pl.Floor)
	}
	if pl.Walls[0].Length != 400 || pl.Walls[0].AngleDegrees != 0 {
		t.Errorf("first wall: got %+v", pl.Walls[0])
	}
}

func TestHandleToolsCall_PlanNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	for _, tool := range []string{"floorplan_get", "floorplan_wall_placements"} {
		t.Run(tool, func(t *testing.T) {
			resp := callTool(t, s, tool, map[string]string{"plan_id": "7f8b8e0c-3f59-4d1e-9f3c-2b1a0c9d8e7f"})
			if resp.Error == nil || resp.Error.Code != -32000 {
				t.Fatalf("got %+v, want -32000", resp.Error)
			}
			if data, _ := resp.Error.Data.(string); !strings.Contains(data, "plan not found") {
				t.Errorf("Error data: got %v", resp.Error.Data)
			}
		})
	}
}

func TestHandleToolsCall_EmptyPlanHasNoFloor(t *testing.T) {
	s, _ := newTestServer(t)

	var rec reconstructResult
	decodeContent(t, callTool(t, s, "floorplan_reconstruct", map[string]interface{}{}), &rec)

	resp := callTool(t, s, "floorplan_wall_placements", map[string]string{"plan_id": rec.PlanID})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("got %+v, want -32000 for an empty plan", resp.Error)
	}
}

func TestHandleToolsCall_MissingPlanID(t *testing.T) {
	s, _ := newTestServer(t)

	resp := callTool(t, s, "floorplan_get", map[string]interface{}{})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want -32602", resp.Error)
	}
}

func TestHandleToolsCall_TooManySegments(t *testing.T) {
	s, _ := newTestServer(t)

	segs := make([]map[string]float64, floorplan.DefaultMaxSegments+1)
	for i := range segs {
		y := float64(i * 30)
		segs[i] = map[string]float64{"x1": 0, "y1": y, "x2": 10, "y2": y}
	}

	resp := callTool(t, s, "floorplan_resolve_walls", map[string]interface{}{"segments": segs})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want -32602", resp.Error)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s, logs := newTestServer(t)

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})

	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
	if !strings.Contains(logs.String(), "tool call failed") {
		t.Errorf("failure should be logged, got %q", logs.String())
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s, _ := newTestServer(t)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{invalid`),
	}

	resp := s.handleToolsCall(req)

	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want -32602", resp.Error)
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s, _ := newTestServer(t)
	planID := s.cache.Put(floorplan.Normalize(
		[]floorplan.Segment{floorplan.NewSegment(0, 0, 10, 0)}, nil, nil, floorplan.DefaultScale))

	// Test each tool to ensure executeTool correctly dispatches
	toolTests := []struct {
		name string
		args string
	}{
		{"floorplan_reconstruct", `{"segments":[{"x1":0,"y1":0,"x2":10,"y2":0}]}`},
		{"floorplan_resolve_walls", `{"segments":[]}`},
		{"floorplan_classify_openings", `{"rectangles":[]}`},
		{"floorplan_normalize", `{}`},
		{"floorplan_get", `{"plan_id":"` + planID + `"}`},
		{"floorplan_wall_placements", `{"plan_id":"` + planID + `"}`},
	}

	if len(toolTests) != len(GetToolDefinitions()) {
		t.Fatalf("test covers %d tools, %d are defined", len(toolTests), len(GetToolDefinitions()))
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.executeTool(tt.name, json.RawMessage(tt.args))
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.executeTool("floorplan_reconstruct", json.RawMessage(`{invalid`))
	if err == nil {
		t.Error("executeTool should fail for invalid JSON")
	}
}
