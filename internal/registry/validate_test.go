package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/isaacphi/rendertools/internal/domain"
	"github.com/isaacphi/rendertools/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violations(t *testing.T, err error) []domain.FieldError {
	t.Helper()
	var invalid *domain.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	require.NotEmpty(t, invalid.Violations)
	return invalid.Violations
}

func paths(errs []domain.FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Path
	}
	return out
}

func element(dt string, code string) map[string]any {
	return map[string]any{"type": "diagram", "diagramType": dt, "code": code}
}

// minimal returns the smallest valid input for each tool.
func minimal(name string) map[string]any {
	switch name {
	case "renderPrompt":
		return map[string]any{"text": "a login flow"}
	case "renderElements":
		return map[string]any{"elements": []any{element("flowchart-diagram", "A > B")}}
	}
	return map[string]any{"code": "A > B"}
}

func with(base map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[key] = value
	return out
}

func TestValidate_MinimalInputs(t *testing.T) {
	r := registry.Default()
	for _, name := range allTools {
		in, err := r.ValidateValue(name, minimal(name))
		require.NoError(t, err, name)
		require.NotNil(t, in, name)
	}
}

func TestValidate_UnknownTool(t *testing.T) {
	_, err := registry.Default().Validate("renderCustomDiagram", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.True(t, domain.IsUnknownTool(err))
	assert.False(t, domain.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "renderCustomDiagram")
}

func TestValidate_SingleDiagramDropsUnknownFields(t *testing.T) {
	in, err := registry.Default().ValidateValue("renderSequenceDiagram", map[string]any{
		"code":  "Alice > Bob: hi",
		"extra": true,
	})
	require.NoError(t, err)

	single, ok := in.(*registry.SingleDiagramInput)
	require.True(t, ok)
	assert.Equal(t, "Alice > Bob: hi", single.Code)

	b, err := json.Marshal(single)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"Alice > Bob: hi"}`, string(b))
}

func TestValidate_PromptKeepsUnknownFields(t *testing.T) {
	in, err := registry.Default().ValidateValue("renderPrompt", map[string]any{
		"text":       "draw a flow",
		"extraField": 123,
	})
	require.NoError(t, err)

	prompt, ok := in.(*registry.RenderPromptInput)
	require.True(t, ok)
	assert.Equal(t, "draw a flow", prompt.Text)
	require.Contains(t, prompt.Extras, "extraField")
	assert.JSONEq(t, `123`, string(prompt.Extras["extraField"]))

	b, err := json.Marshal(prompt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"draw a flow","extraField":123}`, string(b))
}

func TestValidate_ElementsKeepTopLevelExtrasOnly(t *testing.T) {
	el := element("sequence-diagram", "A > B")
	el["color"] = "red"
	in, err := registry.Default().ValidateValue("renderElements", map[string]any{
		"elements":   []any{el},
		"customFlag": map[string]any{"nested": true},
	})
	require.NoError(t, err)

	elements := in.(*registry.RenderElementsInput)
	b, err := json.Marshal(elements)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"elements": [{"type":"diagram","diagramType":"sequence-diagram","code":"A > B"}],
		"customFlag": {"nested": true}
	}`, string(b))
}

func TestValidate_ElementViolationIsLocated(t *testing.T) {
	_, err := registry.Default().ValidateValue("renderElements", map[string]any{
		"elements": []any{
			element("sequence-diagram", "A > B"),
			element("bogus-type", "C > D"),
		},
	})
	errs := violations(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "elements[1].diagramType", errs[0].Path)
	assert.Contains(t, errs[0].Reason, "must be one of")
	assert.Contains(t, errs[0].Reason, "bpmn-diagram")
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	_, err := registry.Default().ValidateValue("renderElements", map[string]any{
		"elements": []any{
			map[string]any{"type": "image", "diagramType": "flowchart-diagram", "code": "A"},
			map[string]any{"type": "diagram", "code": 5},
			"nope",
		},
		"theme":     "sepia",
		"skipCache": "yes",
	})
	errs := violations(t, err)
	assert.ElementsMatch(t, []string{
		"elements[0].type",
		"elements[1].diagramType",
		"elements[1].code",
		"elements[2]",
		"theme",
		"skipCache",
	}, paths(errs))

	reasons := make(map[string]string)
	for _, e := range errs {
		reasons[e.Path] = e.Reason
	}
	assert.Equal(t, `must be "diagram"`, reasons["elements[0].type"])
	assert.Equal(t, "required", reasons["elements[1].diagramType"])
	assert.Equal(t, "expected string, got number", reasons["elements[1].code"])
	assert.Equal(t, "expected object, got string", reasons["elements[2]"])
	assert.Equal(t, "expected boolean, got string", reasons["skipCache"])
	assert.Equal(t, "must be one of light, dark", reasons["theme"])
}

func TestValidate_ImageQuality(t *testing.T) {
	r := registry.Default()
	for _, name := range allTools {
		for _, q := range []any{1, 2, 3} {
			_, err := r.ValidateValue(name, with(minimal(name), "imageQuality", q))
			assert.NoError(t, err, "%s imageQuality=%v", name, q)
		}
		for _, q := range []any{0, 4, -1, 2.5, "2", true} {
			_, err := r.ValidateValue(name, with(minimal(name), "imageQuality", q))
			errs := violations(t, err)
			require.Len(t, errs, 1, "%s imageQuality=%v", name, q)
			assert.Equal(t, "imageQuality", errs[0].Path)
		}
	}
}

func TestValidate_ImageQualityAcceptsIntegralFloat(t *testing.T) {
	in, err := registry.Default().Validate("renderFlowchart", json.RawMessage(`{"code":"A > B","imageQuality":2.0}`))
	require.NoError(t, err)
	assert.Equal(t, domain.ImageQuality(2), *in.(*registry.SingleDiagramInput).ImageQuality)
}

func TestValidate_EmptyObjectNeedsRequiredMembers(t *testing.T) {
	r := registry.Default()
	tests := []struct {
		tool string
		path string
	}{
		{"renderPrompt", "text"},
		{"renderElements", "elements"},
		{"renderSequenceDiagram", "code"},
		{"renderBpmnDiagram", "code"},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			_, err := r.Validate(tt.tool, json.RawMessage(`{}`))
			errs := violations(t, err)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.path, errs[0].Path)
			assert.Equal(t, "required", errs[0].Reason)
		})
	}
}

func TestValidate_EmptyStringsSatisfyRequired(t *testing.T) {
	r := registry.Default()
	_, err := r.ValidateValue("renderPrompt", map[string]any{"text": ""})
	assert.NoError(t, err)
	_, err = r.ValidateValue("renderFlowchart", map[string]any{"code": ""})
	assert.NoError(t, err)
}

func TestValidate_ElementsMustNotBeEmpty(t *testing.T) {
	_, err := registry.Default().ValidateValue("renderElements", map[string]any{"elements": []any{}})
	errs := violations(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "elements", errs[0].Path)
	assert.Equal(t, "must contain at least 1 item(s)", errs[0].Reason)
}

func TestValidate_EnumsAreCaseSensitive(t *testing.T) {
	r := registry.Default()
	_, err := r.ValidateValue("renderPrompt", map[string]any{"text": "x", "theme": "dark"})
	assert.NoError(t, err)

	_, err = r.ValidateValue("renderPrompt", map[string]any{"text": "x", "theme": "Dark"})
	errs := violations(t, err)
	assert.Equal(t, []string{"theme"}, paths(errs))
}

func TestValidate_RenderOptionEnums(t *testing.T) {
	_, err := registry.Default().ValidateValue("renderPrompt", map[string]any{
		"text":      "x",
		"theme":     "sepia",
		"format":    "gif",
		"typeface":  "serif",
		"colorMode": "neon",
		"styleMode": "sketch",
		"direction": "diagonal",
	})
	errs := violations(t, err)
	assert.ElementsMatch(t,
		[]string{"theme", "format", "typeface", "colorMode", "styleMode", "direction"},
		paths(errs))
}

func TestValidate_PromptHintsAreFreeForm(t *testing.T) {
	_, err := registry.Default().ValidateValue("renderPrompt", map[string]any{
		"text":        "x",
		"diagramType": "custom-diagram",
		"mode":        "premium",
		"git":         map[string]any{"repo": "acme/api"},
		"attachments": []any{"a", 1},
	})
	assert.NoError(t, err)
}

func TestValidate_FileOptions(t *testing.T) {
	r := registry.Default()
	for _, access := range domain.LinkAccessLevels() {
		_, err := r.ValidateValue("renderPrompt", map[string]any{
			"text":        "x",
			"fileOptions": map[string]any{"create": true, "linkAccess": access},
		})
		assert.NoError(t, err, access)
	}

	_, err := r.ValidateValue("renderPrompt", map[string]any{
		"text":        "x",
		"fileOptions": map[string]any{"linkAccess": "private"},
	})
	errs := violations(t, err)
	assert.Equal(t, []string{"fileOptions.linkAccess"}, paths(errs))

	_, err = r.ValidateValue("renderPrompt", map[string]any{
		"text":        "x",
		"fileOptions": map[string]any{"create": true, "expiresIn": 60},
	})
	errs = violations(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "fileOptions.expiresIn", errs[0].Path)
	assert.Equal(t, "unrecognized field", errs[0].Reason)
}

func TestValidate_Null(t *testing.T) {
	r := registry.Default()
	_, err := r.Validate("renderPrompt", json.RawMessage(`{"text":"x","git":null}`))
	assert.NoError(t, err)

	_, err = r.Validate("renderPrompt", json.RawMessage(`{"text":"x","theme":null}`))
	errs := violations(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "theme", errs[0].Path)
	assert.Equal(t, "expected string, got null", errs[0].Reason)

	_, err = r.Validate("renderPrompt", json.RawMessage(`null`))
	errs = violations(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "", errs[0].Path)
	assert.Equal(t, "expected object, got null", errs[0].Reason)
}

func TestValidate_NullArrayItems(t *testing.T) {
	r := registry.Default()
	_, err := r.Validate("renderPrompt", json.RawMessage(`{"text":"x","selection":["a",null]}`))
	errs := violations(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "selection[1]", errs[0].Path)
	assert.Equal(t, "expected string, got null", errs[0].Reason)

	_, err = r.Validate("renderElements", json.RawMessage(
		`{"elements":[{"type":"diagram","diagramType":"flowchart-diagram","code":"A"}],"ignoreElements":[null,"b",7]}`))
	errs = violations(t, err)
	assert.Equal(t, []string{"ignoreElements[0]", "ignoreElements[2]"}, paths(errs))

	_, err = r.Validate("renderElements", json.RawMessage(`{"elements":[null]}`))
	errs = violations(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "elements[0]", errs[0].Path)
	assert.Equal(t, "expected object, got null", errs[0].Reason)

	// Free-form lists accept any item.
	_, err = r.Validate("renderPrompt", json.RawMessage(`{"text":"x","attachments":[null]}`))
	assert.NoError(t, err)
}

func TestValidate_KeepsExplicitEmptyValues(t *testing.T) {
	r := registry.Default()
	in, err := r.Validate("renderPrompt", json.RawMessage(`{"text":"x","title":"","mode":"","selection":[],"attachments":[]}`))
	require.NoError(t, err)
	body, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"x","title":"","mode":"","selection":[],"attachments":[]}`, string(body))

	in, err = r.Validate("renderElements", json.RawMessage(
		`{"elements":[{"type":"diagram","diagramType":"flowchart-diagram","code":"A"}],"fileName":"","teamId":"","ignoreElements":[]}`))
	require.NoError(t, err)
	elements := in.(*registry.RenderElementsInput)
	require.NotNil(t, elements.FileName)
	assert.Equal(t, "", *elements.FileName)
	require.NotNil(t, elements.IgnoreElements)
	assert.Empty(t, *elements.IgnoreElements)
	require.NotNil(t, elements.TeamID)
	assert.Nil(t, elements.Title)
}

func TestValidate_NonObjectArguments(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"code"`, `42`, `true`} {
		_, err := registry.Default().Validate("renderFlowchart", json.RawMessage(raw))
		errs := violations(t, err)
		require.Len(t, errs, 1, raw)
		assert.Equal(t, "", errs[0].Path)
		assert.Contains(t, errs[0].Reason, "expected object")
	}
}

func TestValidate_OptionalBooleansKeepExplicitFalse(t *testing.T) {
	in, err := registry.Default().ValidateValue("renderElements", with(minimal("renderElements"), "returnFile", false))
	require.NoError(t, err)
	elements := in.(*registry.RenderElementsInput)
	require.NotNil(t, elements.ReturnFile)
	assert.False(t, *elements.ReturnFile)
	assert.Nil(t, elements.SkipCache)
}

func TestValidate_ErrorMessageListsViolations(t *testing.T) {
	_, err := registry.Default().Validate("renderElements", json.RawMessage(`{"elements":[{"type":"diagram","code":"x"}]}`))
	require.Error(t, err)
	assert.Equal(t, "invalid input for renderElements: elements[0].diagramType: required", err.Error())
}

func TestValidateValue_Unrepresentable(t *testing.T) {
	r := registry.Default()
	_, err := r.ValidateValue("renderFlowchart", map[string]any{"code": make(chan int)})
	assert.True(t, domain.IsInvalidInput(err))

	_, err = r.ValidateValue("renderNothing", make(chan int))
	assert.True(t, domain.IsUnknownTool(err))
}
