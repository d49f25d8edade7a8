package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// Enum is implemented by every closed option set a tool input can carry.
type Enum interface {
	Valid() bool
	Values() []any
}

// DiagramType tags the diagram-description language a piece of code is written in.
// The broader product also knows "custom-diagram"; it is not offered as a tool.
type DiagramType string

const (
	DiagramSequence           DiagramType = "sequence-diagram"
	DiagramEntityRelationship DiagramType = "entity-relationship-diagram"
	DiagramCloudArchitecture  DiagramType = "cloud-architecture-diagram"
	DiagramFlowchart          DiagramType = "flowchart-diagram"
	DiagramBPMN               DiagramType = "bpmn-diagram"
)

var diagramTypes = []DiagramType{
	DiagramSequence,
	DiagramEntityRelationship,
	DiagramCloudArchitecture,
	DiagramFlowchart,
	DiagramBPMN,
}

// DiagramTypes returns the supported diagram types in declaration order.
func DiagramTypes() []DiagramType { return slices.Clone(diagramTypes) }

func (d DiagramType) Valid() bool   { return slices.Contains(diagramTypes, d) }
func (d DiagramType) Values() []any { return anyOf(diagramTypes) }

// Settings below mirror the diagram settings owned by the renderer's settings
// module. They are re-declared here so this module builds on its own; bump
// SettingsVersion whenever one of the lists changes.
const SettingsVersion = 1

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var themes = []Theme{ThemeLight, ThemeDark}

func (t Theme) Valid() bool   { return slices.Contains(themes, t) }
func (t Theme) Values() []any { return anyOf(themes) }

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

var formats = []Format{FormatPNG, FormatJPEG}

func (f Format) Valid() bool   { return slices.Contains(formats, f) }
func (f Format) Values() []any { return anyOf(formats) }

type Typeface string

const (
	TypefaceRough Typeface = "rough"
	TypefaceClean Typeface = "clean"
	TypefaceMono  Typeface = "mono"
)

var typefaces = []Typeface{TypefaceRough, TypefaceClean, TypefaceMono}

func (t Typeface) Valid() bool   { return slices.Contains(typefaces, t) }
func (t Typeface) Values() []any { return anyOf(typefaces) }

type ColorMode string

const (
	ColorModePastel  ColorMode = "pastel"
	ColorModeBold    ColorMode = "bold"
	ColorModeOutline ColorMode = "outline"
)

var colorModes = []ColorMode{ColorModePastel, ColorModeBold, ColorModeOutline}

func (c ColorMode) Valid() bool   { return slices.Contains(colorModes, c) }
func (c ColorMode) Values() []any { return anyOf(colorModes) }

type StyleMode string

const (
	StyleModePlain      StyleMode = "plain"
	StyleModeShadow     StyleMode = "shadow"
	StyleModeWatercolor StyleMode = "watercolor"
)

var styleModes = []StyleMode{StyleModePlain, StyleModeShadow, StyleModeWatercolor}

func (s StyleMode) Valid() bool   { return slices.Contains(styleModes, s) }
func (s StyleMode) Values() []any { return anyOf(styleModes) }

type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

var directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

func (d Direction) Valid() bool   { return slices.Contains(directions, d) }
func (d Direction) Values() []any { return anyOf(directions) }

// LinkAccess is the sharing level of a file created for a rendered diagram.
type LinkAccess string

const (
	LinkAccessNone             LinkAccess = "no-link-access"
	LinkAccessAnyoneCanEdit    LinkAccess = "anyone-with-link-can-edit"
	LinkAccessPubliclyViewable LinkAccess = "publicly-viewable"
	LinkAccessPubliclyEditable LinkAccess = "publicly-editable"
)

var linkAccessLevels = []LinkAccess{
	LinkAccessNone,
	LinkAccessAnyoneCanEdit,
	LinkAccessPubliclyViewable,
	LinkAccessPubliclyEditable,
}

func LinkAccessLevels() []LinkAccess { return slices.Clone(linkAccessLevels) }

func (l LinkAccess) Valid() bool   { return slices.Contains(linkAccessLevels, l) }
func (l LinkAccess) Values() []any { return anyOf(linkAccessLevels) }

// ImageQuality is the render scale factor. Only 1, 2 and 3 are meaningful.
type ImageQuality int

var imageQualities = []ImageQuality{1, 2, 3}

func (q ImageQuality) Valid() bool   { return slices.Contains(imageQualities, q) }
func (q ImageQuality) Values() []any { return anyOf(imageQualities) }

// UnmarshalJSON accepts any JSON number with an integral value, so 2 and 2.0
// decode the same way. Range checking is left to validation.
func (q *ImageQuality) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("must be one of 1, 2, 3, got %v", f)
	}
	*q = ImageQuality(f)
	return nil
}

func anyOf[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
