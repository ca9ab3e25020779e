package drawing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/linedrill/internal/geometry"
)

const schemaURL = "schema://drawing-data.json"

// drawingDataSchema describes the JSON form of geometry.DrawingData.
const drawingDataSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["lines"],
  "properties": {
    "lines": {
      "type": "array",
      "items": {"$ref": "#/$defs/segment"}
    },
    "domain": {
      "type": "object",
      "required": ["min", "max"],
      "properties": {
        "min": {"type": "integer"},
        "max": {"type": "integer"}
      }
    }
  },
  "$defs": {
    "coord": {"type": "integer", "minimum": -10, "maximum": 10},
    "point": {
      "type": "object",
      "required": ["x", "y"],
      "properties": {
        "x": {"$ref": "#/$defs/coord"},
        "y": {"$ref": "#/$defs/coord"}
      }
    },
    "segment": {
      "type": "object",
      "required": ["p1", "p2"],
      "properties": {
        "p1": {"$ref": "#/$defs/point"},
        "p2": {"$ref": "#/$defs/point"}
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(drawingDataSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse drawing schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add drawing schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// Decode reads a JSON drawing, validates it against the drawing schema and
// checks that every point lies inside the declared domain. A missing domain
// means the default one.
func Decode(r io.Reader) (geometry.DrawingData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return geometry.DrawingData{}, fmt.Errorf("read drawing: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return geometry.DrawingData{}, fmt.Errorf("invalid drawing JSON: %w", err)
	}
	sch, err := schema()
	if err != nil {
		return geometry.DrawingData{}, err
	}
	if err := sch.Validate(inst); err != nil {
		return geometry.DrawingData{}, fmt.Errorf("invalid drawing: %w", err)
	}

	var data geometry.DrawingData
	if err := json.Unmarshal(raw, &data); err != nil {
		return geometry.DrawingData{}, fmt.Errorf("decode drawing: %w", err)
	}
	if data.Domain == (geometry.Domain{}) {
		data.Domain = geometry.DefaultDomain
	}
	if data.Lines == nil {
		data.Lines = []geometry.Segment{}
	}
	if err := checkDomain(data); err != nil {
		return geometry.DrawingData{}, fmt.Errorf("invalid drawing: %w", err)
	}
	return data, nil
}

func checkDomain(data geometry.DrawingData) error {
	d := data.Domain
	if d.Min >= d.Max {
		return fmt.Errorf("domain: min %d must be below max %d", d.Min, d.Max)
	}
	for i, l := range data.Lines {
		if !d.Contains(l.P1) {
			return outsideDomain(i, "p1", l.P1, d)
		}
		if !d.Contains(l.P2) {
			return outsideDomain(i, "p2", l.P2, d)
		}
	}
	return nil
}

func outsideDomain(i int, name string, p geometry.Point, d geometry.Domain) error {
	return fmt.Errorf("lines[%d].%s: (%d, %d) outside domain [%d, %d]", i, name, p.X, p.Y, d.Min, d.Max)
}
