package content

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const activityBodySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["blocks"],
  "properties": {
    "blocks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "type": {"enum": ["markdown", "image", "embed", "code"]},
          "md": {"type": "string"},
          "src": {"type": "string"},
          "alt": {"type": "string"},
          "url": {"type": "string"},
          "lang": {"type": "string"},
          "code": {"type": "string"}
        }
      }
    }
  }
}`

const quizBodySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["questions"],
  "properties": {
    "maxPoints": {"type": "number", "minimum": 0},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["text", "choices"],
        "properties": {
          "text": {"type": "string", "minLength": 1},
          "points": {"type": "number", "minimum": 0},
          "choices": {
            "type": "array",
            "minItems": 2,
            "items": {
              "type": "object",
              "required": ["text"],
              "properties": {
                "text": {"type": "string"},
                "correct": {"type": "boolean"}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	activitySchema *jsonschema.Schema
	quizSchema     *jsonschema.Schema
)

func compiled() (*jsonschema.Schema, *jsonschema.Schema) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("activity.json", strings.NewReader(activityBodySchema)); err != nil {
			panic(err)
		}
		if err := c.AddResource("quiz.json", strings.NewReader(quizBodySchema)); err != nil {
			panic(err)
		}
		activitySchema = c.MustCompile("activity.json")
		quizSchema = c.MustCompile("quiz.json")
	})
	return activitySchema, quizSchema
}

// ValidateBody checks a CONTENT body string against the block schema.
func ValidateBody(raw string) error {
	a, _ := compiled()
	return validate(a, raw, "content body")
}

// ValidateQuizBody checks a QUIZ body string against the quiz schema.
func ValidateQuizBody(raw string) error {
	_, q := compiled()
	return validate(q, raw, "quiz body")
}

func validate(schema *jsonschema.Schema, raw, what string) error {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("%s is not valid JSON: %w", what, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%s invalid: %w", what, err)
	}
	return nil
}
