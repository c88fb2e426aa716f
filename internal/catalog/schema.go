// internal/catalog/schema.go
package catalog

import "career-workers/internal/common/validation"

// careersSchema checks the document shape. Vocabulary and cross-field rules
// are enforced by the models package after decoding.
var careersSchema = validation.MustCompile([]byte(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["careers"],
  "properties": {
    "version": {"type": "string"},
    "careers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "type", "salaryRange", "timeToAchieve", "eligibility", "weights", "roadmap", "stateOpportunities", "reasoningTemplates"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "type": {"type": "string"},
          "description": {"type": "string"},
          "salaryRange": {
            "type": "object",
            "required": ["min", "max", "display"],
            "properties": {
              "min": {"type": "integer", "minimum": 0},
              "max": {"type": "integer", "minimum": 0},
              "display": {"type": "string"}
            }
          },
          "timeToAchieve": {"type": "string"},
          "eligibility": {
            "type": "object",
            "required": ["minEducation", "budgetLevel", "durationFit"],
            "properties": {
              "minEducation": {"type": "array", "minItems": 1, "items": {"type": "string"}},
              "requiredSubjects": {
                "type": "array",
                "items": {
                  "type": "object",
                  "required": ["subject", "minScore"],
                  "properties": {
                    "subject": {"type": "string"},
                    "minScore": {"type": "number"}
                  }
                }
              },
              "preferredInterests": {"type": "array", "items": {"type": "string"}},
              "budgetLevel": {"type": "array", "minItems": 1, "items": {"type": "string"}},
              "durationFit": {"type": "array", "minItems": 1, "items": {"type": "string"}},
              "relocationRequired": {"type": "boolean"},
              "urbanRequired": {"type": "boolean"}
            }
          },
          "weights": {
            "type": "object",
            "required": ["academic", "skill", "interest", "opportunity"],
            "properties": {
              "academic": {"type": "number", "minimum": 0},
              "skill": {"type": "number", "minimum": 0},
              "interest": {"type": "number", "minimum": 0},
              "opportunity": {"type": "number", "minimum": 0}
            }
          },
          "roadmap": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["title", "duration", "type"],
              "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "duration": {"type": "string"},
                "type": {"type": "string"}
              }
            }
          },
          "stateOpportunities": {
            "type": "object",
            "required": ["default"],
            "additionalProperties": {"type": "array", "items": {"type": "string"}}
          },
          "reasoningTemplates": {
            "type": "object",
            "required": ["summary"],
            "properties": {
              "summary": {"type": "string"},
              "strengths": {"type": "array", "items": {"type": "string"}},
              "considerations": {"type": "array", "items": {"type": "string"}}
            }
          }
        }
      }
    }
  }
}`))

var locationsSchema = validation.MustCompile([]byte(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["states"],
  "properties": {
    "version": {"type": "string"},
    "states": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "code", "districts"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "code": {"type": "string", "minLength": 2},
          "districts": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "municipalities"],
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "municipalities": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["name", "type"],
                    "properties": {
                      "name": {"type": "string"},
                      "type": {"type": "string"}
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`))
