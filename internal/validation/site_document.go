package validation

// SiteDocumentJSONSchema describes the combined settings and articles
// document produced by export and accepted by import.
const SiteDocumentJSONSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "SiteDocument",
  "type": "object",
  "required": ["settings", "articles"],
  "additionalProperties": false,
  "properties": {
    "settings": {
      "type": "object",
      "required": ["brand", "features", "pages", "admin_password_hash"],
      "properties": {
        "brand": {
          "type": "object",
          "required": ["name", "tagline", "primary_color", "accent_color"],
          "properties": {
            "name": {"type": "string"},
            "tagline": {"type": "string"},
            "primary_color": {"type": "string"},
            "accent_color": {"type": "string"}
          }
        },
        "features": {
          "type": "object",
          "additionalProperties": {"type": "boolean"}
        },
        "pages": {
          "type": "array",
          "items": {"$ref": "#/$defs/page"}
        },
        "admin_password_hash": {"type": "string"}
      }
    },
    "articles": {
      "type": "object",
      "required": ["articles"],
      "properties": {
        "articles": {
          "type": "array",
          "items": {"$ref": "#/$defs/article"}
        }
      }
    }
  },
  "$defs": {
    "page": {
      "type": "object",
      "required": ["id", "label", "path", "enabled", "order"],
      "properties": {
        "id": {"type": "string"},
        "label": {"type": "string"},
        "path": {"type": "string"},
        "enabled": {"type": "boolean"},
        "order": {"type": "integer"}
      }
    },
    "article": {
      "type": "object",
      "required": ["id", "title", "slug", "date", "category", "excerpt", "content", "status"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string"},
        "slug": {"type": "string"},
        "date": {"type": "string"},
        "category": {"type": "string"},
        "excerpt": {"type": "string"},
        "content": {"type": "string"},
        "status": {"enum": ["draft", "published", "trashed"]}
      }
    }
  }
}
`
