// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register",
                "parameters": [
                    {"description": "New account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "token, user", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "identity may be an email (case-insensitive) or a username",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "token, user", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/activities": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Random activity for the mode. Without 'exclude', the activity last shown for the same mode and duration is skipped when possible.",
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "Next activity",
                "parameters": [
                    {"type": "string", "description": "Mode", "name": "mode", "in": "query", "required": true},
                    {"type": "integer", "description": "Session length in minutes", "name": "duration", "in": "query"},
                    {"type": "string", "description": "Activity id to avoid", "name": "exclude", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Activity"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/activities/all": {
            "get": {
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "List all activities",
                "responses": {"200": {"description": "count, activities", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/api/v1/activities/modes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "List modes",
                "responses": {"200": {"description": "modes", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/api/v1/sessions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List sessions",
                "parameters": [
                    {"type": "string", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"type": "string", "description": "Mode", "name": "mode", "in": "query"}
                ],
                "responses": {"200": {"description": "count, sessions", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Record a completed session",
                "parameters": [
                    {"description": "Session", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RecordSessionRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Session"}}}
            }
        },
        "/api/v1/sessions/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Weekly stats",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Stats"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        }
    },
    "definitions": {
        "handlers.registerRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "username": {"type": "string"}}
        },
        "handlers.loginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {"identity": {"type": "string"}, "email": {"type": "string"}, "username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.RecordSessionRequest": {
            "type": "object",
            "required": ["activity_id", "activity_title", "completed_at", "duration", "mode"],
            "properties": {
                "mode": {"type": "string", "example": "Relax"},
                "duration": {"type": "integer", "example": 5},
                "activity_id": {"type": "string", "example": "r1"},
                "activity_title": {"type": "string", "example": "Box Breathing"},
                "started_at": {"type": "string"},
                "completed_at": {"type": "string"},
                "photo": {"type": "string"},
                "sensor_result": {"type": "string"}
            }
        },
        "models.Activity": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "mode": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "duration_hints": {"type": "array", "items": {"type": "integer"}},
                "activity_type": {"type": "string"},
                "payload": {}
            }
        },
        "models.Session": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "mode": {"type": "string"},
                "duration": {"type": "integer"},
                "activity_id": {"type": "string"},
                "activity_title": {"type": "string"},
                "started_at": {"type": "string"},
                "completed_at": {"type": "string"},
                "photo": {"type": "string"},
                "has_photo": {"type": "boolean"},
                "sensor_result": {"type": "string"}
            }
        },
        "models.Stats": {
            "type": "object",
            "properties": {
                "days": {"type": "array", "items": {"$ref": "#/definitions/models.DayCount"}},
                "modeCounts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "total": {"type": "integer"}
            }
        },
        "models.DayCount": {
            "type": "object",
            "properties": {"key": {"type": "string"}, "label": {"type": "string"}, "count": {"type": "integer"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Little Wins API",
	Description:      "Short wellbeing activities, session history and weekly stats.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
