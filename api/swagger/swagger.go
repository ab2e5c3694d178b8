package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Nexjob API",
        "description": "Settings, SEO metadata and sitemap backend for the Nexjob job board",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "auth", "description": "Admin authentication"},
        {"name": "settings", "description": "Site settings"},
        {"name": "seo", "description": "Page metadata"},
        {"name": "ads", "description": "Advertisement placements"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["settings"],
                "summary": "Public site settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/settings": {
            "get": {
                "tags": ["settings"],
                "summary": "Current persisted settings",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            },
            "put": {
                "tags": ["settings"],
                "summary": "Update site settings",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/SaveResult"}},
                    "400": {"description": "Rejected", "schema": {"$ref": "#/definitions/SaveResult"}}
                }
            }
        },
        "/seo/category/{slug}": {
            "get": {
                "tags": ["seo"],
                "summary": "Category archive metadata",
                "parameters": [
                    {"name": "slug", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown category"}
                }
            }
        },
        "/seo/location/{slug}": {
            "get": {
                "tags": ["seo"],
                "summary": "Location archive metadata",
                "parameters": [
                    {"name": "slug", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown location"}
                }
            }
        },
        "/seo/page/{page}": {
            "get": {
                "tags": ["seo"],
                "summary": "Static page metadata",
                "parameters": [
                    {"name": "page", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown page"}
                }
            }
        },
        "/ads": {
            "get": {
                "tags": ["ads"],
                "summary": "All ad placements",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ads/{position}": {
            "get": {
                "tags": ["ads"],
                "summary": "Ad snippet for one placement",
                "parameters": [
                    {"name": "position", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown placement"}
                }
            }
        },
        "/ads/inject": {
            "post": {
                "tags": ["ads"],
                "summary": "Inject in-content ad into article HTML",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "SaveResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
