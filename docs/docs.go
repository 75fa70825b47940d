// Package docs provides the Swagger specification served at /swagger/.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new user",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid request"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User login",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Authentication"],
                "summary": "Get user profile",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/api-key/regenerate": {
            "post": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Authentication"],
                "summary": "Regenerate API key",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/jobs": {
            "get": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Jobs"],
                "summary": "List scraped jobs",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "source", "in": "query", "type": "string"},
                    {"name": "remote", "in": "query", "type": "boolean"},
                    {"name": "min_score", "in": "query", "type": "number"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/jobs/{id}": {
            "get": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Jobs"],
                "summary": "Get a job",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Job not found"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Jobs"],
                "summary": "Delete a job",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Job not found"}
                }
            }
        },
        "/searches": {
            "get": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Searches"],
                "summary": "List saved searches",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Searches"],
                "summary": "Create a saved search",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid request"}
                }
            }
        },
        "/searches/{id}": {
            "get": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Searches"],
                "summary": "Get a saved search",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Search not found"}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Searches"],
                "summary": "Update a saved search",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Search not found"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Searches"],
                "summary": "Delete a saved search",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Search not found"}
                }
            }
        },
        "/searches/{id}/run": {
            "post": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Searches"],
                "summary": "Run a saved search now",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Run error"}
                }
            }
        },
        "/searches/{id}/runs": {
            "get": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Runs"],
                "summary": "Get runs for a search",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/runs/recent": {
            "get": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["Runs"],
                "summary": "Get recent runs",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/status": {
            "get": {
                "security": [{"BearerAuth": []}, {"ApiKeyAuth": []}],
                "tags": ["System"],
                "summary": "System status",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        },
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Job Radar API",
	Description:      "Job board scraping service: schedule saved searches against job boards, collect deduplicated and relevance-scored postings, and browse them over a REST API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
