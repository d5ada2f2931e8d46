// Package researchdesk registers the Swagger document served at /swagger/.
// Regenerate from the handler annotations with:
//
//	swag init -g internal/researchdesk/http/router.go -o api/researchdesk --outputTypes go
package researchdesk

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/researchdesk"
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
        "/api/auth/register": {
            "post": {
                "description": "Creates a researcher or guide account and returns a bearer token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "Registration", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/researchsdk.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/researchsdk.AuthResponse"}},
                    "400": {"description": "validation failed or user already exists", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "description": "Exchanges an email and password for a bearer token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/researchsdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/researchsdk.AuthResponse"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/researchsdk.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            }
        },
        "/api/auth/profile": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Update profile",
                "parameters": [
                    {"description": "Profile fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/researchsdk.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/researchsdk.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            }
        },
        "/api/projects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "List projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/researchsdk.Project"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Create a project",
                "parameters": [
                    {"description": "Project", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/researchsdk.CreateProjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/researchsdk.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            }
        },
        "/api/projects/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Search projects",
                "parameters": [
                    {"type": "string", "description": "Search terms", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/researchsdk.Project"}}}
                }
            }
        },
        "/api/projects/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Get a project",
                "parameters": [
                    {"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/researchsdk.Project"}},
                    "404": {"description": "Project not found", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Update a project",
                "parameters": [
                    {"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/researchsdk.UpdateProjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/researchsdk.Project"}},
                    "401": {"description": "Not authorized to update this project", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}},
                    "404": {"description": "Project not found", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Delete a project",
                "parameters": [
                    {"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Project removed", "schema": {"$ref": "#/definitions/researchsdk.MessageResponse"}},
                    "401": {"description": "Not authorized to delete this project", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}},
                    "404": {"description": "Project not found", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            }
        },
        "/api/projects/{id}/paper": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Papers"],
                "summary": "Download a paper",
                "parameters": [
                    {"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "307": {"description": "Temporary Redirect"},
                    "404": {"description": "Project not found or Paper not found", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}},
                    "503": {"description": "Paper storage is not configured", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Papers"],
                "summary": "Upload a paper",
                "parameters": [
                    {"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "PDF document", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/researchsdk.Project"}},
                    "400": {"description": "Only PDF files are supported for now.", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}},
                    "503": {"description": "Paper storage is not configured", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            }
        },
        "/api/analysis": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Analyze a paper",
                "parameters": [
                    {"type": "file", "description": "PDF document", "name": "file", "in": "formData"},
                    {"type": "string", "description": "Text to analyze", "name": "text", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/researchsdk.AnalysisResponse"}},
                    "400": {"description": "Text content or valid PDF file is required.", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}},
                    "500": {"description": "Failed to analyze paper.", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            }
        },
        "/api/analysis/plagiarism": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Check for plagiarism",
                "parameters": [
                    {"type": "file", "description": "PDF document", "name": "file", "in": "formData"},
                    {"type": "string", "description": "Text to check", "name": "text", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/researchsdk.PlagiarismResponse"}},
                    "400": {"description": "Text content or valid PDF file is required.", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}},
                    "500": {"description": "Failed to check plagiarism.", "schema": {"$ref": "#/definitions/researchsdk.ErrorResponse"}}
                }
            }
        },
        "/api/collaborators": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Directory"],
                "summary": "Collaborator directory",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/researchsdk.DirectoryEntry"}}}
                }
            }
        },
        "/api/dashboard/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Directory"],
                "summary": "Dashboard statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/researchsdk.DashboardStats"}}
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/researchsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/researchsdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/researchsdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "researchsdk.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "researchsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/researchsdk.FieldError"}}
            }
        },
        "researchsdk.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "researchsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["researcher", "guide"]},
                "registrationNumber": {"type": "string"},
                "facultyId": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "department": {"type": "string"}
            }
        },
        "researchsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "researchsdk.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "department": {"type": "string"},
                "avatar": {"type": "string"}
            }
        },
        "researchsdk.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "registrationNumber": {"type": "string"},
                "facultyId": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "department": {"type": "string"},
                "avatar": {"type": "string"}
            }
        },
        "researchsdk.AuthResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "registrationNumber": {"type": "string"},
                "facultyId": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "department": {"type": "string"},
                "avatar": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "researchsdk.Collaborator": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["researcher", "guide"]},
                "registrationNumber": {"type": "string"},
                "organization": {"type": "string"},
                "country": {"type": "string"}
            }
        },
        "researchsdk.ProjectOwner": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "researchsdk.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "track": {"type": "string"},
                "format": {"type": "string"},
                "conference": {"type": "string"},
                "deadline": {"type": "string", "format": "date-time"},
                "paperUrl": {"type": "string"},
                "collaborators": {"type": "array", "items": {"$ref": "#/definitions/researchsdk.Collaborator"}},
                "status": {"type": "string", "enum": ["Idea", "In Progress", "Submitted", "Accepted", "Published"]},
                "researchStep": {"type": "string", "enum": ["abstract", "literature", "methodology", "results", "conclusion"]},
                "owner": {"$ref": "#/definitions/researchsdk.ProjectOwner"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "researchsdk.CreateProjectRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "track": {"type": "string"},
                "format": {"type": "string"},
                "conference": {"type": "string"},
                "deadline": {"type": "string"},
                "paperUrl": {"type": "string"},
                "collaborators": {"type": "array", "items": {"$ref": "#/definitions/researchsdk.Collaborator"}}
            }
        },
        "researchsdk.UpdateProjectRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "track": {"type": "string"},
                "format": {"type": "string"},
                "conference": {"type": "string"},
                "deadline": {"type": "string"},
                "paperUrl": {"type": "string"},
                "collaborators": {"type": "array", "items": {"$ref": "#/definitions/researchsdk.Collaborator"}},
                "status": {"type": "string"},
                "researchStep": {"type": "string"}
            }
        },
        "researchsdk.ProjectLink": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "researchsdk.DirectoryEntry": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "organization": {"type": "string"},
                "country": {"type": "string"},
                "projectCount": {"type": "integer"},
                "projects": {"type": "array", "items": {"$ref": "#/definitions/researchsdk.ProjectLink"}}
            }
        },
        "researchsdk.DashboardStats": {
            "type": "object",
            "properties": {
                "totalProjects": {"type": "integer"},
                "byStatus": {"type": "object", "additionalProperties": {"type": "integer"}},
                "byResearchStep": {"type": "object", "additionalProperties": {"type": "integer"}},
                "collaborators": {"type": "integer"},
                "upcomingDeadlines": {"type": "array", "items": {"$ref": "#/definitions/researchsdk.Project"}}
            }
        },
        "researchsdk.AnalysisResponse": {
            "type": "object",
            "properties": {
                "analysis": {"type": "string"}
            }
        },
        "researchsdk.PlagiarismResponse": {
            "type": "object",
            "properties": {
                "result": {"type": "string"}
            }
        },
        "researchsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "search": {"type": "string"},
                "storage": {"type": "string"}
            }
        },
        "researchsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"$ref": "#/definitions/researchsdk.HealthChecks"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "ResearchDesk API",
	Description:      "Research project management for researchers and guides, with LLM-backed paper analysis and plagiarism checks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
