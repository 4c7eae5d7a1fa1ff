// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g internal/api/router.go -o docs
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/properties": {
            "get": {"tags": ["properties"], "summary": "Search listings", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "location", "in": "query"},
                    {"type": "string", "name": "state", "in": "query"},
                    {"type": "string", "name": "area", "in": "query"},
                    {"type": "string", "name": "propertyType", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "number", "name": "minPrice", "in": "query"},
                    {"type": "number", "name": "maxPrice", "in": "query"},
                    {"type": "string", "name": "bedrooms", "in": "query"},
                    {"type": "string", "name": "bathrooms", "in": "query"},
                    {"type": "string", "name": "amenities", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "503": {"description": "Service Unavailable"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["properties"], "summary": "Create a listing",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}
        },
        "/properties/featured": {"get": {"tags": ["properties"], "summary": "Featured listings", "responses": {"200": {"description": "OK"}}}},
        "/properties/recent": {"get": {"tags": ["properties"], "summary": "Newest listings", "responses": {"200": {"description": "OK"}}}},
        "/properties/export.xlsx": {"get": {"security": [{"BearerAuth": []}], "tags": ["properties"], "summary": "Export a search as XLSX", "responses": {"200": {"description": "OK"}}}},
        "/properties/{id}": {
            "get": {"tags": ["properties"], "summary": "Get a listing", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["properties"], "summary": "Replace a listing", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["properties"], "summary": "Delete a listing", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/properties/{id}/similar": {"get": {"tags": ["properties"], "summary": "Similar listings", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/properties/{id}/image": {"post": {"security": [{"BearerAuth": []}], "tags": ["properties"], "summary": "Upload a listing image", "consumes": ["multipart/form-data"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "file", "name": "image", "in": "formData", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/social-login": {"post": {"tags": ["auth"], "summary": "Social login", "responses": {"200": {"description": "OK"}}}},
        "/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}}}},
        "/users": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}}}},
        "/users/stats/registrations": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Daily registrations by sign-up method", "responses": {"200": {"description": "OK"}}}},
        "/users/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get a user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update a user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete a user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/users/{id}/password": {"put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Change password", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}},
        "/users/{id}/favorites": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "List favorites", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Add a favorite", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/users/{id}/favorites/{propertyId}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Remove a favorite", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "propertyId", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "EstateHub Listing API",
	Description:      "Real-estate listings with search, favorites and account management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
