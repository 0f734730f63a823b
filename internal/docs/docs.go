// Package docs registers the OpenAPI document served under /swagger/.
// Keep it in step with the @Router annotations in internal/handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "paths": {
        "/state": {"get": {"tags": ["tracker"], "summary": "Accrue then return the save", "responses": {"200": {"description": "OK"}}}},
        "/catalog": {"get": {"tags": ["catalog"], "summary": "Skills, titles and the level table", "responses": {"200": {"description": "OK"}}}},
        "/action/start": {"post": {"tags": ["tracker"], "summary": "Start an action", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Locked"}, "404": {"description": "Unknown"}}}},
        "/action/toggle": {"post": {"tags": ["tracker"], "summary": "Toggle an action", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/action/stop": {"post": {"tags": ["tracker"], "summary": "Flush and stop the active action", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Nothing running"}}}},
        "/manual": {"post": {"tags": ["tracker"], "summary": "Credit external time", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid duration"}}}},
        "/tasks/complete": {"post": {"tags": ["tracker"], "summary": "Claim a task", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Already complete"}}}},
        "/shop/titles": {"get": {"tags": ["shop"], "summary": "List titles", "responses": {"200": {"description": "OK"}}}},
        "/shop/buy": {"post": {"tags": ["shop"], "summary": "Buy a title", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}, "402": {"description": "Not enough coins"}}}},
        "/shop/equip": {"post": {"tags": ["shop"], "summary": "Equip a title", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/stats": {"get": {"tags": ["stats"], "summary": "Stat counters", "responses": {"200": {"description": "OK"}}}},
        "/stats/summary": {"get": {"tags": ["stats"], "summary": "Account totals", "responses": {"200": {"description": "OK"}}}},
        "/skills": {"get": {"tags": ["skills"], "summary": "Skill views", "responses": {"200": {"description": "OK"}}}},
        "/skills/{skill}": {"get": {"tags": ["skills"], "summary": "One skill", "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown"}}}},
        "/skills/unlock": {"post": {"tags": ["skills"], "summary": "Unlock a skill", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/skills/lock": {"post": {"tags": ["skills"], "summary": "Lock a skill", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/settings": {
            "get": {"tags": ["profile"], "summary": "Settings", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["profile"], "summary": "Patch settings", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/groups": {"post": {"tags": ["groups"], "summary": "Create a group", "security": [{"ApiKeyAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/groups/assign": {"post": {"tags": ["groups"], "summary": "Assign a skill", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/groups/{name}": {"delete": {"tags": ["groups"], "summary": "Delete a group", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/groups/{name}/toggle": {"post": {"tags": ["groups"], "summary": "Toggle collapse", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/export": {"get": {"tags": ["saves"], "summary": "Download the save", "responses": {"200": {"description": "OK"}}}},
        "/import": {"post": {"tags": ["saves"], "summary": "Replace the save", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid save"}}}},
        "/reset": {"post": {"tags": ["saves"], "summary": "Start over", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/notifications": {
            "get": {"tags": ["notifications"], "summary": "Recent notices", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["notifications"], "summary": "Clear notices", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/notifications/{id}": {"delete": {"tags": ["notifications"], "summary": "Dismiss a notice", "security": [{"ApiKeyAuth": []}], "responses": {"204": {"description": "Dismissed"}}}},
        "/events": {"get": {"tags": ["events"], "summary": "Server-sent event stream", "produces": ["text/event-stream"], "responses": {"200": {"description": "Stream"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "IdleTracker API",
	Description:      "Idle skill tracker: timed actions, manual entries, tasks and a title shop.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
