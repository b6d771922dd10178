// Package api holds the OpenAPI description served at /docs.
package api

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
        "/": {
            "get": {
                "tags": ["General"],
                "summary": "API root",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/version": {
            "get": {
                "tags": ["General"],
                "summary": "API version",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/healthz": {
            "get": {
                "tags": ["General"],
                "summary": "Health",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/users": {
            "get": {
                "tags": ["Users"],
                "summary": "Get users",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create user",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/accounts": {
            "get": {
                "tags": ["Accounts"],
                "summary": "Get accounts",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Accounts"],
                "summary": "Create account",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/categories": {
            "get": {
                "tags": ["Categories"],
                "summary": "Get categories",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Categories"],
                "summary": "Create category",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/tags": {
            "get": {
                "tags": ["Tags"],
                "summary": "Get tags",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Tags"],
                "summary": "Create tag",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/transactions": {
            "get": {
                "tags": ["Transactions"],
                "summary": "Get transactions",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Transactions"],
                "summary": "Create transaction",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/transactions/{id}": {
            "get": {
                "tags": ["Transactions"],
                "summary": "Get transaction",
                "responses": {"200": {"description": "OK"}}
            },
            "patch": {
                "tags": ["Transactions"],
                "summary": "Update transaction",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Transactions"],
                "summary": "Delete transaction",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/transactions/{id}/allocation": {
            "post": {
                "tags": ["Transactions"],
                "summary": "Allocate income to funds",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/transactions/{id}/fund-debit": {
            "post": {
                "tags": ["Transactions"],
                "summary": "Debit funds for an expense",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/transactions/{id}/split": {
            "post": {
                "tags": ["Transactions"],
                "summary": "Split a transaction",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/imports": {
            "post": {
                "tags": ["Imports"],
                "summary": "Import a bank statement",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/suggestions": {
            "get": {
                "tags": ["Suggestions"],
                "summary": "Suggest a category for a description",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
