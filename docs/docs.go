// Package docs Swagger文档，由 swag init -g cmd/api/main.go 生成，不要手动修改
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
        "/auth/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "登录",
                "parameters": [
                    {"type": "string", "description": "邮箱", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "密码", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TokenResponse"}},
                    "401": {"description": "邮箱或密码错误", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "请求过于频繁", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "刷新Token",
                "parameters": [
                    {"description": "Refresh Token", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/dto.RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TokenResponse"}},
                    "401": {"description": "Refresh Token无效、已吊销或已过期", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "登出",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/revoke-all": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "吊销全部会话",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书列表",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "size", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "integer", "name": "category_id", "in": "query"},
                    {"type": "integer", "name": "author_id", "in": "query"},
                    {"type": "integer", "name": "rating_star", "in": "query"},
                    {"enum": ["on_sale", "popularity", "price"], "type": "string", "name": "sort_by", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "name": "sort_direction", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "页码超出范围", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "新增图书",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.BookSummary"}},
                    "403": {"description": "需要管理员权限", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/books/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书详情",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BookSummary"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/orders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["订单"],
                "summary": "下单",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "价格不一致", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "dto.RefreshRequest": {
            "type": "object",
            "properties": {"refresh_token": {"type": "string"}}
        },
        "dto.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "token_type": {"type": "string", "example": "bearer"}
            }
        },
        "dto.BookSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "book_title": {"type": "string", "example": "Dune"},
                "book_summary": {"type": "string"},
                "book_price": {"type": "string", "example": "19.99"},
                "book_cover_photo": {"type": "string", "example": "book1"},
                "final_price": {"type": "string", "example": "14.99"},
                "discount_amount": {"type": "string", "example": "5.00"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bookworm API",
	Description:      "在线书店后端：图书查询、折扣、评论、下单核价、JWT认证",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
