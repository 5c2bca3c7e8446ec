// Package docs 由swag生成的API文档(swag init -g cmd/api/main.go)
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
        "/api/v1/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书列表",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书入库",
                "parameters": [{"description": "图书信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBookRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "参数错误/ISBN已存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/books/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书详情",
                "parameters": [{"type": "integer", "description": "图书ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "删除图书",
                "parameters": [{"type": "integer", "description": "图书ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "存在未归还的借阅记录", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/members": {
            "get": {
                "produces": ["application/json"],
                "tags": ["会员"],
                "summary": "会员列表",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["会员"],
                "summary": "会员注册",
                "parameters": [{"description": "会员信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateMemberRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "参数错误/邮箱已存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/members/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["会员"],
                "summary": "会员详情",
                "parameters": [{"type": "integer", "description": "会员ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "会员不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["会员"],
                "summary": "删除会员",
                "parameters": [{"type": "integer", "description": "会员ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "存在未归还的借阅记录", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "会员不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/issues": {
            "get": {
                "produces": ["application/json"],
                "tags": ["借阅"],
                "summary": "借阅记录列表",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["借阅"],
                "summary": "借书",
                "parameters": [{"description": "借阅信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.IssueBookRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "参数错误/无可借副本", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "图书或会员不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/issues/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["借阅"],
                "summary": "借阅记录详情",
                "parameters": [{"type": "integer", "description": "借阅记录ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "借阅记录不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["借阅"],
                "summary": "删除借阅记录",
                "parameters": [{"type": "integer", "description": "借阅记录ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "借阅记录不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/issues/{id}/return": {
            "post": {
                "produces": ["application/json"],
                "tags": ["借阅"],
                "summary": "还书",
                "parameters": [{"type": "integer", "description": "借阅记录ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "图书已归还", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "借阅记录不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateBookRequest": {
            "type": "object",
            "required": ["author", "isbn", "title"],
            "properties": {
                "author": {"type": "string", "maxLength": 100, "example": "威廉·肯尼迪"},
                "category": {"type": "string", "maxLength": 100, "example": "计算机"},
                "isbn": {"type": "string", "maxLength": 20, "example": "9787115428028"},
                "title": {"type": "string", "maxLength": 200, "example": "Go语言实战"},
                "total_copies": {"type": "integer", "minimum": 0, "example": 3}
            }
        },
        "dto.CreateMemberRequest": {
            "type": "object",
            "required": ["email", "name"],
            "properties": {
                "email": {"type": "string", "example": "zhangsan@example.com"},
                "name": {"type": "string", "example": "张三"},
                "phone": {"type": "string", "example": "13800138000"}
            }
        },
        "dto.IssueBookRequest": {
            "type": "object",
            "required": ["book_id", "due_date", "issue_date", "member_id"],
            "properties": {
                "book_id": {"type": "integer", "example": 1},
                "due_date": {"type": "string", "example": "2024-01-15"},
                "issue_date": {"type": "string", "example": "2024-01-01"},
                "member_id": {"type": "integer", "example": 1}
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
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Library API",
	Description:      "图书馆借阅台账:图书、会员、借阅记录",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
