// Package docs 注册 /swagger 使用的 OpenAPI 描述
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
    "paths": {
        "/health": {"get": {"tags": ["system"], "summary": "Check system health", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/api/v1/keystone/state": {"get": {"tags": ["Keystone"], "summary": "当前 keystone 状态", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/api/v1/keystone/connect": {"post": {"tags": ["Keystone"], "summary": "与签名设备配对", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/api/v1/keystone/disconnect": {"post": {"tags": ["Keystone"], "summary": "标记设备断开", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/api/v1/keystone/signin": {"post": {"tags": ["Keystone"], "summary": "完整登录流程",
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/request.SignInRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/api/v1/keystone/accounts": {"post": {"tags": ["Keystone"], "summary": "在公钥索引中登记账户",
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/request.RegisterAccountRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/api/v1/keystone/accounts/{accountId}/import": {"post": {"tags": ["Keystone"], "summary": "导入手动输入的账户并保存",
            "parameters": [
                {"in": "path", "name": "accountId", "type": "string", "required": true},
                {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/request.ImportAccountRequest"}}
            ],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/api/v1/keystone/modal/show": {"post": {"tags": ["Keystone"], "summary": "显示签名确认弹窗",
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/request.ShowModalRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/api/v1/keystone/modal/hide": {"post": {"tags": ["Keystone"], "summary": "关闭签名确认弹窗", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/api/v1/keystone/reset": {"post": {"tags": ["Keystone"], "summary": "清除登录流程状态", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}},
        "/api/v1/recovery/{accountId}": {"get": {"tags": ["Recovery"], "summary": "账户的恢复方式",
            "parameters": [{"in": "path", "name": "accountId", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}}
    },
    "definitions": {
        "response.Response": {"type": "object", "properties": {"code": {"type": "integer"}, "msg": {"type": "string"}, "data": {}}},
        "request.SignInRequest": {"type": "object", "properties": {"path": {"type": "string"}, "index": {"type": "integer"}}},
        "request.ImportAccountRequest": {"type": "object", "required": ["path"], "properties": {"path": {"type": "string"}}},
        "request.RegisterAccountRequest": {"type": "object", "required": ["public_key", "account_id"], "properties": {"public_key": {"type": "string"}, "account_id": {"type": "string"}}},
        "request.ShowModalRequest": {"type": "object", "required": ["action"], "properties": {"show": {"type": "boolean"}, "action": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "wallet-keystone API",
	Description:      "QR 签名设备配对与账户导入",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
