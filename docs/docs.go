// Package docs registra el spec swagger del API para /swagger/*.
// Se regenera con: swag init -g cmd/api/main.go -o docs
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
        "/cats": {
            "get": {
                "description": "Página del catálogo de billing, cada oferta compuesta como Cat (raza, fotos, precio vigente e historial).",
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Lista gatos a la venta",
                "parameters": [
                    {"type": "string", "description": "Bearer <session>", "name": "Authorization", "in": "header", "required": true},
                    {"type": "integer", "description": "Offset (default 0)", "name": "skip", "in": "query"},
                    {"type": "integer", "description": "Tamaño de página (default 20, máx 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.Cat"}}},
                    "400": {"description": "invalid request", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "502": {"description": "upstream failure", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Crea el record del gato a nombre del llamador y lo publica en el catálogo.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Publica un gato",
                "parameters": [
                    {"type": "string", "description": "Bearer <session>", "name": "Authorization", "in": "header", "required": true},
                    {"description": "Gato (photo en base64)", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/shelter.addCatRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/shelter.addCatResponse"}},
                    "400": {"description": "invalid json / unknown breed", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "502": {"description": "upstream failure", "schema": {"type": "string"}}
                }
            }
        },
        "/cats/{catID}/buy": {
            "post": {
                "description": "Vende el gato al precio vigente de su raza (1000 si no hay historial). Devuelve el comprobante de billing.",
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Compra un gato",
                "parameters": [
                    {"type": "string", "description": "Bearer <session>", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "Cat ID (uuid)", "name": "catID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/billing.Bill"}},
                    "400": {"description": "not for sale / invalid id", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "502": {"description": "upstream failure", "schema": {"type": "string"}}
                }
            }
        },
        "/me/favorites": {
            "get": {
                "description": "Solo los favoritos que siguen a la venta, en orden de alta.",
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "Lista mis favoritos",
                "parameters": [
                    {"type": "string", "description": "Bearer <session>", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.Cat"}}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "502": {"description": "upstream failure", "schema": {"type": "string"}}
                }
            }
        },
        "/me/favorites/{catID}": {
            "put": {
                "description": "Idempotente. No valida que el gato exista.",
                "tags": ["favorites"],
                "summary": "Agrega un favorito",
                "parameters": [
                    {"type": "string", "description": "Bearer <session>", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "Cat ID (uuid)", "name": "catID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "invalid id", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "502": {"description": "upstream failure", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "description": "Si no estaba, no hace nada.",
                "tags": ["favorites"],
                "summary": "Quita un favorito",
                "parameters": [
                    {"type": "string", "description": "Bearer <session>", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "Cat ID (uuid)", "name": "catID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "invalid id", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "502": {"description": "upstream failure", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "billing.Bill": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "offer_id": {"type": "string"},
                "price": {"type": "string", "example": "1000"},
                "sold_at": {"type": "string"}
            }
        },
        "cats.Cat": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "breed_id": {"type": "string"},
                "added_by": {"type": "string"},
                "breed": {"type": "string"},
                "name": {"type": "string"},
                "cat_photo": {"type": "string", "format": "byte"},
                "breed_photo": {"type": "string", "format": "byte"},
                "price": {"type": "string", "example": "1000"},
                "prices": {"type": "array", "items": {"$ref": "#/definitions/prices.Point"}}
            }
        },
        "prices.Point": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "price": {"type": "string"}
            }
        },
        "shelter.addCatRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "breed": {"type": "string"},
                "photo": {"type": "string", "format": "byte"}
            }
        },
        "shelter.addCatResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cat Shelter API",
	Description:      "Facade de adopción: catálogo, compras y favoritos compuestos desde billing, breeds y prices.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
