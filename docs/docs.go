// Package docs registers the swagger document served under /docs. Keep it in
// step with the handler annotations.
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
        "/": {
            "get": {
                "description": "Renders the dashboard as HTML",
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "Dashboard"
                ],
                "summary": "Dashboard page",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Window length in days",
                        "name": "period",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "description": "Returns run count, averages, record-level series and the daily grid for the trailing window",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Dashboard"
                ],
                "summary": "Dashboard data",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Window length in days",
                        "name": "period",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/fiber.DashboardResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/dashboard/daily.xlsx": {
            "get": {
                "description": "Returns the daily grid with color fills as an xlsx workbook",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "tags": [
                    "Dashboard"
                ],
                "summary": "Daily grid export",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Window length in days",
                        "name": "period",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/runs": {
            "post": {
                "description": "Stores the per-field counts of one run in the status table",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Runs"
                ],
                "summary": "Record a pipeline run",
                "parameters": [
                    {
                        "description": "Run payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/fiber.CreateRunRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/fiber.CreateRunResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/runs/bulk": {
            "post": {
                "description": "Validates every run first, then stores them in order",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Runs"
                ],
                "summary": "Record several pipeline runs",
                "parameters": [
                    {
                        "description": "Bulk run payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/fiber.BulkCreateRunsRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/fiber.BulkCreateRunsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "fiber.BulkCreateRunsRequest": {
            "type": "object",
            "properties": {
                "runs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/fiber.CreateRunRequest"
                    }
                }
            }
        },
        "fiber.BulkCreateRunsResponse": {
            "type": "object",
            "properties": {
                "stored": {
                    "type": "integer"
                }
            }
        },
        "fiber.CreateRunRequest": {
            "description": "Pipeline run DTO",
            "type": "object",
            "properties": {
                "counts": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "number"
                    }
                },
                "name": {
                    "type": "string",
                    "example": "Detect and Locate"
                },
                "timestamp": {
                    "type": "integer",
                    "example": 1706605200
                }
            }
        },
        "fiber.CreateRunResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "example": "stored"
                }
            }
        },
        "fiber.DailyCellResponse": {
            "type": "object",
            "properties": {
                "display": {
                    "type": "string",
                    "example": "100.00"
                },
                "status": {
                    "type": "string",
                    "example": "green"
                },
                "value": {
                    "type": "number"
                }
            }
        },
        "fiber.DailyRowResponse": {
            "type": "object",
            "properties": {
                "BLE_Tags": {
                    "$ref": "#/definitions/fiber.DailyCellResponse"
                },
                "Clients_Device": {
                    "$ref": "#/definitions/fiber.DailyCellResponse"
                },
                "Tag_Device": {
                    "$ref": "#/definitions/fiber.DailyCellResponse"
                },
                "date": {
                    "type": "string",
                    "example": "2024-01-30"
                }
            }
        },
        "fiber.DashboardResponse": {
            "type": "object",
            "properties": {
                "averages": {
                    "$ref": "#/definitions/fiber.FieldValues"
                },
                "daily": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/fiber.DailyRowResponse"
                    }
                },
                "generated_at": {
                    "type": "string"
                },
                "series": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/fiber.SeriesPointResponse"
                    }
                },
                "total_runs": {
                    "type": "integer"
                },
                "window": {
                    "$ref": "#/definitions/fiber.WindowResponse"
                }
            }
        },
        "fiber.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "invalid_period"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "fiber.FieldValues": {
            "type": "object",
            "properties": {
                "BLE_Tags": {
                    "type": "number"
                },
                "Clients_Device": {
                    "type": "number"
                },
                "Tag_Device": {
                    "type": "number"
                }
            }
        },
        "fiber.SeriesPointResponse": {
            "type": "object",
            "properties": {
                "BLE_Tags": {
                    "type": "number"
                },
                "Clients_Device": {
                    "type": "number"
                },
                "Tag_Device": {
                    "type": "number"
                },
                "date": {
                    "type": "string"
                }
            }
        },
        "fiber.WindowResponse": {
            "type": "object",
            "properties": {
                "end": {
                    "type": "string",
                    "example": "2024-01-30"
                },
                "period": {
                    "type": "integer",
                    "example": 30
                },
                "start": {
                    "type": "string",
                    "example": "2024-01-01"
                }
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
	Title:            "Firehose Dashboard API",
	Description:      "Health dashboard for the firehose data pipeline.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
