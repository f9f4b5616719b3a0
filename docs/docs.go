// Package docs holds the OpenAPI description served by the swagger UI. It is
// kept by hand in the layout swag produces; update it alongside the handler
// annotations in internal/transport/http.
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
        "/users/{user_id}/trade-data": {
            "get": {
                "produces": ["application/json"],
                "tags": ["performance"],
                "summary": "Portfolio overview and per-account performance for a user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserTradeData"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/users/{user_id}/accounts": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Open a trading account",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"description": "Account payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.NewAccount"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Account"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/users/{user_id}/accounts/{account_id}/chart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["performance"],
                "summary": "Chart points for one account",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "description": "Account ID", "name": "account_id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Include running totals", "name": "cumulative", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AccountChart"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/users/{user_id}/accounts/{account_id}/periods": {
            "get": {
                "produces": ["application/json"],
                "tags": ["performance"],
                "summary": "Per-period totals for one account",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "description": "Account ID", "name": "account_id", "in": "path", "required": true},
                    {"type": "string", "default": "day", "description": "day, week or month", "name": "timeframe", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.PeriodSummary"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/users/{user_id}/snapshots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["performance"],
                "summary": "Stored portfolio snapshots, newest first",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Maximum number of snapshots", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.PortfolioSnapshot"}}}
                }
            }
        },
        "/users/{user_id}/trades": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Log a planned trade",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"description": "Trade plan", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.TradePlan"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Trade"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/users/{user_id}/trades/{trade_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Risk metrics and price ladder for one trade",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "description": "Trade ID", "name": "trade_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TradeDetail"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/users/{user_id}/trades/{trade_id}/execute": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Record the fill of a pending trade",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "description": "Trade ID", "name": "trade_id", "in": "path", "required": true},
                    {"description": "Execution details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.TradeExecution"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Trade"}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/users/{user_id}/trades/{trade_id}/close": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Close an open trade at its exit price",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "description": "Trade ID", "name": "trade_id", "in": "path", "required": true},
                    {"description": "Exit details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.TradeExit"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Trade"}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/users/{user_id}/trades/{trade_id}/cancel": {
            "post": {
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Cancel a pending trade",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "description": "Trade ID", "name": "trade_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Trade"}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.NewAccount": {
            "type": "object",
            "properties": {
                "accountName": {"type": "string"},
                "broker": {"type": "string"},
                "accountCurrency": {"type": "string"},
                "accountSize": {"type": "number"},
                "maxDailyDrawdown": {"type": "number"},
                "maxTotalDrawdown": {"type": "number"}
            }
        },
        "domain.Account": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "accountName": {"type": "string"},
                "broker": {"type": "string"},
                "accountCurrency": {"type": "string"},
                "accountSize": {"type": "number"},
                "currentBalance": {"type": "number"},
                "pnl": {"type": "number"},
                "roi": {"type": "number"},
                "winrate": {"type": "number"},
                "maxDailyDrawdown": {"type": "number"},
                "maxTotalDrawdown": {"type": "number"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.TradePlan": {
            "type": "object",
            "properties": {
                "accountId": {"type": "string"},
                "instrument": {"type": "string"},
                "side": {"type": "string"},
                "plannedEntryPrice": {"type": "number"},
                "plannedStopLoss": {"type": "number"},
                "plannedTakeProfit": {"type": "number"},
                "size": {"type": "number"},
                "executionStyle": {"type": "string"},
                "setupType": {"type": "string"},
                "timeframe": {"type": "string"},
                "notes": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.TradeExecution": {
            "type": "object",
            "properties": {
                "executedEntryPrice": {"type": "number"},
                "executedStopLoss": {"type": "number"},
                "executionNotes": {"type": "string"}
            }
        },
        "domain.TradeExit": {
            "type": "object",
            "properties": {
                "exitPrice": {"type": "number"},
                "executionStyle": {"type": "string"}
            }
        },
        "domain.Trade": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "accountId": {"type": "string"},
                "instrument": {"type": "string"},
                "side": {"type": "string"},
                "plannedEntryPrice": {"type": "number"},
                "plannedStopLoss": {"type": "number"},
                "plannedTakeProfit": {"type": "number"},
                "size": {"type": "number"},
                "executedEntryPrice": {"type": "number"},
                "executedStopLoss": {"type": "number"},
                "executionNotes": {"type": "string"},
                "exitPrice": {"type": "number"},
                "closed": {"type": "boolean"},
                "executionStyle": {"type": "string"},
                "status": {"type": "string"},
                "setupType": {"type": "string"},
                "timeframe": {"type": "string"},
                "notes": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "projectedOutcome": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.ChartPoint": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "x": {"type": "string"},
                "actual": {"type": "number"},
                "projected": {"type": "number"}
            }
        },
        "domain.CumulativePoint": {
            "type": "object",
            "properties": {
                "x": {"type": "string"},
                "cumulative": {"type": "number"},
                "projectedCumulative": {"type": "number"}
            }
        },
        "domain.PeriodSummary": {
            "type": "object",
            "properties": {
                "period": {"type": "string"},
                "totalActual": {"type": "number"},
                "totalProjected": {"type": "number"},
                "tradeCount": {"type": "integer"}
            }
        },
        "domain.PortfolioOverview": {
            "type": "object",
            "properties": {
                "currentBalance": {"type": "number"},
                "roi": {"type": "number"},
                "pnl": {"type": "number"},
                "winrate": {"type": "number"},
                "chartData": {"type": "array", "items": {"$ref": "#/definitions/domain.ChartPoint"}}
            }
        },
        "domain.TradeFailure": {
            "type": "object",
            "properties": {
                "tradeId": {"type": "string"},
                "field": {"type": "string"},
                "value": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "domain.SeriesStats": {
            "type": "object",
            "properties": {
                "totalTrades": {"type": "integer"},
                "closedTrades": {"type": "integer"},
                "wins": {"type": "integer"},
                "losses": {"type": "integer"},
                "breakevens": {"type": "integer"},
                "winRate": {"type": "number"},
                "averageWin": {"type": "number"},
                "averageLoss": {"type": "number"},
                "profitFactor": {"type": "number"},
                "expectancy": {"type": "number"},
                "averageR": {"type": "number"},
                "bestTrade": {"type": "number"},
                "worstTrade": {"type": "number"},
                "maxDrawdown": {"type": "number"},
                "netActual": {"type": "number"},
                "netProjected": {"type": "number"}
            }
        },
        "domain.AccountPerformance": {
            "type": "object",
            "properties": {
                "account": {"$ref": "#/definitions/domain.Account"},
                "chartData": {"type": "array", "items": {"$ref": "#/definitions/domain.ChartPoint"}},
                "stats": {"$ref": "#/definitions/domain.SeriesStats"}
            }
        },
        "domain.UserTradeData": {
            "type": "object",
            "properties": {
                "overview": {"$ref": "#/definitions/domain.PortfolioOverview"},
                "cumulativeChartData": {"type": "array", "items": {"$ref": "#/definitions/domain.CumulativePoint"}},
                "accounts": {"type": "array", "items": {"$ref": "#/definitions/domain.AccountPerformance"}},
                "failures": {"type": "array", "items": {"$ref": "#/definitions/domain.TradeFailure"}}
            }
        },
        "domain.AccountChart": {
            "type": "object",
            "properties": {
                "accountId": {"type": "string"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/domain.ChartPoint"}},
                "cumulative": {"type": "array", "items": {"$ref": "#/definitions/domain.CumulativePoint"}},
                "failures": {"type": "array", "items": {"$ref": "#/definitions/domain.TradeFailure"}}
            }
        },
        "domain.LadderLevel": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "plannedPrice": {"type": "number"},
                "actualPrice": {"type": "number"},
                "plannedPnL": {"type": "number"},
                "actualPnL": {"type": "number"},
                "plannedR": {"type": "number"},
                "actualR": {"type": "number"}
            }
        },
        "domain.LadderSummary": {
            "type": "object",
            "properties": {
                "riskAmount": {"type": "number"},
                "projectedPnL": {"type": "number"},
                "actualPnL": {"type": "number"},
                "projectedRR": {"type": "number"},
                "actualRR": {"type": "number"},
                "difference": {"type": "number"}
            }
        },
        "domain.TradeLadder": {
            "type": "object",
            "properties": {
                "levels": {"type": "array", "items": {"$ref": "#/definitions/domain.LadderLevel"}},
                "summary": {"$ref": "#/definitions/domain.LadderSummary"}
            }
        },
        "domain.TradeDetail": {
            "type": "object",
            "properties": {
                "trade": {"$ref": "#/definitions/domain.Trade"},
                "pipSize": {"type": "number"},
                "riskInPips": {"type": "number"},
                "riskPips": {"type": "number"},
                "riskAmount": {"type": "number"},
                "projectedRR": {"type": "number"},
                "actualRR": {"type": "number"},
                "outcome": {"type": "string"},
                "ladder": {"$ref": "#/definitions/domain.TradeLadder"}
            }
        },
        "domain.PortfolioSnapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "takenAt": {"type": "string"},
                "overview": {"$ref": "#/definitions/domain.PortfolioOverview"},
                "cumulative": {"type": "array", "items": {"$ref": "#/definitions/domain.CumulativePoint"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Trading Journal API",
	Description:      "Trade journal performance analytics: portfolio overviews, account charts, trade risk ladders and snapshots.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
