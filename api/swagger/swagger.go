package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Al-Ibaanah Intake API",
        "description": "Student intake booking ledger: slots, registrations, check-ins",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Staff login"},
        {"name": "Slots", "description": "Interview slot management"},
        {"name": "Registrations", "description": "Public seat booking"},
        {"name": "Students", "description": "Staff roster and search"},
        {"name": "Check-ins", "description": "Arrival desk"},
        {"name": "Dashboard", "description": "Intake statistics"},
        {"name": "Users", "description": "Staff account management"},
        {"name": "Settings", "description": "Intake configuration"},
        {"name": "Notifications", "description": "Notification log"},
        {"name": "Exports", "description": "Roster and slip downloads"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate staff member",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/slots": {
            "get": {
                "tags": ["Slots"],
                "summary": "List interview slots",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Slots"],
                "summary": "Create interview slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/slots/{id}": {
            "get": {
                "tags": ["Slots"],
                "summary": "Get one slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "patch": {
                "tags": ["Slots"],
                "summary": "Update slot capacity or gender",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SlotPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Capacity below enrolled count or gender locked"}
                }
            },
            "delete": {
                "tags": ["Slots"],
                "summary": "Delete slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "Slot has enrollments"}
                }
            }
        },
        "/registrations": {
            "post": {
                "tags": ["Registrations"],
                "summary": "Register a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Registration closed"},
                    "409": {"description": "Slot full"},
                    "422": {"description": "Gender mismatch"}
                }
            }
        },
        "/registrations/{code}/slip": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Download admission slip PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF document"},
                    "404": {"description": "Unknown registration code"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List registered students",
                "parameters": [
                    {"name": "gender", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/search": {
            "get": {
                "tags": ["Students"],
                "summary": "Find one student",
                "parameters": [
                    {"name": "q", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No match"}
                }
            }
        },
        "/checkins": {
            "post": {
                "tags": ["Check-ins"],
                "summary": "Check a student in",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckInRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No booking matches"},
                    "409": {"description": "Already checked in"}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Intake dashboard",
                "parameters": [
                    {"name": "gender", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List staff accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create staff account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}": {
            "patch": {
                "tags": ["Users"],
                "summary": "Update staff account",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get intake settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Settings"],
                "summary": "Update intake settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConfigPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Notification log",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/test": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Record a test notification",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendTestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/students.csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export student roster as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "gender", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateSlotRequest": {
            "type": "object",
            "required": ["date", "start_time", "end_time", "capacity", "gender"],
            "properties": {
                "date": {"type": "string", "example": "2026-09-15"},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "11:00"},
                "capacity": {"type": "integer"},
                "gender": {"type": "string", "enum": ["Male", "Female"]}
            }
        },
        "SlotPatch": {
            "type": "object",
            "properties": {
                "capacity": {"type": "integer"},
                "gender": {"type": "string", "enum": ["Male", "Female"]}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "required": ["full_name", "phone_number", "email", "age", "gender", "arabic_level", "slot_id"],
            "properties": {
                "full_name": {"type": "string"},
                "phone_number": {"type": "string"},
                "email": {"type": "string"},
                "age": {"type": "integer"},
                "gender": {"type": "string", "enum": ["Male", "Female"]},
                "address": {"type": "string"},
                "arabic_level": {"type": "string", "enum": ["Beginner", "Elementary", "Intermediate", "Advanced"]},
                "slot_id": {"type": "string"}
            }
        },
        "CheckInRequest": {
            "type": "object",
            "required": ["code"],
            "properties": {
                "code": {"type": "string", "description": "Registration code or phone number"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["username", "password", "role"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["SUPERADMIN", "ADMIN", "FRONTDESK"]},
                "gender": {"type": "string", "enum": ["Male", "Female"]}
            }
        },
        "AdminPatch": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["SUPERADMIN", "ADMIN", "FRONTDESK"]},
                "gender": {"type": "string", "enum": ["Male", "Female"]},
                "active": {"type": "boolean"},
                "password": {"type": "string"}
            }
        },
        "ConfigPatch": {
            "type": "object",
            "properties": {
                "registration_open": {"type": "boolean"},
                "max_daily_capacity": {"type": "integer"},
                "max_group_size": {"type": "integer"},
                "confirmation_email": {"type": "boolean"},
                "twenty_four_hour_email": {"type": "boolean"},
                "day_of_email": {"type": "boolean"}
            }
        },
        "SendTestRequest": {
            "type": "object",
            "required": ["recipient"],
            "properties": {
                "recipient": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
