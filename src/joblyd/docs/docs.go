// Package docs registers the OpenAPI document served under /swagger.
// Regenerate from the handler annotations with:
//
//	swag init -g docs.go -d src/joblyd,src/joblyd/api -o src/joblyd/docs
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
        "/auth/token": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Get a token",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register",
                "parameters": [
                    {"description": "New user", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/companies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Companies"],
                "summary": "List companies",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive name substring", "name": "name", "in": "query"},
                    {"type": "integer", "description": "Minimum number of employees", "name": "minEmployees", "in": "query"},
                    {"type": "integer", "description": "Maximum number of employees", "name": "maxEmployees", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/companies.CompanyListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Companies"],
                "summary": "Create a company",
                "parameters": [
                    {"description": "Company data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/companies.CreateCompanyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/companies.CompanyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/companies/{handle}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Companies"],
                "summary": "Get a company",
                "parameters": [
                    {"type": "string", "description": "Company handle", "name": "handle", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/companies.CompanyWithJobsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Companies"],
                "summary": "Update a company",
                "parameters": [
                    {"type": "string", "description": "Company handle", "name": "handle", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/companies.UpdateCompanyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/companies.CompanyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Companies"],
                "summary": "Delete a company",
                "parameters": [
                    {"type": "string", "description": "Company handle", "name": "handle", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/companies.DeletedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/companies/{handle}/logo": {
            "get": {
                "produces": ["image/png", "image/jpeg", "image/gif", "image/webp", "image/svg+xml"],
                "tags": ["Companies"],
                "summary": "Get a company logo",
                "parameters": [
                    {"type": "string", "description": "Company handle", "name": "handle", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Companies"],
                "summary": "Upload a company logo",
                "parameters": [
                    {"type": "string", "description": "Company handle", "name": "handle", "in": "path", "required": true},
                    {"type": "file", "description": "Logo image", "name": "logo", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/companies.CompanyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "List jobs",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive title substring", "name": "title", "in": "query"},
                    {"type": "integer", "description": "Minimum salary", "name": "minSalary", "in": "query"},
                    {"type": "boolean", "description": "Only jobs with non-zero equity when true", "name": "hasEquity", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/jobs.JobListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Create a job",
                "parameters": [
                    {"description": "Job data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/jobs.CreateJobRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/jobs.JobResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/jobs/{title}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Get a job by title",
                "parameters": [
                    {"type": "string", "description": "Job title", "name": "title", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/jobs.JobWithCompanyResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/jobs/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Update a job",
                "parameters": [
                    {"type": "integer", "description": "Job id", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/jobs.UpdateJobRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/jobs.JobResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Delete a job",
                "parameters": [
                    {"type": "integer", "description": "Job id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/jobs.DeletedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.UserListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Create a user",
                "parameters": [
                    {"description": "User data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/users.CreateUserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/users/{username}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get a user",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.UserWithJobsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Update a user",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Delete a user",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.DeletedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/users/{username}/jobs/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Apply to a job",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true},
                    {"type": "integer", "description": "Job id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.AppliedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.Response"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/base.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/base.HealthResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Version",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/version.Info"}}
                }
            }
        }
    },
    "definitions": {
        "errors.Response": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "company.not_found"},
                "code": {"type": "integer", "example": 404},
                "message": {"type": "string", "example": "No company: nope"}
            }
        },
        "auth.TokenRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "username": {"type": "string", "example": "jdoe"},
                "password": {"type": "string", "example": "s3cret!"}
            }
        },
        "auth.RegisterRequest": {
            "type": "object",
            "required": ["email", "firstName", "lastName", "password", "username"],
            "properties": {
                "username": {"type": "string", "example": "jdoe"},
                "password": {"type": "string", "example": "s3cret!"},
                "firstName": {"type": "string", "example": "Jane"},
                "lastName": {"type": "string", "example": "Doe"},
                "email": {"type": "string", "example": "jane@example.com"}
            }
        },
        "auth.TokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "db.Company": {
            "type": "object",
            "properties": {
                "handle": {"type": "string", "example": "acme"},
                "name": {"type": "string", "example": "Acme Corp"},
                "description": {"type": "string", "example": "Makes everything"},
                "numEmployees": {"type": "integer", "example": 250},
                "logoUrl": {"type": "string", "example": "https://acme.example/logo.png"}
            }
        },
        "db.Job": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "title": {"type": "string", "example": "Engineer"},
                "salary": {"type": "integer", "example": 100000},
                "equity": {"type": "string", "example": "0.4"},
                "company_handle": {"type": "string", "example": "acme"}
            }
        },
        "db.JobWithCompany": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "title": {"type": "string", "example": "Engineer"},
                "salary": {"type": "integer", "example": 100000},
                "equity": {"type": "string", "example": "0.4"},
                "company_handle": {"$ref": "#/definitions/db.Company"}
            }
        },
        "db.CompanyWithJobs": {
            "type": "object",
            "properties": {
                "handle": {"type": "string", "example": "acme"},
                "name": {"type": "string", "example": "Acme Corp"},
                "description": {"type": "string", "example": "Makes everything"},
                "numEmployees": {"type": "integer", "example": 250},
                "logoUrl": {"type": "string", "example": "https://acme.example/logo.png"},
                "jobs": {"type": "array", "items": {"$ref": "#/definitions/db.Job"}}
            }
        },
        "db.User": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "jdoe"},
                "firstName": {"type": "string", "example": "Jane"},
                "lastName": {"type": "string", "example": "Doe"},
                "email": {"type": "string", "example": "jane@example.com"},
                "isAdmin": {"type": "boolean", "example": false}
            }
        },
        "db.UserWithJobs": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "jdoe"},
                "firstName": {"type": "string", "example": "Jane"},
                "lastName": {"type": "string", "example": "Doe"},
                "email": {"type": "string", "example": "jane@example.com"},
                "isAdmin": {"type": "boolean", "example": false},
                "jobs": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "companies.CreateCompanyRequest": {
            "type": "object",
            "required": ["description", "handle", "name"],
            "properties": {
                "handle": {"type": "string", "maxLength": 25, "minLength": 1, "example": "acme"},
                "name": {"type": "string", "example": "Acme Corp"},
                "description": {"type": "string", "example": "Makes everything"},
                "numEmployees": {"type": "integer", "minimum": 0, "example": 250},
                "logoUrl": {"type": "string", "example": "https://acme.example/logo.png"}
            }
        },
        "companies.UpdateCompanyRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Acme Corporation"},
                "description": {"type": "string", "example": "Makes everything, faster"},
                "numEmployees": {"type": "integer", "example": 300},
                "logoUrl": {"type": "string", "example": "https://acme.example/logo.svg"}
            }
        },
        "companies.CompanyResponse": {
            "type": "object",
            "properties": {"company": {"$ref": "#/definitions/db.Company"}}
        },
        "companies.CompanyWithJobsResponse": {
            "type": "object",
            "properties": {"company": {"$ref": "#/definitions/db.CompanyWithJobs"}}
        },
        "companies.CompanyListResponse": {
            "type": "object",
            "properties": {"companies": {"type": "array", "items": {"$ref": "#/definitions/db.Company"}}}
        },
        "companies.DeletedResponse": {
            "type": "object",
            "properties": {"deleted": {"type": "string", "example": "acme"}}
        },
        "jobs.CreateJobRequest": {
            "type": "object",
            "required": ["company_handle", "title"],
            "properties": {
                "title": {"type": "string", "example": "Engineer"},
                "salary": {"type": "integer", "minimum": 0, "example": 100000},
                "equity": {"type": "string", "example": "0.4"},
                "company_handle": {"type": "string", "example": "acme"}
            }
        },
        "jobs.UpdateJobRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "Senior Engineer"},
                "salary": {"type": "integer", "example": 120000},
                "equity": {"type": "string", "example": "0.5"}
            }
        },
        "jobs.JobResponse": {
            "type": "object",
            "properties": {"job": {"$ref": "#/definitions/db.Job"}}
        },
        "jobs.JobWithCompanyResponse": {
            "type": "object",
            "properties": {"job": {"$ref": "#/definitions/db.JobWithCompany"}}
        },
        "jobs.JobListResponse": {
            "type": "object",
            "properties": {"jobs": {"type": "array", "items": {"$ref": "#/definitions/db.Job"}}}
        },
        "jobs.DeletedResponse": {
            "type": "object",
            "properties": {"deleted": {"type": "string", "example": "12"}}
        },
        "users.CreateUserRequest": {
            "type": "object",
            "required": ["email", "firstName", "lastName", "password", "username"],
            "properties": {
                "username": {"type": "string", "example": "jdoe"},
                "password": {"type": "string", "example": "s3cret!"},
                "firstName": {"type": "string", "example": "Jane"},
                "lastName": {"type": "string", "example": "Doe"},
                "email": {"type": "string", "example": "jane@example.com"},
                "isAdmin": {"type": "boolean", "example": false}
            }
        },
        "users.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "n3w-s3cret"},
                "firstName": {"type": "string", "example": "Janet"},
                "lastName": {"type": "string", "example": "Doe"},
                "email": {"type": "string", "example": "janet@example.com"},
                "isAdmin": {"type": "boolean", "example": true}
            }
        },
        "users.CreateUserResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/db.User"},
                "token": {"type": "string"}
            }
        },
        "users.UserResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/db.User"}}
        },
        "users.UserWithJobsResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/db.UserWithJobs"}}
        },
        "users.UserListResponse": {
            "type": "object",
            "properties": {"users": {"type": "array", "items": {"$ref": "#/definitions/db.User"}}}
        },
        "users.DeletedResponse": {
            "type": "object",
            "properties": {"deleted": {"type": "string", "example": "jdoe"}}
        },
        "users.AppliedResponse": {
            "type": "object",
            "properties": {"applied": {"type": "integer", "example": 12}}
        },
        "base.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "timestamp": {"type": "string", "example": "2026-01-15T10:30:00Z"},
                "checks": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "version.Info": {
            "type": "object",
            "properties": {
                "version": {"type": "string", "example": "1.0.0"},
                "build_date": {"type": "string", "example": "2026-01-01T00:00:00Z"},
                "git_commit": {"type": "string", "example": "4f9f297"},
                "go_version": {"type": "string", "example": "go1.24.5"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Prefix the token with \"Bearer \".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Jobly API",
	Description:      "Job board REST API: companies, jobs, users and job applications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
