// Package main Jobly API
//
// @title           Jobly API
// @version         1.0
// @description     Job board REST API: companies, jobs, users and job applications.
//
// @host            localhost:3001
// @BasePath        /
// @schemes         http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token authentication. Prefix the token with "Bearer ".
package main
