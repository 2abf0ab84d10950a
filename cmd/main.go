package main

import (
	api "Blogram"
)

// @title Blogram API
// @version 1.0
// @description Social blogging: posts, groups, comments and follows
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Provide a valid JWT as: Bearer <token>
func main() {
	api.Run()
}
