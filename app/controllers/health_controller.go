package controllers

import "github.com/shashiranjanraj/nexus/pkg/ctx"

// Health handles GET /. It touches neither store.
func Health(c *ctx.Context) {
	c.Success(map[string]string{
		"status":  "ok",
		"message": "Nexus e-commerce API is running",
	})
}
